package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhrumil1128/career-ai-agent/internal/observability"
	"github.com/dhrumil1128/career-ai-agent/internal/render"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a resume to the career service",
	Long:  "Upload a resume file. The service extracts its text and remembers it for the rest of the session, so later analyses can use it.",
	RunE:  runUpload,
}

var uploadFile string

func init() {
	uploadCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "Path to the resume file (required)")

	if err := uploadCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	info, err := os.Stat(uploadFile)
	if err != nil {
		return fmt.Errorf("resume file: %w", err)
	}

	result, err := client.UploadResume(cmd.Context(), uploadFile)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	label := fmt.Sprintf("%s (%s)", filepath.Base(uploadFile), render.FormatBytes(info.Size()))
	observability.NewPrinter(cmd.OutOrStdout()).PrintUploadResult(result, label)
	return nil
}
