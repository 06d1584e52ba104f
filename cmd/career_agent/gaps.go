package main

import (
	"github.com/spf13/cobra"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "List skills a job asks for that the resume lacks",
	RunE:  runGaps,
}

var (
	gapsJobFile string
	gapsJobText string
)

func init() {
	gapsCmd.Flags().StringVarP(&gapsJobFile, "job-file", "j", "", "Path to a file containing the job description")
	gapsCmd.Flags().StringVar(&gapsJobText, "job-text", "", "Job description as a literal string")

	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	jd, err := readJobDescription(gapsJobFile, gapsJobText, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result, err := client.SkillGaps(cmd.Context(), jd)
	if err != nil {
		return err
	}

	printSection(cmd.OutOrStdout(), "SKILL GAPS", result)
	return nil
}
