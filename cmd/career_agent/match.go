package main

import (
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the uploaded resume against a job description",
	Long:  "Ask the service how well the stored resume matches a job description. The description can come from a file, a flag, or stdin.",
	RunE:  runMatch,
}

var (
	matchJobFile string
	matchJobText string
)

func init() {
	matchCmd.Flags().StringVarP(&matchJobFile, "job-file", "j", "", "Path to a file containing the job description")
	matchCmd.Flags().StringVar(&matchJobText, "job-text", "", "Job description as a literal string")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	jd, err := readJobDescription(matchJobFile, matchJobText, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result, err := client.AnalyzeMatch(cmd.Context(), jd)
	if err != nil {
		return err
	}

	printSection(cmd.OutOrStdout(), "MATCH ANALYSIS", result)
	return nil
}
