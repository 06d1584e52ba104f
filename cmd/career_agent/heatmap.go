package main

import (
	"github.com/spf13/cobra"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show section-by-section resume relevance for a job",
	RunE:  runHeatmap,
}

var (
	heatmapJobFile string
	heatmapJobText string
)

func init() {
	heatmapCmd.Flags().StringVarP(&heatmapJobFile, "job-file", "j", "", "Path to a file containing the job description")
	heatmapCmd.Flags().StringVar(&heatmapJobText, "job-text", "", "Job description as a literal string")

	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	jd, err := readJobDescription(heatmapJobFile, heatmapJobText, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result, err := client.Heatmap(cmd.Context(), jd)
	if err != nil {
		return err
	}

	printSection(cmd.OutOrStdout(), "RESUME HEATMAP", result)
	return nil
}
