package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run match, gap, and heatmap analyses in one shot",
	Long:  "Run the match score, skill gap, and heatmap analyses against the same job description concurrently and print all three reports.",
	RunE:  runAnalyze,
}

var (
	analyzeJobFile string
	analyzeJobText string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job-file", "j", "", "Path to a file containing the job description")
	analyzeCmd.Flags().StringVar(&analyzeJobText, "job-text", "", "Job description as a literal string")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	jd, err := readJobDescription(analyzeJobFile, analyzeJobText, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var match, gaps, heatmap string
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		match, err = client.AnalyzeMatch(ctx, jd)
		return err
	})
	g.Go(func() error {
		var err error
		gaps, err = client.SkillGaps(ctx, jd)
		return err
	})
	g.Go(func() error {
		var err error
		heatmap, err = client.Heatmap(ctx, jd)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSection(out, "MATCH ANALYSIS", match)
	printSection(out, "SKILL GAPS", gaps)
	printSection(out, "RESUME HEATMAP", heatmap)
	return nil
}
