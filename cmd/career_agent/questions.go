package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate practice interview questions for a company",
	Long:  "Generate practice interview questions tailored to a company and role. The role is optional; the service assumes a software engineering position when it is omitted.",
	RunE:  runQuestions,
}

var (
	questionsCompany string
	questionsRole    string
)

func init() {
	questionsCmd.Flags().StringVarP(&questionsCompany, "company", "c", "", "Company to interview with (required)")
	questionsCmd.Flags().StringVarP(&questionsRole, "role", "r", "", "Role being interviewed for")

	if err := questionsCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}

	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	result, err := client.InterviewQuestions(cmd.Context(), questionsCompany, questionsRole)
	if err != nil {
		return err
	}

	printSection(cmd.OutOrStdout(), "INTERVIEW QUESTIONS", result)
	return nil
}
