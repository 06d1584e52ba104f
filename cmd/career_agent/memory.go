package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhrumil1128/career-ai-agent/internal/observability"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Show what the service remembers for this session",
	RunE:  runMemory,
}

var clearMemoryCmd = &cobra.Command{
	Use:   "clear-memory",
	Short: "Wipe the server-side session memory",
	RunE:  runClearMemory,
}

var clearResumeCmd = &cobra.Command{
	Use:   "clear-resume",
	Short: "Remove the stored resume from session memory",
	RunE:  runClearResume,
}

func init() {
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(clearMemoryCmd)
	rootCmd.AddCommand(clearResumeCmd)
}

func runMemory(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	status, err := client.Memory(cmd.Context())
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintMemoryStatus(status)
	return nil
}

func runClearMemory(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	msg, err := client.ClearMemory(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func runClearResume(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	msg, err := client.ClearResume(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
