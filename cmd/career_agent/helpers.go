package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhrumil1128/career-ai-agent/internal/api"
	"github.com/dhrumil1128/career-ai-agent/internal/config"
	"github.com/dhrumil1128/career-ai-agent/internal/observability"
	"github.com/dhrumil1128/career-ai-agent/internal/render"
)

var (
	rootConfigPath string
	rootBaseURL    string
	rootTimeout    int
	rootSessionID  string
	rootExportDir  string
	rootVerbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&rootBaseURL, "base-url", "", "Career service address (defaults to CAREER_AGENT_BASE_URL or http://localhost:8000)")
	rootCmd.PersistentFlags().IntVar(&rootTimeout, "timeout", 0, "Per-request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&rootSessionID, "session-id", "", "Session identifier sent with every request")
	rootCmd.PersistentFlags().StringVar(&rootExportDir, "export-dir", "", "Directory transcript exports are written to")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

// buildConfig layers configuration sources: built-in defaults, then the
// config file, then environment variables, then explicitly set flags.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := *config.FromEnv()

	if rootConfigPath != "" {
		fileCfg, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.Default())

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = rootBaseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = rootTimeout
	}
	if cmd.Flags().Changed("session-id") {
		cfg.SessionID = rootSessionID
	}
	if cmd.Flags().Changed("export-dir") {
		cfg.ExportDir = rootExportDir
	}
	if rootVerbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	observability.SetVerbose(cfg.Verbose)
	return cfg, nil
}

func newClient(cfg config.Config) (*api.Client, error) {
	return api.New(cfg.BaseURL, &api.Options{
		Timeout:   cfg.Timeout(),
		SessionID: cfg.SessionID,
	})
}

// readJobDescription resolves the job description from a file, a literal
// flag value, or stdin, in that order.
func readJobDescription(jobFile, jobText string, stdin io.Reader) (string, error) {
	if jobFile != "" && jobText != "" {
		return "", fmt.Errorf("--job-file and --job-text are mutually exclusive; provide only one")
	}
	if jobFile != "" {
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description file %s: %w", jobFile, err)
		}
		return string(data), nil
	}
	if jobText != "" {
		return jobText, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read job description from stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("provide a job description via --job-file, --job-text, or stdin")
	}
	return string(data), nil
}

// printSection writes one titled block of rendered assistant output.
func printSection(out io.Writer, title, body string) {
	fmt.Fprintf(out, "\n%s\n%s\n%s\n", title, strings.Repeat("─", len(title)), render.TerminalMessage(body))
}
