// Package main implements taskrank, a command-line client that ranks tasks
// from a YAML or JSON file with the same engine as the HTTP server.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	filePath     string
	outputFormat string
	configPath   string
	strategyName string

	weightUrgency      float64
	weightImportance   float64
	weightEffort       float64
	weightDependencies float64

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "taskrank",
		Short: "Rank tasks by priority and detect circular dependencies.",
		Long: `taskrank scores the tasks in a YAML or JSON file with a choice of strategies
and refuses to rank task sets whose dependencies form a cycle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Rank every task in the file.",
		Long: `Scores every task with the chosen strategy and prints them highest priority first.

Example:
  taskrank analyze --file tasks.yaml --strategy deadline`,
		RunE: runAnalyzeCommand,
	}

	suggestCmd = &cobra.Command{
		Use:   "suggest",
		Short: "Show the top tasks to work on next.",
		Long:  `Ranks tasks with the smart balance strategy and prints the top few.`,
		RunE:  runSuggestCommand,
	}

	explainCmd = &cobra.Command{
		Use:   "explain",
		Short: "Rank tasks and show the sub-scores behind each score.",
		RunE:  runExplainCommand,
	}

	cyclesCmd = &cobra.Command{
		Use:   "cycles",
		Short: "Check the file for circular dependencies.",
		Long:  `Reports one dependency cycle if the tasks contain any. Exits non-zero when a cycle is found.`,
		RunE:  runCyclesCommand,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "tasks.yaml", "Path to the YAML or JSON task file.")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json or yaml.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional config file with scoring defaults.")

	for _, cmd := range []*cobra.Command{analyzeCmd, explainCmd} {
		cmd.Flags().StringVar(&strategyName, "strategy", "", "Scoring strategy: fastest, impact, deadline or smart_balance.")
		cmd.Flags().Float64Var(&weightUrgency, "weight-urgency", 0, "Smart balance urgency weight.")
		cmd.Flags().Float64Var(&weightImportance, "weight-importance", 0, "Smart balance importance weight.")
		cmd.Flags().Float64Var(&weightEffort, "weight-effort", 0, "Smart balance effort weight.")
		cmd.Flags().Float64Var(&weightDependencies, "weight-dependencies", 0, "Smart balance dependencies weight.")
	}

	rootCmd.AddCommand(analyzeCmd, suggestCmd, explainCmd, cyclesCmd)
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	Execute()
}
