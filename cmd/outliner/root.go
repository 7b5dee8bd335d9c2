package main

import (
	"github.com/spf13/cobra"

	"github.com/docforge/outliner/internal/api"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "outliner",
	Short: "Heuristic document outline extraction",
	Long: `Outliner turns page-based documents into hierarchical outlines:
a document title plus nested H1-H3 headings with their body content.

The pipeline includes:
  - Native text extraction with per-page OCR fallback for scans
  - Repeating header/footer and table/form noise filtering
  - Numbered and styled heading recognition
  - Trained-model fallback for ambiguous blocks
  - Heading hierarchy repair and content association`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.outliner/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "outliner home directory (default: ~/.outliner)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(processCmd)
}
