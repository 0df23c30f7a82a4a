package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/podbrief/summary-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "summary-api",
	Short: "PodBrief Summary API server",
	Long: `PodBrief Summary API - spoken summaries of podcast episodes

Submitted episodes are transcribed, condensed into a script sized for a
target listening time, rendered to speech and uploaded to blob storage.
Requests run as asynchronous jobs that clients poll for progress.

Features:
  • Episode metadata lookup from Spotify links
  • Parallel transcription with provider fallback
  • Spoiler cutoffs via per-episode timestamps
  • Monthly budget tracking with hard spend ceilings`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	// A local .env is optional; environment variables win either way
	_ = godotenv.Load()

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
