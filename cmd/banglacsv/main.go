package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/banglacsv/internal/cli"
	"codeberg.org/snonux/banglacsv/internal/models"
	"codeberg.org/snonux/banglacsv/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	// Ctrl-C cancels a running job; no partial output is written
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(ctx)
	}

	// Errors past this point are job errors, not usage errors
	cmd.SilenceUsage = true

	proc, err := processor.NewProcessor(ctx, flags)
	if err != nil {
		return err
	}
	defer proc.Close()

	if flags.Headless() {
		return proc.RunBatch(ctx)
	}

	// No job flags - launch GUI mode by default
	return proc.RunGUIMode()
}

