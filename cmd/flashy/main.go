package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/flashy/internal/cli"
	"codeberg.org/snonux/flashy/internal/models"
	"codeberg.org/snonux/flashy/internal/processor"
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

	// Ctrl-C cancels a running import
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	// Execute command
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	cli.ApplyConfig(flags)

	logger, err := cli.NewLogger(flags.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	proc := processor.NewProcessor(flags, logger)

	switch {
	case flags.Archive:
		return proc.Archive()

	case flags.Reset:
		return proc.ResetProgress()

	case flags.Stats:
		return proc.PrintStats()

	case flags.ListModels:
		lister := models.NewLister(cli.GetOpenAIKey(), cli.GetGeminiKey())
		return lister.ListAvailableModels(cmd.Context(), os.Stdout)

	case flags.ImportFile != "":
		_, err := proc.ImportBatch(cmd.Context())
		return err

	case flags.AnkiFile != "":
		_, err := proc.ExportAnki(cmd.Context())
		return err

	case flags.TUIMode:
		return proc.RunTUIMode()

	default:
		// No mode flag - launch GUI mode by default
		return proc.RunGUIMode()
	}
}
