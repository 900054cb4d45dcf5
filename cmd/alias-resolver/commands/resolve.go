package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"alias-resolver/internal/interfaces"
	"alias-resolver/internal/shared"
)

// NewResolveCommand creates the command that runs a library pass
func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve names for every enabled entity kind and write them to the library.",
		Args:  cobra.NoArgs,
		RunE:  runResolveCommand,
	}

	cmd.Flags().Bool("force", false, "Re-evaluate every entity, ignoring stored state")
	cmd.Flags().Bool("automated", false, "Mark the pass as scheduled; it only runs when Automatic is enabled")
	cmd.Flags().Bool("dry-run", false, "Evaluate without writing any file")

	return cmd
}

func runResolveCommand(cmd *cobra.Command, args []string) error {
	cfg, serviceContainer, err := initConfigAndServices()
	if err != nil {
		shared.ColorError.Printf("❌ %v\n", err)
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	automated, _ := cmd.Flags().GetBool("automated")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if automated && !cfg.Automatic {
		serviceContainer.Logger.Info("Automatic passes are disabled, nothing to do")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serviceContainer.Logger.Info("🎵 Resolving names in %s", cfg.LibraryPath)
	stats, err := serviceContainer.Refresh.Run(ctx, cfg, interfaces.RefreshOptions{
		Force:     force,
		Automated: automated,
		DryRun:    dryRun,
	})

	// Show summaries even when the pass stopped early
	if stats != nil {
		printRunSummary(serviceContainer.Logger, stats, dryRun)
	}
	if cfg.WarningBehavior == "summary" {
		serviceContainer.WarningCollector.PrintSummary()
	}

	if err != nil {
		switch {
		case errors.Is(err, shared.ErrLibraryLocked):
			serviceContainer.Logger.Error("Another pass is already running on %s", cfg.LibraryPath)
		case errors.Is(err, context.Canceled):
			serviceContainer.Logger.Warning("Pass cancelled")
		default:
			serviceContainer.Logger.Error("Pass failed: %v", err)
		}
		return err
	}

	serviceContainer.Logger.Success("Pass completed!")
	return nil
}

func printRunSummary(logger interfaces.LoggerService, stats *shared.RunStats, dryRun bool) {
	logger.Info("\n📊 Summary:")
	logger.Info("  Evaluated: %d", stats.Evaluated)
	logger.Info("  Updated:   %d", stats.Updated)
	logger.Info("  Restored:  %d", stats.Restored)
	logger.Info("  Unchanged: %d", stats.Unchanged)
	if stats.Synced > 0 {
		logger.Info("  Files synced to parent names: %d", stats.Synced)
	}
	if !dryRun {
		logger.Info("  Files written: %d", stats.FilesWritten)
	}
	if stats.FailedCount > 0 {
		logger.Warning("Failed: %d", stats.FailedCount)
		for _, item := range stats.FailedItems {
			logger.Warning("  - %s", item)
		}
	}
}
