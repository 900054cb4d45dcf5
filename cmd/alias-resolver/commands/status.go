package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"alias-resolver/internal/alias"
	"alias-resolver/internal/config"
	"alias-resolver/internal/core/provider"
	"alias-resolver/internal/library"
	"alias-resolver/internal/shared"
)

var statusHeaders = []string{"Kind", "Name", "Status", "Updated", "Stored name", "Pending"}

// NewStatusCommand creates the command that reports stored state
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored state of every entity and whether a pass would change it.",
		Args:  cobra.NoArgs,
		RunE:  runStatusCommand,
	}

	cmd.Flags().Bool("pending", false, "Only list entities a pass would change")
	return cmd
}

func runStatusCommand(cmd *cobra.Command, args []string) error {
	cfg, serviceContainer, err := initConfigAndServices()
	if err != nil {
		shared.ColorError.Printf("❌ %v\n", err)
		return err
	}
	pendingOnly, _ := cmd.Flags().GetBool("pending")

	lib, skipped, err := library.Scan(commandContext(cmd), cfg.LibraryPath)
	if err != nil {
		serviceContainer.Logger.Error("Failed to scan library: %v", err)
		return err
	}
	for _, skip := range skipped {
		serviceContainer.Logger.Warning("Skipped %s: %v", skip.Path, skip.Err)
	}

	rows, pending := statusRows(cfg, lib, pendingOnly)
	fmt.Fprint(cmd.OutOrStdout(), renderTable(statusHeaders, rows, nil))
	fmt.Fprintln(cmd.OutOrStdout())
	serviceContainer.Logger.Info("%d of %d entities pending", pending, countEntities(lib))
	return nil
}

// statusRows lists every entity in processing order and counts the pending ones
func statusRows(cfg *config.Config, lib *library.Library, pendingOnly bool) ([][]string, int) {
	var rows [][]string
	pending := 0
	for _, kind := range library.Kinds {
		for _, entity := range lib.Entities(kind) {
			changed := provider.HasChanged(cfg, entity)
			if changed {
				pending++
			}
			if pendingOnly && !changed {
				continue
			}
			rows = append(rows, statusRow(entity, changed))
		}
	}
	return rows, pending
}

func statusRow(entity library.Entity, changed bool) []string {
	state := alias.DecodeState(entity.State())
	updated := ""
	if !state.UpdatedAt.IsZero() {
		updated = state.UpdatedAt.Format(alias.StateTimeLayout)
	}
	pending := "no"
	if changed {
		pending = "yes"
	}
	return []string{
		entity.Kind().String(),
		shared.TruncateString(entity.Label(), 40),
		state.Status.String(),
		updated,
		shared.TruncateString(state.Name, 40),
		pending,
	}
}

func countEntities(lib *library.Library) int {
	return len(lib.Artists()) + len(lib.Albums()) + len(lib.Tracks())
}

// cmd.Context is nil when a command runs outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
