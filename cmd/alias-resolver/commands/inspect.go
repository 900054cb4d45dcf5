package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"alias-resolver/internal/alias"
	"alias-resolver/internal/library"
	"alias-resolver/internal/shared"
)

// NewInspectCommand creates the command that prints the state fields of a file
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the names and decoded state fields stored in one FLAC file.",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspectCommand,
	}
}

func runInspectCommand(cmd *cobra.Command, args []string) error {
	track, err := library.LoadTrack(args[0])
	if err != nil {
		shared.ColorError.Printf("❌ %v\n", err)
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"Kind", "Name", "Status", "Updated", "Stored name"}, inspectRows(track), nil))
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func inspectRows(track *library.Track) [][]string {
	names := map[library.Kind]string{
		library.KindArtist: track.Get(library.FieldAlbumArtist),
		library.KindAlbum:  track.Get(library.FieldAlbum),
		library.KindTrack:  track.Get(library.FieldTitle),
	}

	rows := make([][]string, 0, len(library.Kinds))
	for _, kind := range library.Kinds {
		state := alias.DecodeState(track.Get(kind.StateField()))
		updated := ""
		if !state.UpdatedAt.IsZero() {
			updated = state.UpdatedAt.Format(alias.StateTimeLayout)
		}
		rows = append(rows, []string{kind.String(), names[kind], state.Status.String(), updated, state.Name})
	}
	return rows
}
