package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plantbuddy/plantbuddy/internal/plants"
	"github.com/plantbuddy/plantbuddy/internal/state"
)

func newWaterCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "water <plant-id>...",
		Short: "Mark plants as watered",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			env, err := a.setup()
			if err != nil {
				return err
			}
			defer env.Close()

			store := state.NewStore()
			for _, id := range ids.IDs() {
				store.Toggle(id)
			}
			res, err := store.MarkWatered(cmd.Context(), env.Client)
			if err != nil {
				return fmt.Errorf("mark watered: %w", err)
			}
			env.Logger.Info("marked watered", "ids", ids.IDs(), "updated", res.Updated)

			snap := store.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watered %d of %d plants.\n", res.Updated, ids.Len())
			switch snap.Load {
			case state.Ready:
				counts := snap.Counts()
				fmt.Fprintf(out, "Still due: %d, overdue: %d.\n", counts[plants.StatusDue], counts[plants.StatusOverdue])
			case state.Failed:
				env.Logger.Warn("reload after watering failed", "error", snap.Err)
				fmt.Fprintf(out, "Could not refresh: %s\n", snap.Err)
			}
			return nil
		},
	}
}

// parseIDs reads positive plant ids. Duplicates collapse into one.
func parseIDs(args []string) (state.Selection, error) {
	var ids state.Selection
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return state.Selection{}, fmt.Errorf("invalid plant id %q", arg)
		}
		if !ids.Has(id) {
			ids.Toggle(id)
		}
	}
	return ids, nil
}
