package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/plantbuddy/plantbuddy/internal/plants"
	"github.com/plantbuddy/plantbuddy/internal/state"
)

func newTodayCmd(a *App) *cobra.Command {
	var (
		filterName string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's plants and their watering status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := state.ParseFilter(filterName)
			if err != nil {
				return err
			}
			env, err := a.setup()
			if err != nil {
				return err
			}
			defer env.Close()

			store := state.NewStore()
			store.SetFilter(filter)
			if err := store.Reload(cmd.Context(), env.Client); err != nil {
				return fmt.Errorf("load plants: %w", err)
			}
			visible := store.Snapshot().Visible()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plants.TodayResponse{Items: visible})
			}
			if len(visible) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Nothing to water.")
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTable(visible))
			return err
		},
	}
	cmd.Flags().StringVarP(&filterName, "filter", "f", "all", "Which plants to show (all|due|overdue)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

var statusColors = map[plants.Status]lipgloss.Color{
	plants.StatusOK:      lipgloss.Color("#81b29a"),
	plants.StatusDue:     lipgloss.Color("#dbc074"),
	plants.StatusOverdue: lipgloss.Color("#c94f6d"),
	plants.StatusUnknown: lipgloss.Color("#738091"),
}

func renderTable(items []plants.Item) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.Name,
			string(item.Status),
			optionalDays(item.DueInDays),
			optionalDays(item.DaysSinceLastWatering),
			optionalDays(item.NormDays),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "STATUS", "DUE IN", "SINCE", "EVERY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 2 && row >= 0 && row < len(items) {
				return cell.Foreground(statusColors[items[row].Status])
			}
			return cell
		}).
		String()
}

func optionalDays(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v) + "d"
}
