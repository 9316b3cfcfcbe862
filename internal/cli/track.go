package cli

import (
	"github.com/spf13/cobra"

	"github.com/kmf229/op-net-rate/internal/app"
)

var (
	trackListCSV     string
	trackAddName     string
	trackAddType     string
	trackAddEntityID string
	trackAddDriver   string
	trackAddBaseline float64
	trackAddBaseDate string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Manage the tracked-items watch list",
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().TrackList(cmd.Context(), trackListCSV)
	},
}

var trackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entity/driver pair to tracking",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.TrackAddOptions{
			EntityName:    trackAddName,
			EntityType:    trackAddType,
			EntityID:      trackAddEntityID,
			Driver:        trackAddDriver,
			BaselineValue: trackAddBaseline,
			BaselineDate:  trackAddBaseDate,
		}
		return getApp().TrackAdd(cmd.Context(), opts)
	},
}

var trackRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a tracked item by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().TrackRemove(cmd.Context(), args[0])
	},
}

func init() {
	trackListCmd.Flags().StringVar(&trackListCSV, "csv", "", "Path to write the tracked-items CSV")

	trackAddCmd.Flags().StringVar(&trackAddName, "name", "", "Entity display name")
	trackAddCmd.Flags().StringVar(&trackAddType, "type", "region", "Entity type (region, market, clinic, therapist)")
	trackAddCmd.Flags().StringVar(&trackAddEntityID, "entity-id", "", "Entity identifier")
	trackAddCmd.Flags().StringVar(&trackAddDriver, "driver", "", "Canonical driver key")
	trackAddCmd.Flags().Float64Var(&trackAddBaseline, "baseline", 0, "Baseline driver value")
	trackAddCmd.Flags().StringVar(&trackAddBaseDate, "baseline-date", "", "Baseline date (YYYY-MM-DD)")

	trackCmd.AddCommand(trackListCmd)
	trackCmd.AddCommand(trackAddCmd)
	trackCmd.AddCommand(trackRemoveCmd)
}
