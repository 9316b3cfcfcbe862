package cli

import (
	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions available for filtering",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Regions(cmd.Context())
	},
}
