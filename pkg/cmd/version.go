package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/java-imports-group/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print detailed build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		return err
	},
}
