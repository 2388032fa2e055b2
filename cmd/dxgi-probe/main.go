package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tensorworks/dxgi-probe/internal/probe"
)

var rootCmd = &cobra.Command{
	Use:   "dxgi-probe",
	Short: "Report the active display outputs of this machine",
	Long: `dxgi-probe enumerates every active display output attached to every graphics
adapter through DXGI and reports its device name, desktop resolution and
whether it is the primary display.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return probe.CommonMain(cmd.Flags(), cmd.OutOrStdout())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active display outputs (the default command)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return probe.CommonMain(cmd.Flags(), cmd.OutOrStdout())
	},
}

var primaryCmd = &cobra.Command{
	Use:   "primary",
	Short: "Report only the primary display output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cmd.Flags().Set("filter", "primary"); err != nil {
			return err
		}
		return probe.CommonMain(cmd.Flags(), cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dxgi-probe v%s\n", probe.Version)
	},
}

func init() {
	probe.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(primaryCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Errors have already been logged by the time they reach us
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
