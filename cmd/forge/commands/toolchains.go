package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newToolchainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toolchains",
		Short: "List supported compiler toolchains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Toolchains(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
