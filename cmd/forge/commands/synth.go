package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
)

func (c *CLI) newSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the environment descriptor and build stage script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, _ := cmd.Flags().GetString("target")
			toolchain, _ := cmd.Flags().GetString("toolchain")
			gpu, _ := cmd.Flags().GetBool("gpu")
			hierarchy, _ := cmd.Flags().GetBool("hierarchy")
			verify, _ := cmd.Flags().GetBool("verify")
			outputDir, _ := cmd.Flags().GetString("output")
			assetsDir, _ := cmd.Flags().GetString("assets")

			return c.app.Synth(cmd.Context(), app.SynthOptions{
				Target:    target,
				Toolchain: toolchain,
				GPU:       gpu,
				Hierarchy: hierarchy,
				Verify:    verify,
				OutputDir: outputDir,
				AssetsDir: assetsDir,
				Stdout:    cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringP("target", "t", "", "Target Slurm release (e.g. 25.11)")
	cmd.Flags().StringP("toolchain", "c", "", "GCC toolchain version (e.g. 13.4.0)")
	cmd.Flags().Bool("gpu", false, "Enable the NVIDIA GPU variant")
	cmd.Flags().Bool("hierarchy", false, "Generate a hierarchical Lmod module layout")
	cmd.Flags().Bool("verify", false, "Attach the post-install verification block")
	cmd.Flags().StringP("output", "o", "", "Directory to write artifacts into (default: stdout)")
	cmd.Flags().String("assets", "", "Asset tree to embed into the build instruction stream")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("toolchain")

	return cmd
}
