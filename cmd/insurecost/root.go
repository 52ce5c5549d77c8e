package main

import (
	"io"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "insurecost",
		Short:         "Medical insurance charge prediction service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults INSURECOST_LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format: console|json")

	modelCmd := &cobra.Command{Use: "model", Short: "Model artifact utilities", RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}}
	modelCmd.AddCommand(newModelCheckCmd(g))

	root.AddCommand(newServeCmd(g), newPredictCmd(g), modelCmd)
	return root
}
