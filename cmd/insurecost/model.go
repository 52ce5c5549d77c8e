package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"insurecost/internal/config"
	"insurecost/internal/gateway"
	"insurecost/internal/logx"
	"insurecost/pkg/types"
)

func newModelCheckCmd(g *globalFlags) *cobra.Command {
	var (
		modelPath string
		sample    bool
	)
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Load a model artifact and report whether it is usable",
		Example: "  insurecost model check --model-path models/insurance.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := g.logLevel
			if level == "" {
				level = "off"
			}
			logger, _, err := logx.New(logx.Options{Level: level, Format: g.logFormat, Out: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			gw := gateway.New(gateway.Config{ModelPath: modelPath, Logger: &logger})
			st := gw.Status()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "model: %s\nstate: %s\n", st.ModelPath, st.State)
			if !gw.Ready() {
				return fmt.Errorf("model unavailable: %v", gw.LoadError())
			}
			fmt.Fprintf(out, "schema: %s\nregressor: %s\n", st.Schema, st.Regressor)
			if sample {
				rec := types.PolicyholderRecord{Age: 30, Sex: types.SexMale, BMI: 25.0, Children: 1, Smoker: types.SmokerNo}
				res, err := gw.PredictAndClassify(rec)
				if err != nil {
					return fmt.Errorf("sample prediction: %w", err)
				}
				renderResult(out, res, language.English)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model-path", config.DefaultModelPath, "Model artifact path")
	cmd.Flags().BoolVar(&sample, "sample", false, "Also run a sample prediction")
	return cmd
}
