package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"insurecost/internal/client"
	"insurecost/internal/logx"
	"insurecost/pkg/types"
)

type predictFlags struct {
	url      string
	age      int
	sex      string
	bmi      float64
	children int
	smoker   string
	attempts int
	delay    time.Duration
	timeout  time.Duration
	asJSON   bool
	lang     string
}

func newPredictCmd(g *globalFlags) *cobra.Command {
	f := &predictFlags{}
	cmd := &cobra.Command{
		Use:     "predict",
		Short:   "Request a charge estimate from a running service",
		Example: "  insurecost predict --age 30 --sex male --bmi 25 --children 1 --smoker no",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, f, g)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.url, "url", "http://127.0.0.1:8000", "Base URL of the prediction service")
	fl.IntVar(&f.age, "age", 30, "Age in years (18-65)")
	fl.StringVar(&f.sex, "sex", string(types.SexMale), "Sex: male|female")
	fl.Float64Var(&f.bmi, "bmi", 25.0, "Body mass index (15.0-50.0)")
	fl.IntVar(&f.children, "children", 1, "Number of dependents (0-5)")
	fl.StringVar(&f.smoker, "smoker", string(types.SmokerNo), "Smoker: yes|no")
	fl.IntVar(&f.attempts, "attempts", client.DefaultAttempts, "Connection attempts before giving up")
	fl.DurationVar(&f.delay, "retry-delay", client.DefaultDelay, "Delay between connection attempts")
	fl.DurationVar(&f.timeout, "timeout", client.DefaultTimeout, "Per-request timeout")
	fl.BoolVar(&f.asJSON, "json", false, "Print the raw JSON result")
	fl.StringVar(&f.lang, "lang", "en", "Locale used to format the charge")
	return cmd
}

func runPredict(cmd *cobra.Command, f *predictFlags, g *globalFlags) error {
	tag, err := language.Parse(f.lang)
	if err != nil {
		return fmt.Errorf("invalid --lang: %w", err)
	}
	level := g.logLevel
	if level == "" {
		level = "warn"
	}
	logger, _, err := logx.New(logx.Options{Level: level, Format: g.logFormat, Out: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	c := client.New(f.url,
		client.WithHTTPClient(&http.Client{Timeout: f.timeout}),
		client.WithRetry(f.attempts, f.delay),
		client.WithLogger(logger),
		client.WithNotify(func(attempt int, _ error, wait time.Duration) {
			fmt.Fprintf(errOut, "Connection failed, retrying in %s... (Attempt %d)\n", wait, attempt)
		}),
	)
	rec := types.PolicyholderRecord{
		Age:      f.age,
		Sex:      types.Sex(f.sex),
		BMI:      f.bmi,
		Children: f.children,
		Smoker:   types.Smoker(f.smoker),
	}
	res, err := c.Predict(cmd.Context(), rec)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("prediction failed due to API error: %w", apiErr)
		}
		if errors.Is(err, client.ErrMalformedResponse) {
			return err
		}
		return fmt.Errorf("could not connect to the API after %d attempts: %w", f.attempts, err)
	}
	if f.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(res)
	}
	renderResult(cmd.OutOrStdout(), res, tag)
	return nil
}
