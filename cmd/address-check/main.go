// Command address-check runs a YAML list of addresses through the validation
// pipeline one at a time and reports which expectations failed. Provider calls
// are spaced by --delay to stay inside the Nominatim usage policy.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intake_backend/internal/address"
	"intake_backend/internal/geocode"
	"intake_backend/platform/config"
	"intake_backend/platform/logger"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const defaultDelay = 1200 * time.Millisecond

type options struct {
	file    string
	delay   time.Duration
	offline bool
	asJSON  bool
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:          "address-check",
		Short:        "Validate a fixture list of addresses sequentially",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML fixture file (required)")
	cmd.Flags().DurationVar(&opts.delay, "delay", defaultDelay, "minimum spacing between provider calls")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip the provider and use only the pattern parser")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print full results as JSON lines")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log provider traffic")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Discard()
	if opts.verbose {
		log = logger.New(cfg.Env)
	}

	cases, err := loadFixtures(opts.file)
	if err != nil {
		return err
	}

	var geocoder geocode.Geocoder
	if !opts.offline {
		geocoder = geocode.NewClient(cfg, log, nil)
	}
	svc := address.NewService(geocoder, cfg, log, nil)

	limiter := rate.NewLimiter(rate.Every(opts.delay), 1)
	return check(ctx, out, svc, cases, limiter, !opts.offline, opts.asJSON)
}

// check validates each case in order. When throttle is set every call waits
// on limiter first, so consecutive provider requests are at least one
// interval apart.
func check(ctx context.Context, out io.Writer, svc *address.Service, cases []fixtureCase, limiter *rate.Limiter, throttle, asJSON bool) error {
	failed := 0
	for _, tc := range cases {
		if throttle {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}

		result := svc.Validate(ctx, tc.Address)
		problems := tc.Expect.mismatches(result)
		if len(problems) > 0 {
			failed++
		}

		if asJSON {
			line, err := json.Marshal(struct {
				Address  string                   `json:"address"`
				Pass     bool                     `json:"pass"`
				Problems []string                 `json:"problems,omitempty"`
				Result   address.ValidationResult `json:"result"`
			}{tc.Address, len(problems) == 0, problems, result})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(line))
			continue
		}

		status := "PASS"
		if len(problems) > 0 {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%s  %-45q %s/%s %s\n", status, tc.Address, result.Source, result.Confidence, result.Formatted)
		for _, problem := range problems {
			fmt.Fprintf(out, "      %s\n", problem)
		}
	}

	fmt.Fprintf(out, "%d checked, %d failed\n", len(cases), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d addresses failed", failed, len(cases))
	}
	return nil
}
