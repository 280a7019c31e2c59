package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/viant/fluxpath"
	"github.com/viant/fluxpath/progress"
	"github.com/viant/fluxpath/runtime/supervisor"
)

type watchFlags struct {
	carrierFlags
	until         string
	while         string
	interval      time.Duration
	maxIterations int
	metricsAddr   string
	progress      bool
}

func newWatchCmd(root *rootFlags) *cobra.Command {
	flags := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Repeat traversals while a predicate holds",
		Long:  "watch re-queues the carrier after every traversal. --until stops once the\nexpression is true, --while continues while it is true. Expressions see\npayload, context, id and traversals.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			predicate, err := flags.predicate()
			if err != nil {
				return err
			}
			var options []fluxpath.Option
			if flags.progress {
				tracker := progress.NewTracker(func(p progress.Progress) {
					fmt.Fprintf(cmd.ErrOrStderr(), "session %v: running %d, completed %d, failed %d, iterations %d\n",
						p.Session, p.Running, p.Completed, p.Failed, p.Iterations)
				})
				options = append(options, fluxpath.WithSupervisorOptions(supervisor.WithObserver(tracker)))
			}
			srv, err := newService(cmd, root, options...)
			if err != nil {
				return err
			}
			config := srv.Config()
			if flags.interval > 0 {
				config.Supervisor.PollIntervalMs = int(flags.interval / time.Millisecond)
			}
			if flags.maxIterations > 0 {
				config.Supervisor.MaxIterations = flags.maxIterations
			}
			if flags.metricsAddr != "" {
				if srv.Metrics() == nil {
					return fmt.Errorf("metrics are disabled, enable them in config")
				}
				listener, err := net.Listen("tcp", flags.metricsAddr)
				if err != nil {
					return fmt.Errorf("failed to serve metrics on %v: %w", flags.metricsAddr, err)
				}
				server := &http.Server{Handler: srv.Metrics().Handler()}
				defer server.Close()
				go func() {
					if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
						fmt.Fprintf(cmd.ErrOrStderr(), "metrics server failed: %v\n", err)
					}
				}()
			}
			payload, err := flags.decodePayload()
			if err != nil {
				return err
			}
			values, err := flags.decodeContext()
			if err != nil {
				return err
			}
			flow, err := srv.Load(cmd.Context(), flags.schema)
			if err != nil {
				return err
			}
			job, err := flow.Watch(cmd.Context(), flags.path, payload, values, predicate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "iterations: %d\n", job.Iterations())
			return printPayload(cmd.OutOrStdout(), job.Carrier.Payload)
		},
	}
	flags.register(cmd)
	f := cmd.Flags()
	f.StringVar(&flags.until, "until", "", "stop once this expression is true")
	f.StringVar(&flags.while, "while", "", "repeat while this expression is true")
	f.DurationVar(&flags.interval, "interval", 0, "pause between traversals")
	f.IntVar(&flags.maxIterations, "max-iterations", 0, "upper bound of traversals, 0 means unbounded")
	f.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	f.BoolVar(&flags.progress, "progress", false, "report session progress on stderr")
	return cmd
}

func (w *watchFlags) predicate() (supervisor.Predicate, error) {
	switch {
	case w.until != "" && w.while != "":
		return nil, errors.New("--until and --while are mutually exclusive")
	case w.until != "":
		return supervisor.UntilPredicate(w.until)
	case w.while != "":
		return supervisor.ExprPredicate(w.while)
	}
	return nil, errors.New("one of --until or --while is required")
}
