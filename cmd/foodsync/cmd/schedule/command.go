// Package schedule provides the schedule command.
package schedule

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/foodsync/internal/appcontext"
	"github.com/agentstation/foodsync/internal/scheduler"
	"github.com/agentstation/foodsync/pkg/constants"
)

// NewCommand creates the schedule command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		spec string
		now  bool
	)

	cmd := &cobra.Command{
		Use:     "schedule [supplier...]",
		GroupID: "core",
		Short:   "Run suppliers repeatedly on a cron schedule",
		Long: `Schedule runs the given suppliers, or all configured suppliers, on a
standard five-field cron schedule until interrupted. Suppliers are run one
after another; a run that is due while the previous one is still going is
skipped. Each supplier needs its input file in the config file.`,
		Example: `  foodsync schedule --cron "0 3 * * *"
  foodsync schedule Bio Mühle --now`,
		RunE: func(cmd *cobra.Command, args []string) error {
			suppliers := args
			if len(suppliers) == 0 {
				suppliers = app.Suppliers()
			}
			if len(suppliers) == 0 {
				return fmt.Errorf("no suppliers given and none configured")
			}
			if !cmd.Flags().Changed("cron") {
				spec = app.Schedule()
			}

			s, err := scheduler.New(spec, Job(app, suppliers), scheduler.WithLogger(app.Logger()))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Scheduled %d supplier(s) on %q, next run %s\n",
				len(suppliers), s.Spec(), s.Next(time.Now()).Format(constants.TimeFormatHuman))
			return Serve(cmd.Context(), s, now)
		},
	}

	cmd.Flags().StringVar(&spec, "cron", constants.DefaultSchedule, "cron expression (minute hour day month weekday)")
	cmd.Flags().BoolVar(&now, "now", false, "run once immediately after starting")

	return cmd
}

// Job returns a job that runs the suppliers one after another. A failing
// supplier does not stop the others.
func Job(app appcontext.Interface, suppliers []string) scheduler.Job {
	return func(ctx context.Context) error {
		var errs []error
		for _, supplier := range suppliers {
			if ctx.Err() != nil {
				errs = append(errs, ctx.Err())
				break
			}
			result, err := app.Runner().Run(ctx, app.RunOptions(supplier))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", supplier, err))
				continue
			}
			app.Logger().Info().
				Str("supplier", supplier).
				Str("file", result.ExportFile).
				Msg(result.Summary())
		}
		return stderrors.Join(errs...)
	}
}

// Serve starts s and blocks until ctx ends.
func Serve(ctx context.Context, s *scheduler.Scheduler, now bool) error {
	s.Start()
	if now {
		go s.RunNow()
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return s.Stop(stopCtx)
}
