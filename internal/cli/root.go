package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pet-wellness-timeline/internal/config"
	"pet-wellness-timeline/internal/domain/timeline"
	"pet-wellness-timeline/internal/platform/logger"

	"github.com/spf13/cobra"
)

type options struct {
	file     string
	timezone string
	now      string
	output   string
	logLevel string

	full  bool
	limit int
	watch bool
}

// NewRootCmd arma el árbol de comandos de wellnessctl.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "wellnessctl",
		Short: "Render a pet wellness timeline from a JSON snapshot",
		Long: `wellnessctl builds the same timeline the API serves, from a local snapshot file.

Examples:
  wellnessctl timeline --file milo.json                  # Days with up to 12 events
  wellnessctl timeline --file milo.json --full           # Every event
  wellnessctl timeline --file milo.json --output json    # Same payload as GET /pets/{id}/timeline
  wellnessctl alerts --file milo.json --watch            # Re-render on every save
  wellnessctl timeline --file milo.json --now 2026-10-19T10:00:00Z --timezone UTC`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.file, "file", "f", "", "Snapshot JSON file (required)")
	pf.StringVar(&o.timezone, "timezone", "Local", "Timezone that defines calendar days (e.g., America/Argentina/Buenos_Aires, UTC)")
	pf.StringVar(&o.now, "now", "", "Reference time in RFC3339 (default: current time)")
	pf.StringVarP(&o.output, "output", "o", OutputTable, "Output format (table, json)")
	pf.StringVar(&o.logLevel, "log-level", "warn", "Log level for diagnostics on stderr (debug, info, warn, error)")
	pf.BoolVarP(&o.watch, "watch", "w", false, "Re-render whenever the snapshot file changes")

	tl := &cobra.Command{
		Use:   "timeline",
		Short: "Show the timeline grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o, func(w io.Writer, res timeline.Result) error {
				return renderTimeline(w, o.output, o.full, res)
			})
		},
	}
	tl.Flags().BoolVar(&o.full, "full", false, "Show every event instead of the limited view")
	tl.Flags().IntVar(&o.limit, "limit", timeline.DefaultDisplayLimit, "Maximum events in the limited view")

	alerts := &cobra.Command{
		Use:   "alerts",
		Short: "Show overdue items sorted by priority",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o, func(w io.Writer, res timeline.Result) error {
				return renderAlerts(w, o.output, res.Alerts)
			})
		},
	}

	root.AddCommand(tl, alerts)
	return root
}

// Execute corre wellnessctl con el contexto dado (cancelado por señal en main).
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

type renderFunc func(w io.Writer, res timeline.Result) error

func run(cmd *cobra.Command, o *options, render renderFunc) error {
	if err := o.validate(); err != nil {
		return err
	}

	loc, err := resolveLocation(o.timezone)
	if err != nil {
		return err
	}
	clock, err := resolveClock(o.now)
	if err != nil {
		return err
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), logger.Options{Level: logger.ParseLevel(o.logLevel)}).
		With(map[string]any{"component": "cli"})
	out := cmd.OutOrStdout()

	once := func() error {
		src, err := LoadSnapshot(o.file)
		if err != nil {
			return err
		}
		res := timeline.Build(src, timeline.Options{Now: clock().In(loc), ShowFull: o.full, Limit: o.limit})
		for _, is := range res.Issues {
			log.Warn("record skipped", map[string]any{"kind": string(is.Kind), "record_id": is.RecordID, "error": is.Err})
		}
		return render(out, res)
	}

	if !o.watch {
		return once()
	}

	tty := isTerminal(out)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return watchFile(ctx, o.file, log, func() error {
		if tty {
			fmt.Fprint(out, clearScreen)
		}
		return once()
	})
}

func (o *options) validate() error {
	if strings.TrimSpace(o.file) == "" {
		return ErrNoSnapshot
	}
	switch o.output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("unsupported output %q (table, json)", o.output)
	}
	if o.limit < 0 {
		return fmt.Errorf("limit must be >= 0")
	}
	return nil
}

func resolveLocation(tz string) (*time.Location, error) {
	loc, err := config.Config{Timezone: tz}.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// resolveClock fija el reloj si --now viene seteado; si no, usa time.Now.
func resolveClock(now string) (func() time.Time, error) {
	now = strings.TrimSpace(now)
	if now == "" {
		return time.Now, nil
	}
	t, err := time.Parse(time.RFC3339, now)
	if err != nil {
		return nil, fmt.Errorf("invalid --now %q: %w", now, err)
	}
	return func() time.Time { return t }, nil
}
