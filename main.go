package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xiaoyuanzhu-com/mybrain/config"
	"github.com/xiaoyuanzhu-com/mybrain/db"
	"github.com/xiaoyuanzhu-com/mybrain/digest"
	"github.com/xiaoyuanzhu-com/mybrain/log"
)

const ruleWidth = 50

// now is replaced in tests.
var now = time.Now

// app carries the per-invocation state shared by all commands.
type app struct {
	cfg    *config.Config
	ledger *db.DB
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mybrain [YYYY-MM-DD]",
		Short: "Digest agent session logs into daily memory files",
		Long: `mybrain turns raw agent session logs into one markdown digest per day.

Without a date it digests yesterday in the configured timezone.

Other commands:
  mybrain consolidate [YYYY-MM-DD]   file daily memories into neuron folders
  mybrain forget                     monthly summary + archive old files
  mybrain summary [YYYY-MM]          write one monthly summary`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDigest(cmd, args)
		},
	}

	root.AddCommand(
		a.consolidateCmd(),
		a.forgetCmd(),
		a.summaryCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	log.Configure(cfg.Env, cfg.LogLevel)

	if cfg.DatabasePath == "" {
		return nil
	}
	ledger, err := db.Open(cfg.DatabasePath)
	if err != nil {
		// The ledger only observes runs; carry on without it.
		log.Warn().Err(err).Str("path", cfg.DatabasePath).Msg("run ledger unavailable")
		return nil
	}
	a.ledger = ledger
	return nil
}

func (a *app) close() {
	if a.ledger != nil {
		if err := a.ledger.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close run ledger")
		}
		a.ledger = nil
	}
}

// dateArg returns the date argument, or yesterday in local time.
func (a *app) dateArg(args []string) (string, error) {
	loc := a.cfg.Location()
	if len(args) == 0 {
		return config.Yesterday(now(), loc), nil
	}
	if _, err := config.ParseDate(args[0], loc); err != nil {
		return "", err
	}
	return args[0], nil
}

func (a *app) banner(w io.Writer, title string) {
	fmt.Fprintf(w, "%s — %s\n", title, now().In(a.cfg.Location()).Format("2006-01-02 15:04"))
	rule(w)
}

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

func (a *app) runDigest(cmd *cobra.Command, args []string) error {
	date, err := a.dateArg(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a.banner(out, "📖 Session Digest")

	var recorder digest.Recorder
	if a.ledger != nil {
		recorder = a.ledger
	}
	res, err := digest.NewPipeline(a.cfg, recorder).Run(cmd.Context(), date)
	if err != nil {
		return err
	}
	if res.Written {
		fmt.Fprintf(out, "✅ %s: Digested %d sessions → %s\n", date, res.Stats.Sessions, res.Path)
	} else {
		fmt.Fprintf(out, "📭 %s: No sessions to digest\n", date)
	}

	rule(out)
	return nil
}
