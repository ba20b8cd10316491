package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xiaoyuanzhu-com/mybrain/db"
	"github.com/xiaoyuanzhu-com/mybrain/forget"
	"github.com/xiaoyuanzhu-com/mybrain/neuron"
)

func (a *app) consolidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consolidate [YYYY-MM-DD]",
		Short: "Classify a day's memory entries into neuron folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dateArg(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			a.banner(out, "🧠 Neural Memory Consolidator")

			var recorder neuron.Recorder
			if a.ledger != nil {
				recorder = a.ledger
			}
			res, err := neuron.NewConsolidator(a.cfg, recorder).Consolidate(cmd.Context(), date)
			if err != nil {
				return err
			}

			if res.Entries == 0 {
				fmt.Fprintf(out, "📭 %s: No memories to consolidate\n", date)
			} else {
				for _, cr := range res.Categories {
					fmt.Fprintf(out, "📝 %s: %d entries → %s\n", cr.Folder, cr.Entries, filepath.Base(cr.Path))
				}
				fmt.Fprintf(out, "✅ %s: Consolidated %d entries\n", date, res.Entries)
			}

			rule(out)
			return nil
		},
	}
}

func (a *app) forgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Summarize last month and archive files past the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a.banner(out, "🌙 Forgetting Curve")

			year, month := forget.PreviousMonth(now(), a.cfg.Location())
			path, err := forget.NewSummarizer(a.cfg).Monthly(year, month)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "📊 Monthly summary: %s\n", path)

			var recorder forget.Recorder
			if a.ledger != nil {
				recorder = a.ledger
			}
			actions, err := forget.NewArchiver(a.cfg, recorder).Archive(cmd.Context(), now())
			for _, act := range actions {
				if act.Kind == db.ArchiveActionMove && filepath.Dir(act.Source) == a.cfg.MemoryDir() {
					fmt.Fprintf(out, "📦 Archived: %s\n", filepath.Base(act.Source))
				}
			}
			if err != nil {
				return err
			}
			if len(actions) > 0 {
				fmt.Fprintf(out, "✅ Archived %d files\n", len(actions))
			} else {
				fmt.Fprintln(out, "📭 Nothing to archive")
			}

			rule(out)
			fmt.Fprintln(out, "✨ Done")
			return nil
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [YYYY-MM]",
		Short: "Write the monthly summary for one month (default: this month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month := now().In(a.cfg.Location()).Year(), now().In(a.cfg.Location()).Month()
			if len(args) == 1 {
				var err error
				if year, month, err = forget.ParseMonth(args[0]); err != nil {
					return err
				}
			}

			path, err := forget.NewSummarizer(a.cfg).Monthly(year, month)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📊 Monthly summary: %s\n", path)
			return nil
		},
	}
}
