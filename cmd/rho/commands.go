package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fine-structures/rho/rho"
	"github.com/fine-structures/rho/floyd"
	"github.com/fine-structures/rho/pyrho"
	"github.com/fine-structures/rho/session"
	"github.com/fine-structures/rho/tui"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

// newRootCmd builds the rho command tree; klogFlags are exposed as global flags (-v, --logtostderr, ...).
func newRootCmd(klogFlags *flag.FlagSet) *cobra.Command {
	cfg := DefaultConfig()
	var configPath string

	root := &cobra.Command{
		Use:   "rho",
		Short: "Floyd's tortoise & hare over a functional graph",
		Long: `rho builds a functional graph (every node has exactly one successor), finds the cycle reached
from node 0 with Floyd's tortoise & hare, and animates both walkers in the terminal.

A graph is given as a node count (random successors), as a file whose first line holds the
successors, or inline with --seq.

Examples:
  rho run 12 --seed 7
  rho detect --seq "1,2,3,4,2"
  rho survey --nodes 8 --count 10000
  rho script learn/01-detect.py`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return nil
			}
			return cfg.overlayFile(configPath, cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML file of settings (flags given on the command line take precedence)")
	cfg.bindFlags(flags)
	if klogFlags != nil {
		flags.AddGoFlagSet(klogFlags)
	}

	root.AddCommand(
		newRunCmd(&cfg),
		newDetectCmd(&cfg),
		newSurveyCmd(&cfg),
		newScriptCmd(),
	)
	return root
}

func newSession(cfg *Config, args []string) (*session.Session, *rand.Rand, error) {
	opts, err := cfg.SessionOptions(args)
	if err != nil {
		return nil, nil, err
	}
	rng, seed := cfg.Rand()
	if !opts.Source.IsSequence() {
		klog.Infof("drawing %d nodes (%v) with seed %d", opts.Source.Count, opts.Mode, seed)
	}
	sess, err := session.New(opts, rng)
	if err != nil {
		return nil, nil, err
	}
	return sess, rng, nil
}

func newRunCmd(cfg *Config) *cobra.Command {
	var pairs int

	cmd := &cobra.Command{
		Use:   "run [N|FILE]",
		Short: "Animate the tortoise and the hare (space starts each pair cycle)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, rng, err := newSession(cfg, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sess.WriteDebug(out, rho.DefaultPrintOpts)
			if pairs > 0 {
				return runHeadless(sess, pairs, out)
			}

			final, err := tea.NewProgram(tui.NewModel(sess, rng, cfg.TUIConfig()), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(tui.Model); ok && m.Err() != nil {
				klog.Errorf("animation failed: %v", m.Err())
				return m.Err()
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pairs, "pairs", 0, "run this many pair cycles without the terminal UI and print where the walkers rest")
	return cmd
}

// runHeadless plays the given number of pair cycles and prints where the walkers rest after each.
func runHeadless(sess *session.Session, pairs int, out io.Writer) error {
	for pair := 0; pair < pairs; pair++ {
		sess.Begin()
		for sess.Running() {
			rpt, err := sess.Tick()
			if err != nil {
				klog.Errorf("pair cycle %d: %v", pair+1, err)
				return err
			}
			if !rpt.PairStopped {
				continue
			}
			snap := sess.Snapshot()
			fmt.Fprintf(out, "pair %d: hare %d, tortoise %d", rpt.PairCycles, snap.Hare().Current, snap.Tortoise().Current)
			if rpt.Met {
				fmt.Fprintf(out, ", met at %d", rpt.MeetNode)
			}
			io.WriteString(out, "\n")
		}
	}
	return nil
}

func newDetectCmd(cfg *Config) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "detect [N|FILE]",
		Short: "Print the graph and the cycle reached from node 0",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := newSession(cfg, args)
			if err != nil {
				return err
			}
			res := sess.Result()
			if verify {
				if res, err = floyd.Verify(sess.Graph()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			sess.WriteDebug(out, rho.DefaultPrintOpts)
			fmt.Fprintf(out, "entry=%d,tail=%d,cycle=%d,meet=%d\n", res.Entry, res.TailLen, res.CycleLen, res.Meet)
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check the result against a plain walk")
	return cmd
}

func newSurveyCmd(cfg *Config) *cobra.Command {
	opts := floyd.SurveyOpts{
		Count: 1000,
	}

	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Tally tail and cycle lengths over many random graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := cfg.GenMode()
			if err != nil {
				return err
			}
			opts.Nodes = cfg.Nodes
			opts.Mode = mode

			rng, seed := cfg.Rand()
			klog.V(1).Infof("survey seed %d", seed)
			rpt, err := floyd.Survey(opts, rng)
			if err != nil {
				return err
			}
			_, err = rpt.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().IntVar(&opts.Count, "count", opts.Count, "number of graphs to draw")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "cross-check every result against a plain walk")
	return cmd
}

func newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script FILE.py",
		Short: "Run a Python script with the rho module available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pyrho.RunFile(args[0], nil); err != nil {
				return errors.Wrap(err, "script failed")
			}
			return nil
		},
	}
}
