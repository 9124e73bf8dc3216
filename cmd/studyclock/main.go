package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"studyclock/internal/bootstrap"
	"studyclock/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dir          string
	studyMinutes float64
	breakMinutes float64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studyclock",
		Short:         "Study/break interval timer with session history",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.dir, "dir", ".", "directory holding the .studyclock data dir")
	root.PersistentFlags().Float64Var(&opts.studyMinutes, "study", 0, "study phase length in minutes (overrides config)")
	root.PersistentFlags().Float64Var(&opts.breakMinutes, "break", 0, "break phase length in minutes (overrides config)")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newHooksCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.dir)
	if err != nil {
		return config.Config{}, err
	}
	if opts.studyMinutes > 0 {
		cfg.StudyMinutes = opts.studyMinutes
	}
	if opts.breakMinutes > 0 {
		cfg.BreakMinutes = opts.breakMinutes
	}
	return cfg, cfg.Validate()
}

// loadApp wires the application. A nil logOut sends logs to the log file.
func loadApp(opts *rootOptions, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logOut)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runTUI(cmd *cobra.Command, opts *rootOptions) (err error) {
	app, err := loadApp(opts, nil)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, app.Close()) }()

	ctx, stop := signalContext(cmd.Context())
	defer stop()
	return bootstrap.RunTUI(ctx, app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Recorded study sessions"}

	history.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts, nil)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			records, err := app.SessionCLI.History(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d min\n", r.Index, r.Date, r.Time, r.Duration)
			}
			return nil
		},
	})

	var yesDelete bool
	deleteCmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the session at index (as printed by history list)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be an integer: %q", args[0])
			}
			if !yesDelete && !confirm(cmd, fmt.Sprintf("delete session %d?", index)) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			app, err := loadApp(opts, nil)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			if err := app.SessionCLI.Delete(cmd.Context(), index); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted session %d\n", index)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yesDelete, "yes", "y", false, "skip confirmation")

	var yesClear bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded session",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if !yesClear && !confirm(cmd, "delete all sessions?") {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			app, err := loadApp(opts, nil)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			if err := app.SessionCLI.Clear(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yesClear, "yes", "y", false, "skip confirmation")

	history.AddCommand(deleteCmd, clearCmd)
	return history
}

// confirm asks on the command's stdin; anything but y/yes declines.
func confirm(cmd *cobra.Command, prompt string) bool {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var date string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show minutes studied per date",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts, nil)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			summary, err := app.SessionCLI.Stats(cmd.Context(), date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s: %d min (%d sessions recorded)\n", summary.Date, summary.Total, summary.Sessions)
			for _, d := range summary.ByDate {
				_, _ = fmt.Fprintf(out, "%s\t%d\n", d.Date, d.Minutes)
			}
			return nil
		},
	}
	stats.Flags().StringVar(&date, "date", "", "date to total (YYYY-MM-DD, default today)")
	return stats
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write one markdown note per study date",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts, nil)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			out, err := app.SessionCLI.Export(cmd.Context())
			if err != nil {
				return err
			}
			if len(out.Paths) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions to export")
				return nil
			}
			for _, p := range out.Paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only history API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			if addr == "" {
				addr = app.Config.ServeAddr
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return bootstrap.Serve(ctx, app, addr)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return serve
}

func newHooksCmd(opts *rootOptions) *cobra.Command {
	hooks := &cobra.Command{Use: "hooks", Short: "Session hook plugins"}

	hooks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List hook manifests",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts, nil)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			list, err := app.HookCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks configured")
				return nil
			}
			for _, h := range list {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t events=%s binary=%s\n", h.Name, h.Version, h.Enabled, strings.Join(h.Events, ","), h.Binary)
			}
			return nil
		},
	})

	hooks.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate hook checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts, nil)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			results, err := app.HookCLI.Doctor(cmd.Context())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})
	return hooks
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration file"}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.yaml with current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.ConfigPath)
			}
			if err := config.Write(cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.ConfigPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.yaml")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(cfg.Settings)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", cfg.ConfigPath, raw)
			return nil
		},
	}

	cfgCmd.AddCommand(initCmd, showCmd)
	return cfgCmd
}
