package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"
	"golang.org/x/term"

	hookinadapter "studyclock/internal/modules/hook/adapter/in"
	hookoutadapter "studyclock/internal/modules/hook/adapter/out"
	hookservice "studyclock/internal/modules/hook/service"
	hookusecase "studyclock/internal/modules/hook/usecase"
	sessioninadapter "studyclock/internal/modules/session/adapter/in"
	sessionoutadapter "studyclock/internal/modules/session/adapter/out"
	sessionout "studyclock/internal/modules/session/port/out"
	sessionservice "studyclock/internal/modules/session/service"
	sessionusecase "studyclock/internal/modules/session/usecase"
	timerinadapter "studyclock/internal/modules/timer/adapter/in"
	timeroutadapter "studyclock/internal/modules/timer/adapter/out"
	timerdomain "studyclock/internal/modules/timer/domain"
	timerservice "studyclock/internal/modules/timer/service"
	timerusecase "studyclock/internal/modules/timer/usecase"
	"studyclock/internal/platform/clock"
	"studyclock/internal/platform/config"
	"studyclock/internal/platform/observability"
	"studyclock/internal/platform/schedule"
	uiapp "studyclock/internal/ui/app"
	"studyclock/internal/ui/headless"
)

// HookTimeout bounds a single delivery of a recorded session to the hooks.
const HookTimeout = 10 * time.Second

type App struct {
	Config      config.Config
	Log         hclog.Logger
	TimerTUI    timerinadapter.TUIHandler
	SessionCLI  sessioninadapter.CLIHandler
	SessionHTTP *sessioninadapter.HTTPHandler
	HookCLI     hookinadapter.CLIHandler

	notifier *sessionoutadapter.HookNotifier
	closers  []func() error
}

// New wires every module for cfg. Logs go to logOut when it is non-nil and
// to the configured log file otherwise.
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{Config: cfg}

	if logOut != nil {
		app.Log = observability.New(logOut, cfg.LogLevel)
	} else {
		log, closeLog, err := observability.NewFile(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		app.Log = log
		app.closers = append(app.closers, closeLog)
	}

	clk := clock.SystemClock{}

	kv, err := openKV(cfg, clk)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if c, ok := kv.(io.Closer); ok {
		app.closers = append(app.closers, c.Close)
	}

	hookUC := hookusecase.NewInteractor(hookservice.NewHookService(
		hookoutadapter.NewFileManifestStore(cfg.HooksDir),
		hookoutadapter.NewGRPCHost(app.Log.Named("hooks")),
		app.Log.Named("hooks"),
	))
	app.notifier = sessionoutadapter.NewHookNotifier(hookUC, HookTimeout, app.Log.Named("hooks"))

	sessionLog := app.Log.Named("session")
	store := sessionservice.NewHistoryStore(kv, sessionLog)
	sessionUC := sessionusecase.NewInteractor(
		clk,
		store,
		sessionservice.NewRecorder(clk, store, sessionLog),
		sessionoutadapter.NewMarkdownExporter(cfg.NotesDir),
		app.notifier,
		sessionLog,
	)

	timer, err := timerservice.NewPhaseTimer(
		timerdomain.Durations{StudyMinutes: cfg.StudyMinutes, BreakMinutes: cfg.BreakMinutes},
		schedule.Real{},
		clk,
		timeroutadapter.NewSessionRecorderAdapter(sessionUC),
		app.Log.Named("timer"),
	)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new phase timer: %w", err)
	}

	app.TimerTUI = timerinadapter.NewTUIHandler(timerusecase.NewInteractor(timer))
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.SessionHTTP = sessioninadapter.NewHTTPHandler(sessionUC, app.Log.Named("http"))
	app.HookCLI = hookinadapter.NewCLIHandler(hookUC)
	return app, nil
}

func openKV(cfg config.Config, clk clock.Clock) (sessionout.KeyValueStore, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		kv, err := sessionoutadapter.NewSQLiteKVStore(cfg.DBPath, clk)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return kv, nil
	default:
		return sessionoutadapter.NewFileKVStore(cfg.StoreDir), nil
	}
}

// Close stops the timer, waits for in-flight hook deliveries and releases
// the store and log file. Safe to call more than once.
func (a *App) Close() error {
	if a.TimerTUI != (timerinadapter.TUIHandler{}) {
		a.TimerTUI.Close()
	}
	if a.notifier != nil {
		a.notifier.Wait()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI runs the terminal UI, or the headless runner when stdout is not a
// terminal.
func RunTUI(ctx context.Context, app *App) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return headless.Run(ctx, app.TimerTUI, os.Stdout)
	}
	model := uiapp.NewModel(app.TimerTUI, app.SessionCLI)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Serve exposes the read-only HTTP API on addr until ctx is done.
func Serve(ctx context.Context, app *App, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.SessionHTTP.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	app.Log.Info("http server listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	}
}
