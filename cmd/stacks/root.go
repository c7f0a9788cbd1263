package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/mmcdole/stacks/internal/adapter"
	"github.com/mmcdole/stacks/internal/auth"
	"github.com/mmcdole/stacks/internal/catalog"
	"github.com/mmcdole/stacks/internal/di"
	"github.com/mmcdole/stacks/internal/di/providers"
	"github.com/mmcdole/stacks/internal/tui"
)

// app carries the global flags to every command
type app struct {
	opts providers.Options
}

// env is what a command needs from the container
type env struct {
	injector *do.RootScope
	cfg      *adapter.Config
	log      *providers.LoggerHandle
	bridge   *providers.BridgeHandle
	state    *providers.StateHandle
}

// open builds the container and resolves the state services
func (a *app) open() (*env, error) {
	injector := di.NewContainer(a.opts)
	e, err := resolve(injector)
	if err != nil {
		_ = injector.Shutdown()
		return nil, err
	}
	return e, nil
}

func resolve(injector *do.RootScope) (*env, error) {
	e := &env{injector: injector}

	var err error
	if e.cfg, err = do.Invoke[*adapter.Config](injector); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if e.log, err = do.Invoke[*providers.LoggerHandle](injector); err != nil {
		return nil, err
	}
	if e.bridge, err = do.Invoke[*providers.BridgeHandle](injector); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if e.state, err = do.Invoke[*providers.StateHandle](injector); err != nil {
		return nil, err
	}
	return e, nil
}

// close shuts the container down
func (e *env) close() {
	if report := e.injector.Shutdown(); !report.Succeed {
		e.log.Warn("shutdown failed", "error", report.Error())
	}
}

func (e *env) directory() (*auth.Directory, error) {
	return do.Invoke[*auth.Directory](e.injector)
}

func (e *env) catalog() (*catalog.Service, error) {
	return do.Invoke[*catalog.Service](e.injector)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "stacks",
		Short:         "Borrow library books and buy ebooks from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd)
		},
	}
	root.SetVersionTemplate("stacks {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.ConfigFile, "config", "", "config file (default ~/.config/stacks/config.yaml)")
	flags.StringVar(&a.opts.Backend, "backend", "", "state store backend: sqlite, bolt, badger or memory")
	flags.StringVar(&a.opts.StorePath, "store", "", "state store path")
	flags.BoolVar(&a.opts.Ephemeral, "ephemeral", false, "keep state in memory only")
	flags.StringVar(&a.opts.LogLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")

	root.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newBorrowedCmd(),
		a.newPurchasedCmd(),
		a.newCatalogCmd(),
		a.newTrendingCmd(),
		a.newStateCmd(),
	)
	return root
}

// runTUI runs the interactive application
func (a *app) runTUI(cmd *cobra.Command) error {
	e, err := a.open()
	if err != nil {
		return err
	}
	defer e.close()

	dir, err := e.directory()
	if err != nil {
		return err
	}
	svc, err := e.catalog()
	if err != nil {
		return err
	}
	// Picks up writes by other running instances
	if _, err := do.Invoke[*providers.WatcherHandle](e.injector); err != nil {
		return err
	}

	e.log.Info("starting stacks", "version", Version, "backend", e.cfg.Storage.Backend)

	model := tui.NewModel(e.state.Container, dir, svc, tui.Options{
		LoanDays:    e.cfg.Library.LoanDays,
		RenewalDays: e.cfg.Library.RenewalDays,
		DefaultPage: tui.ParsePage(e.cfg.UI.DefaultPage),
	})
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(cmd.Context()),
	)

	e.log.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		e.log.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	e.log.Info("shutting down")
	return nil
}
