package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/lists/internal/cli"
	"github.com/idilsaglam/lists/internal/config"
	"github.com/idilsaglam/lists/internal/lists"
	"github.com/idilsaglam/lists/internal/logging"
	"github.com/idilsaglam/lists/internal/store"
	"github.com/idilsaglam/lists/internal/store/filekv"
	"github.com/idilsaglam/lists/internal/store/sqlitekv"
	"github.com/idilsaglam/lists/internal/tui"
	"github.com/idilsaglam/lists/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("lists", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, err.Error())
		return 2
	}
	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		return 2
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Prefix: "lists",
	})
	if args[0] == "tui" && logger.GetLevel() < log.ErrorLevel {
		// stderr shares the terminal with the alt screen
		logger.SetLevel(log.ErrorLevel)
	}
	logger.Debug("config loaded", "file", cfg.File, "backend", cfg.Backend, "data_dir", cfg.DataDir)

	kv, err := openKV(cfg)
	if err != nil {
		ui.Fail(os.Stderr, "open store: "+err.Error())
		return 1
	}
	s, err := store.New(kv, logger)
	if err != nil {
		kv.Close()
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer s.Close()

	mgr := lists.Open(context.Background(), s, lists.WithLogger(logger))
	code := cli.Run(mgr, args, cli.Options{
		HideChecked: cfg.HideChecked,
		TUI: func(m *lists.Manager) error {
			return tui.Run(m, tui.Options{HideChecked: cfg.HideChecked})
		},
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

func openKV(cfg *config.Config) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlitekv.Open(cfg.SQLitePath())
	default:
		return filekv.Open(cfg.DataDir)
	}
}
