// Package commands implements the formkit command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/dates"
	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/format"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/validation"
)

var (
	// ErrBlocked is returned by validate when the submit would be cancelled.
	ErrBlocked = errors.New("formkit: submission blocked")
	// ErrDeclined is returned by confirm when the user answers no.
	ErrDeclined = errors.New("formkit: action declined")
)

type app struct {
	configPath string
	logFile    string
	locale     string

	cfg       config.Config
	logs      *logging.Loggers
	confirmer format.Confirmer
}

// Execute runs the CLI against os.Args. Blocked and declined outcomes are
// reported through the exit status only.
func Execute() error {
	root, a := newRootCmd(nil)
	err := execute(context.Background(), root, a)
	if err != nil && !errors.Is(err, ErrBlocked) && !errors.Is(err, ErrDeclined) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// execute runs root and closes the loggers whatever the outcome; cobra skips
// post-run hooks when a command fails.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	if closeErr := a.logs.Close(); err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd(confirmer format.Confirmer) (*cobra.Command, *app) {
	a := &app{confirmer: confirmer}

	root := &cobra.Command{
		Use:           "formkit",
		Short:         "Apply form affordances to HTML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "rotating log file (stderr if empty)")
	root.PersistentFlags().StringVar(&a.locale, "locale", "", "message locale (default pt-BR)")

	root.AddCommand(applyCmd(a), validateCmd(a), maskCmd(a), formatCmd(a), confirmCmd(a))
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.locale != "" {
		cfg.Locale = a.locale
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	a.cfg = cfg

	logs, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("formkit: logging: %w", err)
	}
	a.logs = logs
	return nil
}

func (a *app) localizer() i18n.Localizer {
	return i18n.NewLocalizer(a.cfg.Locale)
}

// initOptions translates the loaded configuration into formkit options.
func (a *app) initOptions(today string) ([]formkit.Option, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	opts := []formkit.Option{
		formkit.WithLocale(a.cfg.Locale),
		formkit.WithLocation(loc),
		formkit.WithRevealThreshold(a.cfg.RevealThreshold),
	}
	if a.cfg.MaxImageBytes > 0 {
		opts = append(opts, formkit.WithValidatorOptions(
			validation.WithImagePolicy(validation.ImagePolicy{MaxBytes: a.cfg.MaxImageBytes}),
		))
	}
	if today != "" {
		day, err := time.ParseInLocation(dates.ISODate, today, loc)
		if err != nil {
			return nil, fmt.Errorf("formkit: --today: %w", err)
		}
		opts = append(opts, formkit.WithClock(func() time.Time { return day }))
	}
	return opts, nil
}

func readDocument(path string) (*dom.Document, error) {
	if path == "" {
		return nil, errors.New("formkit: --input is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("formkit: open input: %w", err)
	}
	defer file.Close()
	return dom.Parse(file)
}

func writeDocument(cmd *cobra.Command, doc *dom.Document, path string) error {
	if path == "" {
		return doc.Render(cmd.OutOrStdout())
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("formkit: create output: %w", err)
	}
	if err := doc.Render(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
