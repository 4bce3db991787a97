package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/kellnr/site-feed/changelog"
	"github.com/kellnr/site-feed/feed"
	"github.com/kellnr/site-feed/pipeline"
	"github.com/kellnr/site-feed/releasenotes"
	"github.com/kellnr/site-feed/source"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitDataError    = 3
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := newApp(stdin, stdout, stderr)
	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "%s %v\n", newColor(stderr, color.FgRed, color.Bold).Sprint("Error:"), err)
		return exitCode(err)
	}
	return ExitSuccess
}

// newColor returns a color that is only applied when w is a terminal.
func newColor(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "kellnr-feed",
		Usage:     "Generate the kellnr.io Atom feed from changelog.json and blog-posts.json",
		Version:   "0.1.0",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Value:   ".",
				Usage:   "Project root holding src/data and public",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file overriding the feed identity",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log every pipeline stage",
			},
		},
		Action: generate,
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Validate the sources and render the feed without writing it",
				Action: check,
			},
			{
				Name:  "apply-release-notes",
				Usage: "Add or update a changelog release from a release-notes payload",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "payload",
						Usage: "Read the payload JSON from `FILE`",
					},
					&cli.BoolFlag{
						Name:  "payload-stdin",
						Usage: "Read the payload JSON from stdin",
					},
					&cli.StringFlag{
						Name:  "changelog",
						Usage: "Changelog to update (default: src/data/changelog.json below --root)",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Apply in memory only",
					},
					&cli.BoolFlag{
						Name:  "print-summary",
						Usage: "Print a Markdown summary of the release",
					},
				},
				Action: applyReleaseNotes,
			},
		},
		// Errors are reported by run so exit codes stay in one place.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.Writer, &slog.HandlerOptions{Level: level}))
}

func buildOptions(c *cli.Context) (pipeline.Options, error) {
	if c.NArg() > 0 {
		return pipeline.Options{}, cli.Exit(fmt.Sprintf("Usage: %s takes no arguments", c.App.Name), ExitUsageError)
	}

	cfg := feed.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = feed.LoadConfig(path); err != nil {
			return pipeline.Options{}, cli.Exit(err.Error(), ExitUsageError)
		}
	}

	return pipeline.Options{
		Root:   c.String("root"),
		Config: cfg,
		Logger: newLogger(c),
	}, nil
}

func generate(c *cli.Context) error {
	opts, err := buildOptions(c)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(opts)
	if err != nil {
		return err
	}

	opts.Logger.Info("generated feed",
		"path", result.OutputPath,
		"releases", result.Releases,
		"posts", result.Posts,
	)
	return nil
}

func check(c *cli.Context) error {
	opts, err := buildOptions(c)
	if err != nil {
		return err
	}
	opts.DryRun = true

	result, err := pipeline.Run(opts)
	if err != nil {
		return err
	}

	status := newColor(c.App.Writer, color.FgGreen).Sprint("ok")
	if len(result.Warnings) > 0 {
		status = newColor(c.App.Writer, color.FgYellow).Sprintf("ok, %d warnings", len(result.Warnings))
	}
	fmt.Fprintf(c.App.Writer, "%s: %d releases, %d posts\n", status, result.Releases, result.Posts)
	return nil
}

func applyReleaseNotes(c *cli.Context) error {
	if c.NArg() > 0 {
		return cli.Exit(fmt.Sprintf("Usage: %s takes no arguments", c.Command.FullName()), ExitUsageError)
	}

	data, err := readPayload(c)
	if err != nil {
		return err
	}
	payload, err := releasenotes.ParsePayload(data)
	if err != nil {
		return err
	}
	release, err := payload.Release()
	if err != nil {
		return err
	}

	if c.Bool("print-summary") {
		fmt.Fprint(c.App.Writer, releasenotes.Summary(payload, release))
	}

	path := c.String("changelog")
	if path == "" {
		path = filepath.Join(c.String("root"), source.ChangelogPath)
	}
	doc, err := source.ReadChangelog(path)
	if err != nil {
		return err
	}

	logger := newLogger(c)
	changed := releasenotes.Apply(doc, release)
	for _, w := range changelog.Lint(doc.Releases) {
		logger.Warn(w)
	}

	if c.Bool("dry-run") {
		logger.Debug("dry run, changelog not written", "path", path, "changed", changed)
		return nil
	}
	if !changed {
		logger.Info("changelog already up to date", "path", path, "version", release.Version)
		return nil
	}
	if err := releasenotes.WriteChangelog(path, doc); err != nil {
		return err
	}

	logger.Info("updated changelog", "path", path, "version", release.Version, "date", release.Date)
	return nil
}

func readPayload(c *cli.Context) ([]byte, error) {
	path, stdin := c.String("payload"), c.Bool("payload-stdin")
	if (path == "") == !stdin {
		return nil, cli.Exit("Usage: exactly one of --payload or --payload-stdin is required", ExitUsageError)
	}

	if stdin {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return nil, &source.ReadError{Path: "stdin", Err: err}
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &source.ReadError{Path: path, Err: err}
	}
	return data, nil
}

// exitCode maps an error to the process exit status. Content problems are
// data errors; read and write failures are general errors.
func exitCode(err error) int {
	var (
		exitErr       cli.ExitCoder
		parseErr      *source.ParseError
		validationErr *source.ValidationError
		monthErr      *changelog.UnknownMonthError
		dateErr       *changelog.InvalidDateError
		verifyErr     *feed.VerifyError
	)

	switch {
	case errors.As(err, &exitErr):
		return exitErr.ExitCode()
	case errors.As(err, &parseErr),
		errors.As(err, &validationErr),
		errors.As(err, &monthErr),
		errors.As(err, &dateErr),
		errors.As(err, &verifyErr):
		return ExitDataError
	default:
		return ExitGeneralError
	}
}
