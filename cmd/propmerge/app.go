package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/redhatinsights/propmerge/internal/conf"
	"github.com/redhatinsights/propmerge/internal/l10n"
	"github.com/redhatinsights/propmerge/internal/merge"
	"github.com/redhatinsights/propmerge/internal/properties"
	"github.com/redhatinsights/propmerge/internal/watch"
)

// Version is set via ldflags.
var Version = "dev"

const settingsKey = "settings"

// settings is what the Before hook resolves for the commands.
type settings struct {
	config conf.Config
	logger *slog.Logger
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "propmerge",
		Usage:     l10n.T("print merged application properties"),
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Before:    loadSettings,
		Action:    showAction,
		// main decides about the exit code
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  l10n.T("print all merged properties"),
				Flags:  showFlags(),
				Action: showAction,
			},
			{
				Name:      "get",
				Usage:     l10n.T("print the merged value of one property"),
				ArgsUsage: "KEY",
				Action:    getAction,
			},
			{
				Name:      "locate",
				Usage:     l10n.T("print the file the config path name resolves to"),
				ArgsUsage: "[NAME]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: l10n.T("print every match instead of requiring a unique one")},
				},
				Action: locateAction,
			},
			{
				Name:   "watch",
				Usage:  l10n.T("print the merged properties and every later change"),
				Action: watchAction,
			},
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   l10n.T("settings file, drop-ins are read from <file>.d"),
			Value:   conf.DefaultPath,
			EnvVars: []string{"PROPMERGE_CONFIG"},
		},
		&cli.StringFlag{Name: "defaults", Usage: l10n.T("default properties resource on the classpath")},
		&cli.StringSliceFlag{Name: "classpath", Usage: l10n.T("directory searched for resources (repeatable)")},
		&cli.StringFlag{Name: "config-path-file", Usage: l10n.T("properties file name looked up on the search path")},
		&cli.StringSliceFlag{Name: "search-path", Usage: l10n.T("directory searched for the config path file (repeatable)")},
		&cli.StringSliceFlag{Name: "location", Usage: l10n.T("registered properties file, classpath:<name> for resources (repeatable)")},
		&cli.BoolFlag{Name: "ignore-resource-not-found", Usage: l10n.T("skip missing registered locations")},
		&cli.StringFlag{Name: "env-var", Usage: l10n.T("environment variable naming an override properties file")},
		&cli.StringFlag{Name: "encoding", Usage: l10n.T("properties file encoding: utf-8 or iso-8859-1")},
		&cli.StringFlag{Name: "log-level", Usage: l10n.T("DEBUG, INFO, WARN or ERROR")},
	}
}

func showFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   l10n.T("output format: properties, json, toml or table (default: table on a terminal)"),
		},
		&cli.BoolFlag{Name: "origins", Usage: l10n.T("show the source of every value (table format)")},
	}
}

// loadSettings reads the settings file and applies the global flags on top.
func loadSettings(c *cli.Context) error {
	source := conf.DefaultSource()
	if path := c.String("config"); path != conf.DefaultPath {
		source = conf.SourceFor(path)
	}
	config, err := source.Read()
	if err != nil {
		return err
	}

	if c.IsSet("defaults") {
		config.DefaultsResource = c.String("defaults")
	}
	if c.IsSet("classpath") {
		config.Classpath = c.StringSlice("classpath")
	}
	if c.IsSet("config-path-file") {
		config.ConfigPathFile = c.String("config-path-file")
	}
	if c.IsSet("search-path") {
		config.SearchPaths = c.StringSlice("search-path")
	}
	if c.IsSet("location") {
		config.Locations = c.StringSlice("location")
	}
	if c.IsSet("ignore-resource-not-found") {
		config.IgnoreResourceNotFound = c.Bool("ignore-resource-not-found")
	}
	if c.IsSet("env-var") {
		config.EnvVar = c.String("env-var")
	}
	if c.IsSet("encoding") {
		config.Encoding = c.String("encoding")
	}
	if c.IsSet("log-level") {
		level, ok := conf.ParseLevel(c.String("log-level"))
		if !ok {
			return fmt.Errorf(l10n.T("invalid log level %q"), c.String("log-level"))
		}
		config.LogLevel = level
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: config.LogLevel}))
	c.App.Metadata = map[string]any{settingsKey: &settings{config: config, logger: logger}}
	return nil
}

func settingsFrom(c *cli.Context) *settings {
	return c.App.Metadata[settingsKey].(*settings)
}

func newMerger(c *cli.Context) (*merge.Merger, *settings, error) {
	s := settingsFrom(c)
	m, err := s.config.NewMerger(s.logger)
	if err != nil {
		return nil, nil, err
	}
	return m, s, nil
}

func showAction(c *cli.Context) error {
	m, s, err := newMerger(c)
	if err != nil {
		return err
	}
	props, trace, err := m.MergeTrace()
	if err != nil {
		return err
	}

	if n := len(trace.Skipped); n > 0 {
		fmt.Fprintln(c.App.ErrWriter, l10n.TN("%d source skipped", "%d sources skipped", uint32(n), n))
	}

	format := c.String("format")
	if format == "" {
		if c.Bool("origins") {
			format = formatTable
		} else {
			format = defaultFormat(c.App.Writer)
		}
	}
	if c.Bool("origins") {
		if format != formatTable {
			return fmt.Errorf(l10n.T("--origins requires the %s format"), formatTable)
		}
		return writeTable(c.App.Writer, props, trace.Origins)
	}
	return write(c.App.Writer, format, props, encodingOf(s.config))
}

func getAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("get expects exactly one KEY argument"), 2)
	}
	m, _, err := newMerger(c)
	if err != nil {
		return err
	}
	props, err := m.Merge()
	if err != nil {
		return err
	}

	key := c.Args().First()
	value, ok := props.Lookup(key)
	if !ok {
		return cli.Exit(l10n.T("property %s is not set", key), 1)
	}
	fmt.Fprintln(c.App.Writer, value)
	return nil
}

func locateAction(c *cli.Context) error {
	s := settingsFrom(c)
	name := c.Args().First()
	if name == "" {
		name = s.config.ConfigPathFile
	}
	if name == "" {
		return cli.Exit(l10n.T("no file name given and no config-path-file configured"), 2)
	}

	loc := s.config.Locator()
	if c.Bool("all") {
		matches, err := loc.FindFiles(name)
		if err != nil {
			return err
		}
		for _, path := range matches {
			fmt.Fprintln(c.App.Writer, path)
		}
		return nil
	}

	path, err := loc.FindUniqueFile(name)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}

func watchAction(c *cli.Context) error {
	m, s, err := newMerger(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(c), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enc := encodingOf(s.config)
	var last properties.Map
	w := watch.New(m.MergeTrace, func(u watch.Update) {
		if u.Err != nil {
			s.logger.Error("merge failed, keeping previous properties", "error", u.Err)
			return
		}
		if last == nil {
			if err := properties.Encode(c.App.Writer, u.Properties, enc); err != nil {
				s.logger.Error("failed to print properties", "error", err)
			}
		} else {
			writeChanges(c.App.Writer, last, u.Properties)
		}
		last = u.Properties
	}, watch.WithLogger(s.logger))

	return w.Run(ctx)
}

func contextOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

func encodingOf(config conf.Config) properties.Encoding {
	enc, err := properties.ParseEncoding(config.Encoding)
	if err != nil {
		return properties.UTF8
	}
	return enc
}
