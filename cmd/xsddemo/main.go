// Command xsddemo demonstrates the xsd2code generator: it checks that the
// pre-built binary and a sample schema are present, generates code, prints
// it, and shows the generator's type mappings.
//
// Usage:
//
//	xsddemo [--config file] [--log-level level]            run the demo with config defaults
//	xsddemo run [--binary b] [--xsd s]... [--lang l] ...   run the demo with overrides
//	xsddemo mappings [--xsd s] [--lang l]                  show type mappings only
//	xsddemo init [--yes]                                   write .xsddemo.yaml
//	xsddemo languages                                      list target languages
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	"xsddemo/internal/config"
	"xsddemo/internal/demo"
	"xsddemo/internal/generator"
	"xsddemo/version"
)

var log = logging.Logger("xsddemo")

func generatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "binary",
			Usage: "Path to the xsd2code executable",
		},
		&cli.StringSliceFlag{
			Name:  "xsd",
			Usage: "Candidate XSD schema; repeat to give fallbacks, the first that exists is used",
		},
		&cli.StringFlag{
			Name:  "lang",
			Usage: "Target language passed to -lang",
		},
	}
}

func runFlags() []cli.Flag {
	return append(generatorFlags(),
		&cli.StringFlag{
			Name:  "output",
			Usage: "Generated source file passed to -output",
		},
		&cli.StringFlag{
			Name:  "package",
			Usage: "Package or namespace passed to -package",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Ask the generator for JSON-compatible tags",
		},
		&cli.BoolFlag{
			Name:  "verify",
			Usage: "Check generated Go output with goimports (lang=go only)",
		},
		&cli.StringFlag{
			Name:  "report",
			Usage: "Write a JSON run report to this file",
		},
	)
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "xsddemo",
		Usage:   "Demonstrate the xsd2code code generator",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file",
				Value: config.DefaultFile,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level for all subsystems",
				Value: "warn",
			},
		},
		Before: func(cctx *cli.Context) error {
			return logging.SetLogLevel("*", cctx.String("log-level"))
		},
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Generate code from a schema, print it, then show type mappings",
				Flags:  runFlags(),
				Action: runAction,
			},
			{
				Name:   "mappings",
				Usage:  "Show the XSD to target-language type mappings",
				Flags:  generatorFlags(),
				Action: mappingsAction,
			},
			{
				Name:  "init",
				Usage: "Write a config file, prompting for each setting",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Write defaults without prompting",
					},
				},
				Action: initAction,
			},
			{
				Name:   "languages",
				Usage:  "List the target languages xsd2code supports",
				Action: languagesAction,
			},
		},
	}
}

// loadConfig reads the config file and overlays any flags set on the
// command line.
func loadConfig(cctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	if cctx.IsSet("binary") {
		cfg.Binary = cctx.String("binary")
	}
	if cctx.IsSet("xsd") {
		cfg.Schemas = cctx.StringSlice("xsd")
	}
	if cctx.IsSet("lang") {
		cfg.Lang = cctx.String("lang")
	}
	if cctx.IsSet("output") {
		cfg.Output = cctx.String("output")
	}
	if cctx.IsSet("package") {
		cfg.Package = cctx.String("package")
	}
	if cctx.IsSet("json") {
		cfg.JSON = cctx.Bool("json")
	}
	if cctx.IsSet("verify") {
		cfg.Verify = cctx.Bool("verify")
	}
	if cctx.IsSet("report") {
		cfg.Report = cctx.String("report")
	}
	if err := cfg.Expand(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	log.Debugw("loaded config", "binary", cfg.Binary, "schemas", cfg.Schemas, "lang", cfg.Lang)
	return cfg, nil
}

func runAction(cctx *cli.Context) error {
	if cctx.Args().Present() {
		return fmt.Errorf("unknown command %q\n\nRun 'xsddemo help' for usage.", cctx.Args().First())
	}
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	return demo.New(cfg, cctx.App.Writer, cctx.App.ErrWriter).Run(cctx.Context)
}

func mappingsAction(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	return demo.New(cfg, cctx.App.Writer, cctx.App.ErrWriter).Mappings(cctx.Context)
}

func initAction(cctx *cli.Context) error {
	path := cctx.String("config")
	cfg := config.Default()
	if !cctx.Bool("yes") {
		answers, err := promptQuestions(cfg.Questions())
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		cfg.Apply(answers)
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}
	fmt.Fprintf(cctx.App.Writer, "wrote %s\n", path)
	return nil
}

func languagesAction(cctx *cli.Context) error {
	for _, l := range generator.Languages {
		fmt.Fprintf(cctx.App.Writer, "  %-8s %-8s %s\n", l.Name, l.Display, l.Ext)
	}
	return nil
}

func main() {
	// Set up a context that is canceled when the command is interrupted
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up a signal handler to cancel the context
	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-interrupt:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "xsddemo: %v\n", err)
		cancel()
		os.Exit(exitCode(err))
	}
}
