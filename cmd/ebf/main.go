package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/MuhammadImtananWali/ebf"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func setup(c *cli.Context, withCatalog bool) (*ebf.EBF, func() error, error) {
	cfg := ebf.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = ebf.LoadConfig(path); err != nil {
			return nil, nil, err
		}
	}
	if db := c.String("db"); db != "" {
		cfg.DB = db
	}

	level := cfg.LogLevel
	if c.Bool("verbose") {
		level = "debug"
	}
	logger, err := ebf.NewLogger(c.App.ErrWriter, level)
	if err != nil {
		return nil, nil, err
	}

	closer := func() error { return nil }
	var catalog *ebf.Catalog
	if withCatalog {
		if catalog, err = ebf.NewCatalog(cfg.DB); err != nil {
			return nil, nil, err
		}
		closer = catalog.Close
	}

	return ebf.New(cfg, catalog, logger), closer, nil
}

// fail prints the diagnostic for err and exits with the matching status.
func fail(c *cli.Context, err error) error {
	fmt.Fprintln(c.App.Writer, ebf.Diagnostic(err))
	return cli.NewExitError("", ebf.ExitStatus(err))
}

func toolCommand(t ebf.Tool) *cli.Command {
	return &cli.Command{
		Name:      t.Name,
		Usage:     t.Description(),
		ArgsUsage: "FILE1 FILE2",
		Action: func(c *cli.Context) error {
			switch c.NArg() {
			case 0:
				fmt.Fprintln(c.App.Writer, t.Usage())
				return nil
			case 2:
			default:
				return fail(c, ebf.ErrBadArguments)
			}

			e, closer, err := setup(c, false)
			if err != nil {
				return cli.NewExitError(err, ebf.BadArgs)
			}
			defer closer()

			status, err := e.Run(t, c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return fail(c, err)
			}
			fmt.Fprintln(c.App.Writer, status)

			return nil
		},
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()

	app.Name = "ebf"
	app.Usage = "ebf, ebu and ebc image utilities"
	app.Version = "1.0.0"
	app.Writer = stdout
	app.ErrWriter = stderr

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"EBF_CONFIG"},
			Usage:   "path to TOML config file",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"EBF_DB"},
			Usage:   "path to catalog database (default \"" + ebf.DefaultDB + "\")",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	for _, t := range ebf.Tools {
		app.Commands = append(app.Commands, toolCommand(t))
	}

	app.Commands = append(app.Commands, []*cli.Command{
		{
			Name:        "import",
			Usage:       "Convert a PNG, JPEG or GIF image",
			Description: "The output profile is chosen by the extension of OUTPUT, one of .ebf, .ebu or .ebc.",
			ArgsUsage:   "IMAGE OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), ebf.BadArgs)
				}

				e, closer, err := setup(c, false)
				if err != nil {
					return cli.NewExitError(err, ebf.BadArgs)
				}
				defer closer()

				if err := e.Import(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return fail(c, err)
				}
				fmt.Fprintln(c.App.Writer, ebf.StatusConverted)

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Convert a file to a grayscale PNG image",
			ArgsUsage: "FILE OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), ebf.BadArgs)
				}

				e, closer, err := setup(c, false)
				if err != nil {
					return cli.NewExitError(err, ebf.BadArgs)
				}
				defer closer()

				if err := e.Export(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return fail(c, err)
				}
				fmt.Fprintln(c.App.Writer, ebf.StatusConverted)

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Print the format and dimensions of a file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), ebf.BadArgs)
				}

				e, closer, err := setup(c, false)
				if err != nil {
					return cli.NewExitError(err, ebf.BadArgs)
				}
				defer closer()

				p, cfg, err := e.Inspect(c.Args().First())
				if err != nil {
					return fail(c, err)
				}
				fmt.Fprintf(c.App.Writer, "%s %d %d\n", p, cfg.Height, cfg.Width)

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Validate every file in a directory and add it to the catalog",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), ebf.BadArgs)
				}

				e, closer, err := setup(c, true)
				if err != nil {
					return cli.NewExitError(err, ebf.BadFile)
				}
				defer closer()

				if err := e.Scan(context.Background(), c.Args().First()); err != nil {
					return fail(c, err)
				}

				return nil
			},
		},
		{
			Name:      "find",
			Usage:     "List catalogued files identical to a file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), ebf.BadArgs)
				}

				e, closer, err := setup(c, true)
				if err != nil {
					return cli.NewExitError(err, ebf.BadFile)
				}
				defer closer()

				paths, err := e.Find(c.Args().First())
				if err != nil {
					return fail(c, err)
				}
				for _, path := range paths {
					fmt.Fprintln(c.App.Writer, path)
				}

				return nil
			},
		},
	}...)

	return app
}

// arguments rewrites argv when the binary is invoked through a link named
// after one of the tools, so "ebfEcho a b" runs as "ebf ebfEcho a b".
func arguments(argv []string) []string {
	name := filepath.Base(argv[0])
	if _, ok := ebf.LookupTool(name); ok {
		return append([]string{argv[0], name}, argv[1:]...)
	}
	return argv
}

func main() {
	app := newApp(os.Stdout, os.Stderr)

	if err := app.Run(arguments(os.Args)); err != nil {
		log.Fatal(err)
	}
}
