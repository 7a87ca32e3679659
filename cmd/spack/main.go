package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/spritepack"
	"github.com/bodgit/spritepack/atlasfile"
	"github.com/bodgit/spritepack/bleed"
	"github.com/bodgit/spritepack/imagefile"
	"github.com/bodgit/spritepack/internal/config"
	"github.com/bodgit/spritepack/internal/logger"
	"github.com/bodgit/spritepack/surface"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("log-file") {
		cfg.Logging.File = c.String("log-file")
	}
	if c.Bool("verbose") {
		cfg.Logging.Level = "debug"
	}

	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.File, true), nil
}

func atlasFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "layout file to write",
		},
		&cli.StringFlag{
			Name:  "image",
			Usage: "texture image to write",
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "padding in pixels around each sprite",
		},
		&cli.StringFlag{
			Name:  "padding-mode",
			Usage: "fill for the padding: bleed, alpha or debug",
		},
		&cli.BoolFlag{
			Name:  "square",
			Usage: "make the texture square",
		},
		&cli.BoolFlag{
			Name:  "normalize",
			Usage: "write texture coordinates instead of pixels",
		},
		&cli.BoolFlag{
			Name:  "y-up",
			Usage: "put the origin at the bottom left",
		},
		&cli.StringFlag{
			Name:  "exporter",
			Usage: "layout format: atlas, txt or json",
		},
		&cli.StringFlag{
			Name:  "image-format",
			Usage: "texture format: png, tga or bmp",
		},
	}
}

// atlasOptions starts from the configured defaults and applies any atlas
// flags given on the command line.
func atlasOptions(c *cli.Context, cfg *config.Config) (spritepack.Options, error) {
	o, err := cfg.Options()
	if err != nil {
		return o, err
	}

	if c.IsSet("output") {
		o.OutputFile = c.String("output")
	}
	if c.IsSet("padding") {
		o.Padding = c.Int("padding")
	}
	if c.IsSet("padding-mode") {
		if o.PaddingMode, err = bleed.ParseMode(c.String("padding-mode")); err != nil {
			return o, err
		}
	}
	if c.IsSet("square") {
		o.Square = c.Bool("square")
	}
	if c.IsSet("normalize") {
		o.Normalize = c.Bool("normalize")
	}
	if c.IsSet("y-up") {
		o.YUp = c.Bool("y-up")
	}
	if c.IsSet("exporter") {
		if o.Format, err = atlasfile.ParseFormat(c.String("exporter")); err != nil {
			return o, err
		}
	}
	if c.IsSet("image-format") {
		if o.ImageFormat, err = imagefile.ParseFormat(c.String("image-format")); err != nil {
			return o, err
		}
	}

	// The texture is named after the layout file unless given.
	if c.IsSet("image") {
		o.OutputImage = c.String("image")
		if !c.IsSet("image-format") {
			if f, err := imagefile.FormatFromPath(o.OutputImage); err == nil {
				o.ImageFormat = f
			}
		}
	} else {
		o.OutputImage = strings.TrimSuffix(o.OutputFile, filepath.Ext(o.OutputFile)) + "." + o.ImageFormat.Ext()
	}

	return o, o.Validate()
}

// fillAtlas loads the images named on the command line into the default
// animation of a.
func fillAtlas(c *cli.Context, cfg *config.Config, a *spritepack.Atlas, files []string) error {
	sprites, err := spritepack.LoadSprites(c.Context, surface.Software{}, files, cfg.Workers)
	if err != nil {
		return err
	}
	for _, s := range sprites {
		if _, err := a.AddSprite(s, 0); err != nil {
			return err
		}
	}
	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "spack"
	app.Usage = "Sprite atlas packer"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to config file",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SPACK_DB"},
			Usage:   "path to build database",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of images decoded at once",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "also log to this file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "pack",
			Usage:       "Pack images into an atlas",
			Description: "Packs every image into one texture and writes it with its layout file.",
			ArgsUsage:   "IMAGE...",
			Flags:       atlasFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, zlog, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer zlog.Sync()

				o, err := atlasOptions(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				a, err := spritepack.NewAtlas(surface.Software{}, o, zlog)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := fillAtlas(c, cfg, a, c.Args().Slice()); err != nil {
					return cli.Exit(err, 1)
				}

				if err := a.Export(); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "new",
			Usage:       "Create a project file",
			Description: "Creates a project with one atlas holding the given images.",
			ArgsUsage:   "PROJECT [IMAGE...]",
			Flags:       atlasFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, zlog, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer zlog.Sync()

				o, err := atlasOptions(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := spritepack.NewProject(surface.Software{}, c.Args().First(), o, zlog)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := fillAtlas(c, cfg, p.Atlases[0], c.Args().Tail()); err != nil {
					return cli.Exit(err, 1)
				}

				if err := p.Save(); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Export every atlas in a project",
			Description: "Atlases unchanged since the last export are skipped unless --force is given.",
			ArgsUsage:   "PROJECT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "force",
					Aliases: []string{"f"},
					Usage:   "export unchanged atlases too",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, zlog, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer zlog.Sync()

				sp, err := spritepack.New(cfg.Database.Path, cfg.Workers, zlog)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer sp.Close()

				if err := sp.Export(c.Context, c.Args().First(), c.Bool("force")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "inspect",
			Usage:       "Print the contents of a layout file",
			Description: "Files ending in .json are read as JSON, anything else as the text format.",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := inspect(c, c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "config",
			Usage:       "Write a default config file",
			Description: "Writes to the user config directory unless a path is given.",
			ArgsUsage:   "[FILE]",
			Action: func(c *cli.Context) error {
				path := c.Args().First()
				if path == "" {
					path = filepath.Join(config.ConfigDir(), config.Filename)
				}

				if err := config.Default().SaveTo(path); err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Fprintln(c.App.Writer, path)

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func inspect(c *cli.Context, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	format := atlasfile.Text
	if strings.EqualFold(filepath.Ext(file), ".json") {
		format = atlasfile.JSON
	}

	l, err := atlasfile.Decode(f, format)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "texture: %s\n", l.Image)
	fmt.Fprintf(w, "sprites: %d\n", len(l.Sprites))
	for i, s := range l.Sprites {
		if l.Normalized {
			fmt.Fprintf(w, "  %4d %-24s %.4f %.4f %.4f %.4f\n", i, s.Name, s.X, s.Y, s.W, s.H)
			continue
		}
		fmt.Fprintf(w, "  %4d %-24s %4d %4d %4d %4d\n", i, s.Name, int(s.X), int(s.Y), int(s.W), int(s.H))
	}
	fmt.Fprintf(w, "animations: %d\n", len(l.Animations))
	for _, a := range l.Animations {
		fmt.Fprintf(w, "  %-24s %v\n", a.Name, a.Frames)
	}

	return nil
}
