package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/pdok/rastertile/features"
	"github.com/pdok/rastertile/pyramid"
	"github.com/pdok/rastertile/raster"
	"github.com/pdok/rastertile/server"
)

const HEADER string = `header`
const DATA string = `data`
const CONFIG string = `config`
const PORT string = `port`
const INDEX string = `index`
const MAXZOOM string = `maxzoom`
const TOLERANCE string = `tolerance`
const EXTENT string = `extent`
const BUFFER string = `buffer`
const PARALLELLEVELS string = `parallellevels`
const LOGLEVEL string = `loglevel`
const WKTLEVEL string = `wktlevel`
const WKTMAXLEN string = `wktmaxlen`

const shutdownTimeout = 5 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using the environment as is")
	}

	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

//nolint:funlen
func newApp() *cli.App {
	defaultOptions := pyramid.DefaultOptions()

	app := cli.NewApp()
	app.Name = "rastertile"
	app.Usage = "Serves a temperature raster as vector tiles"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    HEADER,
			Usage:   "ESRI header (.hdr) of the raster",
			EnvVars: []string{strcase.ToScreamingSnake(HEADER)},
		},
		&cli.StringFlag{
			Name:    DATA,
			Usage:   "BIL file with the raster samples",
			EnvVars: []string{strcase.ToScreamingSnake(DATA)},
		},
		&cli.StringFlag{
			Name:    CONFIG,
			Aliases: []string{"c"},
			Usage:   "Config file (toml, yaml or json) with any of the other settings. Flags and environment variables win.",
			EnvVars: []string{strcase.ToScreamingSnake(CONFIG)},
		},
		&cli.StringFlag{
			Name:    PORT,
			Aliases: []string{"p"},
			Usage:   "Port to listen on",
			Value:   "3000",
			EnvVars: []string{strcase.ToScreamingSnake(PORT)},
		},
		&cli.StringFlag{
			Name:    INDEX,
			Usage:   "Page served on every path that is not an API route",
			Value:   "index.html",
			EnvVars: []string{strcase.ToScreamingSnake(INDEX)},
		},
		&cli.UintFlag{
			Name:    MAXZOOM,
			Aliases: []string{"z"},
			Usage:   "Deepest zoom level to build tiles for",
			Value:   defaultOptions.MaxZoom,
			EnvVars: []string{strcase.ToScreamingSnake(MAXZOOM)},
		},
		&cli.Float64Flag{
			Name:    TOLERANCE,
			Usage:   "Decimation cell size in tile units below the deepest zoom level. 0 keeps all points",
			Value:   defaultOptions.Tolerance,
			EnvVars: []string{strcase.ToScreamingSnake(TOLERANCE)},
		},
		&cli.UintFlag{
			Name:    EXTENT,
			Usage:   "Tile extent",
			Value:   defaultOptions.Extent,
			EnvVars: []string{strcase.ToScreamingSnake(EXTENT)},
		},
		&cli.UintFlag{
			Name:    BUFFER,
			Usage:   "Tile buffer in tile units",
			Value:   defaultOptions.Buffer,
			EnvVars: []string{strcase.ToScreamingSnake(BUFFER)},
		},
		&cli.UintFlag{
			Name:    PARALLELLEVELS,
			Usage:   "Number of zoom levels whose subtrees are built concurrently",
			Value:   defaultOptions.ParallelLevels,
			EnvVars: []string{strcase.ToScreamingSnake(PARALLELLEVELS)},
		},
		&cli.StringFlag{
			Name:    LOGLEVEL,
			Usage:   "Log level (trace, debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{strcase.ToScreamingSnake(LOGLEVEL)},
		},
		&cli.IntFlag{
			Name:    WKTLEVEL,
			Usage:   "Writes the outline and points of every tile at this zoom level as WKT to stdout after building. -1 writes nothing",
			Value:   -1,
			EnvVars: []string{strcase.ToScreamingSnake(WKTLEVEL)},
		},
		&cli.UintFlag{
			Name:    WKTMAXLEN,
			Usage:   "Truncates the lines written for " + WKTLEVEL + " to this many characters. 0 is unlimited",
			EnvVars: []string{strcase.ToScreamingSnake(WKTMAXLEN)},
		},
	}

	app.Action = func(c *cli.Context) error {
		config, err := loadConfig(c)
		if err != nil {
			return err
		}
		initLog(config.LogLevel)

		grid, err := raster.ReadFiles(config.Header, config.Data)
		if err != nil {
			return err
		}
		fs := features.Project(grid)
		log.Infof("=== building tile pyramid for %d features ===", len(fs))
		start := time.Now()
		p, err := pyramid.Build(fs, config.Options)
		if err != nil {
			return err
		}
		p.LogStats()
		log.Infof("=== done building in %s ===", time.Since(start).Round(time.Millisecond))

		if err := dumpWkt(os.Stdout, p, config.WktLevel, config.WktMaxLen); err != nil {
			return err
		}
		return serve(server.New(config.Config, grid, fs, p))
	}
	return app
}

// dumpWkt writes a zoom level of the pyramid as WKT. A negative level writes nothing.
func dumpWkt(w io.Writer, p *pyramid.Pyramid, level int, maxLen uint) error {
	if level < 0 {
		return nil
	}
	if err := p.ToWkt(w, pyramid.Level(level), maxLen); err != nil {
		return fmt.Errorf("writing zoom level %d as wkt: %w", level, err)
	}
	return nil
}

// serve runs until the server fails or the process is told to stop.
func serve(s *server.Server) error {
	errs := make(chan error, 1)
	go func() {
		errs <- s.Listen()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errs:
		return err
	case sig := <-quit:
		log.Infof("received %s, shutting down", sig)
	}

	if err := s.Shutdown(shutdownTimeout); err != nil {
		return errors.Join(errors.New("forced shutdown"), err)
	}
	log.Info("server exited gracefully")
	return nil
}
