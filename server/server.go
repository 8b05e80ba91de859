// Package server exposes the tile pyramid and raster queries over HTTP.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/pdok/rastertile/features"
	"github.com/pdok/rastertile/pyramid"
	"github.com/pdok/rastertile/raster"
)

type Config struct {
	// Port to listen on
	Port string `default:"3000" mapstructure:"port"`
	// Page served for every path that is not an API route
	IndexPath string `default:"index.html" mapstructure:"index"`
}

// Server shares one pyramid, one grid and its projected features, all read-only,
// across all requests.
type Server struct {
	app      *fiber.App
	config   Config
	pyramid  *pyramid.Pyramid
	grid     *raster.Grid
	features []features.Feature
}

func New(config Config, grid *raster.Grid, fs []features.Feature, p *pyramid.Pyramid) *Server {
	s := &Server{
		config:   config,
		pyramid:  p,
		grid:     grid,
		features: fs,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "rastertile",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "${status} - ${method} ${path} (${latency})\n",
		Output: log.StandardLogger().WriterLevel(log.DebugLevel),
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)
	s.app.Get("/tile/:z/:x/:y.mvt", s.tileMVT)
	s.app.Get("/tile/:z/:x/:y.wkt", s.tileWKT)
	s.app.Get("/avg-temp/:lat0/:lng0/:lat1/:lng1", s.averageTemperature)
	s.app.Get("/values/:lat0/:lng0/:lat1/:lng1", s.values)
	s.app.Get("/features.geojson", s.allFeatures)
	s.app.Get("/*", s.index)
}

// App returns the underlying fiber app, e.g. for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	log.Infof("listening on :%s", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
