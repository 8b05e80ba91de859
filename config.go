package main

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/pdok/rastertile/pyramid"
	"github.com/pdok/rastertile/server"
)

type appConfig struct {
	server.Config   `mapstructure:",squash"`
	pyramid.Options `mapstructure:",squash"`

	// ESRI .hdr file describing the raster
	Header string `mapstructure:"header" validate:"required"`
	// BIL file holding the raster samples
	Data     string `mapstructure:"data" validate:"required"`
	LogLevel string `mapstructure:"loglevel" default:"info"`
	// zoom level to write as WKT after building, -1 for none
	WktLevel  int  `mapstructure:"wktlevel" default:"-1" validate:"gte=-1"`
	WktMaxLen uint `mapstructure:"wktmaxlen"`
}

// loadConfig layers defaults, the optional config file, and finally flags and
// environment variables, each overriding the previous.
func loadConfig(c *cli.Context) (appConfig, error) {
	config := appConfig{Options: pyramid.DefaultOptions()}
	if err := defaults.Set(&config); err != nil {
		return config, fmt.Errorf("setting defaults: %w", err)
	}

	if path := c.String(CONFIG); path != "" {
		file := viper.New()
		file.SetConfigFile(path)
		if err := file.ReadInConfig(); err != nil {
			return config, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := file.Unmarshal(&config); err != nil {
			return config, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	flags := viper.New()
	for _, f := range c.App.Flags {
		name := f.Names()[0]
		if name != CONFIG && c.IsSet(name) {
			flags.Set(name, c.Value(name))
		}
	}
	if err := flags.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("applying flags: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return config, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
