package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"

	"github.com/pdok/rastertile/bounds"
	"github.com/pdok/rastertile/features"
	"github.com/pdok/rastertile/geomhelp"
	"github.com/pdok/rastertile/mvt"
	"github.com/pdok/rastertile/pyramid"
)

const geoJSONContentType = "application/geo+json"

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// tileParams reads z, x and y. Anything but a non-negative integer is a bad request.
func tileParams(c *fiber.Ctx) (z, x, y uint, err error) {
	var zxy [3]uint
	for i, name := range []string{"z", "x", "y"} {
		v, err := strconv.ParseUint(c.Params(name), 10, 32)
		if err != nil {
			return 0, 0, 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s: %q", name, c.Params(name)))
		}
		zxy[i] = uint(v)
	}
	return zxy[0], zxy[1], zxy[2], nil
}

func (s *Server) tile(c *fiber.Ctx) (*pyramid.Tile, bool, error) {
	z, x, y, err := tileParams(c)
	if err != nil {
		return nil, false, err
	}
	tile, ok := s.pyramid.GetTile(z, x, y)
	return tile, ok, nil
}

func (s *Server) tileMVT(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, mvt.ContentType)
	tile, ok, err := s.tile(c)
	if err != nil {
		return err
	}
	if !ok {
		return c.Status(fiber.StatusOK).Send(nil)
	}
	b, err := mvt.Encode(tile, mvt.WithExtent(uint32(s.pyramid.Options().Extent)))
	if errors.Is(err, mvt.ErrEmptyTile) {
		return c.Status(fiber.StatusOK).Send(nil)
	}
	if err != nil {
		return err
	}
	return c.Send(b)
}

func (s *Server) tileWKT(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	tile, ok, err := s.tile(c)
	if err != nil {
		return err
	}
	if !ok {
		return c.Status(fiber.StatusOK).Send(nil)
	}
	return c.SendString(geomhelp.WktMustEncode(s.pyramid.TileGeometry(tile), 0))
}

// corners reads lat0, lng0, lat1 and lng1 as floats.
func corners(c *fiber.Ctx) (corner0, corner1 bounds.Corner, err error) {
	var v [4]float64
	for i, name := range []string{"lat0", "lng0", "lat1", "lng1"} {
		v[i], err = strconv.ParseFloat(c.Params(name), 64)
		if err != nil {
			return corner0, corner1, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s: %q", name, c.Params(name)))
		}
	}
	return bounds.Corner{v[0], v[1]}, bounds.Corner{v[2], v[3]}, nil
}

func (s *Server) averageTemperature(c *fiber.Ctx) error {
	corner0, corner1, err := corners(c)
	if err != nil {
		return err
	}
	var average *float64
	if avg, ok := bounds.Average(corner0[0], corner0[1], corner1[0], corner1[1], s.grid); ok {
		average = &avg
	}
	return c.JSON(fiber.Map{
		"averageTemperature": average,
	})
}

func (s *Server) values(c *fiber.Ctx) error {
	corner0, corner1, err := corners(c)
	if err != nil {
		return err
	}
	return sendGeoJSON(c, bounds.ToFeatureCollection(bounds.ValuesWithinBounds(corner0, corner1, s.grid)))
}

// allFeatures serves every projected feature, in the order they were fed to the pyramid.
func (s *Server) allFeatures(c *fiber.Ctx) error {
	return sendGeoJSON(c, features.ToFeatureCollection(s.features))
}

func sendGeoJSON(c *fiber.Ctx, fc *geojson.FeatureCollection) error {
	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, geoJSONContentType)
	return c.Send(b)
}

func (s *Server) index(c *fiber.Ctx) error {
	return c.SendFile(s.config.IndexPath)
}
