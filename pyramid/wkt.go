package pyramid

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-spatial/geom"
	"golang.org/x/exp/maps"

	"github.com/pdok/rastertile/geomhelp"
	"github.com/pdok/rastertile/intgeom"
	"github.com/pdok/rastertile/morton"
)

// TileGeometry returns the points of a tile as (lng, lat) coordinates.
func (p *Pyramid) TileGeometry(tile *Tile) geom.MultiPoint {
	worldSize := p.options.worldSize()
	shift := p.options.shift(Level(tile.Z))
	origin := tileOrigin(tile, p.options)
	mp := make(geom.MultiPoint, 0, len(tile.Features))
	for _, f := range tile.Features {
		world := intgeom.Point{origin.X() + f.Point.X()<<shift, origin.Y() + f.Point.Y()<<shift}
		mp = append(mp, fromWorld(world, worldSize))
	}
	return mp
}

// TileExtent returns the (lng, lat) extent a tile covers, without buffer.
func (p *Pyramid) TileExtent(tile *Tile) geom.Extent {
	worldSize := p.options.worldSize()
	origin := tileOrigin(tile, p.options)
	span := int64(p.options.Extent) << p.options.shift(Level(tile.Z))
	nw := fromWorld(origin, worldSize)
	se := fromWorld(intgeom.Point{origin.X() + span, origin.Y() + span}, worldSize)
	return geom.Extent{nw.X(), se.Y(), se.X(), nw.Y()}
}

func tileOrigin(tile *Tile, o Options) intgeom.Point {
	span := int64(o.Extent) << o.shift(Level(tile.Z))
	return intgeom.Point{int64(tile.X) * span, int64(tile.Y) * span}
}

// ToWkt writes the outline and points of every tile at zoom level z. For debugging/visualising.
// maxLen truncates long lines (0 is unlimited).
func (p *Pyramid) ToWkt(writer io.Writer, z Level, maxLen uint) error {
	tiles, ok := p.tiles[z]
	if !ok {
		return fmt.Errorf("no zoom level %d in pyramid (max %d)", z, p.options.MaxZoom)
	}
	keys := maps.Keys(tiles)
	slices.Sort(keys)
	for _, key := range keys {
		tile := tiles[key]
		x, y := morton.FromZ(key)
		if _, err := fmt.Fprintf(writer, "-- %d/%d/%d\n", z, x, y); err != nil {
			return err
		}
		geoms := []geom.Geometry{
			geomhelp.ExtentToPolygon(p.TileExtent(tile)),
			p.TileGeometry(tile),
		}
		if _, err := io.WriteString(writer, geomhelp.WktMustEncodeSlice(geoms, maxLen)); err != nil {
			return err
		}
	}
	return nil
}
