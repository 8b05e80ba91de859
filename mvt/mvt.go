// Package mvt encodes pyramid tiles as Mapbox Vector Tiles (version 2).
//
// See https://github.com/mapbox/vector-tile-spec/tree/master/2.1 for the protobuf schema.
// Only what point tiles need is written: one layer of POINT features, each
// carrying a single "value" property.
package mvt

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pdok/rastertile/intgeom"
	"github.com/pdok/rastertile/mapslicehelp"
	"github.com/pdok/rastertile/pyramid"
)

const (
	Version          = 2
	DefaultExtent    = 4096
	DefaultLayerName = "temperatures"
	ContentType      = "application/vnd.mapbox-vector-tile"

	valueKey = "value"
)

// field numbers of vector_tile.proto
const (
	tileLayers protowire.Number = 3

	layerName     protowire.Number = 1
	layerFeatures protowire.Number = 2
	layerKeys     protowire.Number = 3
	layerValues   protowire.Number = 4
	layerExtent   protowire.Number = 5
	layerVersion  protowire.Number = 15

	featureTags     protowire.Number = 2
	featureType     protowire.Number = 3
	featureGeometry protowire.Number = 4

	geomTypePoint = 1

	cmdMoveTo = 1
)

var ErrEmptyTile = errors.New("tile has no features")

type config struct {
	extent    uint32
	layerName string
}

type Option func(*config)

// WithExtent sets the extent written in the layer. It does not rescale coordinates.
func WithExtent(extent uint32) Option {
	return func(c *config) {
		c.extent = extent
	}
}

func WithLayerName(name string) Option {
	return func(c *config) {
		c.layerName = name
	}
}

// Encode writes a tile as one MVT layer. Equal tiles give equal bytes.
func Encode(tile *pyramid.Tile, options ...Option) ([]byte, error) {
	c := config{extent: DefaultExtent, layerName: DefaultLayerName}
	for _, option := range options {
		option(&c)
	}
	if tile == nil || len(tile.Features) == 0 {
		return nil, ErrEmptyTile
	}

	keys := orderedmap.New[string, uint32]()
	values := orderedmap.New[Value, uint32]()
	var features []byte
	for _, f := range tile.Features {
		tags := []uint32{
			mapslicehelp.Intern(keys, valueKey),
			mapslicehelp.Intern(values, NewValue(f.Value)),
		}
		features = protowire.AppendTag(features, layerFeatures, protowire.BytesType)
		features = protowire.AppendBytes(features, encodeFeature(tags, f.Point))
	}
	if err := checkTags(features, uint32(keys.Len()), uint32(values.Len())); err != nil {
		return nil, fmt.Errorf("encoding tile %d/%d/%d: %w", tile.Z, tile.X, tile.Y, err)
	}

	var layer []byte
	layer = protowire.AppendTag(layer, layerVersion, protowire.VarintType)
	layer = protowire.AppendVarint(layer, Version)
	layer = protowire.AppendTag(layer, layerName, protowire.BytesType)
	layer = protowire.AppendString(layer, c.layerName)
	layer = append(layer, features...)
	for _, k := range mapslicehelp.OrderedMapKeys(keys) {
		layer = protowire.AppendTag(layer, layerKeys, protowire.BytesType)
		layer = protowire.AppendString(layer, k)
	}
	for _, v := range mapslicehelp.OrderedMapKeys(values) {
		layer = protowire.AppendTag(layer, layerValues, protowire.BytesType)
		layer = protowire.AppendBytes(layer, v.encode())
	}
	layer = protowire.AppendTag(layer, layerExtent, protowire.VarintType)
	layer = protowire.AppendVarint(layer, uint64(c.extent))

	var b []byte
	b = protowire.AppendTag(b, tileLayers, protowire.BytesType)
	b = protowire.AppendBytes(b, layer)
	return b, nil
}

func encodeFeature(tags []uint32, pt intgeom.Point) []byte {
	var packedTags []byte
	for _, t := range tags {
		packedTags = protowire.AppendVarint(packedTags, uint64(t))
	}

	// a single MoveTo from the (0, 0) cursor every feature starts at
	var geometry []byte
	geometry = protowire.AppendVarint(geometry, command(cmdMoveTo, 1))
	geometry = protowire.AppendVarint(geometry, protowire.EncodeZigZag(pt.X()))
	geometry = protowire.AppendVarint(geometry, protowire.EncodeZigZag(pt.Y()))

	var b []byte
	b = protowire.AppendTag(b, featureTags, protowire.BytesType)
	b = protowire.AppendBytes(b, packedTags)
	b = protowire.AppendTag(b, featureType, protowire.VarintType)
	b = protowire.AppendVarint(b, geomTypePoint)
	b = protowire.AppendTag(b, featureGeometry, protowire.BytesType)
	b = protowire.AppendBytes(b, geometry)
	return b
}

func command(id, count uint64) uint64 {
	return id&0x7 | count<<3
}

// checkTags walks encoded features and verifies every tag points into the key and value tables.
func checkTags(features []byte, nKeys, nValues uint32) error {
	for len(features) > 0 {
		_, _, n := protowire.ConsumeTag(features)
		if n < 0 {
			return protowire.ParseError(n)
		}
		feature, m := protowire.ConsumeBytes(features[n:])
		if m < 0 {
			return protowire.ParseError(m)
		}
		features = features[n+m:]

		for len(feature) > 0 {
			num, typ, n := protowire.ConsumeTag(feature)
			if n < 0 {
				return protowire.ParseError(n)
			}
			feature = feature[n:]
			if num != featureTags {
				m := protowire.ConsumeFieldValue(num, typ, feature)
				if m < 0 {
					return protowire.ParseError(m)
				}
				feature = feature[m:]
				continue
			}
			packed, m := protowire.ConsumeBytes(feature)
			if m < 0 {
				return protowire.ParseError(m)
			}
			feature = feature[m:]
			for i := 0; len(packed) > 0; i++ {
				idx, k := protowire.ConsumeVarint(packed)
				if k < 0 {
					return protowire.ParseError(k)
				}
				packed = packed[k:]
				limit := nKeys
				if i%2 == 1 {
					limit = nValues
				}
				if idx >= uint64(limit) {
					return fmt.Errorf("tag %d refers to entry %d of a table with %d entries", i, idx, limit)
				}
			}
		}
	}
	return nil
}
