// Package pyramid cuts point features into a quadtree of vector tiles.
//
// Every feature is projected once onto an integer grid of
// extent * 2^maxZoom cells per axis (the deepest level). A tile at level l
// covers extent * 2^(maxZoom-l) of those cells; its tile-local coordinates
// are the deepest level offsets shifted right by maxZoom-l.
//
// Quadrants (rows grow southward, like slippy map tiles):
//
//	|-------|
//	| 0 | 1 |
//	|-------|
//	| 2 | 3 |
//	|-------|
//
// Edges: the west and north edges of a tile are inclusive, east and south exclusive.
package pyramid

import (
	"math"
	"slices"

	"github.com/go-spatial/geom/slippy"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"

	"github.com/pdok/rastertile/features"
	"github.com/pdok/rastertile/intgeom"
	"github.com/pdok/rastertile/mathhelp"
	"github.com/pdok/rastertile/morton"
)

type Level = uint

// Feature is a point of a Tile in tile-local coordinates.
type Feature struct {
	Point intgeom.Point
	Value float64
}

// Tile holds the features rendered at one z/x/y. It is never empty.
type Tile struct {
	slippy.Tile
	Features []Feature
}

// Pyramid is the complete, immutable set of tiles for zoom levels 0 through Options.MaxZoom.
// It is safe for concurrent use.
type Pyramid struct {
	options      Options
	featureCount int
	tiles        map[Level]map[morton.Z]*Tile
}

// Quadrant is a node of the quadtree while building.
type Quadrant struct {
	level     Level
	z         morton.Z
	intExtent intgeom.Extent // in deepest level cells, maxX and maxY are exclusive
}

type worldPoint struct {
	intgeom.Point
	value float64
}

type builder struct {
	options Options
	points  []worldPoint
}

// Build projects the features and builds all tiles eagerly.
// The same features and options always give the same tiles.
func Build(fs []features.Feature, options Options) (*Pyramid, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	b := builder{
		options: options,
		points:  make([]worldPoint, 0, len(fs)),
	}
	worldSize := options.worldSize()
	skipped := 0
	for _, f := range fs {
		if !isFinite(f.Lng()) || !isFinite(f.Lat()) {
			skipped++
			continue
		}
		b.points = append(b.points, worldPoint{Point: toWorld(f.Lng(), f.Lat(), worldSize), value: f.Value})
	}
	if skipped > 0 {
		log.Warnf("skipped %d features without a finite position", skipped)
	}

	p := &Pyramid{
		options:      options,
		featureCount: len(b.points),
		tiles:        make(map[Level]map[morton.Z]*Tile, options.MaxZoom+1),
	}
	for l := Level(0); l <= options.MaxZoom; l++ {
		p.tiles[l] = make(map[morton.Z]*Tile)
	}
	if len(b.points) == 0 {
		return p, nil
	}

	members := make([]int, len(b.points))
	for i := range members {
		members[i] = i
	}
	root := Quadrant{
		level:     0,
		z:         0,
		intExtent: intgeom.Extent{0, 0, worldSize, worldSize},
	}
	for _, tile := range b.build(root, members) {
		p.tiles[Level(tile.Z)][morton.MustToZ(tile.X, tile.Y)] = tile
	}
	return p, nil
}

// build renders the tile of quadrant q and recurses into its children.
// Subtrees share nothing, so the first levels fork them off concurrently.
func (b *builder) build(q Quadrant, members []int) []*Tile {
	tile := b.render(q, members)
	if q.level == b.options.MaxZoom {
		return []*Tile{tile}
	}

	children, childMembers := b.split(q, members)
	var childTiles [4][]*Tile
	if q.level < b.options.ParallelLevels {
		var g errgroup.Group
		for i := range children {
			if len(childMembers[i]) == 0 {
				continue
			}
			g.Go(func() error {
				childTiles[i] = b.build(children[i], childMembers[i])
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range children {
			if len(childMembers[i]) == 0 {
				continue
			}
			childTiles[i] = b.build(children[i], childMembers[i])
		}
	}

	tiles := []*Tile{tile}
	for i := range childTiles {
		tiles = append(tiles, childTiles[i]...)
	}
	return tiles
}

// split distributes members over the four children of q. A member lands in every child
// whose buffered extent contains it, so with a zero buffer it lands in exactly one.
func (b *builder) split(q Quadrant, members []int) ([4]Quadrant, [4][]int) {
	var children [4]Quadrant
	var childExtents [4]intgeom.Extent
	buffer := int64(b.options.Buffer) << b.options.shift(q.level+1)
	for i := range children {
		quadrant := morton.Q(i)
		children[i] = Quadrant{
			level:     q.level + 1,
			z:         morton.Child(q.z, quadrant),
			intExtent: q.intExtent.Quadrant(quadrant&morton.East != 0, quadrant&morton.South != 0),
		}
		childExtents[i] = children[i].intExtent.Grow(buffer)
	}

	var childMembers [4][]int
	for _, m := range members {
		pt := b.points[m].Point
		for i := range childExtents {
			if childExtents[i].ContainsPoint(pt) {
				childMembers[i] = append(childMembers[i], m)
			}
		}
	}
	return children, childMembers
}

// render turns the members of q into tile-local features. Below the deepest level,
// at most one point per tolerance-sized cell is kept: the first one in insertion order.
func (b *builder) render(q Quadrant, members []int) *Tile {
	x, y := morton.FromZ(q.z)
	tile := &Tile{
		Tile:     *slippy.NewTile(q.level, x, y),
		Features: make([]Feature, 0, len(members)),
	}

	shift := b.options.shift(q.level)
	origin := q.intExtent.Min()
	decimate := q.level < b.options.MaxZoom && b.options.Tolerance > 0
	var cellSize int64
	var seen map[intgeom.Point]struct{}
	if decimate {
		cellSize = int64(math.Ceil(b.options.Tolerance))
		seen = make(map[intgeom.Point]struct{}, len(members))
	}

	for _, m := range members {
		local := b.points[m].Sub(origin).Shift(shift)
		if decimate {
			cell := local.Cell(cellSize)
			if _, taken := seen[cell]; taken {
				continue
			}
			seen[cell] = struct{}{}
		}
		tile.Features = append(tile.Features, Feature{Point: local, Value: b.points[m].value})
	}
	return tile
}

// GetTile returns the tile at z/x/y. ok is false beyond MaxZoom, outside the
// matrix of 2^z by 2^z tiles, or where no feature falls.
func (p *Pyramid) GetTile(z, x, y uint) (*Tile, bool) {
	if z > p.options.MaxZoom {
		return nil, false
	}
	size := mathhelp.Pow2(z)
	if x >= size || y >= size {
		return nil, false
	}
	key, ok := morton.ToZ(x, y)
	if !ok {
		return nil, false
	}
	tile, ok := p.tiles[z][key]
	if !ok || len(tile.Features) == 0 {
		return nil, false
	}
	return tile, true
}

// Options returns the options the pyramid was built with.
func (p *Pyramid) Options() Options {
	return p.options
}

// LevelStats counts what ended up on one zoom level.
type LevelStats struct {
	Level    Level
	Tiles    int
	Features int
}

// Stats returns per level tile and rendered feature counts, shallowest level first.
func (p *Pyramid) Stats() []LevelStats {
	levels := maps.Keys(p.tiles)
	slices.Sort(levels)
	stats := make([]LevelStats, 0, len(levels))
	for _, l := range levels {
		s := LevelStats{Level: l, Tiles: len(p.tiles[l])}
		for _, tile := range p.tiles[l] {
			s.Features += len(tile.Features)
		}
		stats = append(stats, s)
	}
	return stats
}

// LogStats writes Stats to the log.
func (p *Pyramid) LogStats() {
	log.Infof("    total features: %d", p.featureCount)
	for _, s := range p.Stats() {
		log.Infof("    zoom %2d: %7d tiles, %9d points", s.Level, s.Tiles, s.Features)
	}
}
