package bounds

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdok/rastertile/raster"
)

func newTestGrid(t *testing.T) *raster.Grid {
	t.Helper()
	grid, err := raster.NewGrid([]float64{1.0, 2.0, 3.0, raster.NoData}, 2, 2, 10, 10, 1, 1)
	require.NoError(t, err)
	return grid
}

func TestNormalize(t *testing.T) {
	sw, ne := Normalize(Corner{11, 9}, Corner{9, 11})
	assert.Equal(t, Corner{9, 9}, sw)
	assert.Equal(t, Corner{11, 11}, ne)
}

func TestValuesWithinBounds(t *testing.T) {
	grid := newTestGrid(t)
	got := Collect(ValuesWithinBounds(Corner{9, 9}, Corner{11, 11}, grid))
	want := []Sample{
		{Index: 2, Value: 3, Lat: 9, Lng: 10},
		{Index: 0, Value: 1, Lat: 10, Lng: 10},
		{Index: 1, Value: 2, Lat: 10, Lng: 11},
	}
	assert.Equal(t, want, got)
}

func TestValuesWithinBounds_Restartable(t *testing.T) {
	grid := newTestGrid(t)
	seq := ValuesWithinBounds(Corner{11, 11}, Corner{9, 9}, grid)
	first := Collect(seq)
	second := Collect(seq)
	assert.Len(t, first, 3)
	assert.Equal(t, first, second)

	// stopping early is fine too
	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestValuesWithinBounds_KeepsZeros(t *testing.T) {
	grid, err := raster.NewGrid([]float64{0, 4}, 1, 2, 0, 0, 1, 1)
	require.NoError(t, err)
	got := Collect(ValuesWithinBounds(Corner{0, 0}, Corner{0, 1}, grid))
	require.Len(t, got, 2)
	assert.Equal(t, 0.0, got[0].Value)
}

func TestValuesWithinBounds_NonFiniteCorners(t *testing.T) {
	grid := newTestGrid(t)
	inf := math.Inf(1)
	tests := map[string][2]Corner{
		"west at -Inf":  {{0, -inf}, {11, 11}},
		"east at +Inf":  {{9, 9}, {11, inf}},
		"south at -Inf": {{-inf, 9}, {11, 11}},
		"all infinite":  {{-inf, -inf}, {inf, inf}},
		"NaN":           {{math.NaN(), 9}, {11, 11}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, Collect(ValuesWithinBounds(tt[0], tt[1], grid)))
			_, ok := Average(tt[0][0], tt[0][1], tt[1][0], tt[1][1], grid)
			assert.False(t, ok)
		})
	}
}

func TestValuesWithinBounds_HugeCorners(t *testing.T) {
	grid := newTestGrid(t)
	tests := map[string]struct {
		huge, plain [2]Corner
	}{
		"west at -1e300": {
			huge:  [2]Corner{{9, -1e300}, {11, 11}},
			plain: [2]Corner{{9, 9}, {11, 11}},
		},
		"north east at +1e300": {
			huge:  [2]Corner{{9, 9}, {1e300, 1e300}},
			plain: [2]Corner{{9, 9}, {20, 20}},
		},
		"everything": {
			huge:  [2]Corner{{-1e300, -1e300}, {1e300, 1e300}},
			plain: [2]Corner{{-100, -100}, {100, 100}},
		},
		"far away": {
			huge:  [2]Corner{{1e300, 1e300}, {2e300, 2e300}},
			plain: [2]Corner{{50, 50}, {60, 60}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			want := Collect(ValuesWithinBounds(tt.plain[0], tt.plain[1], grid))
			got := Collect(ValuesWithinBounds(tt.huge[0], tt.huge[1], grid))
			assert.Equal(t, want, got)
		})
	}
}

func TestValuesWithinBounds_WrapsPastEastEdge(t *testing.T) {
	grid := newTestGrid(t)
	got := Collect(ValuesWithinBounds(Corner{10, 12}, Corner{10, 20}, grid))
	assert.Equal(t, []Sample{{Index: 2, Value: 3, Lat: 10, Lng: 12}}, got)
}

func TestAverage(t *testing.T) {
	grid := newTestGrid(t)
	tests := map[string]struct {
		lat0, lng0, lat1, lng1 float64
		want                   float64
		ok                     bool
	}{
		"whole grid, null excluded": {lat0: 9, lng0: 9, lat1: 11, lng1: 11, want: 2.0, ok: true},
		"corners swapped":           {lat0: 11, lng0: 11, lat1: 9, lng1: 9, want: 2.0, ok: true},
		"single cell":               {lat0: 10, lng0: 11, lat1: 10, lng1: 11, want: 2.0, ok: true},
		"only the no-data cell":     {lat0: 9, lng0: 11, lat1: 9, lng1: 11, ok: false},
		"fully outside the grid":    {lat0: 50, lng0: 50, lat1: 60, lng1: 60, ok: false},
		"north west of the grid":    {lat0: 20, lng0: -20, lat1: 30, lng1: -10, ok: false},
		"west edge at -1e300":       {lat0: 9, lng0: -1e300, lat1: 11, lng1: 11, want: 2.0, ok: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := Average(tt.lat0, tt.lng0, tt.lat1, tt.lng1, grid)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestAverage_ZeroIsNotAbsent(t *testing.T) {
	grid, err := raster.NewGrid([]float64{-1, 1}, 1, 2, 0, 0, 1, 1)
	require.NoError(t, err)
	got, ok := Average(0, 0, 0, 1, grid)
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)
}

func TestToFeatureCollection(t *testing.T) {
	grid := newTestGrid(t)
	fc := ToFeatureCollection(ValuesWithinBounds(Corner{9, 9}, Corner{11, 11}, grid))
	require.Len(t, fc.Features, 3)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[10,9]},"properties":{"index":2,"value":3}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[10,10]},"properties":{"index":0,"value":1}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[11,10]},"properties":{"index":1,"value":2}}
	]}`, string(raw))
}
