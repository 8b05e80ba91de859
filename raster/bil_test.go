package raster

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float32Bytes(order binary.ByteOrder, vs ...float32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		order.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func TestDecodeSamples(t *testing.T) {
	base := Header{NRows: 1, NCols: 3, NBands: 1, NBits: 32, PixelType: Float, ByteOrder: "I"}
	tests := map[string]struct {
		header func(h Header) Header
		data   []byte
		want   []float64
	}{
		"float32 little endian": {
			header: func(h Header) Header { return h },
			data:   float32Bytes(binary.LittleEndian, 1.5, -2, 30),
			want:   []float64{1.5, -2, 30},
		},
		"float32 big endian": {
			header: func(h Header) Header { h.ByteOrder = "M"; return h },
			data:   float32Bytes(binary.BigEndian, 1.5, -2, 30),
			want:   []float64{1.5, -2, 30},
		},
		"signed 16 bit": {
			header: func(h Header) Header { h.NBits = 16; h.PixelType = SignedInt; return h },
			data:   []byte{0x01, 0x00, 0xff, 0xff, 0x00, 0x80},
			want:   []float64{1, -1, -32768},
		},
		"unsigned 8 bit": {
			header: func(h Header) Header { h.NBits = 8; h.PixelType = UnsignedInt; return h },
			data:   []byte{0, 7, 255},
			want:   []float64{0, 7, 255},
		},
		"float64": {
			header: func(h Header) Header { h.NBits = 64; return h },
			data: binary.LittleEndian.AppendUint64(binary.LittleEndian.AppendUint64(binary.LittleEndian.AppendUint64(nil,
				math.Float64bits(0.1)), math.Float64bits(0.2)), math.Float64bits(0.3)),
			want: []float64{0.1, 0.2, 0.3},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeSamples(tt.data, tt.header(base))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeSamples_NoData(t *testing.T) {
	header := Header{NRows: 1, NCols: 3, NBands: 1, NBits: 32, PixelType: Float, ByteOrder: "I", NoData: -9999, HasNoData: true}
	got, err := DecodeSamples(float32Bytes(binary.LittleEndian, 1, -9999, 0), header)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1.0, got[0])
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, 0.0, got[2])
}

func TestDecodeSamples_WrongSize(t *testing.T) {
	header := Header{NRows: 2, NCols: 2, NBands: 1, NBits: 32, PixelType: Float, ByteOrder: "I"}
	_, err := DecodeSamples(float32Bytes(binary.LittleEndian, 1, 2, 3), header)
	assert.Error(t, err)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	hdrPath := filepath.Join(dir, "sample.hdr")
	bilPath := filepath.Join(dir, "sample.bil")
	hdr := "BYTEORDER I\nNROWS 2\nNCOLS 2\nNBITS 32\nPIXELTYPE FLOAT\nULXMAP 10\nULYMAP 10\nXDIM 1\nYDIM 1\nNODATA -9999\n"
	require.NoError(t, os.WriteFile(hdrPath, []byte(hdr), 0o600))
	require.NoError(t, os.WriteFile(bilPath, float32Bytes(binary.LittleEndian, 1, 2, 3, -9999), 0o600))

	grid, err := ReadFiles(hdrPath, bilPath)
	require.NoError(t, err)
	assert.Equal(t, 2, grid.Rows)
	assert.Equal(t, 2, grid.Columns)

	v, ok := grid.ValueAt(9, 10)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
	_, ok = grid.ValueAt(9, 11)
	assert.False(t, ok)

	_, err = ReadFiles(filepath.Join(dir, "missing.hdr"), bilPath)
	assert.Error(t, err)
}
