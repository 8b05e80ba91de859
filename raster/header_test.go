package raster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = `BYTEORDER      I
LAYOUT         BIL
NROWS          621
NCOLS          1405
NBANDS         1
NBITS          32
BANDROWBYTES   5620
TOTALROWBYTES  5620
PIXELTYPE      FLOAT
ULXMAP         -125.020833333333
ULYMAP         49.9375
XDIM           0.0416666666666667
YDIM           0.0416666666666667
NODATA         -9999
`

func TestParseHeader(t *testing.T) {
	header, err := ParseHeader(strings.NewReader(sampleHeader))
	require.NoError(t, err)

	assert.Equal(t, "I", header.ByteOrder)
	assert.Equal(t, uint(621), header.NRows)
	assert.Equal(t, uint(1405), header.NCols)
	assert.Equal(t, uint(32), header.NBits)
	assert.Equal(t, Float, header.PixelType)
	assert.InDelta(t, -125.020833333333, header.ULXMap, 1e-12)
	assert.InDelta(t, 49.9375, header.ULYMap, 1e-12)
	assert.InDelta(t, 0.0416666666666667, header.XDim, 1e-15)
	assert.True(t, header.HasNoData)
	assert.Equal(t, -9999.0, header.NoData)
	assert.Equal(t, 4, header.SampleSize())
	assert.Equal(t, map[string]interface{}{"BANDROWBYTES": 5620.0, "TOTALROWBYTES": 5620.0}, header.Extra)
}

func TestParseHeader_Defaults(t *testing.T) {
	header, err := ParseHeader(strings.NewReader("nrows 2\nncols 3\nxdim 1\nydim 1\n\n# comment\n"))
	require.NoError(t, err)

	assert.Equal(t, "I", header.ByteOrder)
	assert.Equal(t, "BIL", header.Layout)
	assert.Equal(t, uint(1), header.NBands)
	assert.Equal(t, uint(32), header.NBits)
	assert.Equal(t, Float, header.PixelType)
	assert.False(t, header.HasNoData)
}

func TestParseHeader_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing rows":        "NCOLS 3\nXDIM 1\nYDIM 1\n",
		"zero columns":        "NROWS 2\nNCOLS 0\nXDIM 1\nYDIM 1\n",
		"negative cell size":  "NROWS 2\nNCOLS 3\nXDIM -1\nYDIM 1\n",
		"unknown byte order":  "NROWS 2\nNCOLS 3\nXDIM 1\nYDIM 1\nBYTEORDER X\n",
		"multiple bands":      "NROWS 2\nNCOLS 3\nXDIM 1\nYDIM 1\nNBANDS 3\n",
		"8 bit floats":        "NROWS 2\nNCOLS 3\nXDIM 1\nYDIM 1\nNBITS 8\n",
		"64 bit integers":     "NROWS 2\nNCOLS 3\nXDIM 1\nYDIM 1\nNBITS 64\nPIXELTYPE SIGNEDINT\n",
		"text where a number": "NROWS many\nNCOLS 3\nXDIM 1\nYDIM 1\n",
	}
	for name, hdr := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHeader(strings.NewReader(hdr))
			assert.Error(t, err)
		})
	}
}
