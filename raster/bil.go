package raster

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
)

// ReadDataFile reads the band interleaved samples described by header.
// The whole file is read into memory.
func ReadDataFile(path string, header Header) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read data file: %w", err)
	}
	return DecodeSamples(data, header)
}

// DecodeSamples turns raw sample bytes into float64s.
// No-data samples become NaN when the header has a NODATA value.
func DecodeSamples(data []byte, header Header) ([]float64, error) {
	size := header.SampleSize()
	count := int(header.NRows * header.NCols)
	if len(data) != count*size {
		return nil, fmt.Errorf("expected %d samples of %d bytes (%d bytes), got %d bytes", count, size, count*size, len(data))
	}
	var order binary.ByteOrder = binary.LittleEndian
	if header.ByteOrder == "M" {
		order = binary.BigEndian
	}
	read, err := sampleReader(header, order)
	if err != nil {
		return nil, err
	}

	noData := header.NoData
	if header.PixelType == Float && header.NBits == 32 {
		// compare at the precision the samples were stored with
		noData = float64(float32(noData))
	}
	samples := make([]float64, count)
	noDataCount := 0
	for i := range samples {
		v := read(data[i*size : (i+1)*size])
		if header.HasNoData && v == noData {
			v = NoData
			noDataCount++
		}
		samples[i] = v
	}
	log.Debugf("decoded %d samples, %d without data", count, noDataCount)
	return samples, nil
}

func sampleReader(header Header, order binary.ByteOrder) (func([]byte) float64, error) {
	switch header.PixelType {
	case Float:
		switch header.NBits {
		case 32:
			return func(b []byte) float64 { return float64(math.Float32frombits(order.Uint32(b))) }, nil
		case 64:
			return func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) }, nil
		}
	case SignedInt:
		switch header.NBits {
		case 8:
			return func(b []byte) float64 { return float64(int8(b[0])) }, nil
		case 16:
			return func(b []byte) float64 { return float64(int16(order.Uint16(b))) }, nil
		case 32:
			return func(b []byte) float64 { return float64(int32(order.Uint32(b))) }, nil
		}
	case UnsignedInt:
		switch header.NBits {
		case 8:
			return func(b []byte) float64 { return float64(b[0]) }, nil
		case 16:
			return func(b []byte) float64 { return float64(order.Uint16(b)) }, nil
		case 32:
			return func(b []byte) float64 { return float64(order.Uint32(b)) }, nil
		}
	}
	return nil, fmt.Errorf("unsupported combination of PIXELTYPE %s and NBITS %d", header.PixelType, header.NBits)
}
