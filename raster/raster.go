package raster

import (
	log "github.com/sirupsen/logrus"
)

// ReadFiles reads a header and a data file into a Grid.
func ReadFiles(headerPath, dataPath string) (*Grid, error) {
	header, err := ReadHeaderFile(headerPath)
	if err != nil {
		return nil, err
	}
	samples, err := ReadDataFile(dataPath, header)
	if err != nil {
		return nil, err
	}
	grid, err := FromHeader(header, samples)
	if err != nil {
		return nil, err
	}
	log.Infof("read raster of %d rows x %d columns, upper-left cell at (%v, %v)",
		grid.Rows, grid.Columns, grid.OriginLng, grid.OriginLat)
	return grid, nil
}

// FromHeader builds a Grid from decoded samples and the header describing them.
func FromHeader(header Header, samples []float64) (*Grid, error) {
	return NewGrid(samples, int(header.NRows), int(header.NCols), header.ULYMap, header.ULXMap, header.YDim, header.XDim)
}
