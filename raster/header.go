package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/perimeterx/marshmallow"
)

var headerLineRegex = regexp.MustCompile(`^(\w+)\s+(\S+)`)

// PixelType as written in the PIXELTYPE header key.
type PixelType string

const (
	Float       PixelType = "FLOAT"
	SignedInt   PixelType = "SIGNEDINT"
	UnsignedInt PixelType = "UNSIGNEDINT"
)

// Header is the ESRI BIL header (.hdr) describing a band interleaved raster.
type Header struct {
	// Byte order of the data file: I (Intel, little endian) or M (Motorola, big endian)
	ByteOrder string `default:"I" validate:"oneof=I M" json:"BYTEORDER"`
	// Interleaving of bands; only single band files are supported so any layout reads the same
	Layout string `default:"BIL" json:"LAYOUT"`
	// Number of rows in the image
	NRows uint `validate:"required,min=1" json:"NROWS"`
	// Number of columns in the image
	NCols uint `validate:"required,min=1" json:"NCOLS"`
	// Number of bands
	NBands uint `default:"1" validate:"eq=1" json:"NBANDS"`
	// Bits per sample
	NBits uint `default:"32" validate:"oneof=8 16 32 64" json:"NBITS"`
	// How a sample's bits should be read
	PixelType PixelType `default:"FLOAT" validate:"oneof=FLOAT SIGNEDINT UNSIGNEDINT" json:"PIXELTYPE"`
	// Longitude of the center of the upper-left cell
	ULXMap float64 `json:"ULXMAP"`
	// Latitude of the center of the upper-left cell
	ULYMap float64 `json:"ULYMAP"`
	// Cell width in degrees
	XDim float64 `validate:"required,gt=0" json:"XDIM"`
	// Cell height in degrees
	YDim float64 `validate:"required,gt=0" json:"YDIM"`
	// Sample value marking a cell without data, only meaningful when HasNoData is set
	NoData    float64 `json:"NODATA"`
	HasNoData bool    `json:"-"`
	// Keys not known to this struct (e.g. BANDROWBYTES, TOTALROWBYTES)
	Extra map[string]interface{} `json:"-"`
}

// ReadHeaderFile reads and validates the header file at path.
func ReadHeaderFile(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("could not open header file: %w", err)
	}
	defer f.Close()
	header, err := ParseHeader(f)
	if err != nil {
		return header, fmt.Errorf("could not read header file %s: %w", path, err)
	}
	return header, nil
}

// ParseHeader reads "KEY VALUE" lines, keys are case-insensitive. Values that parse as a number become numbers,
// anything else stays a string. Lines not looking like that are skipped.
func ParseHeader(r io.Reader) (Header, error) {
	raw := make(map[string]interface{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := parseHeaderLine(scanner.Text())
		if ok {
			raw[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return Header{}, err
	}
	var header Header
	err := header.UnmarshalJSONFromMap(raw)
	return header, err
}

func parseHeaderLine(line string) (string, interface{}, bool) {
	parsed := headerLineRegex.FindStringSubmatch(line)
	if parsed == nil {
		return "", nil, false
	}
	key := strings.ToUpper(parsed[1])
	if f, err := strconv.ParseFloat(parsed[2], 64); err == nil {
		return key, f, true
	}
	return key, parsed[2], true
}

func (h *Header) UnmarshalJSONFromMap(data interface{}) error {
	err := defaults.Set(h)
	if err != nil {
		return err
	}

	dataMap, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Errorf(`data is not a map but a %T`, data)
	}

	_, h.HasNoData = dataMap["NODATA"]
	h.Extra, err = marshmallow.UnmarshalFromJSONMap(dataMap, h, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err = validate.Struct(h); err != nil {
		return err
	}
	return h.validatePixelType()
}

func (h *Header) validatePixelType() error {
	switch {
	case h.PixelType == Float && (h.NBits == 32 || h.NBits == 64):
	case h.PixelType != Float && h.NBits <= 32:
	default:
		return fmt.Errorf("unsupported combination of PIXELTYPE %s and NBITS %d", h.PixelType, h.NBits)
	}
	return nil
}

// SampleSize is the number of bytes per cell in the data file.
func (h *Header) SampleSize() int {
	return int(h.NBits / 8)
}
