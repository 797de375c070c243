// Package pcd parses PCD (Point Cloud Data) v0.7 files as produced by the
// PCL tooling, supporting ascii and binary payloads.
package pcd

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/cloud"
)

// PCD format errors.
var (
	ErrMissingHeader      = errors.New("missing PCD header fields")
	ErrUnsupportedVersion = errors.New("unsupported PCD version")
	ErrUnsupportedData    = errors.New("unsupported PCD data encoding")
	ErrFieldMismatch      = errors.New("FIELDS/SIZE/TYPE/COUNT length mismatch")
	ErrTruncatedData      = errors.New("truncated PCD data")
)

// File is a parsed PCD file. All field values are widened or narrowed to
// float32, channel-interleaved in field order.
type File struct {
	Version  string
	Fields   []string
	Width    int
	Height   int
	Data     []float32
	Channels int
}

// NumPoints returns the number of points in the file.
func (f *File) NumPoints() int {
	if f.Channels == 0 {
		return 0
	}
	return len(f.Data) / f.Channels
}

// Buffer converts the parsed file into a point buffer using the given
// coordinate format.
func (f *File) Buffer(format cloud.Format) *cloud.Buffer {
	return cloud.NewBuffer(f.Data, f.Channels, format)
}

// header collects the declarations preceding the DATA line.
type header struct {
	version string
	fields  []string
	sizes   []int
	types   []string
	counts  []int
	width   int
	height  int
	points  int
	data    string
}

// ParseFile reads and parses a PCD file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PCD file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses PCD data from memory.
func Parse(data []byte) (*File, error) {
	h, body, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	f := &File{
		Version:  h.version,
		Fields:   h.fields,
		Width:    h.width,
		Height:   h.height,
		Channels: totalCount(h),
	}

	switch h.data {
	case "ascii":
		f.Data, err = parseASCII(h, body)
	case "binary":
		f.Data, err = parseBinary(h, body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedData, h.data)
	}
	if err != nil {
		return nil, err
	}

	return f, nil
}

// parseHeader consumes header lines up to and including DATA, returning the
// remaining payload bytes.
func parseHeader(data []byte) (*header, []byte, error) {
	h := &header{width: -1, height: 1, points: -1}
	offset := 0

	for offset < len(data) {
		nl := bytes.IndexByte(data[offset:], '\n')
		if nl < 0 {
			return nil, nil, ErrMissingHeader
		}
		line := strings.TrimSpace(string(data[offset : offset+nl]))
		offset += nl + 1

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		key := strings.ToUpper(parts[0])
		args := parts[1:]

		switch key {
		case "VERSION":
			if len(args) != 1 {
				return nil, nil, fmt.Errorf("%w: VERSION", ErrMissingHeader)
			}
			h.version = args[0]
			if h.version != "0.7" && h.version != ".7" {
				return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, h.version)
			}
		case "FIELDS":
			h.fields = args
		case "SIZE":
			h.sizes = atoiAll(args)
		case "TYPE":
			h.types = args
		case "COUNT":
			h.counts = atoiAll(args)
		case "WIDTH":
			h.width = atoiOr(args, -1)
		case "HEIGHT":
			h.height = atoiOr(args, 1)
		case "POINTS":
			h.points = atoiOr(args, -1)
		case "VIEWPOINT":
			// Sensor pose; not used for annotation.
		case "DATA":
			if len(args) != 1 {
				return nil, nil, fmt.Errorf("%w: DATA", ErrMissingHeader)
			}
			h.data = args[0]
			if err := validateHeader(h); err != nil {
				return nil, nil, err
			}
			return h, data[offset:], nil
		default:
			zap.L().Warn("unknown PCD header line, skipping", zap.String("line", line))
		}
	}

	return nil, nil, ErrMissingHeader
}

func validateHeader(h *header) error {
	if len(h.fields) == 0 || h.width < 0 {
		return ErrMissingHeader
	}
	if h.counts == nil {
		h.counts = make([]int, len(h.fields))
		for i := range h.counts {
			h.counts[i] = 1
		}
	}
	if len(h.sizes) != len(h.fields) || len(h.types) != len(h.fields) ||
		len(h.counts) != len(h.fields) {
		return ErrFieldMismatch
	}
	if h.points < 0 {
		h.points = h.width * h.height
	}
	return nil
}

func totalCount(h *header) int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// parseASCII parses whitespace-separated numeric rows, one point per line.
func parseASCII(h *header, body []byte) ([]float32, error) {
	channels := totalCount(h)
	values := make([]float32, 0, h.points*channels)

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != channels {
			return nil, fmt.Errorf("%w: row has %d values, want %d",
				ErrTruncatedData, len(fields), channels)
		}
		for _, fv := range fields {
			v, err := strconv.ParseFloat(fv, 32)
			if err != nil {
				return nil, fmt.Errorf("parsing PCD value %q: %w", fv, err)
			}
			values = append(values, float32(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning PCD data: %w", err)
	}

	if len(values) < h.points*channels {
		return nil, fmt.Errorf("%w: got %d points, header declares %d",
			ErrTruncatedData, len(values)/channels, h.points)
	}
	return values, nil
}

// parseBinary parses the little-endian packed payload, widening every field
// value to float32. Non-float32 source fields log a one-time diagnostic per
// file.
func parseBinary(h *header, body []byte) ([]float32, error) {
	pointSize := 0
	for i := range h.fields {
		pointSize += h.sizes[i] * h.counts[i]
	}
	if len(body) < h.points*pointSize {
		return nil, fmt.Errorf("%w: %d payload bytes, want %d",
			ErrTruncatedData, len(body), h.points*pointSize)
	}

	warned := false
	channels := totalCount(h)
	values := make([]float32, 0, h.points*channels)

	for p := 0; p < h.points; p++ {
		offset := p * pointSize
		for i := range h.fields {
			for c := 0; c < h.counts[i]; c++ {
				v, err := decodeValue(body[offset:], h.types[i], h.sizes[i])
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", h.fields[i], err)
				}
				if !warned && (h.types[i] != "F" || h.sizes[i] != 4) {
					zap.L().Warn("PCD field converted to float32",
						zap.String("field", h.fields[i]),
						zap.String("type", h.types[i]),
						zap.Int("size", h.sizes[i]))
					warned = true
				}
				values = append(values, v)
				offset += h.sizes[i]
			}
		}
	}

	return values, nil
}

// decodeValue reads one field value of the given PCD type/size as float32.
func decodeValue(b []byte, typ string, size int) (float32, error) {
	if len(b) < size {
		return 0, ErrTruncatedData
	}

	switch typ {
	case "F":
		switch size {
		case 4:
			return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
		case 8:
			return float32(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
		}
	case "I":
		switch size {
		case 1:
			return float32(int8(b[0])), nil
		case 2:
			return float32(int16(binary.LittleEndian.Uint16(b))), nil
		case 4:
			return float32(int32(binary.LittleEndian.Uint32(b))), nil
		}
	case "U":
		switch size {
		case 1:
			return float32(b[0]), nil
		case 2:
			return float32(binary.LittleEndian.Uint16(b)), nil
		case 4:
			return float32(binary.LittleEndian.Uint32(b)), nil
		}
	}

	return 0, fmt.Errorf("%w: type %s size %d", ErrUnsupportedData, typ, size)
}

func atoiAll(args []string) []int {
	out := make([]int, len(args))
	for i, a := range args {
		out[i], _ = strconv.Atoi(a)
	}
	return out
}

func atoiOr(args []string, fallback int) int {
	if len(args) != 1 {
		return fallback
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fallback
	}
	return v
}
