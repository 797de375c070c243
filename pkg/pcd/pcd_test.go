package pcd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/maralbahari/pcd-segmentation-interface/pkg/cloud"
)

// createTestASCII builds a minimal ascii PCD with x/y/z/intensity fields.
func createTestASCII(points [][4]float32) []byte {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "# .PCD v0.7 - Point Cloud Data file format\n")
	fmt.Fprintf(buf, "VERSION 0.7\n")
	fmt.Fprintf(buf, "FIELDS x y z intensity\n")
	fmt.Fprintf(buf, "SIZE 4 4 4 4\n")
	fmt.Fprintf(buf, "TYPE F F F F\n")
	fmt.Fprintf(buf, "COUNT 1 1 1 1\n")
	fmt.Fprintf(buf, "WIDTH %d\n", len(points))
	fmt.Fprintf(buf, "HEIGHT 1\n")
	fmt.Fprintf(buf, "VIEWPOINT 0 0 0 1 0 0 0\n")
	fmt.Fprintf(buf, "POINTS %d\n", len(points))
	fmt.Fprintf(buf, "DATA ascii\n")
	for _, p := range points {
		fmt.Fprintf(buf, "%g %g %g %g\n", p[0], p[1], p[2], p[3])
	}
	return buf.Bytes()
}

// createTestBinary builds a binary PCD with x/y/z float32 fields.
func createTestBinary(points [][3]float32) []byte {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "VERSION 0.7\n")
	fmt.Fprintf(buf, "FIELDS x y z\n")
	fmt.Fprintf(buf, "SIZE 4 4 4\n")
	fmt.Fprintf(buf, "TYPE F F F\n")
	fmt.Fprintf(buf, "COUNT 1 1 1\n")
	fmt.Fprintf(buf, "WIDTH %d\n", len(points))
	fmt.Fprintf(buf, "HEIGHT 1\n")
	fmt.Fprintf(buf, "POINTS %d\n", len(points))
	fmt.Fprintf(buf, "DATA binary\n")
	for _, p := range points {
		for _, v := range p {
			binary.Write(buf, binary.LittleEndian, v)
		}
	}
	return buf.Bytes()
}

func TestParseASCII(t *testing.T) {
	data := createTestASCII([][4]float32{
		{1, 2, 3, 0.5},
		{4, 5, 6, 0.9},
	})

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if f.Version != "0.7" {
		t.Errorf("Version = %s, want 0.7", f.Version)
	}
	if f.NumPoints() != 2 {
		t.Errorf("NumPoints() = %d, want 2", f.NumPoints())
	}
	if f.Channels != 4 {
		t.Errorf("Channels = %d, want 4", f.Channels)
	}
	if f.Data[4] != 4 || f.Data[7] != 0.9 {
		t.Errorf("second point = %v, want [4 5 6 0.9]", f.Data[4:8])
	}
}

func TestParseBinary(t *testing.T) {
	data := createTestBinary([][3]float32{
		{1.5, -2.5, 3.5},
		{0, 0, 1},
	})

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if f.NumPoints() != 2 {
		t.Errorf("NumPoints() = %d, want 2", f.NumPoints())
	}
	if f.Data[0] != 1.5 || f.Data[1] != -2.5 || f.Data[2] != 3.5 {
		t.Errorf("first point = %v, want [1.5 -2.5 3.5]", f.Data[0:3])
	}
}

func TestParseBinaryNonFloatWidened(t *testing.T) {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "VERSION 0.7\n")
	fmt.Fprintf(buf, "FIELDS x y z label\n")
	fmt.Fprintf(buf, "SIZE 4 4 4 2\n")
	fmt.Fprintf(buf, "TYPE F F F U\n")
	fmt.Fprintf(buf, "COUNT 1 1 1 1\n")
	fmt.Fprintf(buf, "WIDTH 1\nHEIGHT 1\nPOINTS 1\n")
	fmt.Fprintf(buf, "DATA binary\n")
	binary.Write(buf, binary.LittleEndian, float32(1))
	binary.Write(buf, binary.LittleEndian, float32(2))
	binary.Write(buf, binary.LittleEndian, float32(3))
	binary.Write(buf, binary.LittleEndian, uint16(42))

	f, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.Data[3] != 42 {
		t.Errorf("label channel = %v, want 42", f.Data[3])
	}
}

func TestParseTruncatedBinary(t *testing.T) {
	data := createTestBinary([][3]float32{{1, 2, 3}})
	_, err := Parse(data[:len(data)-4])
	if !errors.Is(err, ErrTruncatedData) {
		t.Errorf("Parse(truncated) error = %v, want ErrTruncatedData", err)
	}
}

func TestParseMissingHeader(t *testing.T) {
	_, err := Parse([]byte("VERSION 0.7\nFIELDS x y z\n"))
	if !errors.Is(err, ErrMissingHeader) {
		t.Errorf("Parse(no DATA line) error = %v, want ErrMissingHeader", err)
	}
}

func TestParseUnsupportedEncoding(t *testing.T) {
	data := []byte("VERSION 0.7\nFIELDS x y z\nSIZE 4 4 4\nTYPE F F F\n" +
		"COUNT 1 1 1\nWIDTH 0\nHEIGHT 1\nPOINTS 0\nDATA binary_compressed\n")
	_, err := Parse(data)
	if !errors.Is(err, ErrUnsupportedData) {
		t.Errorf("Parse(binary_compressed) error = %v, want ErrUnsupportedData", err)
	}
}

func TestParseFieldMismatch(t *testing.T) {
	data := []byte("VERSION 0.7\nFIELDS x y z\nSIZE 4 4\nTYPE F F F\n" +
		"COUNT 1 1 1\nWIDTH 0\nHEIGHT 1\nPOINTS 0\nDATA ascii\n")
	_, err := Parse(data)
	if !errors.Is(err, ErrFieldMismatch) {
		t.Errorf("Parse(mismatched SIZE) error = %v, want ErrFieldMismatch", err)
	}
}

func TestFileBuffer(t *testing.T) {
	data := createTestASCII([][4]float32{{1, 2, 3, 9}})
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	b := f.Buffer(cloud.FormatXZY)
	if b.NumPoints() != 1 {
		t.Fatalf("NumPoints() = %d, want 1", b.NumPoints())
	}
	c := b.Coords(0)
	if c.X != 1 || c.Y != 3 || c.Z != 2 {
		t.Errorf("Coords(0) = %v, want {1 3 2}", c)
	}
}
