package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alecKarfonta/electroplating/pkg/geometry"
)

// ParseError reports a malformed STL stream. No partial mesh is ever
// returned alongside a ParseError.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stl: %s: %v", e.Msg, e.Err)
	}
	return "stl: " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(err error, format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// ParseFile reads an STL file and returns a Mesh.
// It automatically detects whether the file is ASCII or binary format.
func ParseFile(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// sniffLen is how far into the stream the format sniff looks for a facet
// keyword. Large enough that ASCII files with long solid names or leading
// padding are still recognized.
const sniffLen = 32 * 1024

// Parse reads an STL byte stream and returns a Mesh. ASCII streams start
// with "solid" and contain a facet block within the sniff window; anything
// else is decoded as the binary form.
func Parse(r io.Reader) (*Mesh, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	// Binary files are allowed to start with "solid" too, so the sniff
	// requires an actual facet keyword in the first chunk.
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, parseErrorf(err, "failed to read header")
	}
	if len(head) == 0 {
		return nil, parseErrorf(nil, "empty stream")
	}

	if bytes.HasPrefix(head, []byte("solid")) && bytes.Contains(head, []byte("facet")) {
		return parseASCII(br)
	}
	return parseBinary(br)
}

// parseASCII parses an ASCII STL stream
func parseASCII(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	mesh := NewMesh("")

	var currentNormal r3.Vec
	var vertices []r3.Vec
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, parseErrorf(nil, "malformed facet declaration on line %d", lineNo)
			}
			normal, err := parseVec(fields[2:5])
			if err != nil {
				return nil, parseErrorf(err, "unreadable facet normal on line %d", lineNo)
			}
			currentNormal = normal

		case "vertex":
			if len(fields) < 4 {
				return nil, parseErrorf(nil, "malformed vertex on line %d", lineNo)
			}
			vertex, err := parseVec(fields[1:4])
			if err != nil {
				return nil, parseErrorf(err, "unreadable vertex on line %d", lineNo)
			}
			vertices = append(vertices, vertex)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, parseErrorf(nil, "facet ending on line %d has %d vertices, want 3", lineNo, len(vertices))
			}
			mesh.AddTriangle(geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, parseErrorf(err, "error reading ASCII STL")
	}
	if len(vertices) != 0 {
		return nil, parseErrorf(nil, "truncated facet at end of stream")
	}

	return mesh, nil
}

func parseVec(fields []string) (r3.Vec, error) {
	var v [3]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return r3.Vec{}, err
		}
		v[i] = f
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

// parseBinary parses a binary STL stream: an 80-byte header, a little-endian
// uint32 triangle count, then 50-byte records. The count must match the
// number of records remaining in the stream exactly.
func parseBinary(r io.Reader) (*Mesh, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, parseErrorf(err, "failed to read header")
	}

	mesh := NewMesh("")
	headerStr := string(bytes.TrimRight(header, "\x00"))
	if len(headerStr) > 0 {
		mesh.Name = strings.TrimSpace(headerStr)
	}

	var triangleCount uint32
	if err := binary.Read(r, binary.LittleEndian, &triangleCount); err != nil {
		return nil, parseErrorf(err, "failed to read triangle count")
	}

	record := make([]byte, recordSize)
	for i := uint32(0); i < triangleCount; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, parseErrorf(err, "truncated record for triangle %d of %d", i, triangleCount)
		}

		normal := getVec(record[0:12])
		v1 := getVec(record[12:24])
		v2 := getVec(record[24:36])
		v3 := getVec(record[36:48])
		// Bytes 48:50 are the attribute count, ignored.

		mesh.AddTriangle(geometry.NewTriangle(normal, v1, v2, v3))
	}

	// The header count is authoritative; trailing data means the stream
	// does not match its declared length.
	var trailing [1]byte
	if n, _ := r.Read(trailing[:]); n != 0 {
		return nil, parseErrorf(nil, "stream contains data beyond the %d declared triangles", triangleCount)
	}

	return mesh, nil
}

func getVec(b []byte) r3.Vec {
	_ = b[11] // early bounds check
	return r3.Vec{
		X: float64(f32(binary.LittleEndian.Uint32(b[0:4]))),
		Y: float64(f32(binary.LittleEndian.Uint32(b[4:8]))),
		Z: float64(f32(binary.LittleEndian.Uint32(b[8:12]))),
	}
}
