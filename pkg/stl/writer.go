package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// recordSize is the size of one binary STL triangle record: 3x float32
// normal, 9x float32 vertices, uint16 attribute count.
const recordSize = 50

func f32(bits uint32) float32 {
	return math.Float32frombits(bits)
}

// WriteBinary writes the mesh to w in the binary STL format.
func WriteBinary(w io.Writer, m *Mesh) error {
	if int64(len(m.Triangles)) > math.MaxUint32 {
		return fmt.Errorf("mesh exceeds the binary STL triangle limit")
	}

	var header [84]byte
	copy(header[:80], m.Name)
	binary.LittleEndian.PutUint32(header[80:], uint32(len(m.Triangles)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	var record [recordSize]byte
	for i, triangle := range m.Triangles {
		normal := triangle.Normal
		if r3.Norm(normal) == 0 {
			normal = triangle.CalculateNormal()
		}
		putVec(record[0:12], normal)
		putVec(record[12:24], triangle.V1)
		putVec(record[24:36], triangle.V2)
		putVec(record[36:48], triangle.V3)
		binary.LittleEndian.PutUint16(record[48:], 0)

		if _, err := w.Write(record[:]); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return nil
}

// WriteASCII writes the mesh to w in the ASCII STL format.
func WriteASCII(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	name := m.Name
	if name == "" {
		name = "mesh"
	}
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, triangle := range m.Triangles {
		normal := triangle.Normal
		if r3.Norm(normal) == 0 {
			normal = triangle.CalculateNormal()
		}
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", normal.X, normal.Y, normal.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range []r3.Vec{triangle.V1, triangle.V2, triangle.V3} {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	return bw.Flush()
}

// SaveFile writes the mesh to a file in the binary STL format.
func SaveFile(filename string, m *Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := WriteBinary(bw, m); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}
	return nil
}

func putVec(b []byte, v r3.Vec) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(v.Z)))
}
