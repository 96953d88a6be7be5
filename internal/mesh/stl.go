package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Binary STL layout constants
const (
	stlHeaderSize   = 80
	stlCountSize    = 4
	stlFacetSize    = 50 // normal (12) + 3 vertices (36) + attribute count (2)
	stlFloatsPerTri = 12
)

// parseSTL decides between the binary and ASCII encodings. "solid" headers
// are not trusted on their own: some exporters write binary files with a
// "solid" prefix, so the declared facet count is checked against the actual
// payload size first.
func parseSTL(data []byte) (*Mesh, error) {
	if looksBinarySTL(data) {
		return parseBinarySTL(data)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return parseASCIISTL(data)
	}
	return parseBinarySTL(data)
}

func looksBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+stlCountSize {
		return false
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	expected := stlHeaderSize + stlCountSize + int(count)*stlFacetSize
	return len(data) == expected
}

func parseBinarySTL(data []byte) (*Mesh, error) {
	if len(data) < stlHeaderSize+stlCountSize {
		return nil, fmt.Errorf("binary STL too short: %d bytes", len(data))
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	expected := stlHeaderSize + stlCountSize + int(count)*stlFacetSize
	if len(data) < expected {
		return nil, fmt.Errorf("binary STL truncated: declares %d facets, holds %d bytes", count, len(data))
	}
	if count == 0 {
		return nil, ErrEmptyMesh
	}

	mesh := &Mesh{Triangles: make([]Triangle, 0, count)}
	offset := stlHeaderSize + stlCountSize
	for i := uint32(0); i < count; i++ {
		facet := data[offset : offset+stlFacetSize]
		var floats [stlFloatsPerTri]float64
		for j := 0; j < stlFloatsPerTri; j++ {
			bits := binary.LittleEndian.Uint32(facet[j*4:])
			floats[j] = float64(math.Float32frombits(bits))
		}
		// floats[0:3] is the stored normal; recomputed at render time.
		mesh.Triangles = append(mesh.Triangles, Triangle{
			V0: Vec3{floats[3], floats[4], floats[5]},
			V1: Vec3{floats[6], floats[7], floats[8]},
			V2: Vec3{floats[9], floats[10], floats[11]},
		})
		offset += stlFacetSize
	}
	return mesh, nil
}

func parseASCIISTL(data []byte) (*Mesh, error) {
	mesh := &Mesh{}
	var vertices []Vec3

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed vertex line: %q", scanner.Text())
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			z, errZ := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil || errZ != nil {
				return nil, fmt.Errorf("malformed vertex coordinates: %q", scanner.Text())
			}
			vertices = append(vertices, Vec3{x, y, z})
		case "endfacet":
			if len(vertices) >= 3 {
				mesh.Triangles = append(mesh.Triangles, Triangle{
					V0: vertices[0], V1: vertices[1], V2: vertices[2],
				})
			}
			vertices = vertices[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning ASCII STL: %w", err)
	}
	if mesh.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	return mesh, nil
}
