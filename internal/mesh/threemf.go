package mesh

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

// Well-known payload path inside a 3MF container.
const threeMFModelPath = "3D/3dmodel.model"

// Minimal 3MF model document: vertices and triangle indices per object.
type threeMFModel struct {
	Resources struct {
		Objects []struct {
			Mesh struct {
				Vertices struct {
					List []struct {
						X float64 `xml:"x,attr"`
						Y float64 `xml:"y,attr"`
						Z float64 `xml:"z,attr"`
					} `xml:"vertex"`
				} `xml:"vertices"`
				Triangles struct {
					List []struct {
						V1 int `xml:"v1,attr"`
						V2 int `xml:"v2,attr"`
						V3 int `xml:"v3,attr"`
					} `xml:"triangle"`
				} `xml:"triangles"`
			} `xml:"mesh"`
		} `xml:"object"`
	} `xml:"resources"`
}

// Load3MF reads the mesh objects out of a 3MF container. All objects are
// concatenated into one triangle soup, matching how gallery previews treat
// multi-part scenes.
func Load3MF(path string) (*Mesh, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer reader.Close()

	var payload *zip.File
	for _, file := range reader.File {
		if file.Name == threeMFModelPath {
			payload = file
			break
		}
		// Some producers vary directory casing.
		if payload == nil && strings.EqualFold(file.Name, threeMFModelPath) {
			payload = file
		}
	}
	if payload == nil {
		return nil, fmt.Errorf("%s: no %s entry", path, threeMFModelPath)
	}

	rc, err := payload.Open()
	if err != nil {
		return nil, fmt.Errorf("opening model payload: %w", err)
	}
	defer rc.Close()

	var doc threeMFModel
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", threeMFModelPath, err)
	}

	mesh := &Mesh{}
	for _, object := range doc.Resources.Objects {
		verts := object.Mesh.Vertices.List
		for _, tri := range object.Mesh.Triangles.List {
			if tri.V1 < 0 || tri.V2 < 0 || tri.V3 < 0 ||
				tri.V1 >= len(verts) || tri.V2 >= len(verts) || tri.V3 >= len(verts) {
				return nil, fmt.Errorf("%s: triangle index out of range", path)
			}
			mesh.Triangles = append(mesh.Triangles, Triangle{
				V0: Vec3{verts[tri.V1].X, verts[tri.V1].Y, verts[tri.V1].Z},
				V1: Vec3{verts[tri.V2].X, verts[tri.V2].Y, verts[tri.V2].Z},
				V2: Vec3{verts[tri.V3].X, verts[tri.V3].Y, verts[tri.V3].Z},
			})
		}
	}
	if mesh.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	return mesh, nil
}
