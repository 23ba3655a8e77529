package loader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter turns raw glTF/GLB bytes into a Model summary.
type gltfImporter interface {
	// Import parses the data and summarizes its meshes, animations and bounds.
	//
	// Parameters:
	//   - data: the raw glTF JSON or GLB bytes
	//   - baseDir: directory used to resolve relative buffer URIs
	//   - path: the source path or reader name, used for naming
	//   - isGLB: true if the data is a GLB container
	//
	// Returns:
	//   - Model: the parsed model
	//   - error: error if parsing or validation fails
	Import(data []byte, baseDir, path string, isGLB bool) (Model, error)
}

var _ gltfImporter = &gltfImporterImpl{}

func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(data []byte, baseDir, path string, isGLB bool) (Model, error) {
	parser := newGLTFParser()
	if err := parser.Parse(data, baseDir, isGLB); err != nil {
		return nil, err
	}
	return imp.importFromParser(parser, path)
}

// importFromParser summarizes a parsed document.
//
// Parameters:
//   - parser: the glTF parser that has already loaded a document
//   - path: the source path, used as a naming fallback
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, path string) (Model, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	m := &modelImpl{
		name:      gltfExtractModelName(doc, path),
		path:      path,
		generator: doc.Asset.Generator,
	}

	first := true
	for i, mesh := range doc.Meshes {
		name := mesh.Name
		if name == "" {
			name = fmt.Sprintf("mesh_%d", i)
		}
		m.meshes = append(m.meshes, name)

		for j, prim := range mesh.Primitives {
			idx, ok := prim.Attributes[gltfAttributePosition]
			if !ok {
				continue
			}
			if idx < 0 || idx >= len(doc.Accessors) {
				return nil, fmt.Errorf("mesh %q primitive %d: POSITION accessor %d out of range", name, j, idx)
			}
			acc := doc.Accessors[idx]
			m.vertexCount += acc.Count
			if len(acc.Min) < 3 || len(acc.Max) < 3 {
				continue
			}
			lo := mgl32.Vec3{acc.Min[0], acc.Min[1], acc.Min[2]}
			hi := mgl32.Vec3{acc.Max[0], acc.Max[1], acc.Max[2]}
			if first {
				m.boundsMin, m.boundsMax = lo, hi
				first = false
				continue
			}
			for k := range 3 {
				m.boundsMin[k] = min(m.boundsMin[k], lo[k])
				m.boundsMax[k] = max(m.boundsMax[k], hi[k])
			}
		}
	}

	for i, anim := range doc.Animations {
		if len(anim.Channels) == 0 {
			continue
		}
		name := anim.Name
		if name == "" {
			name = fmt.Sprintf("animation_%d", i)
		}
		m.animations = append(m.animations, name)
	}

	return m, nil
}

// gltfExtractModelName derives a model name from the default scene or a path fallback.
func gltfExtractModelName(doc *gltfDocument, fallbackPath string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}

	if fallbackPath != "" {
		return fallbackPath
	}

	return "unnamed_model"
}
