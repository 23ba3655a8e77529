package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func astronautJSON(bufferURI string) string {
	return `{
  "asset": {"version": "2.0", "generator": "test"},
  "scene": 0,
  "scenes": [{"name": "Astronaut", "nodes": [0]}],
  "nodes": [{"name": "root", "mesh": 0}],
  "meshes": [
    {"name": "Body", "primitives": [{"attributes": {"POSITION": 0}}]},
    {"primitives": [{"attributes": {"POSITION": 1}}]}
  ],
  "accessors": [
    {"bufferView": 0, "count": 3, "type": "VEC3", "min": [-1, 0, -1], "max": [1, 2, 1]},
    {"bufferView": 0, "count": 4, "type": "VEC3", "min": [-2, 0.5, 0], "max": [0, 1, 3]}
  ],
  "bufferViews": [{"buffer": 0, "byteLength": 4}],
  "buffers": [{"uri": "` + bufferURI + `", "byteLength": 4}],
  "animations": [{"name": "Wave", "channels": [{"sampler": 0}]}, {"channels": []}]
}`
}

func dataURI(b []byte) string {
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(b)
}

func buildGLB(t *testing.T, jsonDoc string, bin []byte) []byte {
	t.Helper()
	pad := func(b []byte, with byte) []byte {
		for len(b)%4 != 0 {
			b = append(b, with)
		}
		return b
	}
	js := pad([]byte(jsonDoc), ' ')
	var body bytes.Buffer
	require.NoError(t, binary.Write(&body, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(js)), ChunkType: gltfGLBChunkJSON}))
	body.Write(js)
	if bin != nil {
		bin = pad(bin, 0)
		require.NoError(t, binary.Write(&body, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN}))
		body.Write(bin)
	}

	var out bytes.Buffer
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(12 + body.Len())}))
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestLoader(options ...LoaderBuilderOption) Loader {
	return NewLoader(BackendTypeGLTF, append([]LoaderBuilderOption{WithRetryDelay(0)}, options...)...)
}

func TestLoadGLTFWithExternalBuffer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scene.bin", []byte{1, 2, 3, 4})
	path := writeFile(t, dir, "scene.gltf", []byte(astronautJSON("scene.bin")))

	l := newTestLoader()
	m, err := l.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Astronaut", m.Name())
	assert.Equal(t, []string{"Body", "mesh_1"}, m.ListMeshes())
	assert.True(t, m.HasAnimation())
	assert.Equal(t, []string{"Wave"}, m.Animations())
	assert.Equal(t, 7, m.VertexCount())
	assert.Equal(t, "test", m.Generator())
	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-2, 0, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, hi)

	same, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, m, same, "second load comes from the cache")
	assert.Len(t, l.Models(), 1)
	assert.Equal(t, m, l.Get(path))
}

func TestLoadGLB(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"meshes":[{"name":"Helmet","primitives":[]}],"buffers":[{"byteLength":4}]}`
	path := writeFile(t, t.TempDir(), "astronaut.glb", buildGLB(t, doc, []byte{9, 9, 9, 9}))

	m, err := newTestLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Helmet"}, m.ListMeshes())
	assert.False(t, m.HasAnimation())
	assert.Equal(t, path, m.Name(), "no scene name falls back to the path")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	glb := buildGLB(t, `{"asset":{"version":"2.0"}}`, nil)
	badMagic := append([]byte{}, glb...)
	copy(badMagic, "nope")
	badVersion := append([]byte{}, glb...)
	binary.LittleEndian.PutUint32(badVersion[4:8], 1)

	tests := []struct {
		name string
		file string
		data []byte
		want error
	}{
		{"old gltf version", "old.gltf", []byte(`{"asset":{"version":"1.0"}}`), ErrInvalidGLTFVersion},
		{"glb with gltf 3", "new.glb", buildGLB(t, `{"asset":{"version":"3.0"}}`, nil), ErrInvalidGLTFVersion},
		{"bad magic", "magic.glb", badMagic, ErrInvalidGLBMagic},
		{"bad container version", "v1.glb", badVersion, ErrInvalidGLBVersion},
		{"short buffer", "short.gltf", []byte(astronautJSON(dataURI([]byte{1}))), ErrBufferSizeMismatch},
		{"bad data uri", "uri.gltf", []byte(astronautJSON("data:nocomma")), ErrInvalidBufferURI},
		{"unsupported extension", "model.obj", []byte("o cube"), ErrUnsupportedFormat},
		{"missing file", "", nil, os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "absent.gltf")
			if tt.data != nil {
				path = writeFile(t, dir, tt.file, tt.data)
			}
			_, err := newTestLoader().Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoadMissingBufferFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.gltf", []byte(astronautJSON("scene.bin")))
	_, err := newTestLoader().Load(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadReader(t *testing.T) {
	l := newTestLoader()
	m, err := l.LoadReader("embedded", strings.NewReader(astronautJSON(dataURI([]byte{1, 2, 3, 4}))), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Body", "mesh_1"}, m.ListMeshes())
	assert.Equal(t, m, l.Get("embedded"))
}

func TestLoadProgress(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.gltf", []byte(astronautJSON(dataURI([]byte{1, 2, 3, 4}))))
	var last Progress
	calls := 0
	l := newTestLoader(WithProgress(func(p Progress) {
		calls++
		last = p
	}))

	_, err := l.Load(path)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 2)
	assert.Equal(t, path, last.Path)
	assert.Equal(t, last.Total, last.Read)
	assert.Positive(t, last.Total)
}

func TestLoadFirstPicksFirstLoadable(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "b/scene.gltf", []byte(astronautJSON(dataURI([]byte{1, 2, 3, 4}))))
	also := writeFile(t, dir, "c/scene.gltf", []byte(astronautJSON(dataURI([]byte{1, 2, 3, 4}))))
	missing := filepath.Join(dir, "a", "scene.gltf")

	res := newTestLoader().LoadFirst(context.Background(), []string{missing, good, also})
	require.Equal(t, StatusLoaded, res.Status)
	assert.Equal(t, good, res.Path)
	assert.NotNil(t, res.Asset)
	assert.NoError(t, res.Err())
}

func TestLoadFirstExhausted(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "1.gltf"), filepath.Join(dir, "2.glb"), filepath.Join(dir, "3.gltf")}

	res := newTestLoader().LoadFirst(context.Background(), paths)
	assert.Equal(t, StatusExhausted, res.Status)
	assert.Nil(t, res.Asset)
	require.Len(t, res.Errs, 3)
	for i, err := range res.Errs {
		assert.Contains(t, err.Error(), paths[i])
	}
	assert.ErrorIs(t, res.Err(), os.ErrNotExist)

	res = newTestLoader().LoadFirst(context.Background(), nil)
	assert.Equal(t, StatusExhausted, res.Status)
	assert.ErrorIs(t, res.Err(), ErrNoCandidates)
}

func TestLoadFirstWaitsBetweenAttempts(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(BackendTypeGLTF, WithRetryDelay(30*time.Millisecond))

	start := time.Now()
	res := l.LoadFirst(context.Background(), []string{filepath.Join(dir, "x.gltf"), filepath.Join(dir, "y.gltf")})
	assert.Equal(t, StatusExhausted, res.Status)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestLoadFirstCancelled(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(BackendTypeGLTF, WithRetryDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan Result, 1)
	go func() {
		done <- l.LoadFirst(ctx, []string{filepath.Join(dir, "x.gltf"), filepath.Join(dir, "y.gltf")})
	}()
	cancel()

	select {
	case res := <-done:
		assert.Equal(t, StatusExhausted, res.Status)
		assert.True(t, errors.Is(res.Err(), context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("LoadFirst did not observe cancellation")
	}
}

func TestLoadAsyncDeliversOnce(t *testing.T) {
	good := writeFile(t, t.TempDir(), "scene.gltf", []byte(astronautJSON(dataURI([]byte{1, 2, 3, 4}))))
	l := newTestLoader()
	defer l.Close()

	ch := l.LoadAsync(context.Background(), []string{good})
	select {
	case res := <-ch:
		assert.Equal(t, StatusLoaded, res.Status)
		assert.Equal(t, good, res.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case <-ch:
		t.Fatal("second result delivered")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestNewModelIsAsset(t *testing.T) {
	m := NewModel(WithName("helmet-rig"), WithMeshes("a", "b"), WithAnimations("idle"), WithPath("mem"))
	assert.Equal(t, "helmet-rig", m.Name())
	assert.True(t, m.HasAnimation())

	meshes := m.ListMeshes()
	meshes[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, m.ListMeshes(), "mesh list is copied")
	assert.Equal(t, "loaded", StatusLoaded.String())
}

func TestZeroResultIsNotLoaded(t *testing.T) {
	var res Result
	assert.NotEqual(t, StatusLoaded, res.Status)
	assert.Equal(t, "unknown", res.Status.String())
	assert.ErrorIs(t, res.Err(), ErrNoResult)
}

func TestDefaultCandidatesOrder(t *testing.T) {
	c := DefaultCandidates()
	require.Len(t, c, 3)
	assert.True(t, strings.HasPrefix(c[0], "/"))
	assert.True(t, strings.HasPrefix(c[1], "./"))
	assert.Equal(t, "/astronaut/scene.gltf", c[2])
}
