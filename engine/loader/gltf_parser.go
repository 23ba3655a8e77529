package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Errors returned while parsing glTF and GLB data.
var (
	ErrInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.x")
	ErrInvalidGLBMagic    = errors.New("invalid GLB magic number")
	ErrInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	ErrMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
	ErrInvalidBufferURI   = errors.New("invalid buffer URI")
	ErrBufferSizeMismatch = errors.New("buffer size mismatch")
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	baseDir        string
	document       *gltfDocument
	glbBinaryChunk []byte
}

// gltfParser decodes glTF JSON or GLB containers and resolves their buffers.
// This is internal to the loader package.
type gltfParser interface {
	// Parse decodes a document. GLB is detected from isGLB or the container magic.
	//
	// Parameters:
	//   - data: the raw file bytes
	//   - baseDir: directory used to resolve relative buffer URIs
	//   - isGLB: true if the data is known to be a GLB container
	//
	// Returns:
	//   - error: error if parsing or buffer resolution fails
	Parse(data []byte, baseDir string, isGLB bool) error

	// Document returns the parsed glTF document, or nil before a successful Parse.
	//
	// Returns:
	//   - *gltfDocument: the parsed document or nil
	Document() *gltfDocument

	// BaseDir returns the directory used to resolve relative URIs.
	//
	// Returns:
	//   - string: the base directory path
	BaseDir() string
}

var _ gltfParser = &gltfParserImpl{}

func newGLTFParser() gltfParser {
	return &gltfParserImpl{}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) BaseDir() string {
	return p.baseDir
}

func (p *gltfParserImpl) Parse(data []byte, baseDir string, isGLB bool) error {
	p.baseDir = baseDir
	if isGLB || (len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic) {
		return p.parseGLB(data)
	}
	return p.parseGLTF(data)
}

// parseGLTF parses a glTF JSON file.
func (p *gltfParserImpl) parseGLTF(data []byte) error {
	doc, err := p.decodeDocument(data)
	if err != nil {
		return err
	}
	p.document = doc
	return nil
}

// parseGLB parses a GLB binary file.
func (p *gltfParserImpl) parseGLB(data []byte) error {
	if len(data) < 12 {
		return errors.New("GLB file too small")
	}

	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to read GLB header: %w", err)
	}

	if header.Magic != gltfGLBMagic {
		return ErrInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return ErrInvalidGLBVersion
	}

	var jsonData []byte
	var binData []byte

	for {
		var chunkHeader gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunkHeader); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read chunk header: %w", err)
		}
		if int64(chunkHeader.ChunkLength) > int64(r.Len()) {
			return fmt.Errorf("chunk of %d bytes exceeds remaining %d: %w", chunkHeader.ChunkLength, r.Len(), io.ErrUnexpectedEOF)
		}

		chunkData := make([]byte, chunkHeader.ChunkLength)
		if _, err := io.ReadFull(r, chunkData); err != nil {
			return fmt.Errorf("failed to read chunk data: %w", err)
		}

		switch chunkHeader.ChunkType {
		case gltfGLBChunkJSON:
			jsonData = chunkData
		case gltfGLBChunkBIN:
			binData = chunkData
		}
	}

	if jsonData == nil {
		return ErrMissingJSONChunk
	}
	p.glbBinaryChunk = binData

	doc, err := p.decodeDocument(jsonData)
	if err != nil {
		return err
	}
	p.document = doc
	return nil
}

// decodeDocument unmarshals the JSON document, checks the version and loads buffers.
func (p *gltfParserImpl) decodeDocument(data []byte) (*gltfDocument, error) {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse glTF JSON: %w", err)
	}

	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidGLTFVersion, doc.Asset.Version)
	}

	if err := p.loadBuffers(&doc); err != nil {
		return nil, fmt.Errorf("failed to load buffers: %w", err)
	}
	return &doc, nil
}

// loadBuffers loads all buffer data (from URIs, embedded data, or GLB binary chunk).
func (p *gltfParserImpl) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		if buf.URI == "" {
			if i == 0 && p.glbBinaryChunk != nil {
				buf.Data = p.glbBinaryChunk
				if len(buf.Data) < buf.ByteLength {
					return fmt.Errorf("buffer %d: %w", i, ErrBufferSizeMismatch)
				}
				continue
			}
			return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		}

		data, err := p.loadBufferURI(buf.URI)
		if err != nil {
			return fmt.Errorf("buffer %d: %w", i, err)
		}
		buf.Data = data

		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, ErrBufferSizeMismatch)
		}
	}

	return nil
}

// loadBufferURI loads buffer data from a URI (data: URI or file path).
func (p *gltfParserImpl) loadBufferURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		return p.loadDataURI(uri)
	}

	fullPath := filepath.Join(p.baseDir, filepath.FromSlash(uri))
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load buffer file %q: %w", uri, err)
	}

	return data, nil
}

// loadDataURI decodes a base64 data URI.
// Format: data:[<mediatype>][;base64],<data>
func (p *gltfParserImpl) loadDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return nil, ErrInvalidBufferURI
	}

	if !strings.Contains(header, "base64") {
		return nil, fmt.Errorf("unsupported data URI encoding: %s", header)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	return data, nil
}
