package loader

// loaderBackend defines the generic interface for decoding a model file format.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Decode parses raw file bytes.
	//
	// Parameters:
	//   - data: the file contents
	//   - baseDir: directory used to resolve external resources
	//   - path: the source path or reader name
	//   - binary: true if the data is the binary variant of the format
	//
	// Returns:
	//   - Model: the parsed model
	//   - error: error if decoding fails
	Decode(data []byte, baseDir, path string, binary bool) (Model, error)
}
