package ports

// Hasher defines the interface for computing page and dependency hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeContentHash hashes the markdown body together with the front matter.
	ComputeContentHash(content string, frontMatter map[string]any) string

	// ComputeFileHash hashes the bytes of the file at path.
	// It returns found=false and a nil error when the file does not exist.
	ComputeFileHash(path string) (hash string, found bool, err error)

	// ComputeInputsHash combines a content hash with ordered dependency hashes.
	// Empty dependency hashes are treated as missing files.
	ComputeInputsHash(contentHash string, depHashes []string) string
}
