package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Value tags of the canonical front matter serialization.
const (
	tagNil    = 'n'
	tagBool   = 'b'
	tagInt    = 'i'
	tagFloat  = 'f'
	tagString = 's'
	tagTime   = 't'
	tagList   = 'a'
	tagMap    = 'm'
	tagOther  = 'x'
	tagEnd    = 'e'
)

// Hasher computes xxhash64 digests of page content and dependency files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeContentHash hashes content followed by a canonical encoding of frontMatter.
// Map keys are sorted at every level and every value carries a type tag, so equal
// documents hash equally regardless of key order.
func (h *Hasher) ComputeContentHash(content string, frontMatter map[string]any) string {
	hasher := xxhash.New()
	writeString(hasher, content)
	writeValue(hasher, frontMatter)
	return fmt.Sprintf("%016x", hasher.Sum64())
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (hash string, found bool, err error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), true, nil
}

// ComputeInputsHash combines the content hash with the dependency hashes in order.
func (h *Hasher) ComputeInputsHash(contentHash string, depHashes []string) string {
	hasher := xxhash.New()
	writeString(hasher, contentHash)
	for _, dep := range depHashes {
		if dep == "" {
			dep = domain.MissingDependencyHash
		}
		writeString(hasher, dep)
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

func writeString(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0}) // Separator
}

func writeTag(hasher *xxhash.Digest, tag byte) {
	_, _ = hasher.Write([]byte{tag})
}

//nolint:cyclop // One case per front matter value type
func writeValue(hasher *xxhash.Digest, value any) {
	switch v := value.(type) {
	case nil:
		writeTag(hasher, tagNil)
	case bool:
		writeTag(hasher, tagBool)
		writeString(hasher, strconv.FormatBool(v))
	case int:
		writeTag(hasher, tagInt)
		writeString(hasher, strconv.Itoa(v))
	case int64:
		writeTag(hasher, tagInt)
		writeString(hasher, strconv.FormatInt(v, 10))
	case uint64:
		writeTag(hasher, tagInt)
		writeString(hasher, strconv.FormatUint(v, 10))
	case float64:
		writeTag(hasher, tagFloat)
		writeString(hasher, strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		writeTag(hasher, tagString)
		writeString(hasher, v)
	case time.Time:
		writeTag(hasher, tagTime)
		writeString(hasher, v.UTC().Format(time.RFC3339Nano))
	case []string:
		writeTag(hasher, tagList)
		for _, item := range v {
			writeValue(hasher, item)
		}
		writeTag(hasher, tagEnd)
	case []any:
		writeTag(hasher, tagList)
		for _, item := range v {
			writeValue(hasher, item)
		}
		writeTag(hasher, tagEnd)
	case map[string]any:
		writeMap(hasher, v)
	case map[any]any:
		converted := make(map[string]any, len(v))
		for k, item := range v {
			converted[fmt.Sprint(k)] = item
		}
		writeMap(hasher, converted)
	default:
		writeTag(hasher, tagOther)
		writeString(hasher, fmt.Sprintf("%v", v))
	}
}

func writeMap(hasher *xxhash.Digest, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	writeTag(hasher, tagMap)
	for _, k := range keys {
		writeString(hasher, k)
		writeValue(hasher, m[k])
	}
	writeTag(hasher, tagEnd)
}
