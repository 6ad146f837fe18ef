package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileSet manages the program texts loaded by a CLI run or an editor session.
type FileSet struct {
	files []File
	index map[string]FileID // path -> latest id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file, splits it into lines and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path, content string, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalizedPath := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		Lines:   SplitLines(content),
		Hash:    sha256.Sum256([]byte(content)),
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM, applies NFC and calls Add.
// Line terminators are kept as written: the scanner understands CR, LF and CRLF.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	raw, hadBOM := removeBOM(raw)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if !norm.NFC.IsNormal(raw) {
		raw = norm.NFC.Bytes(raw)
		flags |= FileNormalizedNFC
	}
	return fileSet.Add(path, string(raw), flags), nil
}

// AddVirtual adds a file that does not live on disk (stdin, test, editor buffer).
func (fileSet *FileSet) AddVirtual(name, content string) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		panic(fmt.Sprintf("source: unknown file id %d", id))
	}
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of files added so far.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts a range into 1-based line/column positions.
func Resolve(r Range) (start, end LineCol) {
	line := toUint32(r.Line + 1)
	return LineCol{Line: line, Col: toUint32(r.Start + 1)}, LineCol{Line: line, Col: toUint32(r.End + 1)}
}

func toUint32(v int) uint32 {
	out, err := safecast.Conv[uint32](v)
	if err != nil {
		panic(fmt.Errorf("position overflow: %w", err))
	}
	return out
}

func normalizePath(path string) string {
	if path == "" {
		return path
	}
	return filepath.ToSlash(filepath.Clean(path))
}
