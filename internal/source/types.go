package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, editor buffer).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	// FileNormalizedNFC marks files whose text changed under NFC normalisation.
	FileNormalizedNFC
)

// File captures metadata and content for a single program text.
type File struct {
	ID      FileID
	Path    string
	Content string
	// Lines holds the text of every line without its terminator.
	Lines []string
	Hash  [32]byte
	Flags FileFlags
}

// Line returns the text of a 0-based line, or "" when out of range.
func (f *File) Line(n int) string {
	if f == nil || n < 0 || n >= len(f.Lines) {
		return ""
	}
	return f.Lines[n]
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
