package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // start offsets of lines 2..n (after \n, \r, \r\n, U+2028, U+2029)
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
// Col counts UTF-16 code units, the unit JavaScript tooling reports columns in.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// LineCount returns the number of lines in the file. An empty file has one line.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1
}
