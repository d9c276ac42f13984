package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, repl).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileNormalizedCRLF
)

// File is the source text of one compilation unit: its bytes plus the line-start index.
// It is immutable after construction; everything downstream borrows slices of Content.
type File struct {
	ID         FileID
	Path       string // логическое имя для диагностик
	Content    []byte
	LineStarts []uint32 // LineStarts[i] = offset where line i+1 begins; LineStarts[0] == 0
	Hash       [32]byte
	Flags      FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
