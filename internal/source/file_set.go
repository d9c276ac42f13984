package source

import (
	"fmt"
	"os"
	"sync"

	"fortio.org/safecast"
	"github.com/tidwall/btree"
)

// FileSet is the registry of every file seen by one run of the compiler.
// It is safe for concurrent use; Files handed out are immutable.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	index btree.Map[string, FileID] // path -> latest id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// Add stores content under path and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) (FileID, error) {
	f, err := NewFile(path, content)
	if err != nil {
		return 0, err
	}
	f.Flags = flags

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		return 0, fmt.Errorf("file set overflow: %w", err)
	}
	f.ID = FileID(n)
	fileSet.files = append(fileSet.files, f)
	// индекс всегда указывает на последнюю версию файла
	fileSet.index.Set(f.Path, f.ID)
	return f.ID, nil
}

// Load reads a file from disk, strips a BOM, normalizes CRLF and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// AddVirtual adds an in-memory file (stdin, test, repl) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) (FileID, error) {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id, or nil when id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return fileSet.files[id]
}

// Lookup returns the latest file registered under path.
func (fileSet *FileSet) Lookup(path string) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index.Get(normalizePath(path))
	if !ok {
		return nil, false
	}
	return fileSet.files[id], true
}

// Paths returns registered paths in lexical order.
func (fileSet *FileSet) Paths() []string {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.index.Keys()
}

func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}
