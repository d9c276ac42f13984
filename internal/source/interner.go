package source

import (
	"slices"
	"sync"
)

// StringID names an interned string; NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier text for the AST.
type Interner struct {
	mu    sync.RWMutex
	byID  []string // byID[0] = "" для NoStringID
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the id of s, adding a private copy on first sight.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}
	// копия, чтобы не держать исходный буфер
	cpy := string([]byte(s))
	id = StringID(len(i.byID)) // #nosec G115 -- ids grow by one
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns b without retaining it.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// Len counts NoStringID too, so it is never less than 1.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

func (i *Interner) Snapshot() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.byID)
}
