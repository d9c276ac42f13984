package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"nova/internal/diag"
	"nova/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota // первая подходящая правка
	ApplyModeAll                   // все machine-applicable
	ApplyModeID                    // одна правка по ID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Applicability diag.Applicability
	Path          string
	EditCount     int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange holds the rewritten content of one file.
type FileChange struct {
	File      source.FileID
	Path      string
	Content   []byte
	EditCount int
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts and
// computes the new file contents. Nothing is written; see Write.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, skips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skips, changes := applyCandidates(fs, selected)
	result.Applied = applied
	result.Skipped = append(result.Skipped, skips...)
	result.FileChanges = changes
	if len(applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates flattens diagnostics into fix candidates. Fixes without
// edits and repeated IDs are skipped; missing IDs are synthesized.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var cands []candidate
	var skips []SkippedFix
	seen := make(map[string]struct{})

	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if f.ID == "" {
				f.ID = MakeID(d.Code, d.File, d.PrimarySpan(), idx)
			}
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

// sortCandidates orders by file, primary span, insertion order, then code.
func sortCandidates(candidates []candidate) {
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.diag.File != b.diag.File {
			return cmpUint(uint32(a.diag.File), uint32(b.diag.File))
		}
		as, bs := a.diag.PrimarySpan(), b.diag.PrimarySpan()
		if as.Start() != bs.Start() {
			return cmpUint(as.Start(), bs.Start())
		}
		if as.End() != bs.End() {
			return cmpUint(as.End(), bs.End())
		}
		if a.order != b.order {
			return a.order - b.order
		}
		return cmpUint(uint32(a.diag.Code), uint32(b.diag.Code))
	})
}

func cmpUint(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		var skipped []SkippedFix
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixMachineApplicable {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: "applicability is " + cand.fix.Applicability.String(),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixMachineApplicable {
				return []candidate{cand}, nil
			}
		}
		return []candidate{candidates[0]}, nil
	default:
		return nil, nil
	}
}

type pendingEdit struct {
	edit  diag.FixEdit
	order int
}

// applyCandidates accepts fixes in order, rejecting those whose edits overlap an
// already accepted edit or whose guard text does not match. Accepted edits are
// applied back to front on the original content, so spans stay valid.
func applyCandidates(fs *source.FileSet, selected []candidate) ([]AppliedFix, []SkippedFix, []FileChange) {
	accepted := make(map[source.FileID][]pendingEdit)
	var applied []AppliedFix
	var skipped []SkippedFix

	for _, cand := range selected {
		file := fs.Get(cand.diag.File)
		reason := ""
		switch {
		case file == nil:
			reason = "unknown file"
		default:
			reason = checkEdits(file, accepted[file.ID], cand.fix.Edits)
		}
		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.fix.ID, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			accepted[file.ID] = append(accepted[file.ID], pendingEdit{edit: e, order: len(accepted[file.ID])})
		}
		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Applicability: cand.fix.Applicability,
			Path:          file.Path,
			EditCount:     len(cand.fix.Edits),
		})
	}

	changes := make([]FileChange, 0, len(accepted))
	for id, edits := range accepted {
		file := fs.Get(id)
		changes = append(changes, FileChange{
			File:      id,
			Path:      file.Path,
			Content:   rewrite(file.Content, edits),
			EditCount: len(edits),
		})
	}
	slices.SortFunc(changes, func(a, b FileChange) int { return strings.Compare(a.Path, b.Path) })
	return applied, skipped, changes
}

func checkEdits(file *source.File, existing []pendingEdit, edits []diag.FixEdit) string {
	for i, e := range edits {
		if e.Span.End() > file.Len() {
			return "edit span out of range"
		}
		if e.OldText != "" && file.Text(e.Span) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range existing {
			if spansConflict(prev.edit.Span, e.Span) {
				return "conflicts with previously applied edits"
			}
		}
		for _, other := range edits[:i] {
			if spansConflict(other.Span, e.Span) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edit spans overlap.
// Two insertions never conflict; an insertion conflicts with a replacement
// strictly containing its position.
func spansConflict(a, b source.Span) bool {
	switch {
	case a.IsEmpty() && b.IsEmpty():
		return false
	case a.IsEmpty():
		return b.Start() < a.Start() && a.Start() < b.End()
	case b.IsEmpty():
		return a.Start() < b.Start() && b.Start() < a.End()
	}
	return a.Overlaps(b)
}

func rewrite(content []byte, edits []pendingEdit) []byte {
	// с конца файла; в одной точке замена раньше вставок, вставки сохраняют порядок принятия
	slices.SortStableFunc(edits, func(a, b pendingEdit) int {
		as, bs := a.edit.Span, b.edit.Span
		if as.Start() != bs.Start() {
			return cmpUint(bs.Start(), as.Start())
		}
		if as.IsEmpty() != bs.IsEmpty() {
			if as.IsEmpty() {
				return 1
			}
			return -1
		}
		return b.order - a.order
	})
	out := append([]byte(nil), content...)
	for _, pe := range edits {
		sp := pe.edit.Span
		tail := append([]byte(pe.edit.NewText), out[sp.End():]...)
		out = append(out[:sp.Start()], tail...)
	}
	return out
}

// Write stores every change on disk, keeping the file mode. Virtual files are skipped.
func Write(fs *source.FileSet, changes []FileChange) error {
	for _, ch := range changes {
		if f := fs.Get(ch.File); f != nil && f.Flags&source.FileVirtual != 0 {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(ch.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(ch.Path, ch.Content, mode); err != nil {
			return fmt.Errorf("write %s: %w", ch.Path, err)
		}
	}
	return nil
}
