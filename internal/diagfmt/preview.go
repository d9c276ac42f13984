package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"nova/internal/diag"
	"nova/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview returns the whole lines touched by edit, before and
// after applying it.
func buildFixEditPreview(f *source.File, edit diag.FixEdit) (fixEditPreview, error) {
	if f == nil {
		return fixEditPreview{}, fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fixEditPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	if edit.Span.End() > size {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	startPos, endPos := f.Resolve(edit.Span)
	blockStart := lineStartOffset(f, startPos.Line)
	blockEnd := max(lineEndOffset(f, endPos.Line, size), blockStart)

	original := f.Content[blockStart:blockEnd]
	relStart := int(edit.Span.Start() - blockStart)
	relEnd := int(edit.Span.End() - blockStart)

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line == 0 || int(line) > len(f.LineStarts) {
		return 0
	}
	return f.LineStarts[line-1]
}

// lineEndOffset: конец строки line включая '\n'.
func lineEndOffset(f *source.File, line, size uint32) uint32 {
	if int(line) < len(f.LineStarts) {
		return f.LineStarts[line]
	}
	return size
}
