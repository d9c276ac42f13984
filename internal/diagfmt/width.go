package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// displayWidth считает колонки терминала по графемам; табы до ближайшей
// позиции, кратной tab.
func displayWidth(s string, startCol, tab int) int {
	col := startCol
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		if cluster == "\t" {
			col += tab - col%tab
			continue
		}
		col += runewidth.StringWidth(cluster)
	}
	return col - startCol
}

func expandTabs(s string, tab int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		if cluster == "\t" {
			n := tab - col%tab
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(cluster)
		col += runewidth.StringWidth(cluster)
	}
	return b.String()
}
