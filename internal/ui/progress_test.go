package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"

	"nova/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("parse", []string{"a.nova", "b.nova"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.nova", Stage: driver.StageParse, Status: driver.StatusWorking})
	require.Equal(t, "parsing", m.items[0].status)

	m.applyEvent(driver.Event{File: "a.nova", Stage: driver.StageParse, Status: driver.StatusDone, Elapsed: 1500 * time.Microsecond})
	m.applyEvent(driver.Event{File: "b.nova", Stage: driver.StageParse, Status: driver.StatusError, Err: errors.New("2 error(s)")})
	m.applyEvent(driver.Event{File: "unknown.nova", Status: driver.StatusDone})

	require.Equal(t, "done", m.items[0].status)
	require.Equal(t, "1.5ms", m.items[0].note)
	require.Equal(t, "error", m.items[1].status)
	require.Equal(t, "2 error(s)", m.items[1].note)

	view := m.View()
	require.Contains(t, view, "a.nova")
	require.Contains(t, view, "2/2 files")
	require.Contains(t, view, "1 with errors")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "very-lo...", truncate("very-long-path.nova", 10))
	require.Equal(t, 10, len(truncate(strings.Repeat("x", 40), 10)))

	// ширина считается по колонкам, а не по байтам
	wide := truncate("модуль_日本語_файл.nova", 9)
	require.LessOrEqual(t, runewidth.StringWidth(wide), 9)
	require.True(t, strings.HasSuffix(wide, "..."), wide)
}
