package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"nova/internal/driver"
)

// fileState is the lifecycle of one file in the view.
type fileState uint8

const (
	stateQueued fileState = iota
	stateLoading
	stateLexing
	stateParsing
	stateDone
	stateFailed
)

var stateNames = [...]string{
	stateQueued:  "queued",
	stateLoading: "loading",
	stateLexing:  "lexing",
	stateParsing: "parsing",
	stateDone:    "done",
	stateFailed:  "error",
}

func (s fileState) String() string { return stateNames[s] }

func (s fileState) finished() bool { return s == stateDone || s == stateFailed }

// weight: доля файла, засчитываемая в общий прогресс.
func (s fileState) weight() float64 {
	switch s {
	case stateLoading:
		return 0.1
	case stateLexing:
		return 0.3
	case stateParsing:
		return 0.5
	case stateDone, stateFailed:
		return 1
	}
	return 0
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stateStyle = map[fileState]lipgloss.Style{
		stateDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		stateFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		stateLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		stateLexing:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		stateParsing: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		stateQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

const statusColumn = 9

type fileItem struct {
	path   string
	status string
	state  fileState
	note   string // время разбора или текст ошибки
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows driver events for
// files and quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	m.bar.Width = m.width - 4
	for i, file := range files {
		m.items[i] = fileItem{path: file}
		m.items[i].setState(stateQueued)
		m.byPath[file] = i
	}
	return m
}

func (it *fileItem) setState(s fileState) {
	it.state = s
	it.status = s.String()
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next ждёт следующее событие; закрытый канал завершает программу.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[idx]
	if s, ok := stateFor(ev); ok {
		it.setState(s)
	}
	if ev.Err != nil {
		it.note = ev.Err.Error()
	} else if ev.Status == driver.StatusDone && ev.Elapsed > 0 {
		it.note = ev.Elapsed.Round(10 * time.Microsecond).String()
	}
	return m.bar.SetPercent(m.fraction())
}

func stateFor(ev driver.Event) (fileState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusDone:
		return stateDone, true
	case driver.StatusError:
		return stateFailed, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLoad:
			return stateLoading, true
		case driver.StageLex:
			return stateLexing, true
		case driver.StageParse:
			return stateParsing, true
		}
	}
	return 0, false
}

func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range m.items {
		sum += it.state.weight()
	}
	return sum / float64(len(m.items))
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	if m.done {
		b.WriteString(titleStyle.Render("done: " + m.title))
	} else {
		b.WriteString(m.spinner.View() + " " + titleStyle.Render(m.title))
	}
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusColumn-4, 20)
	var finished, failed int
	for _, it := range m.items {
		line := "  " + stateStyle[it.state].Render(fmt.Sprintf("%*s", statusColumn, it.status)) + " " + truncate(it.path, nameWidth)
		if it.note != "" {
			if room := m.width - runewidth.StringWidth(line) - 3; room > 8 {
				line += "  " + noteStyle.Render(truncate(it.note, room))
			}
		}
		b.WriteString(line + "\n")
		if it.state.finished() {
			finished++
		}
		if it.state == stateFailed {
			failed++
		}
	}

	fmt.Fprintf(&b, "\n  %d/%d files", finished, len(m.items))
	if failed > 0 {
		b.WriteString(stateStyle[stateFailed].Render(fmt.Sprintf(", %d with errors", failed)))
	}
	b.WriteString("\n\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// truncate обрезает по ширине терминала, а не по байтам.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width, "...")
	}
}
