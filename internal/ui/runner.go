package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"nova/internal/driver"
)

// RunWithProgress runs work in the background and shows its events until it
// returns. The work's error wins over the UI's.
func RunWithProgress(ctx context.Context, out io.Writer, title string, files []string, work func(ctx context.Context, sink driver.ProgressSink) error) error {
	events := make(chan driver.Event, 256)
	done := make(chan error, 1)

	go func() {
		err := work(ctx, driver.ChannelSink{Ch: events})
		close(events)
		done <- err
	}()

	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// выгребаем события, чтобы работа не застряла на полном канале
		go func() {
			for range events {
			}
		}()
	}
	if err := <-done; err != nil {
		return err
	}
	return uiErr
}
