package shell

import (
	"context"
	"os"
	"os/signal"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pyobs/pyobs-launcher/internal/ui"
)

// ForwardSignals turns every delivery of sigs into a ui.CloseRequestMsg
// passed to send, so an interrupt takes the same shutdown path as the quit
// key instead of killing the launcher. Call the returned stop func to
// restore default handling.
func ForwardSignals(ctx context.Context, send func(tea.Msg), sigs ...os.Signal) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				send(ui.CloseRequestMsg{})
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			cancel()
			wg.Wait()
		})
	}
}
