package shell

import (
	"context"
	"fmt"
	"os"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pyobs/pyobs-launcher/internal/config"
	"github.com/pyobs/pyobs-launcher/internal/logging"
	"github.com/pyobs/pyobs-launcher/internal/process"
	"github.com/pyobs/pyobs-launcher/internal/ui"
)

// Run starts one supervised child per configured file and shows them until
// the user closes the launcher. Every child has been asked to stop by the
// time Run returns, even when the terminal UI fails.
func Run(ctx context.Context, cfg *config.Config, logger *logging.Logger, opts ...tea.ProgramOption) error {
	host := process.NewHost(process.Options{
		Pyobs:       cfg.Pyobs,
		Python:      cfg.Python,
		KillTimeout: cfg.KillTimeout,
		Logger:      logger.Logger,
	})
	if err := host.Load(cfg.Configs); err != nil {
		// Failed tabs stay visible with the error in their log.
		logger.Error("some configs failed to launch", "err", err)
	}

	app := ui.NewApp(host, ui.WithLogger(logger.Logger))
	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	}, opts...)
	p := tea.NewProgram(app, programOpts...)

	stop := ForwardSignals(ctx, p.Send, os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, err := p.Run()
	if m, ok := final.(ui.App); !ok || !m.Closed() {
		logger.Warn("ui ended before shutdown finished, stopping remaining children")
		host.TerminateAll(context.Background())
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
