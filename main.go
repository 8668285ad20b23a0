package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"draglist/internal/config"
	"draglist/internal/domain"
	"draglist/internal/eventbus"
	"draglist/internal/logic"
	"draglist/internal/ui"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to the config file (default .draglist.toml)")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.Parse()

	logger, err := newLogger()
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	bus := eventbus.New(logger.Named("bus"))

	configSvc := config.NewService(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", zap.Error(err))
		cfg = config.DefaultConfig()
	}

	store := logic.NewMemoryItemStore(itemsFromConfig(cfg))

	// Persist the item order whenever it changes, if autosave is on
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(domain.ConfigChangedEvent)
		if !ok || !cfg.UISettings.AutosaveOnExit {
			return
		}
		cfg.UISettings.Items = event.Items
		if err := configSvc.Save(cfg); err != nil {
			logger.Error("failed to save config", zap.Error(err))
		}
	})

	model := ui.NewModel(cfg, store, bus, logger.Named("ui"))

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	logger.Info("starting UI", zap.Int("items", store.Len()))
	if _, err := p.Run(); err != nil {
		logger.Error("error running program", zap.Error(err))
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info("UI exited normally")
}

// newLogger writes structured logs to a file so they never corrupt the TUI
func newLogger() (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"draglist.log"}
	logCfg.ErrorOutputPaths = []string{"draglist.log"}
	return logCfg.Build()
}

func itemsFromConfig(cfg *config.Config) []domain.Item {
	items := make([]domain.Item, len(cfg.UISettings.Items))
	for i, title := range cfg.UISettings.Items {
		items[i] = domain.Item{
			ID:    fmt.Sprintf("item-%d", i+1),
			Title: title,
		}
	}
	return items
}
