package main

import (
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/magnetdrop/internal/config"
	"github.com/ytget/magnetdrop/internal/eventbus"
	"github.com/ytget/magnetdrop/internal/host"
	"github.com/ytget/magnetdrop/internal/model"
	"github.com/ytget/magnetdrop/internal/pipeline"
	"github.com/ytget/magnetdrop/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.magnetdrop"
	AppName = "Magnet Drop"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	logger.Info("starting", "app", AppName, "version", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	bus := eventbus.New(logger)
	hostSvc := host.NewService(bus, settings.GetMaxParallelConversions(), logger)

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, settings, logger)
	presenter := pipeline.New(pipeline.Options{
		Bus:               bus,
		Converter:         hostSvc,
		Filterer:          hostSvc,
		Clipboard:         rootUI.Clipboard(),
		SearchType:        settings.GetSearchType(),
		FenceStaleBatches: settings.GetFenceStaleBatches(),
		OnView:            rootUI.OnView,
		Logger:            logger,
	})
	rootUI.SetPresenter(presenter)
	rootUI.SetMaxParallelHandler(hostSvc.SetMaxParallel)

	if _, err := bus.Subscribe(eventbus.EventBatchCompleted, func(e eventbus.Event) {
		rootUI.OnBatchCompleted(e.(model.BatchCompletedEvent))
	}); err != nil {
		logger.Warn("batch notifications unavailable", "error", err)
	}
	if err := presenter.Start(); err != nil {
		rootUI.ReportIngestionError(err)
	}

	// Show and run
	myWindow.ShowAndRun()

	presenter.Close()
	hostSvc.Close()
	bus.Close()
}
