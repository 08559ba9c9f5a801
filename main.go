package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/config"
	"github.com/ytget/multitool/internal/jobs"
	"github.com/ytget/multitool/internal/logger"
	"github.com/ytget/multitool/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID       = "com.ytget.multitool"
	LogFileName = "multitool.log"
)

func main() {
	env := config.LoadEnv()

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	logFile := env.LogFile
	if logFile == "" {
		logFile = filepath.Join(myApp.Storage().RootURI().Path(), "logs", LogFileName)
	}
	if err := logger.Init(logger.Options{
		Level:   env.LogLevel,
		Pretty:  env.LogPretty,
		Console: env.LogConsole,
		File:    logFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
	}
	log.Info().Str("version", version).Str("log_file", logFile).Msg("starting")

	settings := config.NewSettings(myApp).WithEnv(env)
	myApp.Settings().SetTheme(ui.NewAppTheme(settings.GetDarkTheme()))

	myWindow := myApp.NewWindow("")
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	jobSvc := jobs.NewService()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, settings, jobSvc)

	// Show and run
	myWindow.ShowAndRun()
	log.Info().Msg("exiting")
}
