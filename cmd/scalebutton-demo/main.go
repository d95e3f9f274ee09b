// ScaleButton gallery: an interactive showcase of the pressable scale button.
//
// Build:
//   go build -o scalebutton-demo ./cmd/scalebutton-demo
//
// Run with a specific preset and simulated haptics:
//   scalebutton-demo --preset pill --simulate-haptics

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/piwi3910/scalebutton/internal/config"
	"github.com/piwi3910/scalebutton/internal/ui"
)

func main() {
	cliApp := cli.NewApp()
	cliApp.Name = "scalebutton-demo"
	cliApp.Description = "Gallery of pressable scale buttons"
	cliApp.Usage = "scalebutton-demo [options]"
	cliApp.Version = "1.0.0"
	cliApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to the YAML config file (default: ~/.scalebutton/scalebutton.yaml)",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Preset to select on startup, overriding the config file",
		},
		cli.BoolFlag{
			Name:  "simulate-haptics",
			Usage: "Log haptic feedback instead of requiring a mobile device",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable verbose development logging",
		},
	}
	cliApp.Action = runGallery

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error running gallery: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runGallery(c *cli.Context) error {
	logger, err := newLogger(c.Bool("debug"))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	application := app.NewWithID("com.piwi3910.scalebutton")
	window := application.NewWindow("ScaleButton Gallery")

	var appUI *ui.App
	notifier := notifierFunc(func(title, message string) {
		if appUI != nil {
			appUI.Notify(title, message)
		}
	})

	cfg := config.NewConfig(sugar, notifier, c.String("config"))
	if name := c.String("preset"); name != "" {
		cfg.OverridePreset(name)
	}
	if c.IsSet("simulate-haptics") {
		cfg.OverrideSimulateHaptics(c.Bool("simulate-haptics"))
	}
	if err := cfg.Load(); err != nil {
		sugar.Warnw("Continuing with default configuration", "error", err)
	}

	appUI = ui.NewApp(application, window, cfg, sugar)
	appUI.ApplyConfig()
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(720, 560))
	window.CenterOnScreen()

	go cfg.WatchConfigFileChanges()
	go appUI.WatchConfig(cfg.SubscribeToChanges())
	defer cfg.StopWatchingConfigFile()

	sugar.Infow("Starting gallery", "config", cfg.Path())
	window.ShowAndRun()
	return nil
}

// notifierFunc adapts a function to config.Notifier.
type notifierFunc func(title, message string)

func (f notifierFunc) Notify(title, message string) { f(title, message) }
