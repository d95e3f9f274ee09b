package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/scalebutton/internal/config"
	"github.com/piwi3910/scalebutton/internal/haptics"
	"github.com/piwi3910/scalebutton/internal/model"
	"github.com/piwi3910/scalebutton/internal/project"
	"github.com/piwi3910/scalebutton/internal/ui/widgets"
)

// App holds all gallery state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	cfg    *config.CanonicalConfig
	logger *zap.SugaredLogger
	theme  *GalleryTheme

	presets     model.PresetStore // built-ins followed by user presets
	userPresets model.PresetStore
	current     model.StylePreset

	presses     int
	longPresses int

	// UI references for dynamic updates
	tabs         *container.AppTabs
	showcase     *fyne.Container
	gallery      *fyne.Container
	counter      *widget.Label
	status       *widget.Label
	presetSelect *widget.Select

	showcaseButtons []*widgets.ScaleButton
	galleryButtons  []*widgets.ScaleButton
}

func NewApp(application fyne.App, window fyne.Window, cfg *config.CanonicalConfig, logger *zap.SugaredLogger) *App {
	a := &App{
		app:         application,
		window:      window,
		cfg:         cfg,
		logger:      logger.Named("gallery"),
		theme:       NewGalleryTheme(),
		userPresets: model.NewPresetStore(),
	}
	a.loadPresets()
	a.current = a.presetByName(cfg.App().Preset)
	return a
}

// Notify implements config.Notifier with desktop notifications.
func (a *App) Notify(title, message string) {
	a.app.SendNotification(fyne.NewNotification(title, message))
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Preset...", func() {
			a.importPreset()
		}),
		fyne.NewMenuItem("Export Current Preset...", func() {
			a.exportPreset()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Backup...", func() {
			a.exportBackup()
		}),
		fyne.NewMenuItem("Import Backup...", func() {
			a.importBackup()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Save Current Style As...", func() {
			a.showSavePresetDialog()
		}),
		fyne.NewMenuItem("Reset Counters", func() {
			a.resetCounters()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About ScaleButton",
		"ScaleButton: pressable scale button gallery\n\n"+
			"Tap a button to see the dip-and-recover pulse.\n"+
			"Long-press (or right-click) for the secondary action.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.counter = widget.NewLabel("")
	a.status = widget.NewLabel("Ready")
	a.updateCounter()

	a.presetSelect = widget.NewSelect(a.presets.Names(), func(name string) {
		a.selectPreset(name)
	})
	a.presetSelect.SetSelected(a.current.Name)

	toolbar := container.NewHBox(
		widget.NewLabelWithStyle("Preset", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.presetSelect,
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save current style as a preset", func() {
			a.showSavePresetDialog()
		}),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Reset counters", func() {
			a.resetCounters()
		}),
	)

	showcaseTab := container.NewTabItem("Showcase", a.buildShowcasePanel())
	galleryTab := container.NewTabItem("All Presets", a.buildGalleryPanel())
	a.tabs = container.NewAppTabs(showcaseTab, galleryTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	root := container.NewBorder(
		toolbar,
		container.NewHBox(a.status, layout.NewSpacer(), a.counter),
		nil, nil,
		a.tabs,
	)
	return withToolTipLayer(root, a.window.Canvas())
}

// ApplyConfig re-reads the config values and refreshes theme and preset.
func (a *App) ApplyConfig() {
	cfg := a.cfg.App()
	a.theme.SetVariantName(cfg.Theme)
	a.app.Settings().SetTheme(a.theme)

	a.loadPresets()
	if a.presetSelect != nil {
		a.presetSelect.Options = a.presets.Names()
		a.presetSelect.Refresh()
	}
	a.selectPreset(cfg.Preset)
}

// WatchConfig applies every reload signalled on changes until it is closed.
func (a *App) WatchConfig(changes <-chan bool) {
	for range changes {
		fyne.Do(a.ApplyConfig)
	}
}

// ─── Showcase Panel ────────────────────────────────────────

func (a *App) buildShowcasePanel() fyne.CanvasObject {
	a.showcase = container.NewVBox()
	a.refreshShowcase()
	return container.NewVScroll(a.showcase)
}

func (a *App) refreshShowcase() {
	if a.showcase == nil {
		return
	}
	disposeAll(a.showcaseButtons)
	a.showcaseButtons = nil
	a.showcase.RemoveAll()

	style := a.current.Style
	a.showcase.Add(widget.NewLabelWithStyle(
		fmt.Sprintf("%s: %s", a.current.Name, a.current.Description),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))

	variants := []struct {
		caption string
		opts    []widgets.ScaleButtonOption
	}{
		{"Fallback label", nil},
		{"Icon", []widgets.ScaleButtonOption{
			widgets.WithLeading(widget.NewIcon(theme.MediaPlayIcon())),
		}},
		{"Icon and text", []widgets.ScaleButtonOption{
			widgets.WithLeading(widget.NewIcon(theme.MailSendIcon())),
			widgets.WithTrailing(widget.NewLabel("Send")),
		}},
		{"Text and icon", []widgets.ScaleButtonOption{
			widgets.WithLeading(widget.NewLabel("Next")),
			widgets.WithTrailing(widget.NewIcon(theme.NavigateNextIcon())),
		}},
	}

	for _, v := range variants {
		b := a.newButton(style, v.caption, v.opts...)
		a.showcaseButtons = append(a.showcaseButtons, b)
		a.showcase.Add(container.NewHBox(
			container.NewGridWrap(fyne.NewSize(140, b.MinSize().Height), widget.NewLabel(v.caption)),
			b,
		))
	}
	a.showcase.Refresh()
}

// ─── Gallery Panel ─────────────────────────────────────────

func (a *App) buildGalleryPanel() fyne.CanvasObject {
	a.gallery = container.NewVBox()
	a.refreshGallery()
	return container.NewVScroll(a.gallery)
}

func (a *App) refreshGallery() {
	if a.gallery == nil {
		return
	}
	disposeAll(a.galleryButtons)
	a.galleryButtons = nil
	a.gallery.RemoveAll()

	for _, p := range a.presets.Presets {
		caption := p.Name
		if p.IsBuiltIn {
			caption += " (built-in)"
		}
		b := a.newButton(p.Style, p.Name, widgets.WithLeading(widget.NewLabel(p.Name)))
		a.galleryButtons = append(a.galleryButtons, b)
		a.gallery.Add(container.NewBorder(nil, nil,
			container.NewGridWrap(fyne.NewSize(160, b.MinSize().Height), widget.NewLabel(caption)),
			nil,
			container.NewHBox(b),
		))
	}
	a.gallery.Refresh()
}

// newButton builds a ScaleButton wired to the counters.
func (a *App) newButton(style model.ButtonStyle, name string, opts ...widgets.ScaleButtonOption) *widgets.ScaleButton {
	opts = append([]widgets.ScaleButtonOption{
		widgets.WithStyle(style),
		widgets.WithHaptics(a.hapticsProvider()),
		widgets.WithLogger(a.logger),
		widgets.WithOnLongPress(func() {
			a.longPresses++
			a.status.SetText(fmt.Sprintf("Long-pressed %q", name))
			a.updateCounter()
		}),
	}, opts...)

	return widgets.NewScaleButton(func() {
		a.presses++
		a.status.SetText(fmt.Sprintf("Pressed %q", name))
		a.updateCounter()
	}, opts...)
}

func disposeAll(buttons []*widgets.ScaleButton) {
	for _, b := range buttons {
		b.Dispose()
	}
}

func (a *App) hapticsProvider() haptics.Provider {
	if a.cfg.App().SimulateHaptics {
		return haptics.NewLogger(a.logger)
	}
	return haptics.Nop{}
}

// ─── State Helpers ─────────────────────────────────────────

func (a *App) selectPreset(name string) {
	p := a.presetByName(name)
	if p.Name != name {
		a.logger.Warnw("Unknown preset, using default", "preset", name, "fallback", p.Name)
	}
	a.current = p
	if a.presetSelect != nil && a.presetSelect.Selected != p.Name {
		a.presetSelect.SetSelected(p.Name)
		return // SetSelected calls back into selectPreset
	}
	a.refreshShowcase()
	a.refreshGallery()
}

func (a *App) presetByName(name string) model.StylePreset {
	if p := a.presets.FindByName(name); p != nil {
		return *p
	}
	return *a.presets.FindByName(model.DefaultAppConfig().Preset)
}

func (a *App) loadPresets() {
	store, err := project.LoadPresets(a.cfg.PresetsPath())
	if err != nil {
		a.logger.Warnw("Failed to load user presets", "path", a.cfg.PresetsPath(), "error", err)
		store = model.NewPresetStore()
	}
	a.userPresets = store
	a.presets = store.WithBuiltIns()
}

func (a *App) savePresets() {
	if err := project.SavePresets(a.cfg.PresetsPath(), a.userPresets); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
	}
}

// addUserPreset stores p, replacing a user preset with the same name.
func (a *App) addUserPreset(p model.StylePreset) {
	if existing := a.userPresets.FindByName(p.Name); existing != nil {
		a.userPresets.Remove(existing.ID)
	}
	a.userPresets.Add(p)
	a.savePresets()
	a.presets = a.userPresets.WithBuiltIns()
	if a.presetSelect != nil {
		a.presetSelect.Options = a.presets.Names()
		a.presetSelect.Refresh()
	}
	a.refreshGallery()
}

func (a *App) resetCounters() {
	a.presses = 0
	a.longPresses = 0
	a.status.SetText("Counters reset")
	a.updateCounter()
}

func (a *App) updateCounter() {
	a.counter.SetText(fmt.Sprintf("Presses: %d  Long presses: %d", a.presses, a.longPresses))
}
