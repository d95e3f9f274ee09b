package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/scalebutton/internal/model"
	"github.com/piwi3910/scalebutton/internal/project"
)

// styleFields holds the raw text of the editable style fields.
type styleFields struct {
	background   string
	splash       string
	borderRadius string
	scale        string
	scaleMillis  string
}

func fieldsFromStyle(s model.ButtonStyle) styleFields {
	f := styleFields{
		background:  s.BackgroundColor,
		splash:      s.SplashColor,
		scale:       strconv.FormatFloat(float64(s.AnimationScale), 'f', -1, 32),
		scaleMillis: strconv.Itoa(s.AnimationScaleMillis),
	}
	if s.BorderRadius != nil {
		f.borderRadius = strconv.FormatFloat(float64(*s.BorderRadius), 'f', -1, 32)
	}
	return f
}

// apply parses f on top of base. Empty colors and radius mean "derive from
// the theme".
func (f styleFields) apply(base model.ButtonStyle) (model.ButtonStyle, error) {
	s := base
	for _, c := range []struct {
		label string
		value string
		dst   *string
	}{
		{"background color", f.background, &s.BackgroundColor},
		{"splash color", f.splash, &s.SplashColor},
	} {
		v := strings.TrimSpace(c.value)
		if v != "" {
			if _, err := model.ParseHexColor(v); err != nil {
				return base, fmt.Errorf("invalid %s: %w", c.label, err)
			}
		}
		*c.dst = v
	}

	s.BorderRadius = nil
	if v := strings.TrimSpace(f.borderRadius); v != "" {
		r, err := strconv.ParseFloat(v, 32)
		if err != nil || r < 0 {
			return base, fmt.Errorf("invalid border radius %q", v)
		}
		s = s.WithBorderRadius(float32(r))
	}

	scale, err := strconv.ParseFloat(strings.TrimSpace(f.scale), 32)
	if err != nil || scale <= 0 || scale > 1 {
		return base, fmt.Errorf("animation scale must be in (0, 1], got %q", f.scale)
	}
	s.AnimationScale = float32(scale)

	millis, err := strconv.Atoi(strings.TrimSpace(f.scaleMillis))
	if err != nil || millis < 0 {
		return base, fmt.Errorf("invalid animation duration %q", f.scaleMillis)
	}
	s.AnimationScaleMillis = millis

	return s.Normalized(), nil
}

// showSavePresetDialog lets the user save a tweaked copy of the current style
// as a user preset.
func (a *App) showSavePresetDialog() {
	f := fieldsFromStyle(a.current.Style)

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("My Preset")
	descEntry := widget.NewEntry()
	bgEntry := widget.NewEntry()
	bgEntry.SetText(f.background)
	bgEntry.SetPlaceHolder("transparent")
	splashEntry := widget.NewEntry()
	splashEntry.SetText(f.splash)
	splashEntry.SetPlaceHolder("from theme")
	radiusEntry := widget.NewEntry()
	radiusEntry.SetText(f.borderRadius)
	radiusEntry.SetPlaceHolder("6")
	scaleEntry := widget.NewEntry()
	scaleEntry.SetText(f.scale)
	millisEntry := widget.NewEntry()
	millisEntry.SetText(f.scaleMillis)

	form := dialog.NewForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
			widget.NewFormItem("Background (#hex)", bgEntry),
			widget.NewFormItem("Splash (#hex)", splashEntry),
			widget.NewFormItem("Border radius", radiusEntry),
			widget.NewFormItem("Pressed scale", scaleEntry),
			widget.NewFormItem("Scale duration (ms)", millisEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("preset name cannot be empty"), a.window)
				return
			}
			if p := a.presets.FindByName(name); p != nil && p.IsBuiltIn {
				dialog.ShowError(fmt.Errorf("%q is a built-in preset", name), a.window)
				return
			}
			style, err := styleFields{
				background:   bgEntry.Text,
				splash:       splashEntry.Text,
				borderRadius: radiusEntry.Text,
				scale:        scaleEntry.Text,
				scaleMillis:  millisEntry.Text,
			}.apply(a.current.Style)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}

			a.addUserPreset(model.NewStylePreset(name, strings.TrimSpace(descEntry.Text), style))
			a.selectPreset(name)
			a.status.SetText(fmt.Sprintf("Saved preset %q", name))
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 380))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importPreset() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		p, err := project.ImportPreset(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if existing := a.presets.FindByName(p.Name); existing != nil && existing.IsBuiltIn {
			dialog.ShowError(fmt.Errorf("cannot import %q: a built-in preset has that name", p.Name), a.window)
			return
		}

		a.addUserPreset(p)
		a.selectPreset(p.Name)
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Imported preset %q.", p.Name), a.window)
	}, a.window)
}

func (a *App) exportPreset() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.ExportPreset(writer.URI().Path(), a.current); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Preset exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName(a.current.Name + ".json")
	d.Show()
}

func (a *App) exportBackup() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.ExportAllData(path, a.cfg.App(), a.userPresets); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Presets and settings exported to:\n%s", path), a.window)
		}
	}, a.window)
	d.SetFileName("scalebutton-backup.json")
	d.Show()
}

func (a *App) importBackup() {
	dialog.ShowConfirm("Import Backup",
		"Importing a backup replaces your user presets.\n\nAre you sure you want to continue?",
		func(ok bool) {
			if !ok {
				return
			}
			d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				defer reader.Close()
				backup, err := project.ImportAllData(reader.URI().Path())
				if err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.restoreBackup(backup)
				dialog.ShowInformation("Import Complete",
					fmt.Sprintf("Backup created at %s restored.", backup.CreatedAt), a.window)
			}, a.window)
			d.Show()
		},
		a.window,
	)
}

// restoreBackup replaces the user presets and selects the backed-up preset.
func (a *App) restoreBackup(backup project.BackupData) {
	a.userPresets = backup.Store()
	a.savePresets()
	a.presets = a.userPresets.WithBuiltIns()
	if a.presetSelect != nil {
		a.presetSelect.Options = a.presets.Names()
		a.presetSelect.Refresh()
	}
	a.selectPreset(backup.Config.Preset)
}
