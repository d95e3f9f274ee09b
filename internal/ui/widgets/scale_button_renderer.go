package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/scalebutton/internal/model"
)

type scaleButtonRenderer struct {
	b *ScaleButton

	background *canvas.Rectangle
	overlay    *canvas.Rectangle
	label      *canvas.Text // fallback when there is no leading element
	textSize   float32

	objects []fyne.CanvasObject
}

func newScaleButtonRenderer(b *ScaleButton) *scaleButtonRenderer {
	r := &scaleButtonRenderer{
		b:          b,
		background: canvas.NewRectangle(color.Transparent),
		overlay:    canvas.NewRectangle(color.Transparent),
		textSize:   theme.TextSize(),
	}
	r.objects = []fyne.CanvasObject{r.background, r.overlay}

	if b.leading != nil {
		r.objects = append(r.objects, b.leading)
	} else {
		r.label = canvas.NewText(b.style.TempButtonText, theme.Color(theme.ColorNameForeground))
		r.label.TextSize = r.textSize
		r.objects = append(r.objects, r.label)
	}
	if b.trailing != nil {
		r.objects = append(r.objects, b.trailing)
	}

	r.applyColors()
	return r
}

// leadingMin is the unscaled minimum size of the leading element.
func (r *scaleButtonRenderer) leadingMin() fyne.Size {
	if r.label != nil {
		return fyne.MeasureText(r.label.Text, r.textSize, r.label.TextStyle)
	}
	return r.b.leading.MinSize()
}

func (r *scaleButtonRenderer) contentMin() fyne.Size {
	size := r.leadingMin()
	if r.b.trailing != nil {
		tm := r.b.trailing.MinSize()
		size.Width += r.b.style.LeadingTrailingSpacing + tm.Width
		size.Height = fyne.Max(size.Height, tm.Height)
	}
	return size
}

func (r *scaleButtonRenderer) MinSize() fyne.Size {
	pad := r.b.style.Padding
	return r.contentMin().Add(fyne.NewSize(pad.Horizontal(), pad.Vertical()))
}

// Layout shrinks everything by the displayed scale around the center of size.
func (r *scaleButtonRenderer) Layout(size fyne.Size) {
	s := r.b.display
	scaled := fyne.NewSize(size.Width*s, size.Height*s)
	origin := fyne.NewPos((size.Width-scaled.Width)/2, (size.Height-scaled.Height)/2)

	r.background.Resize(scaled)
	r.background.Move(origin)
	r.background.CornerRadius = clampRadius(r.b.style.BackgroundRadius()*s, scaled)

	r.overlay.Resize(scaled)
	r.overlay.Move(origin)
	r.overlay.CornerRadius = clampRadius(r.b.style.SplashRadius()*s, scaled)

	pad := r.b.style.Padding.Scaled(s)
	inner := fyne.NewSize(scaled.Width-pad.Horizontal(), scaled.Height-pad.Vertical())

	lead := r.leadingMin()
	lead = fyne.NewSize(lead.Width*s, lead.Height*s)
	row := lead

	var trail fyne.Size
	spacing := r.b.style.LeadingTrailingSpacing * s
	if r.b.trailing != nil {
		trail = r.b.trailing.MinSize()
		trail = fyne.NewSize(trail.Width*s, trail.Height*s)
		row.Width += spacing + trail.Width
		row.Height = fyne.Max(row.Height, trail.Height)
	}

	x := origin.X + pad.Left + fyne.Max(0, (inner.Width-row.Width)/2)
	top := origin.Y + pad.Top

	leadObj := r.leadingObject()
	if r.label != nil {
		r.label.TextSize = r.textSize * s
	}
	leadObj.Resize(lead)
	leadObj.Move(fyne.NewPos(x, top+fyne.Max(0, (inner.Height-lead.Height)/2)))

	if r.b.trailing != nil {
		x += lead.Width + spacing
		r.b.trailing.Resize(trail)
		r.b.trailing.Move(fyne.NewPos(x, top+fyne.Max(0, (inner.Height-trail.Height)/2)))
	}
}

func (r *scaleButtonRenderer) Refresh() {
	r.textSize = theme.TextSize()
	if r.label != nil {
		r.label.Text = r.b.style.TempButtonText
	}
	r.applyColors()
	r.Layout(r.b.Size())

	r.background.Refresh()
	r.overlay.Refresh()
	if r.label != nil {
		r.label.Refresh()
	}
	canvas.Refresh(r.b)
}

func (r *scaleButtonRenderer) Destroy() {
	r.b.unmount()
}

func (r *scaleButtonRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *scaleButtonRenderer) leadingObject() fyne.CanvasObject {
	if r.label != nil {
		return r.label
	}
	return r.b.leading
}

func (r *scaleButtonRenderer) palette() model.Palette {
	return r.b.style.Palette(
		theme.Color(theme.ColorNameHover),
		theme.Color(theme.ColorNamePressed),
		theme.Color(theme.ColorNameForeground),
	)
}

func (r *scaleButtonRenderer) applyColors() {
	p := r.palette()
	r.background.FillColor = p.Background

	switch {
	case r.b.pressed:
		r.overlay.FillColor = p.Splash
	case r.b.hovered:
		r.overlay.FillColor = p.Hover
	default:
		r.overlay.FillColor = color.Transparent
	}

	if r.label != nil {
		r.label.Color = p.TempText
	}
}

// clampRadius keeps a corner radius within half the shorter side, which is
// as round as a rectangle of that size can get.
func clampRadius(radius float32, size fyne.Size) float32 {
	limit := fyne.Min(size.Width, size.Height) / 2
	if radius > limit {
		return limit
	}
	if radius < 0 {
		return 0
	}
	return radius
}
