package widgets

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/scalebutton/internal/haptics"
	"github.com/piwi3910/scalebutton/internal/model"
)

// Scheduler runs the delayed half of a tap pulse.
type Scheduler interface {
	// AfterFunc calls f once d has elapsed. The returned function cancels the
	// call and reports whether it was still pending.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// mainScheduler fires on a runtime timer and hands f back to the Fyne main
// goroutine, where every other scale mutation happens.
type mainScheduler struct{}

func (mainScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := time.AfterFunc(d, func() { fyne.Do(f) })
	return t.Stop
}

// ScaleButtonOption configures a ScaleButton at construction.
type ScaleButtonOption func(*ScaleButton)

// WithStyle sets the visual style. Out-of-range values are normalized.
func WithStyle(style model.ButtonStyle) ScaleButtonOption {
	return func(b *ScaleButton) { b.style = style.Normalized() }
}

// WithLeading sets the element shown first in the row. Without it the
// style's fallback label is shown.
func WithLeading(obj fyne.CanvasObject) ScaleButtonOption {
	return func(b *ScaleButton) { b.leading = obj }
}

// WithTrailing sets the element shown after the spacer.
func WithTrailing(obj fyne.CanvasObject) ScaleButtonOption {
	return func(b *ScaleButton) { b.trailing = obj }
}

// WithOnLongPress sets the long-press callback. On desktop a secondary
// (right) click counts as a long press.
func WithOnLongPress(f func()) ScaleButtonOption {
	return func(b *ScaleButton) { b.onLongPress = f }
}

// WithHaptics sets the feedback provider. The default is haptics.Nop.
func WithHaptics(p haptics.Provider) ScaleButtonOption {
	return func(b *ScaleButton) {
		if p != nil {
			b.haptics = p
		}
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *zap.SugaredLogger) ScaleButtonOption {
	return func(b *ScaleButton) {
		if logger != nil {
			b.logger = logger.Named("scale_button")
		}
	}
}

// WithScheduler replaces the timer used for the tap pulse.
func WithScheduler(s Scheduler) ScaleButtonOption {
	return func(b *ScaleButton) {
		if s != nil {
			b.scheduler = s
		}
	}
}

// ScaleButton is a tappable row of content that dips to a smaller scale while
// pressed and springs back on release. A tap additionally plays a short
// dip-and-recover pulse so that programmatic taps get the same feedback.
//
// The scale is only ever 1 or the style's AnimationScale; the rendered size
// animates between the two.
type ScaleButton struct {
	widget.BaseWidget

	onPress     func()
	onLongPress func()
	leading     fyne.CanvasObject
	trailing    fyne.CanvasObject
	style       model.ButtonStyle
	haptics     haptics.Provider
	scheduler   Scheduler
	logger      *zap.SugaredLogger

	scale   float32
	display float32
	anim    *fyne.Animation
	hovered bool
	pressed bool

	// rendered is true while a renderer exists. generation is bumped on every
	// teardown so delays scheduled before it can tell they are stale.
	rendered   bool
	generation uint64
	pending    map[uint64]func() bool
	nextDelay  uint64
}

// NewScaleButton creates a button calling onPress on every tap. onPress may
// be nil.
func NewScaleButton(onPress func(), opts ...ScaleButtonOption) *ScaleButton {
	b := &ScaleButton{
		onPress:   onPress,
		style:     model.DefaultButtonStyle(),
		haptics:   haptics.Nop{},
		scheduler: mainScheduler{},
		logger:    zap.NewNop().Sugar(),
		scale:     1,
		display:   1,
		pending:   make(map[uint64]func() bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.ExtendBaseWidget(b)
	return b
}

// Scale returns the current target scale: 1 at rest, AnimationScale while
// pressed.
func (b *ScaleButton) Scale() float32 {
	return b.scale
}

// Style returns the normalized style the button was built with.
func (b *ScaleButton) Style() model.ButtonStyle {
	return b.style
}

// Dispose cancels pending pulses. Call it when the button is removed for
// good; Fyne also does this when the renderer is evicted.
func (b *ScaleButton) Dispose() {
	b.unmount()
}

func (b *ScaleButton) CreateRenderer() fyne.WidgetRenderer {
	b.scale = 1
	b.display = 1
	b.rendered = true
	return newScaleButtonRenderer(b)
}

// Tapped plays the pulse and calls the press callback.
func (b *ScaleButton) Tapped(*fyne.PointEvent) {
	b.logger.Debugw("Tapped", "generation", b.generation)
	b.feedback()
	b.pulse()
	if b.onPress != nil {
		b.onPress()
	}
}

// TappedSecondary is delivered for long presses on touch screens and for
// secondary clicks on desktop.
func (b *ScaleButton) TappedSecondary(*fyne.PointEvent) {
	b.logger.Debugw("Long pressed", "generation", b.generation)
	b.feedback()
	b.setScale(1)
	if b.onLongPress != nil {
		b.onLongPress()
	}
}

func (b *ScaleButton) MouseDown(ev *desktop.MouseEvent) {
	if ev != nil && ev.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pointerDown()
}

func (b *ScaleButton) MouseUp(*desktop.MouseEvent) {
	b.pointerUp()
}

func (b *ScaleButton) MouseIn(*desktop.MouseEvent) {
	b.setHovered(true)
}

func (b *ScaleButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut cancels an in-flight press, the same as dragging off a button.
func (b *ScaleButton) MouseOut() {
	b.setHovered(false)
	if b.pressed {
		b.pointerCancel()
	}
}

func (b *ScaleButton) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (b *ScaleButton) TouchDown(*mobile.TouchEvent) {
	b.pointerDown()
}

func (b *ScaleButton) TouchUp(*mobile.TouchEvent) {
	b.pointerUp()
}

func (b *ScaleButton) TouchCancel(*mobile.TouchEvent) {
	b.pointerCancel()
}

func (b *ScaleButton) pointerDown() {
	b.pressed = true
	b.setScale(b.style.AnimationScale)
	b.refreshIfRendered()
}

func (b *ScaleButton) pointerUp() {
	b.pressed = false
	b.setScale(1)
	b.refreshIfRendered()
}

func (b *ScaleButton) pointerCancel() {
	b.pressed = false
	b.setScale(1)
	b.refreshIfRendered()
}

func (b *ScaleButton) setHovered(h bool) {
	if b.hovered == h {
		return
	}
	b.hovered = h
	b.refreshIfRendered()
}

func (b *ScaleButton) feedback() {
	if !b.style.HasFeedback || !b.haptics.Supported() {
		return
	}
	b.haptics.LightImpact()
}

// pulse dips to the pressed scale and schedules exactly one restore.
func (b *ScaleButton) pulse() {
	b.setScale(b.style.AnimationScale)

	gen := b.generation
	id := b.nextDelay
	b.nextDelay++
	b.pending[id] = b.scheduler.AfterFunc(b.style.AnimationPause(), func() {
		delete(b.pending, id)
		if gen != b.generation {
			b.logger.Debugw("Dropped stale pulse", "generation", gen, "current", b.generation)
			return
		}
		b.setScale(1)
	})
}

func (b *ScaleButton) setScale(v float32) {
	if b.scale == v {
		return
	}
	b.scale = v
	b.animateTo(v)
}

func (b *ScaleButton) animateTo(target float32) {
	if b.anim != nil {
		b.anim.Stop()
		b.anim = nil
	}

	d := b.style.AnimationScaleDuration()
	if !b.rendered || d <= 0 || b.display == target {
		b.display = target
		b.refreshIfRendered()
		return
	}

	from := b.display
	b.anim = fyne.NewAnimation(d, func(p float32) {
		b.display = from + (target-from)*p
		b.refreshIfRendered()
	})
	b.anim.Curve = fyne.AnimationEaseInOut
	b.anim.Start()
}

// refreshIfRendered avoids BaseWidget.Refresh creating a renderer as a side
// effect of a state change.
func (b *ScaleButton) refreshIfRendered() {
	if b.rendered {
		b.Refresh()
	}
}

func (b *ScaleButton) unmount() {
	b.generation++
	for id, stop := range b.pending {
		stop()
		delete(b.pending, id)
	}
	if b.anim != nil {
		b.anim.Stop()
		b.anim = nil
	}
	b.rendered = false
	b.pressed = false
	b.hovered = false
}

var (
	_ fyne.Tappable          = (*ScaleButton)(nil)
	_ fyne.SecondaryTappable = (*ScaleButton)(nil)
	_ desktop.Mouseable      = (*ScaleButton)(nil)
	_ desktop.Hoverable      = (*ScaleButton)(nil)
	_ desktop.Cursorable     = (*ScaleButton)(nil)
	_ mobile.Touchable       = (*ScaleButton)(nil)
)
