package widgets

import (
	"image/color"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piwi3910/scalebutton/internal/haptics"
	"github.com/piwi3910/scalebutton/internal/model"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

// fakeScheduler records delays and fires them on demand.
type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return func() bool {
		if t.stopped || t.fired {
			return false
		}
		t.stopped = true
		return true
	}
}

func (s *fakeScheduler) fire() {
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

// fireStopped runs cancelled callbacks anyway, as a timer that lost the race
// with Stop would.
func (s *fakeScheduler) fireStopped() {
	for _, t := range s.timers {
		if t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type recordingHaptics struct {
	supported bool
	pulses    int
}

func (h *recordingHaptics) Supported() bool { return h.supported }
func (h *recordingHaptics) LightImpact()    { h.pulses++ }

func instantStyle() model.ButtonStyle {
	s := model.DefaultButtonStyle()
	s.AnimationScaleMillis = 0
	return s
}

func primaryClick() *desktop.MouseEvent {
	return &desktop.MouseEvent{Button: desktop.MouseButtonPrimary}
}

func TestScaleButton_InitialScale(t *testing.T) {
	styles := []model.ButtonStyle{model.DefaultButtonStyle(), instantStyle()}
	custom := model.DefaultButtonStyle()
	custom.AnimationScale = 0.5
	custom.HasFeedback = false
	styles = append(styles, custom.WithBorderRadius(2))

	for _, style := range styles {
		b := NewScaleButton(nil, WithStyle(style))
		assert.Equal(t, float32(1), b.Scale())
	}
}

func TestScaleButton_StyleIsNormalized(t *testing.T) {
	style := model.DefaultButtonStyle()
	style.AnimationScale = 1.5
	b := NewScaleButton(nil, WithStyle(style))

	assert.Equal(t, model.DefaultAnimationScale, b.Style().AnimationScale)
}

func TestScaleButton_PointerDownUp(t *testing.T) {
	test.NewTempApp(t)
	style := instantStyle()
	style.AnimationScale = 0.8
	b := NewScaleButton(nil, WithStyle(style))
	test.WidgetRenderer(b)

	b.MouseDown(primaryClick())
	assert.Equal(t, float32(0.8), b.Scale())

	b.MouseUp(primaryClick())
	assert.Equal(t, float32(1), b.Scale())
}

func TestScaleButton_TouchDownCancel(t *testing.T) {
	test.NewTempApp(t)
	b := NewScaleButton(nil, WithStyle(instantStyle()))
	test.WidgetRenderer(b)

	b.TouchDown(&mobile.TouchEvent{})
	assert.Equal(t, float32(0.9), b.Scale())

	b.TouchCancel(&mobile.TouchEvent{})
	assert.Equal(t, float32(1), b.Scale())

	b.TouchDown(&mobile.TouchEvent{})
	b.TouchUp(&mobile.TouchEvent{})
	assert.Equal(t, float32(1), b.Scale())
}

func TestScaleButton_MouseOutCancelsPress(t *testing.T) {
	test.NewTempApp(t)
	b := NewScaleButton(nil, WithStyle(instantStyle()))
	test.WidgetRenderer(b)

	b.MouseIn(&desktop.MouseEvent{})
	b.MouseDown(primaryClick())
	require.Equal(t, float32(0.9), b.Scale())

	b.MouseOut()
	assert.Equal(t, float32(1), b.Scale())
	assert.False(t, b.pressed)
	assert.False(t, b.hovered)
}

func TestScaleButton_SecondaryMouseDownIgnored(t *testing.T) {
	test.NewTempApp(t)
	b := NewScaleButton(nil, WithStyle(instantStyle()))
	test.WidgetRenderer(b)

	b.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonSecondary})
	assert.Equal(t, float32(1), b.Scale())
}

func TestScaleButton_TapPulse(t *testing.T) {
	test.NewTempApp(t)
	sched := &fakeScheduler{}
	presses := 0
	b := NewScaleButton(func() { presses++ }, WithStyle(instantStyle()), WithScheduler(sched))
	test.WidgetRenderer(b)

	test.Tap(b)

	assert.Equal(t, float32(0.9), b.Scale(), "tap dips immediately")
	assert.Equal(t, 1, presses)
	require.Len(t, sched.timers, 1, "exactly one delayed restore per tap")
	assert.Equal(t, 100*time.Millisecond, sched.timers[0].d)

	sched.fire()
	assert.Equal(t, float32(1), b.Scale())
	assert.Equal(t, 1, presses, "the restore does not call onPress again")
	assert.Empty(t, b.pending)
}

func TestScaleButton_TapUsesConfiguredPause(t *testing.T) {
	test.NewTempApp(t)
	sched := &fakeScheduler{}
	style := instantStyle()
	style.AnimationPauseMillis = 250
	b := NewScaleButton(nil, WithStyle(style), WithScheduler(sched))
	test.WidgetRenderer(b)

	test.Tap(b)
	require.Len(t, sched.timers, 1)
	assert.Equal(t, 250*time.Millisecond, sched.timers[0].d)
}

func TestScaleButton_EachTapSchedulesOneRestore(t *testing.T) {
	test.NewTempApp(t)
	sched := &fakeScheduler{}
	presses := 0
	b := NewScaleButton(func() { presses++ }, WithStyle(instantStyle()), WithScheduler(sched))
	test.WidgetRenderer(b)

	test.Tap(b)
	test.Tap(b)
	test.Tap(b)

	assert.Equal(t, 3, presses)
	assert.Equal(t, 3, sched.pending())

	sched.fire()
	assert.Equal(t, float32(1), b.Scale())
	assert.Zero(t, sched.pending())
}

func TestScaleButton_TapWithoutCallback(t *testing.T) {
	test.NewTempApp(t)
	sched := &fakeScheduler{}
	b := NewScaleButton(nil, WithScheduler(sched))
	test.WidgetRenderer(b)

	assert.NotPanics(t, func() { test.Tap(b) })
	assert.NotPanics(t, func() { test.TapSecondary(b) })
	assert.NotPanics(t, sched.fire)
}

func TestScaleButton_LongPress(t *testing.T) {
	test.NewTempApp(t)
	sched := &fakeScheduler{}
	presses, longPresses := 0, 0
	b := NewScaleButton(func() { presses++ },
		WithStyle(instantStyle()),
		WithScheduler(sched),
		WithOnLongPress(func() { longPresses++ }),
	)
	test.WidgetRenderer(b)

	test.Tap(b)
	require.Equal(t, float32(0.9), b.Scale())

	test.TapSecondary(b)
	assert.Equal(t, float32(1), b.Scale(), "long press restores immediately")
	assert.Equal(t, 1, longPresses)
	assert.Equal(t, 1, presses)
	assert.Equal(t, 1, sched.pending(), "the running pulse is left alone")

	sched.fire()
	assert.Equal(t, float32(1), b.Scale())
	assert.Equal(t, 1, longPresses)
}

func TestScaleButton_Haptics(t *testing.T) {
	test.NewTempApp(t)

	tests := []struct {
		name        string
		hasFeedback bool
		supported   bool
		want        int
	}{
		{"enabled and supported", true, true, 2},
		{"disabled", false, true, 0},
		{"unsupported platform", true, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &recordingHaptics{supported: tc.supported}
			style := instantStyle()
			style.HasFeedback = tc.hasFeedback
			b := NewScaleButton(nil, WithStyle(style), WithHaptics(h), WithScheduler(&fakeScheduler{}))

			test.Tap(b)
			test.TapSecondary(b)
			assert.Equal(t, tc.want, h.pulses)
		})
	}
}

func TestScaleButton_HapticsOnlyOnTapAndLongPress(t *testing.T) {
	test.NewTempApp(t)
	h := &recordingHaptics{supported: true}
	b := NewScaleButton(nil, WithStyle(instantStyle()), WithHaptics(h))
	test.WidgetRenderer(b)

	b.MouseDown(primaryClick())
	b.MouseUp(primaryClick())
	b.TouchDown(&mobile.TouchEvent{})
	b.TouchCancel(&mobile.TouchEvent{})
	assert.Zero(t, h.pulses)
}

func TestScaleButton_DesktopDeviceGetsNoHaptics(t *testing.T) {
	test.NewTempApp(t)
	pulses := 0
	provider := haptics.ForDevice(fyne.CurrentDevice(), haptics.Func(func() { pulses++ }))
	b := NewScaleButton(nil, WithHaptics(provider), WithScheduler(&fakeScheduler{}))

	test.Tap(b)
	if fyne.CurrentDevice().IsMobile() {
		assert.Equal(t, 1, pulses)
	} else {
		assert.Zero(t, pulses)
	}
}

func TestScaleButton_FallbackLabel(t *testing.T) {
	test.NewTempApp(t)
	b := NewScaleButton(nil)
	r := test.WidgetRenderer(b)

	objects := r.Objects()
	require.Len(t, objects, 3, "background, overlay and fallback label")
	label, ok := objects[2].(*canvas.Text)
	require.True(t, ok, "expected the fallback label")
	assert.Equal(t, "Temp", label.Text)
	assert.Equal(t, theme.Color(theme.ColorNameForeground), label.Color)
}

func TestScaleButton_CustomFallbackLabel(t *testing.T) {
	test.NewTempApp(t)
	style := model.DefaultButtonStyle()
	style.TempButtonText = "Go"
	style.TempButtonTextColor = "#ff0000"
	b := NewScaleButton(nil, WithStyle(style))
	r := test.WidgetRenderer(b)

	label := r.Objects()[2].(*canvas.Text)
	assert.Equal(t, "Go", label.Text)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, label.Color)
}

func TestScaleButton_LeadingReplacesFallback(t *testing.T) {
	test.NewTempApp(t)
	lead := canvas.NewRectangle(color.Black)
	lead.SetMinSize(fyne.NewSize(20, 20))
	b := NewScaleButton(nil, WithLeading(lead))
	r := test.WidgetRenderer(b)

	objects := r.Objects()
	require.Len(t, objects, 3)
	assert.Same(t, lead, objects[2])
	for _, o := range objects {
		_, isText := o.(*canvas.Text)
		assert.False(t, isText, "no fallback label when leading is set")
	}
}

func TestScaleButton_TrailingLayout(t *testing.T) {
	test.NewTempApp(t)
	lead := canvas.NewRectangle(color.Black)
	lead.SetMinSize(fyne.NewSize(20, 10))
	trail := canvas.NewRectangle(color.White)
	trail.SetMinSize(fyne.NewSize(30, 16))

	style := instantStyle()
	style.LeadingTrailingSpacing = 5
	b := NewScaleButton(nil, WithStyle(style), WithLeading(lead), WithTrailing(trail))
	r := test.WidgetRenderer(b)

	require.Len(t, r.Objects(), 4)
	assert.Equal(t, fyne.NewSize(20+5+30+16, 16+16), r.MinSize())

	b.Resize(r.MinSize())
	assert.Equal(t, fyne.NewPos(8, 11), lead.Position(), "leading is centered vertically in the padded area")
	assert.Equal(t, fyne.NewPos(8+20+5, 8), trail.Position(), "trailing follows the spacer")
	assert.Equal(t, fyne.NewSize(30, 16), trail.Size())
}

func TestScaleButton_NoTrailingNoSpacer(t *testing.T) {
	test.NewTempApp(t)
	lead := canvas.NewRectangle(color.Black)
	lead.SetMinSize(fyne.NewSize(20, 10))

	style := instantStyle()
	style.LeadingTrailingSpacing = 12
	b := NewScaleButton(nil, WithStyle(style), WithLeading(lead))
	r := test.WidgetRenderer(b)

	require.Len(t, r.Objects(), 3)
	assert.Equal(t, fyne.NewSize(20+16, 10+16), r.MinSize(), "spacing is only added before a trailing element")
}

func TestScaleButton_LayoutFollowsScale(t *testing.T) {
	test.NewTempApp(t)
	b := NewScaleButton(nil, WithStyle(instantStyle()))
	r := test.WidgetRenderer(b)
	b.Resize(fyne.NewSize(100, 40))

	bg := r.Objects()[0]
	assert.Equal(t, fyne.NewSize(100, 40), bg.Size())
	assert.Equal(t, fyne.NewPos(0, 0), bg.Position())

	b.MouseDown(primaryClick())
	assert.InDelta(t, 90, bg.Size().Width, 0.01)
	assert.InDelta(t, 36, bg.Size().Height, 0.01)
	assert.InDelta(t, 5, bg.Position().X, 0.01)
	assert.InDelta(t, 2, bg.Position().Y, 0.01)

	b.MouseUp(primaryClick())
	assert.Equal(t, fyne.NewSize(100, 40), bg.Size())
}

func TestScaleButton_CornerRadii(t *testing.T) {
	test.NewTempApp(t)
	b := NewScaleButton(nil, WithStyle(instantStyle()))
	r := test.WidgetRenderer(b)
	b.Resize(fyne.NewSize(100, 40))

	bg := r.Objects()[0].(*canvas.Rectangle)
	overlay := r.Objects()[1].(*canvas.Rectangle)
	assert.Equal(t, float32(6), bg.CornerRadius)
	assert.Equal(t, float32(20), overlay.CornerRadius, "splash region is a full pill")

	b2 := NewScaleButton(nil, WithStyle(instantStyle().WithBorderRadius(4)))
	r2 := test.WidgetRenderer(b2)
	b2.Resize(fyne.NewSize(100, 40))
	assert.Equal(t, float32(4), r2.Objects()[0].(*canvas.Rectangle).CornerRadius)
	assert.Equal(t, float32(4), r2.Objects()[1].(*canvas.Rectangle).CornerRadius)
}

func TestScaleButton_OverlayColors(t *testing.T) {
	test.NewTempApp(t)
	style := instantStyle()
	style.BackgroundColor = "#101010"
	style.HoverColor = "#202020"
	style.SplashColor = "#303030"
	b := NewScaleButton(nil, WithStyle(style))
	r := test.WidgetRenderer(b)

	bg := r.Objects()[0].(*canvas.Rectangle)
	overlay := r.Objects()[1].(*canvas.Rectangle)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}, bg.FillColor)
	assert.Equal(t, color.Transparent, overlay.FillColor)

	b.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}, overlay.FillColor)

	b.MouseDown(primaryClick())
	assert.Equal(t, color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}, overlay.FillColor)

	b.MouseUp(primaryClick())
	assert.Equal(t, color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}, overlay.FillColor)

	b.MouseOut()
	assert.Equal(t, color.Transparent, overlay.FillColor)
}

func TestScaleButton_UnmountCancelsPulse(t *testing.T) {
	test.NewTempApp(t)
	sched := &fakeScheduler{}
	b := NewScaleButton(nil, WithStyle(instantStyle()), WithScheduler(sched))
	r := test.WidgetRenderer(b)

	test.Tap(b)
	require.Equal(t, 1, sched.pending())

	assert.NotPanics(t, r.Destroy)
	assert.Zero(t, sched.pending(), "teardown cancels the delay")
	assert.True(t, sched.timers[0].stopped)
	scaleAtUnmount := b.Scale()

	sched.fireStopped()
	assert.Equal(t, scaleAtUnmount, b.Scale(), "a stale delay never mutates state")
}

func TestScaleButton_DisposeLogsStalePulse(t *testing.T) {
	test.NewTempApp(t)
	core, logs := observer.New(zapcore.DebugLevel)
	sched := &fakeScheduler{}
	b := NewScaleButton(nil,
		WithStyle(instantStyle()),
		WithScheduler(sched),
		WithLogger(zap.New(core).Sugar()),
	)
	test.WidgetRenderer(b)

	test.Tap(b)
	b.Dispose()
	sched.fireStopped()

	assert.Equal(t, 1, logs.FilterMessage("Dropped stale pulse").Len())
	assert.Equal(t, 1, logs.FilterMessage("Tapped").Len())
}

func TestScaleButton_RemountStartsAtRest(t *testing.T) {
	test.NewTempApp(t)
	sched := &fakeScheduler{}
	b := NewScaleButton(nil, WithStyle(instantStyle()), WithScheduler(sched))
	r := test.WidgetRenderer(b)

	test.Tap(b)
	r.Destroy()

	b.CreateRenderer()
	assert.Equal(t, float32(1), b.Scale())
	assert.Equal(t, float32(1), b.display)

	test.Tap(b)
	sched.fire()
	assert.Equal(t, float32(1), b.Scale(), "pulses scheduled after remount still restore")
}

// Only onPress set: "Temp" shows, a tap dips to 0.9 and recovers.
func TestScaleButton_DefaultScenario(t *testing.T) {
	test.NewTempApp(t)
	sched := &fakeScheduler{}
	presses := 0
	var seen []float32
	b := NewScaleButton(func() { presses++ }, WithScheduler(sched))
	r := test.WidgetRenderer(b)

	assert.Equal(t, "Temp", r.Objects()[2].(*canvas.Text).Text)
	seen = append(seen, b.Scale())

	test.Tap(b)
	seen = append(seen, b.Scale())

	require.Len(t, sched.timers, 1)
	assert.Equal(t, 100*time.Millisecond, sched.timers[0].d)
	sched.fire()
	seen = append(seen, b.Scale())

	assert.Equal(t, []float32{1, 0.9, 1}, seen)
	assert.Equal(t, 1, presses)
}

func TestScaleButton_AnimatedScaleSettlesOnTarget(t *testing.T) {
	test.NewTempApp(t)
	b := NewScaleButton(nil)
	test.WidgetRenderer(b)

	b.MouseDown(primaryClick())
	assert.Equal(t, float32(0.9), b.Scale(), "state changes at once even while the render animates")
	if b.anim != nil {
		b.anim.Tick(1)
	}
	assert.InDelta(t, 0.9, b.display, 0.001)
}

func TestMainScheduler_Stop(t *testing.T) {
	fired := false
	stop := mainScheduler{}.AfterFunc(time.Hour, func() { fired = true })

	assert.True(t, stop(), "pending timer can be stopped")
	assert.False(t, stop(), "second stop reports nothing pending")
	assert.False(t, fired)
}
