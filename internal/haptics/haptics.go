// Package haptics abstracts the platform's vibration feedback.
//
// Buttons never probe the platform themselves: they receive a Provider and
// only pulse it when Supported reports true.
package haptics

import (
	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

// Provider emits haptic pulses.
type Provider interface {
	// Supported reports whether the current platform can vibrate.
	Supported() bool
	// LightImpact emits a single light pulse.
	LightImpact()
}

// Nop is the provider for platforms without haptics.
type Nop struct{}

func (Nop) Supported() bool { return false }
func (Nop) LightImpact()    {}

// Func adapts a plain function into a supported Provider.
type Func func()

func (f Func) Supported() bool { return f != nil }

func (f Func) LightImpact() {
	if f != nil {
		f()
	}
}

// ForDevice returns p on mobile devices and Nop everywhere else.
// A nil device or provider yields Nop.
func ForDevice(dev fyne.Device, p Provider) Provider {
	if dev == nil || p == nil || !dev.IsMobile() {
		return Nop{}
	}
	return p
}

// Logger simulates pulses by logging them. The demo uses it on desktop where
// there is no vibration motor.
type Logger struct {
	logger *zap.SugaredLogger
}

// NewLogger creates a simulated provider writing to logger.
func NewLogger(logger *zap.SugaredLogger) *Logger {
	return &Logger{logger: logger.Named("haptics")}
}

func (l *Logger) Supported() bool { return true }

func (l *Logger) LightImpact() {
	l.logger.Debug("Light impact")
}
