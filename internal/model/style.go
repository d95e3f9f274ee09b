package model

import "time"

// Style defaults. Radii and padding are in Fyne units.
const (
	DefaultAnimationScale         float32 = 0.9
	DefaultAnimationPauseMillis           = 100
	DefaultAnimationScaleMillis           = 100
	DefaultPadding                float32 = 8
	DefaultBackgroundRadius       float32 = 6
	DefaultSplashRadius           float32 = 360
	DefaultTempButtonText                 = "Temp"
)

// Insets is the padding between the button edge and its content.
type Insets struct {
	Top    float32 `json:"top" mapstructure:"top"`
	Right  float32 `json:"right" mapstructure:"right"`
	Bottom float32 `json:"bottom" mapstructure:"bottom"`
	Left   float32 `json:"left" mapstructure:"left"`
}

// UniformInsets returns insets with the same value on every side.
func UniformInsets(v float32) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns the combined left and right inset.
func (i Insets) Horizontal() float32 { return i.Left + i.Right }

// Vertical returns the combined top and bottom inset.
func (i Insets) Vertical() float32 { return i.Top + i.Bottom }

// Scaled returns the insets multiplied by f.
func (i Insets) Scaled(f float32) Insets {
	return Insets{Top: i.Top * f, Right: i.Right * f, Bottom: i.Bottom * f, Left: i.Left * f}
}

// ButtonStyle holds the immutable visual configuration of a scale button.
// Colors are hex strings ("#rgb", "#rrggbb" or "#rrggbbaa"); an empty string
// means "not set" and the theme decides.
type ButtonStyle struct {
	HasFeedback bool `json:"has_feedback" mapstructure:"has_feedback"`

	// BorderRadius overrides both the background radius and the splash
	// radius when set.
	BorderRadius *float32 `json:"border_radius,omitempty" mapstructure:"border_radius"`

	BackgroundColor string `json:"background_color" mapstructure:"background_color"`
	HoverColor      string `json:"hover_color" mapstructure:"hover_color"`
	SplashColor     string `json:"splash_color" mapstructure:"splash_color"`

	Padding                Insets  `json:"padding" mapstructure:"padding"`
	LeadingTrailingSpacing float32 `json:"leading_trailing_spacing" mapstructure:"leading_trailing_spacing"`

	AnimationPauseMillis int     `json:"animation_pause_ms" mapstructure:"animation_pause_ms"`
	AnimationScaleMillis int     `json:"animation_scale_ms" mapstructure:"animation_scale_ms"`
	AnimationScale       float32 `json:"animation_scale" mapstructure:"animation_scale"`

	TempButtonText      string `json:"temp_button_text" mapstructure:"temp_button_text"`
	TempButtonTextColor string `json:"temp_button_text_color" mapstructure:"temp_button_text_color"`
}

// DefaultButtonStyle returns the style used when the caller configures nothing.
func DefaultButtonStyle() ButtonStyle {
	return ButtonStyle{
		HasFeedback:          true,
		Padding:              UniformInsets(DefaultPadding),
		AnimationPauseMillis: DefaultAnimationPauseMillis,
		AnimationScaleMillis: DefaultAnimationScaleMillis,
		AnimationScale:       DefaultAnimationScale,
		TempButtonText:       DefaultTempButtonText,
	}
}

// Normalized returns a copy of s with out-of-range values replaced by their
// defaults. The animation scale always ends up in (0, 1].
func (s ButtonStyle) Normalized() ButtonStyle {
	if s.AnimationScale <= 0 || s.AnimationScale > 1 {
		s.AnimationScale = DefaultAnimationScale
	}
	if s.AnimationPauseMillis < 0 {
		s.AnimationPauseMillis = DefaultAnimationPauseMillis
	}
	if s.AnimationScaleMillis < 0 {
		s.AnimationScaleMillis = DefaultAnimationScaleMillis
	}
	if s.LeadingTrailingSpacing < 0 {
		s.LeadingTrailingSpacing = 0
	}
	if s.BorderRadius != nil && *s.BorderRadius < 0 {
		s.BorderRadius = nil
	}
	s.Padding = Insets{
		Top:    nonNegative(s.Padding.Top),
		Right:  nonNegative(s.Padding.Right),
		Bottom: nonNegative(s.Padding.Bottom),
		Left:   nonNegative(s.Padding.Left),
	}
	if s.TempButtonText == "" {
		s.TempButtonText = DefaultTempButtonText
	}
	return s
}

// WithBorderRadius returns a copy of s using r for every rounded region.
func (s ButtonStyle) WithBorderRadius(r float32) ButtonStyle {
	s.BorderRadius = &r
	return s
}

// BackgroundRadius is the corner radius of the background fill.
func (s ButtonStyle) BackgroundRadius() float32 {
	if s.BorderRadius != nil {
		return *s.BorderRadius
	}
	return DefaultBackgroundRadius
}

// SplashRadius is the corner radius of the interactive (hover/splash) region.
func (s ButtonStyle) SplashRadius() float32 {
	if s.BorderRadius != nil {
		return *s.BorderRadius
	}
	return DefaultSplashRadius
}

// AnimationPause is how long the tap pulse holds the pressed scale.
func (s ButtonStyle) AnimationPause() time.Duration {
	return time.Duration(s.AnimationPauseMillis) * time.Millisecond
}

// AnimationScaleDuration is how long the rendered scale takes to reach a new
// target.
func (s ButtonStyle) AnimationScaleDuration() time.Duration {
	return time.Duration(s.AnimationScaleMillis) * time.Millisecond
}

func nonNegative(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}
