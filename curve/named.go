package curve

import (
	"sort"

	"github.com/fogleman/ease"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// Identity returns progress unchanged.
func Identity(t Progress) Progress {
	return t
}

// Quadratic eases in with t².
func Quadratic(t Progress) Progress {
	return ease.InQuad(t)
}

// Cubic eases in with t³.
func Cubic(t Progress) Progress {
	return ease.InCubic(t)
}

// Clamped wraps c so its output never leaves [0,1].
func Clamped(c Curve) Curve {
	return func(t Progress) Progress {
		return clampUnit(c(t))
	}
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

var named = map[string]Curve{
	"linear":        Preset(Linear),
	"easeIn":        Preset(EaseIn),
	"easeOut":       Preset(EaseOut),
	"easeInEaseOut": Preset(EaseInEaseOut),
	"default":       Preset(Default),
	"identity":      Identity,
	"quadratic":     Quadratic,
	"cubic":         Cubic,
	"inOutQuad":     ease.InOutQuad,
	"outCubic":      ease.OutCubic,
	"inOutSine":     ease.InOutSine,
	"outBounce":     ease.OutBounce,
	"outElastic":    ease.OutElastic,
	"spring":        DefaultSpring.Curve(),
}

// Named looks up a curve by the name used in configuration files.
// An empty name selects the linear preset.
func Named(name string) (Curve, error) {
	if name == "" {
		return Preset(Linear), nil
	}
	c, ok := named[name]
	if !ok {
		return nil, errors.New("unknown curve").With("name", name).With("known", Names()).With("stack", stack.Trace().TrimRuntime())
	}
	return c, nil
}

// Names lists every curve known to Named.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
