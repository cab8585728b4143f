package stream

import (
	"fmt"
	"os"

	"github.com/go-stack/stack"
	"github.com/google/uuid"
	"github.com/karlmutch/errors"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/ledanim/curve"
)

// Config is read from the YAML file given on the command line.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Trigger string `yaml:"trigger"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Opc struct {
		Server  string `yaml:"server"`
		Channel uint8  `yaml:"channel"`
	} `yaml:"opc"`
	Strip struct {
		Pixels    int     `yaml:"pixels"`
		FrameRate float64 `yaml:"frameRate"`
	} `yaml:"strip"`
	HTTP struct {
		Listen string `yaml:"listen"`
	} `yaml:"http"`
	Scene SceneConfig `yaml:"scene"`
}

// SceneConfig shapes the light programme.
type SceneConfig struct {
	Dots       int                `yaml:"dots"`
	Spacing    float64            `yaml:"spacing"`
	Radius     float64            `yaml:"radius"`
	Distance   float64            `yaml:"distance"`
	Overshoot  float64            `yaml:"overshoot"`
	Ratio      float64            `yaml:"ratio"`
	Duration   float64            `yaml:"duration"`
	Stagger    float64            `yaml:"stagger"`
	OutCurve   string             `yaml:"outCurve"`
	BackCurve  string             `yaml:"backCurve"`
	Spring     curve.SpringConfig `yaml:"spring"`
	Pulse      int                `yaml:"pulse"`
	Background string             `yaml:"background"`
}

// DefaultConfig returns the settings used for anything the file leaves out.
func DefaultConfig() Config {
	c := Config{}
	c.Mqtt.URL = "tcp://localhost:1883"
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.Mqtt.Topics.Trigger = "home/xmastree/trigger"
	c.Strip.Pixels = 500
	c.Strip.FrameRate = 30
	c.Scene = SceneConfig{
		Dots:       5,
		Spacing:    12,
		Radius:     3,
		Distance:   30,
		Overshoot:  1.2,
		Ratio:      0.37,
		Duration:   3,
		Stagger:    0.1,
		OutCurve:   "easeIn",
		BackCurve:  "easeOut",
		Spring:     curve.DefaultSpring,
		Pulse:      40,
		Background: "#000005",
	}
	return c
}

// LoadConfig reads path over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	f, errGo := os.Open(path)
	if errGo != nil {
		return c, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	defer f.Close()

	if errGo := yaml.NewDecoder(f).Decode(&c); errGo != nil {
		return c, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// ClientID returns the configured MQTT client id, or a unique one.
func (c Config) ClientID() string {
	if c.Mqtt.ClientID != "" {
		return c.Mqtt.ClientID
	}
	return "ledanim-" + uuid.New().String()
}

// FrameInterval is the time between frames in seconds.
func (c Config) FrameInterval() float64 {
	return 1 / c.Strip.FrameRate
}

// Validate checks the settings that would otherwise panic deep inside the
// animation code.
func (c Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return errors.New(fmt.Sprintf("invalid %s", field)).With("value", value).With("stack", stack.Trace().TrimRuntime())
	}
	s := c.Scene
	switch {
	case c.Strip.Pixels <= 0 || c.Strip.Pixels > 0xffff/3:
		return invalid("strip.pixels", c.Strip.Pixels)
	case c.Strip.FrameRate <= 0:
		return invalid("strip.frameRate", c.Strip.FrameRate)
	case s.Dots < 0:
		return invalid("scene.dots", s.Dots)
	case s.Radius <= 0:
		return invalid("scene.radius", s.Radius)
	case s.Overshoot <= 0:
		return invalid("scene.overshoot", s.Overshoot)
	case !(s.Ratio > 0 && s.Ratio < 1):
		return invalid("scene.ratio", s.Ratio)
	case s.Duration <= 0:
		return invalid("scene.duration", s.Duration)
	case s.Stagger < 0 || (s.Dots > 1 && s.Stagger*float64(s.Dots-1) >= 1):
		return invalid("scene.stagger", s.Stagger)
	case s.Spring.Mass <= 0 || s.Spring.Stiffness <= 0 || s.Spring.Damping < 0:
		return invalid("scene.spring", s.Spring)
	case s.Pulse < 2:
		return invalid("scene.pulse", s.Pulse)
	}
	for _, name := range []string{s.OutCurve, s.BackCurve} {
		if _, errGo := curve.Named(name); errGo != nil {
			return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
		}
	}
	if _, errGo := parseHex(s.Background); errGo != nil {
		return errors.Wrap(errGo).With("field", "scene.background").With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}
