package curve

import "math"

// SpringConfig describes a damped harmonic oscillator.
type SpringConfig struct {
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
	Stiffness float64 `yaml:"stiffness"`
	Velocity  float64 `yaml:"velocity"`
}

// DefaultSpring is a lightly underdamped spring.
var DefaultSpring = SpringConfig{Damping: 10, Mass: 1, Stiffness: 100, Velocity: 0}

// Curve returns the spring curve for the configuration.
func (s SpringConfig) Curve() Curve {
	return Spring(s.Damping, s.Mass, s.Stiffness, s.Velocity)
}

// Spring returns the closed form solution of a damped spring released from
// -1 towards rest at 0, shifted so the curve starts at 0 and settles at 1.
//
// The curve never terminates; it keeps oscillating (or creeping) past t=1, so
// callers that need a fixed end must cap sampling themselves.
func Spring(damping, mass, stiffness, velocity float64) Curve {
	if mass <= 0 || stiffness <= 0 {
		panic("curve: spring needs positive mass and stiffness")
	}
	beta := damping / (2 * mass)
	omega0 := math.Sqrt(stiffness / mass)
	const x0 = -1.0
	v0 := velocity

	switch {
	case beta < omega0:
		omega1 := math.Sqrt(omega0*omega0 - beta*beta)
		return func(t Progress) Progress {
			envelope := math.Exp(-beta * t)
			return -x0 + envelope*(x0*math.Cos(omega1*t)+((beta*x0+v0)/omega1)*math.Sin(omega1*t))
		}
	case beta == omega0:
		return func(t Progress) Progress {
			envelope := math.Exp(-beta * t)
			return -x0 + envelope*(x0+(beta*x0+v0)*t)
		}
	default:
		// Overdamped
		omega2 := math.Sqrt(beta*beta - omega0*omega0)
		return func(t Progress) Progress {
			envelope := math.Exp(-beta * t)
			return -x0 + envelope*(x0*math.Cosh(omega2*t)+((beta*x0+v0)/omega2)*math.Sinh(omega2*t))
		}
	}
}
