package celestial

import "github.com/chewxy/math32"

// DefaultBodies returns the sun and the eight planets of the demo scene. Rates are the
// per-frame values of the scene scaled to a 60Hz second.
//
// Returns:
//   - []Body: the default bodies, sun first
func DefaultBodies() []Body {
	return []Body{
		{
			Name: "Sun", SpinRate: 0.6, PickRadius: 5,
			Info: []InfoField{
				{"Description", "The star at the center of the solar system, holding 99.86% of its mass"},
				{"Temperature", "about 5500°C"},
				{"Radius", "about 696,340 km"},
			},
		},
		{
			Name: "Mercury", OrbitRadius: 6, OrbitRate: 0.72, SpinRate: 0.48, PickRadius: 0.5,
			Info: []InfoField{
				{"Description", "The smallest planet and the closest to the sun"},
				{"Distance", "about 58 million km from the sun"},
				{"Day", "about 58.6 Earth days"},
				{"Year", "about 88 Earth days"},
				{"Notes", "Extreme temperature swings, from 430°C by day to -180°C at night"},
			},
		},
		{
			Name: "Venus", OrbitRadius: 10, OrbitRate: 0.42, SpinRate: -0.06, PickRadius: 1,
			Info: []InfoField{
				{"Description", "The second planet and the hottest in the solar system"},
				{"Distance", "about 108 million km from the sun"},
				{"Day", "about 243 Earth days"},
				{"Year", "about 225 Earth days"},
				{"Notes", "Rotates opposite to its orbital direction"},
			},
		},
		{
			Name: "Earth", OrbitRadius: 15, OrbitRate: 0.3, SpinRate: 1.2, PickRadius: 1.2,
			Info: []InfoField{
				{"Description", "The only planet known to host life"},
				{"Distance", "about 150 million km from the sun"},
				{"Day", "about 24 hours"},
				{"Year", "about 365 days"},
			},
		},
		{
			Name: "Mars", OrbitRadius: 25, OrbitRate: 0.18, SpinRate: 1.08, PickRadius: 0.8,
			Info: []InfoField{
				{"Description", "The fourth planet, known as the red planet"},
				{"Distance", "about 230 million km from the sun"},
				{"Day", "about 24.6 hours"},
				{"Year", "about 687 days"},
			},
		},
		{
			Name: "Jupiter", OrbitRadius: 70, OrbitRate: 0.06, SpinRate: 2.4, PickRadius: 3,
			Info: []InfoField{
				{"Description", "The largest planet, a gas giant"},
				{"Distance", "about 778 million km from the sun"},
				{"Day", "about 9.9 hours, the fastest spin in the solar system"},
				{"Year", "about 11.9 Earth years"},
				{"Notes", "Banded clouds, the Great Red Spot and at least 79 moons"},
			},
		},
		{
			Name: "Saturn", OrbitRadius: 120, OrbitRate: 0.042, SpinRate: 2.28, PickRadius: 2.5,
			Info: []InfoField{
				{"Description", "Known for its prominent ring system"},
				{"Distance", "about 1.43 billion km from the sun"},
				{"Day", "about 10.7 hours"},
				{"Year", "about 29.5 Earth years"},
				{"Notes", "Rings of ice and rock fragments and at least 82 moons"},
			},
		},
		{
			Name: "Uranus", OrbitRadius: 180, OrbitRate: 0.024, SpinRate: 2.1, PickRadius: 2,
			Info: []InfoField{
				{"Description", "The seventh planet, an ice giant"},
				{"Distance", "about 2.87 billion km from the sun"},
				{"Day", "about 17.2 hours"},
				{"Year", "about 84 Earth years"},
				{"Notes", "Axis tilted 98 degrees, 13 known rings and 27 moons"},
			},
		},
		{
			Name: "Neptune", OrbitRadius: 250, OrbitRate: 0.006, SpinRate: 1.92, Tilt: math32.Pi / 6.3, PickRadius: 2,
			Info: []InfoField{
				{"Description", "The eighth and most distant planet, an ice giant"},
				{"Distance", "about 4.49 billion km from the sun"},
				{"Day", "about 16.1 hours"},
				{"Year", "about 165 Earth years"},
				{"Notes", "The strongest winds in the solar system, up to 2,100 km/h"},
			},
		},
	}
}
