// Package units is the static catalog of supported measurement units.
//
// Every unit is described by exactly one descriptor holding its category,
// canonical name, display symbol, aliases, conversion factors and domain
// bound, so adding a unit touches a single table entry.
package units

import (
	"fmt"
	"strings"
)

// Category groups units that are mutually convertible.
type Category int

const (
	Temperature Category = iota
	Length
	Weight
	Volume
	Time
	Speed
	DataSize

	numCategories
)

var categoryNames = [numCategories]string{
	Temperature: "suhu",
	Length:      "panjang",
	Weight:      "berat",
	Volume:      "volume",
	Time:        "waktu",
	Speed:       "kecepatan",
	DataSize:    "data",
}

// Name returns the canonical category name.
func (c Category) Name() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

func (c Category) String() string { return c.Name() }

// Members returns the units of c in catalog order.
func (c Category) Members() []Unit {
	var out []Unit
	for _, u := range All() {
		if descriptors[u].category == c {
			out = append(out, u)
		}
	}
	return out
}

// Categories returns every category in catalog order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// Unit identifies one concrete measurement unit.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
	Kelvin
	Centimeter
	Inch
	Kilometer
	Mile
	Kilogram
	Gram
	Pound
	Ounce
	Liter
	Gallon
	Milliliter
	Second
	Minute
	Hour
	KilometerPerHour
	MilePerHour
	MeterPerSecond
	Byte
	Kilobyte
	Megabyte
	Gigabyte

	numUnits
)

// bound is an inclusive lower limit on values expressed in a unit.
type bound struct {
	set bool
	min float64
}

type descriptor struct {
	category Category
	name     string
	symbol   string
	aliases  []string
	toBase   func(float64) float64
	fromBase func(float64) float64
	lower    bound
}

func same(v float64) float64 { return v }

func mul(f float64) func(float64) float64 { return func(v float64) float64 { return v * f } }

func div(f float64) func(float64) float64 { return func(v float64) float64 { return v / f } }

const (
	kib = 1024.0
	mib = 1024.0 * 1024.0
	gib = 1024.0 * 1024.0 * 1024.0
)

// Intermediate units: Celsius, meter, kilogram, liter, second, m/s, byte.
var descriptors = [numUnits]descriptor{
	Celsius: {category: Temperature, name: "celsius", symbol: "°C", aliases: []string{"c"},
		toBase: same, fromBase: same},
	Fahrenheit: {category: Temperature, name: "fahrenheit", symbol: "°F", aliases: []string{"f"},
		toBase:   func(v float64) float64 { return (v - 32) * 5 / 9 },
		fromBase: func(v float64) float64 { return v*9/5 + 32 }},
	Kelvin: {category: Temperature, name: "kelvin", symbol: "K", aliases: []string{"k"},
		toBase:   func(v float64) float64 { return v - 273.15 },
		fromBase: func(v float64) float64 { return v + 273.15 },
		lower:    bound{set: true, min: 0}},

	Centimeter: {category: Length, name: "cm", symbol: "cm", aliases: []string{"centimeter", "sentimeter"},
		toBase: div(100), fromBase: mul(100)},
	Inch: {category: Length, name: "inch", symbol: "inch", aliases: []string{"in", "inci"},
		toBase: mul(0.0254), fromBase: div(0.0254)},
	Kilometer: {category: Length, name: "km", symbol: "km", aliases: []string{"kilometer"},
		toBase: mul(1000), fromBase: div(1000)},
	Mile: {category: Length, name: "miles", symbol: "miles", aliases: []string{"mile", "mi"},
		toBase: mul(1609.344), fromBase: div(1609.344)},

	Kilogram: {category: Weight, name: "kg", symbol: "kg", aliases: []string{"kilogram"},
		toBase: same, fromBase: same},
	Gram: {category: Weight, name: "gram", symbol: "g", aliases: []string{"gr"},
		toBase: div(1000), fromBase: mul(1000)},
	Pound: {category: Weight, name: "lbs", symbol: "lbs", aliases: []string{"lb", "pound"},
		toBase: mul(0.45359237), fromBase: div(0.45359237)},
	Ounce: {category: Weight, name: "ounce", symbol: "oz", aliases: []string{"ons"},
		toBase: mul(0.0283495), fromBase: div(0.0283495)},

	Liter: {category: Volume, name: "liter", symbol: "L", aliases: []string{"litre"},
		toBase: same, fromBase: same},
	Gallon: {category: Volume, name: "gallon", symbol: "gal", aliases: []string{"galon"},
		toBase: mul(3.785411784), fromBase: div(3.785411784)},
	Milliliter: {category: Volume, name: "ml", symbol: "ml", aliases: []string{"milliliter", "mililiter"},
		toBase: div(1000), fromBase: mul(1000)},

	Second: {category: Time, name: "detik", symbol: "s", aliases: []string{"second", "sec"},
		toBase: same, fromBase: same},
	Minute: {category: Time, name: "menit", symbol: "min", aliases: []string{"minute", "m"},
		toBase: mul(60), fromBase: div(60)},
	Hour: {category: Time, name: "jam", symbol: "h", aliases: []string{"hour"},
		toBase: mul(3600), fromBase: div(3600)},

	KilometerPerHour: {category: Speed, name: "km/h", symbol: "km/h", aliases: []string{"kmh", "kph"},
		toBase: div(3.6), fromBase: mul(3.6)},
	MilePerHour: {category: Speed, name: "mph", symbol: "mph", aliases: []string{"mi/h"},
		toBase: mul(0.44704), fromBase: div(0.44704)},
	MeterPerSecond: {category: Speed, name: "m/s", symbol: "m/s", aliases: []string{"ms", "mps"},
		toBase: same, fromBase: same},

	Byte: {category: DataSize, name: "byte", symbol: "B", aliases: []string{"bytes"},
		toBase: same, fromBase: same},
	Kilobyte: {category: DataSize, name: "kb", symbol: "KB", aliases: []string{"kilobyte"},
		toBase: mul(kib), fromBase: div(kib)},
	Megabyte: {category: DataSize, name: "mb", symbol: "MB", aliases: []string{"megabyte"},
		toBase: mul(mib), fromBase: div(mib)},
	Gigabyte: {category: DataSize, name: "gb", symbol: "GB", aliases: []string{"gigabyte"},
		toBase: mul(gib), fromBase: div(gib)},
}

// lookup maps every lowercase name, symbol and alias to its unit.
var lookup = buildLookup()

func buildLookup() map[string]Unit {
	m := make(map[string]Unit)
	add := func(key string, u Unit) {
		key = strings.ToLower(key)
		if prev, ok := m[key]; ok && prev != u {
			panic(fmt.Sprintf("units: %q claimed by both %s and %s", key, prev.Name(), u.Name()))
		}
		m[key] = u
	}
	for _, u := range All() {
		d := descriptors[u]
		add(d.name, u)
		add(d.symbol, u)
		for _, a := range d.aliases {
			add(a, u)
		}
	}
	return m
}

// Resolve looks up text case-insensitively by name, symbol or alias.
func Resolve(text string) (Unit, bool) {
	u, ok := lookup[strings.ToLower(text)]
	return u, ok
}

// All returns every unit in catalog order.
func All() []Unit {
	out := make([]Unit, 0, numUnits)
	for u := Unit(0); u < numUnits; u++ {
		out = append(out, u)
	}
	return out
}

func (u Unit) valid() bool { return u >= 0 && u < numUnits }

// Category returns the category u belongs to.
func (u Unit) Category() Category { return descriptors[u].category }

// Name returns the canonical lowercase name.
func (u Unit) Name() string {
	if !u.valid() {
		return fmt.Sprintf("unit(%d)", int(u))
	}
	return descriptors[u].name
}

// Symbol returns the display symbol, which may contain non-ASCII characters.
func (u Unit) Symbol() string { return descriptors[u].symbol }

// Aliases returns the extra accepted spellings of u.
func (u Unit) Aliases() []string {
	return append([]string(nil), descriptors[u].aliases...)
}

func (u Unit) String() string { return u.Name() }

// ToBase converts v from u into its category's intermediate unit.
func (u Unit) ToBase(v float64) float64 { return descriptors[u].toBase(v) }

// FromBase converts v from the category's intermediate unit into u.
func (u Unit) FromBase(v float64) float64 { return descriptors[u].fromBase(v) }

// LowerBound reports the smallest physically meaningful value in u, if any.
func (u Unit) LowerBound() (float64, bool) {
	b := descriptors[u].lower
	return b.min, b.set
}
