package convert

import (
	"errors"
	"math"
	"testing"

	"github.com/starford/unitconv/internal/apperr"
	"github.com/starford/unitconv/internal/units"
)

func mustConvert(t *testing.T, v float64, from, to units.Unit) float64 {
	t.Helper()
	got, err := Convert(v, from, to)
	if err != nil {
		t.Fatalf("Convert(%v, %s, %s): %v", v, from, to, err)
	}
	return got
}

func TestLiteralScenarios(t *testing.T) {
	if got := mustConvert(t, 0, units.Celsius, units.Fahrenheit); got != 32 {
		t.Errorf("0 C -> F = %v, want 32", got)
	}
	if got := mustConvert(t, 100, units.Celsius, units.Kelvin); got != 373.15 {
		t.Errorf("100 C -> K = %v, want 373.15", got)
	}
	if got := mustConvert(t, 1, units.Kilometer, units.Mile); math.Abs(got-0.621371) > 1e-6 {
		t.Errorf("1 km -> miles = %v", got)
	}
	if got := mustConvert(t, 1, units.Kilogram, units.Pound); math.Abs(got-2.2046226) > 1e-7 {
		t.Errorf("1 kg -> lbs = %v", got)
	}
	if got := mustConvert(t, 1, units.Gigabyte, units.Megabyte); got != 1024 {
		t.Errorf("1 GB -> MB = %v", got)
	}
	if got := mustConvert(t, 36, units.KilometerPerHour, units.MeterPerSecond); got != 10 {
		t.Errorf("36 km/h -> m/s = %v", got)
	}
	if got := mustConvert(t, 2, units.Hour, units.Minute); got != 120 {
		t.Errorf("2 h -> min = %v", got)
	}
	if got := mustConvert(t, 1, units.Gallon, units.Liter); got != 3.785411784 {
		t.Errorf("1 gal -> L = %v", got)
	}
	if got := mustConvert(t, 212, units.Fahrenheit, units.Celsius); got != 100 {
		t.Errorf("212 F -> C = %v", got)
	}
}

func TestIdentity(t *testing.T) {
	values := []float64{0, -1, 42.5, -500, 1e300, -1e-300}
	for _, u := range units.All() {
		for _, v := range values {
			if got := mustConvert(t, v, u, u); got != v {
				t.Errorf("Convert(%v, %s, %s) = %v", v, u, u, got)
			}
		}
	}
}

func TestIdentitySkipsDomainCheck(t *testing.T) {
	if got := mustConvert(t, -10, units.Kelvin, units.Kelvin); got != -10 {
		t.Errorf("got %v, want -10", got)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []float64{0, 1, 37.5, 1234.5678, 1e6}
	for _, c := range units.Categories() {
		tol := 1e-9
		if c == units.Temperature {
			tol = 1e-6
		}
		members := c.Members()
		for _, a := range members {
			for _, b := range members {
				for _, v := range values {
					there := mustConvert(t, v, a, b)
					back, err := Convert(there, b, a)
					if err != nil {
						t.Fatalf("%v %s -> %s -> %s: %v", v, a, b, a, err)
					}
					if math.Abs(back-v) > tol*math.Max(1, math.Abs(v)) {
						t.Errorf("%v %s -> %s -> %s = %v", v, a, b, a, back)
					}
				}
			}
		}
	}
}

func TestCategoryMismatch(t *testing.T) {
	for _, a := range units.All() {
		for _, b := range units.All() {
			if a.Category() == b.Category() {
				continue
			}
			_, err := Convert(1, a, b)
			if !errors.Is(err, apperr.ErrCategoryMismatch) {
				t.Fatalf("Convert(1, %s, %s) err = %v, want category mismatch", a, b, err)
			}
		}
	}

	_, err := Convert(1, units.Celsius, units.Kilogram)
	want := "Tidak dapat mengonversi satuan yang berbeda kategori: [suhu] celsius -> [berat] kg"
	if err == nil || err.Error() != want {
		t.Errorf("message = %v, want %q", err, want)
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.From != units.Celsius || ce.To != units.Kilogram {
		t.Errorf("error does not carry both units: %#v", err)
	}
}

func TestNegativeKelvin(t *testing.T) {
	for _, to := range units.Temperature.Members() {
		if to == units.Kelvin {
			continue
		}
		for _, v := range []float64{-0.001, -1, -273.15} {
			_, err := Convert(v, units.Kelvin, to)
			if !errors.Is(err, apperr.ErrOutOfDomain) {
				t.Errorf("Convert(%v, kelvin, %s) err = %v", v, to, err)
			}
		}
	}
	_, err := Convert(-1, units.Kelvin, units.Celsius)
	if err.Error() != "Nilai Kelvin tidak boleh negatif (< 0)" {
		t.Errorf("message = %q", err.Error())
	}
	if got := mustConvert(t, 0, units.Kelvin, units.Celsius); got != -273.15 {
		t.Errorf("0 K -> C = %v", got)
	}
}

func TestInvalidNumber(t *testing.T) {
	bad := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, a := range units.All() {
		for _, b := range units.All() {
			for _, v := range bad {
				_, err := Convert(v, a, b)
				if !errors.Is(err, apperr.ErrInvalidNumber) {
					t.Fatalf("Convert(%v, %s, %s) err = %v", v, a, b, err)
				}
			}
		}
	}
}

func TestEquivalents(t *testing.T) {
	got := Equivalents(1, units.Kilometer, units.Mile)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Unit != units.Centimeter || got[0].Value != 100000 {
		t.Errorf("first = %v", got[0])
	}
	if got[1].Unit != units.Inch {
		t.Errorf("second unit = %s", got[1].Unit)
	}
	if s := got[0].String(); s != "100000 cm" {
		t.Errorf("String() = %q", s)
	}

	if eq := Equivalents(-5, units.Kelvin, units.Celsius); len(eq) != 0 {
		t.Errorf("negative kelvin equivalents = %v, want none", eq)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		32:                "32",
		373.15:            "373.15",
		0.5:               "0.5",
		1e21:              "1000000000000000000000",
		math.Inf(1):       "inf",
		math.Inf(-1):      "-inf",
		-2.5:              "-2.5",
		0.621371192237334: "0.621371192237334",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatNumber(math.NaN()); got != "NaN" {
		t.Errorf("FormatNumber(NaN) = %q", got)
	}
}
