package easel

import (
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
		ok   bool
	}{
		{"#ff0000", Red, true},
		{"#0f0", RGB(0, 1, 0), true},
		{"#00000080", RGBA2(0, 0, 0, 128.0/255), true},
		{"rgb(0, 0, 255)", Blue, true},
		{"rgba(255,255,255,0.5)", White.WithAlpha(0.5), true},
		{"rgb(100%, 0%, 0%)", Red, true},
		{"hsl(120, 100%, 50%)", RGB(0, 1, 0), true},
		{"hsla(0, 100%, 50%, 0.25)", Red.WithAlpha(0.25), true},
		{"transparent", Transparent, true},
		{"Black", Black, true},
		{"  navy ", RGB(0, 0, 128.0/255), true},
		{"#12345", RGBA{}, false},
		{"#zzz", RGBA{}, false},
		{"rgb(1,2)", RGBA{}, false},
		{"not-a-color", RGBA{}, false},
		{"", RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if !colorClose(got, tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := RGBA2(1, 0.5, 0, 0.25).String(); got != "rgba(255,128,0,0.25)" {
		t.Errorf("String() = %q", got)
	}
	if got := RGB(1, 0, 0.5).ToHex(); got != "#ff0080" {
		t.Errorf("ToHex() = %q", got)
	}
}

func TestDefaultColorsResolver(t *testing.T) {
	c, ok := DefaultColors.Resolve("red")
	if !ok || c != Red {
		t.Errorf("Resolve(red) = %+v, %v", c, ok)
	}
}

func colorClose(a, b RGBA) bool {
	const eps = 1e-6
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
