package path

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "simple",
			in:   "M 10 20 L 30 40 Z",
			want: []Segment{{'M', []float64{10, 20}}, {'L', []float64{30, 40}}, {'Z', nil}},
		},
		{
			name: "moveto repeats become lineto",
			in:   "M1,2 3,4 5,6",
			want: []Segment{{'M', []float64{1, 2}}, {'L', []float64{3, 4}}, {'L', []float64{5, 6}}},
		},
		{
			name: "relative moveto repeats",
			in:   "m1 2 3 4",
			want: []Segment{{'m', []float64{1, 2}}, {'l', []float64{3, 4}}},
		},
		{
			name: "compact numbers",
			in:   "M.5-.5l1e1-2.5.25.5z",
			want: []Segment{{'M', []float64{0.5, -0.5}}, {'l', []float64{10, -2.5}}, {'l', []float64{0.25, 0.5}}, {'z', nil}},
		},
		{
			name: "packed arc flags",
			in:   "M0 0a25 25 0 1050 50",
			want: []Segment{{'M', []float64{0, 0}}, {'a', []float64{25, 25, 0, 1, 0, 50, 50}}},
		},
		{
			name: "repeated curves",
			in:   "C1 1 2 2 3 3 4 4 5 5 6 6",
			want: []Segment{{'C', []float64{1, 1, 2, 2, 3, 3}}, {'C', []float64{4, 4, 5, 5, 6, 6}}},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"10 20",
		"M 10",
		"M.5-.5l1e1-2.5.25z",
		"M0 0 Z 5",
		"M0 0 A 1 1 0 2 0 5 5",
		"M0 0 L 1 x",
	} {
		if _, err := Parse(in); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want ErrSyntax", in, err)
		}
	}
}
