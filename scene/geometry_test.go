package scene

import (
	"testing"

	"github.com/gogpu/easel"
)

func TestCenterPointByOrigin(t *testing.T) {
	tests := []struct {
		name             string
		originX, originY string
		angle            float64
		want             easel.Point
	}{
		{"left top", "left", "top", 0, easel.Pt(60, 70)},
		{"center", "center", "center", 0, easel.Pt(50, 50)},
		{"right bottom", "right", "bottom", 0, easel.Pt(40, 30)},
		{"numeric", "0.25", "0.75", 0, easel.Pt(55, 40)},
		{"left top rotated", "left", "top", 90, easel.Pt(30, 60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(Record{
				"left": 50, "top": 50, "width": 20, "height": 40, "strokeWidth": 0,
				"originX": tt.originX, "originY": tt.originY, "angle": tt.angle,
			})
			if got := r.CenterPoint(); !got.Approx(tt.want, 1e-9) {
				t.Errorf("CenterPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetPositionByOrigin(t *testing.T) {
	r := NewRect(Record{"width": 20, "height": 10, "strokeWidth": 0, "angle": 30})
	target := easel.Pt(100, 80)
	r.SetPositionByOrigin(target, OriginCenter, OriginCenter)
	if got := r.CenterPoint(); !got.Approx(target, 1e-9) {
		t.Errorf("CenterPoint() = %v, want %v", got, target)
	}
	br := r.PointByOrigin(OriginRight, OriginBottom)
	r.SetPositionByOrigin(br, OriginRight, OriginBottom)
	if got := r.CenterPoint(); !got.Approx(target, 1e-9) {
		t.Errorf("round trip moved center to %v", got)
	}
}

func TestTransformedDimensions(t *testing.T) {
	tests := []struct {
		name string
		opts Record
		want easel.Point
	}{
		{"stroke included", Record{"width": 10, "height": 20, "strokeWidth": 2}, easel.Pt(12, 22)},
		{"scaled", Record{"width": 10, "height": 20, "strokeWidth": 0, "scaleX": 2, "scaleY": 3}, easel.Pt(20, 60)},
		{"uniform stroke", Record{"width": 10, "height": 10, "strokeWidth": 2, "scaleX": 2, "scaleY": 2, "strokeUniform": true}, easel.Pt(22, 22)},
		{"skewed", Record{"width": 10, "height": 10, "strokeWidth": 0, "skewX": 45}, easel.Pt(20, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.opts)
			if got := r.TransformedDimensions(); !got.Approx(tt.want, 1e-9) {
				t.Errorf("TransformedDimensions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoordsAndContainsPoint(t *testing.T) {
	r := NewRect(Record{
		"left": 50, "top": 50, "width": 20, "height": 20, "strokeWidth": 0,
		"originX": "center", "originY": "center", "angle": 45,
	})
	pts := r.Coords()
	if !pts[0].Approx(easel.Pt(50, 50-14.142135623730951), 1e-9) {
		t.Errorf("top-left corner = %v", pts[0])
	}
	tests := []struct {
		p    easel.Point
		want bool
	}{
		{easel.Pt(50, 50), true},
		{easel.Pt(50, 37), true},
		{easel.Pt(41, 41), false},
		{easel.Pt(100, 100), false},
	}
	for _, tt := range tests {
		if got := r.ContainsPoint(tt.p); got != tt.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	br := r.BoundingRect()
	if !approx(br.Width, 28.284271247461902) || !approx(br.Height, 28.284271247461902) {
		t.Errorf("BoundingRect() = %+v", br)
	}
}

func TestIsOnScreen(t *testing.T) {
	h := newTestHost()
	tests := []struct {
		name string
		opts Record
		want bool
	}{
		{"inside", Record{"left": 10, "top": 10, "width": 10, "height": 10}, true},
		{"outside", Record{"left": 200, "top": 200, "width": 10, "height": 10}, false},
		{"covering", Record{"left": -50, "top": -50, "width": 300, "height": 300}, true},
		{"crossing edge", Record{"left": 90, "top": -20, "width": 30, "height": 200}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.opts)
			r.SetHost(h)
			if got := r.IsOnScreen(); got != tt.want {
				t.Errorf("IsOnScreen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObjectScalingThroughGroup(t *testing.T) {
	r := NewRect(Record{"width": 10, "height": 10, "scaleX": 2})
	g := NewGroup([]Node{r}, nil)
	g.Set("scaleX", 3.0)
	g.Set("scaleY", 0.5)
	s := r.ObjectScaling()
	if !approx(s.X, 6) || !approx(s.Y, 0.5) {
		t.Errorf("ObjectScaling() = %v, want (6, 0.5)", s)
	}
	g.Set("opacity", 0.5)
	r.Set("opacity", 0.5)
	if got := r.ObjectOpacity(); !approx(got, 0.25) {
		t.Errorf("ObjectOpacity() = %v, want 0.25", got)
	}
}
