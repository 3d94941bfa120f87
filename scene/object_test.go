package scene

import (
	"errors"
	"testing"
)

func TestDefaultsAndOptions(t *testing.T) {
	r := NewRect(Record{"width": 30, "height": 20, "fill": "red", "rx": 4})

	tests := []struct {
		key  string
		want any
	}{
		{"width", 30.0},
		{"height", 20.0},
		{"rx", 4.0},
		{"ry", 0.0},
		{"scaleX", 1.0},
		{"originX", "left"},
		{"strokeWidth", 1.0},
		{"fill", Color("red")},
		{"objectCaching", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := r.Get(tt.key)
			if !ok {
				t.Fatalf("Get(%q) not found", tt.key)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
	if !r.Dirty() {
		t.Error("new node should be dirty")
	}
	if r.ID() == "" {
		t.Error("new node has no id")
	}
}

func TestSetErrors(t *testing.T) {
	r := NewRect(nil)
	tests := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{"unknown key", "bogus", 1, ErrUnknownProperty},
		{"string for number", "left", "ten", ErrInvalidValue},
		{"number for bool", "visible", 1, ErrInvalidValue},
		{"bad composite", "globalCompositeOperation", "mix", ErrInvalidValue},
		{"bad paint", "fill", 12, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Set(tt.key, tt.value); !errors.Is(err, tt.want) {
				t.Errorf("Set(%q) error = %v, want %v", tt.key, err, tt.want)
			}
		})
	}
}

func TestScaleZeroIsConstrained(t *testing.T) {
	r := NewRect(nil)
	if err := r.Set("scaleX", 0); err != nil {
		t.Fatal(err)
	}
	if r.ScaleX() == 0 {
		t.Error("scaleX stayed 0")
	}
}

func TestClipPathCannotBeSelf(t *testing.T) {
	r := NewRect(nil)
	if err := r.Set("clipPath", r); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
	c := NewCircle(Record{"radius": 5})
	if err := r.Set("clipPath", c); err != nil {
		t.Fatal(err)
	}
	if c.clipOwner != &r.Object {
		t.Error("clip owner not recorded")
	}
	if err := r.Set("clipPath", nil); err != nil {
		t.Fatal(err)
	}
	if c.clipOwner != nil {
		t.Error("clip owner not cleared")
	}
}

func TestDirtyPropagation(t *testing.T) {
	inner := NewRect(Record{"width": 10, "height": 10})
	mid := NewGroup([]Node{inner}, nil)
	top := NewGroup([]Node{mid}, nil)

	tests := []struct {
		name      string
		key       string
		value     any
		wantInner bool
		wantMid   bool
		wantTop   bool
	}{
		{"cache property", "fill", "red", true, true, true},
		{"state property", "left", 3.0, false, true, true},
		{"other property", "selectable", false, false, false, false},
		{"unchanged value", "width", 10.0, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearDirty(inner, mid, top)
			if err := inner.Set(tt.key, tt.value); err != nil {
				t.Fatal(err)
			}
			if inner.Dirty() != tt.wantInner || mid.Dirty() != tt.wantMid || top.Dirty() != tt.wantTop {
				t.Errorf("dirty inner=%v mid=%v top=%v, want %v %v %v",
					inner.Dirty(), mid.Dirty(), top.Dirty(), tt.wantInner, tt.wantMid, tt.wantTop)
			}
		})
	}
}

func TestSetDirtyFalseDoesNotPropagate(t *testing.T) {
	inner := NewRect(Record{"width": 10, "height": 10})
	g := NewGroup([]Node{inner}, nil)
	clearDirty(inner, g)
	inner.dirty = true
	g.dirty = true
	if err := inner.Set("dirty", false); err != nil {
		t.Fatal(err)
	}
	if inner.Dirty() || !g.Dirty() {
		t.Errorf("dirty inner=%v group=%v, want false true", inner.Dirty(), g.Dirty())
	}
}

func TestEvents(t *testing.T) {
	r := NewRect(nil)
	var got []string
	off := r.On("moved", func(e *Event) { got = append(got, "on") })
	r.Once("moved", func(e *Event) { got = append(got, "once") })

	r.Fire("moved", &Event{Type: "moved"})
	r.Fire("moved", &Event{Type: "moved"})
	off()
	r.Fire("moved", &Event{Type: "moved"})

	want := []string{"on", "once", "on"}
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}

	r.On("moved", func(e *Event) { t.Error("listener survived Dispose") })
	r.Dispose()
	r.Fire("moved", &Event{Type: "moved"})
}

func TestHostLookup(t *testing.T) {
	h := newTestHost()
	inner := NewRect(nil)
	g := NewGroup([]Node{inner}, nil)
	clip := NewRect(nil)
	inner.Set("clipPath", clip)
	if clip.Host() != nil {
		t.Fatal("detached node has a host")
	}
	g.SetHost(h)
	if inner.Host() != h || clip.Host() != h {
		t.Error("host not found through group and clip owner")
	}
}
