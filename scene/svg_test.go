package scene

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gogpu/easel"
)

// wellFormed reports the first XML syntax error in doc.
func wellFormed(doc string) error {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func TestToSVGShapes(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want []string
	}{
		{
			"rect",
			NewRect(Record{"left": 10, "top": 20, "width": 30, "height": 40, "strokeWidth": 0, "fill": "red"}),
			[]string{`transform="matrix(1 0 0 1 25 40)"`, `<rect style=`, `x="-15" y="-20"`, `width="30" height="40"`, `fill: red;`},
		},
		{
			"circle",
			NewCircle(Record{"radius": 5, "stroke": "blue", "strokeWidth": 2}),
			[]string{`<circle `, `r="5"`, `stroke: blue;`, `stroke-width: 2;`},
		},
		{
			"arc",
			NewCircle(Record{"radius": 5, "endAngle": 90}),
			[]string{`<path `, ` d="M `},
		},
		{
			"ellipse",
			NewEllipse(Record{"rx": 3, "ry": 6, "strokeUniform": true}),
			[]string{`<ellipse `, `rx="3" ry="6"`, `vector-effect="non-scaling-stroke"`},
		},
		{
			"polygon",
			NewPolygon([]easel.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, Record{"paintFirst": "stroke"}),
			[]string{`<polygon `, `points="-5,-5 5,-5 5,5"`, `paint-order="stroke"`},
		},
		{
			"text",
			NewText("a<b\nc", Record{"fontSize": 10, "underline": true}),
			[]string{`<text xml:space="preserve"`, `font-size="10"`, `text-decoration="underline"`, `>a&lt;b</tspan>`, `>c</tspan>`},
		},
		{
			"hidden translucent",
			NewRect(Record{"width": 1, "height": 1, "visible": false, "opacity": 0.5}),
			[]string{`opacity="0.5"`, `visibility="hidden"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToSVG(tt.node)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToSVG() missing %q in\n%s", w, got)
				}
			}
			if err := wellFormed(got); err != nil {
				t.Errorf("ToSVG() is not well formed: %v\n%s", err, got)
			}
		})
	}
}

func TestToSVGDefinitions(t *testing.T) {
	t.Run("gradient", func(t *testing.T) {
		r := NewRect(Record{"width": 10, "height": 10, "fill": NewLinearGradient(0, 0, 10, 0, Stop(0, "red"), Stop(1, "blue"))})
		got := ToSVG(r)
		if !strings.Contains(got, `<linearGradient id="SVGID_fill_`+r.ID()+`"`) {
			t.Errorf("gradient definition missing:\n%s", got)
		}
		if !strings.Contains(got, `fill: url(#SVGID_fill_`+r.ID()+`)`) {
			t.Errorf("gradient reference missing:\n%s", got)
		}
		if n := strings.Count(got, "<stop "); n != 2 {
			t.Errorf("stops = %d, want 2", n)
		}
	})
	t.Run("shadow", func(t *testing.T) {
		r := NewRect(Record{"width": 10, "height": 10, "shadow": "red 2 3 4"})
		got := ToSVG(r)
		for _, w := range []string{`<filter id="SVGID_shadow_`, `stdDeviation="2"`, `dx="2" dy="3"`, `flood-color="red"`} {
			if !strings.Contains(got, w) {
				t.Errorf("missing %q in\n%s", w, got)
			}
		}
	})
	t.Run("clip path", func(t *testing.T) {
		r := NewRect(Record{"width": 10, "height": 10, "clipPath": NewCircle(Record{"radius": 3})})
		got := ToSVG(r)
		if !strings.Contains(got, `<clipPath id="CLIPPATH_`+r.ID()+`">`) ||
			!strings.Contains(got, `clip-path="url(#CLIPPATH_`+r.ID()+`)"`) {
			t.Errorf("clip path missing:\n%s", got)
		}
	})
	t.Run("inverted clip path", func(t *testing.T) {
		r := NewRect(Record{"width": 10, "height": 10, "clipPath": NewCircle(Record{"radius": 3, "inverted": true})})
		if got := ToSVG(r); strings.Contains(got, "clip-path=") {
			t.Errorf("inverted clip exported:\n%s", got)
		}
	})
	t.Run("image", func(t *testing.T) {
		img := NewImage(solidImage(4, 2), Record{"stroke": "black", "strokeWidth": 1, "cropX": 1, "width": 3})
		got := ToSVG(img)
		for _, w := range []string{`xlink:href="data:image/png;base64,`, `<clipPath id="imageCrop_`, `x="-2.5"`, `fill: none;`} {
			if !strings.Contains(got, w) {
				t.Errorf("missing %q in\n%s", w, got)
			}
		}
	})
}

func TestWriteSVG(t *testing.T) {
	a := NewRect(Record{"width": 10, "height": 10})
	b := NewCircle(Record{"left": 20, "radius": 4})
	g := NewGroup([]Node{a, b}, nil)
	hidden := NewRect(Record{"width": 5, "height": 5, "excludeFromExport": true})

	var buf bytes.Buffer
	err := WriteSVG(&buf, []Node{g, hidden}, SVGOptions{
		Width:             100,
		Height:            50,
		ViewportTransform: easel.Scale(2, 2),
		Background:        "white",
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := buf.String()
	if err := wellFormed(doc); err != nil {
		t.Fatalf("document is not well formed: %v\n%s", err, doc)
	}
	for _, w := range []string{
		`width="100" height="50" viewBox="0 0 100 50"`,
		`<desc>Created with easel</desc>`,
		`fill="white"`,
		`<g transform="matrix(2 0 0 2 0 0)">`,
	} {
		if !strings.Contains(doc, w) {
			t.Errorf("missing %q", w)
		}
	}
	// vpt group, the group and its two children
	if n := strings.Count(doc, "<g "); n != 4 {
		t.Errorf("groups = %d, want 4", n)
	}
	if strings.Contains(doc, hidden.ID()) {
		t.Error("excluded node exported")
	}
}
