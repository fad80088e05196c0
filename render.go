package locmap

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/tdewolff/minify/v2"
)

// Precision is the number of decimals coordinates render with; at the
// default canvas size that is a hundredth of a millimeter.
const Precision = 2

// dec formats a float in fixed notation with trailing zeros trimmed.
type dec float64

func (f dec) String() string {
	s := fmt.Sprintf("%.*f", Precision, f)
	s = string(minify.Decimal([]byte(s), Precision))
	if dec(math.MaxInt32) < f || f < dec(math.MinInt32) {
		if i := strings.IndexByte(s, '.'); i == -1 {
			s += ".0"
		}
	}
	return s
}

// Document is a renderable map: a sized canvas and classified, projected,
// simplified features grouped into layers.
type Document struct {
	Width       float64 // mm
	Height      float64 // mm
	Title       string
	Description string
	Layers      []Layer
}

// MarshalSVG renders doc into a byte slice.
func (doc *Document) MarshalSVG() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Render(buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type svgWriter struct {
	w   io.Writer
	err error
}

func (sw *svgWriter) printf(format string, args ...interface{}) {
	if sw.err == nil {
		_, sw.err = fmt.Fprintf(sw.w, format, args...)
	}
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Render writes doc as an SVG document. The stylesheet lists only the
// classes the document uses. Layers paint in a fixed order with parks at
// the bottom and streets on top; within the street layer minor tiers go
// first so major roads stay visible at crossings. The output depends on
// nothing but doc, byte for byte.
func Render(w io.Writer, doc *Document) error {
	sw := &svgWriter{w: w}
	sw.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	sw.printf("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%vmm\" height=\"%vmm\" viewBox=\"0 0 %v %v\">\n",
		dec(doc.Width), dec(doc.Height), dec(doc.Width), dec(doc.Height))
	if doc.Title != "" {
		sw.printf("\t<title>%s</title>\n", xmlEscaper.Replace(doc.Title))
	}
	if doc.Description != "" {
		sw.printf("\t<desc>\n\t\t%s\n\t</desc>\n", doc.Description)
	}

	present := map[string]bool{"background": true}
	for _, layer := range doc.Layers {
		for _, f := range layer.Features {
			present[featureClass(layer.Category, f.Tier)] = true
		}
	}
	sw.printf("\t<style>\n")
	for _, name := range styleOrder {
		if present[name] {
			sw.printf("\t\t.%s { %s }\n", name, styles[name])
		}
	}
	sw.printf("\t</style>\n")
	sw.printf("\t<rect class=\"background\" x=\"0\" y=\"0\" width=\"100%%\" height=\"100%%\" />\n")

	for _, category := range Categories {
		for _, layer := range doc.Layers {
			if layer.Category != category || len(layer.Features) == 0 {
				continue
			}
			renderLayer(sw, layer)
		}
	}
	sw.printf("</svg>\n")
	return sw.err
}

func renderLayer(sw *svgWriter, layer Layer) {
	if layer.Category != CategoryStreet {
		renderGroup(sw, layer.Category.String(), layer.Features)
		return
	}
	for tier := MaxStreetDetail; 0 <= tier; tier-- {
		var group []Projected
		for _, f := range layer.Features {
			if f.Tier == tier {
				group = append(group, f)
			}
		}
		renderGroup(sw, featureClass(CategoryStreet, tier), group)
	}
}

func renderGroup(sw *svgWriter, class string, features []Projected) {
	if len(features) == 0 {
		return
	}
	sw.printf("\t<g class=\"%s\">\n", class)
	for _, f := range features {
		sw.printf("\t\t<path d=\"%s\" />\n", pathData(f.Geometry))
	}
	sw.printf("\t</g>\n")
}

func pathData(g orb.Geometry) string {
	sb := &strings.Builder{}
	switch g := g.(type) {
	case orb.LineString:
		writePath(sb, g, false)
	case orb.Polygon:
		for _, ring := range g {
			writePath(sb, ring, true)
		}
	case orb.MultiLineString:
		for _, ls := range g {
			writePath(sb, ls, false)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, ring := range poly {
				writePath(sb, ring, true)
			}
		}
	}
	return sb.String()
}

func writePath(sb *strings.Builder, pts []orb.Point, closed bool) {
	if closed && 2 <= len(pts) {
		// The final point duplicates the first; z closes the ring instead.
		pts = pts[:len(pts)-1]
	}
	for i, pt := range pts {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		fmt.Fprintf(sb, "%v,%v", dec(pt[0]), dec(pt[1]))
	}
	if closed {
		sb.WriteByte('z')
	}
}
