// Package locmap generates clean, high-contrast location maps from
// OpenStreetMap data: a geographic bounding box and a raw feature population
// go in, a small layered SVG map comes out. The output is meant as a
// background for map-marker infoboxes, so the pipeline picks a street detail
// level that keeps the map legible at small sizes, classifies and filters
// features into a fixed set of layers, projects them onto an area-normalized
// canvas, simplifies the geometry, and renders the result deterministically.
package locmap

// Map is a generated location map.
type Map struct {
	SVG         []byte
	Width       float64 // mm
	Height      float64 // mm
	Scale       int     // denominator of the map scale 1:N
	Description string  // the file description embedded in the SVG
	Resolved    Resolved
	Warnings    []error
}

// Generate runs the full map pipeline for the features inside bbox: resolve
// the automatic options, classify and filter, project, simplify, and render.
// The input features are never modified. Warnings report recovered
// conditions such as dropped malformed geometry; rendering either completes
// fully or no map is returned at all.
func Generate(bbox BoundingBox, features []Feature, opts Options, tun Tuning) (*Map, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	proj, err := NewProjector(bbox, tun.CanvasArea)
	if err != nil {
		return nil, err
	}
	res, err := opts.Resolve(features, bbox, tun)
	if err != nil {
		return nil, err
	}

	classified, warnings := Classify(features, bbox, res, tun)

	layers := make([]Layer, 0, len(Categories))
	total := 0
	for _, cat := range Categories {
		layer := Layer{Category: cat}
		for i := range classified {
			if classified[i].Category != cat {
				continue
			}
			p, err := proj.ProjectFeature(&classified[i])
			if err != nil {
				return nil, err
			}
			p = Simplify(p, tun.SimplifyTolerance)
			if p.Geometry == nil {
				continue
			}
			layer.Features = append(layer.Features, p)
		}
		layers = append(layers, layer)
		total += len(layer.Features)
	}
	if total == 0 {
		warnings = append(warnings, ErrNoRenderableFeatures)
	}

	width, height := proj.Size()
	scale := proj.ScaleDenominator()
	name := opts.Name
	if name == "" {
		name = DefaultName(bbox)
	}
	doc := &Document{
		Width:       width,
		Height:      height,
		Title:       name,
		Description: Describe(bbox, scale, classified),
		Layers:      layers,
	}
	svg, err := doc.MarshalSVG()
	if err != nil {
		return nil, err
	}
	return &Map{
		SVG:         svg,
		Width:       width,
		Height:      height,
		Scale:       scale,
		Description: doc.Description,
		Resolved:    res,
		Warnings:    warnings,
	}, nil
}
