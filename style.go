package locmap

import "fmt"

// styles holds the stylesheet declarations per class. Fills are pale and
// strokes thin so the map stays in the background of whatever marker is
// placed on it. Stroke widths are in canvas millimeters.
var styles = map[string]string{
	"background": "fill: #ffffff; stroke: none",
	"park":       "fill: #cdf8d5; fill-rule: evenodd; stroke: none",
	"border":     "fill: none; stroke: #a8a8a8; stroke-width: 0.56; stroke-linejoin: round; stroke-linecap: square; stroke-dasharray: 0.01 1.12 0.56 1.12",
	"railroad":   "fill: none; stroke: #ea998b; stroke-width: 0.35; stroke-linejoin: round; stroke-linecap: round",
	"street-0":   "fill: none; stroke: #dcb46e; stroke-width: 1.12; stroke-linejoin: round; stroke-linecap: round",
	"street-1":   "fill: none; stroke: #dcb46e; stroke-width: 0.84; stroke-linejoin: round; stroke-linecap: round",
	"street-2":   "fill: none; stroke: #cbc3b6; stroke-width: 0.56; stroke-linejoin: round; stroke-linecap: round",
	"street-3":   "fill: none; stroke: #cbc3b6; stroke-width: 0.56; stroke-linejoin: round; stroke-linecap: round",
	"street-4":   "fill: none; stroke: #cbc3b6; stroke-width: 0.35; stroke-linejoin: round; stroke-linecap: round",
	"street-5":   "fill: none; stroke: #cbc3b6; stroke-width: 0.35; stroke-linejoin: round; stroke-linecap: round",
	"street-6":   "fill: none; stroke: #cbc3b6; stroke-width: 0.25; stroke-linejoin: round; stroke-linecap: round",
}

// styleOrder is the order classes appear in the stylesheet.
var styleOrder = []string{
	"background", "park", "border", "railroad",
	"street-0", "street-1", "street-2", "street-3",
	"street-4", "street-5", "street-6",
}

// featureClass names the stylesheet class a feature renders with.
func featureClass(category Category, tier int) string {
	if category == CategoryStreet {
		return fmt.Sprintf("street-%d", tier)
	}
	return category.String()
}
