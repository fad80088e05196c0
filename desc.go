package locmap

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultName names a map after the center of its bounding box.
func DefaultName(bbox BoundingBox) string {
	return fmt.Sprintf("Location map (%.1f,%.1f)",
		(bbox.South+bbox.North)/2.0, (bbox.West+bbox.East)/2.0)
}

// Describe composes the file description embedded in the map: the covered
// coordinates, the projection and scale, and the data attribution. Features
// carrying an attribution tag are credited next to the OpenStreetMap
// contributors. The text is stable for a given input; it never says when
// the map was made.
func Describe(bbox BoundingBox, scale int, features []Feature) string {
	sources := map[string]bool{"the OpenStreetMap contributors": true}
	for i := range features {
		if a := features[i].Tag("attribution"); a != "" {
			sources["the "+a] = true
		}
	}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf(
		"A location map of the region with latitudes between %s° and %s°, "+
			"and longitudes between %s° and %s°.  "+
			"Equirectangular projection, scale 1 : %s.  "+
			"The data for this map come from %s, and are made available by OpenStreetMap "+
			"under the <a href=\"https://opendatacommons.org/licenses/odbl/1-0/\">Open Database License</a>.  "+
			"The map itself was generated by "+
			"<a href=\"https://github.com/jkunimune/auto-location-map\">auto-location-map</a>.",
		degrees(bbox.South), degrees(bbox.North), degrees(bbox.West), degrees(bbox.East),
		groupDigits(scale), strings.Join(names, " and "))
}

// degrees formats a coordinate with the typographic minus sign.
func degrees(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, "-", "−", 1)
}

// groupDigits formats n with spaces for thousands grouping.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	for i := len(s) - 3; 0 < i; i -= 3 {
		s = s[:i] + " " + s[i:]
	}
	return s
}

var anchorRe = regexp.MustCompile(`<a href="([^"]+)">([^<]+)</a>`)

// Wikitext converts the HTML anchors of a description to wikitext external
// links, for pasting into a file upload form.
func Wikitext(description string) string {
	return anchorRe.ReplaceAllString(description, "[$1 $2]")
}
