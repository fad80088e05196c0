// Package overpass fetches OpenStreetMap features for a bounding box, by
// tag query against an Overpass API server or by slicing a box out of the
// main OSM API.
package overpass

import (
	"fmt"
	"strconv"
	"strings"

	locmap "github.com/jkunimune/auto-location-map"
)

// DefaultTimeout bounds query execution on the server, in seconds.
const DefaultTimeout = 180

// Selector is one tag pattern of an Overpass query: a kind of element, an
// optional extra filter clause, and a value regex for a key, rendered as
// kind[filter]["key"~"values"].
type Selector struct {
	Kind   string // way or nwr
	Filter string // extra bracket clause, e.g. [area!=yes]
	Key    string
	Values string // regex
}

// Query is a full tag query for everything to draw inside a bounding box.
type Query struct {
	BBox      locmap.BoundingBox
	Selectors []Selector
	Timeout   int // seconds, DefaultTimeout when zero
}

// BuildQuery renders q as Overpass QL. Elements matched by any selector are
// returned with their member nodes so geometry can be assembled. Roadways,
// railways and land uses under construction are matched by their
// construction tagging too.
func BuildQuery(q Query) string {
	timeout := q.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "[out:xml][timeout:%d][bbox:%v,%v,%v,%v]; ( ",
		timeout, q.BBox.South, q.BBox.West, q.BBox.North, q.BBox.East)
	for _, s := range q.Selectors {
		fmt.Fprintf(sb, "%s%s[%q~%q]; ", s.Kind, s.Filter, s.Key, s.Values)
		switch s.Key {
		case "highway", "railway", "landuse":
			fmt.Fprintf(sb, "%s%s[%q=\"construction\"][\"construction\"~%q]; ", s.Kind, s.Filter, s.Key, s.Values)
		}
	}
	sb.WriteString("); out body; >; out skel qt;")
	return sb.String()
}

// Selectors lists the tag patterns a resolved selection needs: streets up
// to the detail level, then tramways, walkways, rail, parkland, and
// administrative borders.
func Selectors(res locmap.Resolved) []Selector {
	sels := []Selector{
		{Kind: "way", Key: "highway", Values: valuesRegex(locmap.StreetValues(res.StreetDetail))},
	}
	if res.Tramways {
		sels = append(sels, Selector{Kind: "way", Key: "railway", Values: "^tram$"})
	}
	if res.Walkways {
		sels = append(sels, Selector{Kind: "way", Filter: "[area!=yes]", Key: "highway", Values: "^pedestrian$"})
	}
	if res.Railroads {
		sels = append(sels, Selector{Kind: "way", Key: "railway", Values: "^rail$"})
	}
	if res.Parks {
		sels = append(sels,
			Selector{Kind: "nwr", Key: "leisure", Values: "^(park|dog_park|pitch|stadium|golf_course|garden|nature_reserve)$"},
			Selector{Kind: "nwr", Key: "natural", Values: "^(grassland|heath|scrub|tundra|wood|wetland)$"},
			Selector{Kind: "nwr", Key: "landuse", Values: "^(farmland|forest|meadow|orchard|vineyard|cemetery|recreation_ground|village_green)$"},
			Selector{Kind: "nwr", Filter: "[boundary=protected_area]", Key: "protect_class", Values: "^1[ab]?$"},
		)
	}
	if 0 < res.BorderDetail {
		sels = append(sels, Selector{
			Kind:   "way",
			Filter: "[boundary=administrative]",
			Key:    "admin_level",
			Values: adminLevels(res.BorderDetail),
		})
	}
	return sels
}

func valuesRegex(values []string) string {
	return "^(" + strings.Join(values, "|") + ")$"
}

// adminLevels matches the admin levels 1 through n.
func adminLevels(n int) string {
	levels := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		levels = append(levels, strconv.Itoa(i))
	}
	return valuesRegex(levels)
}
