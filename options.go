package locmap

import (
	"fmt"
	"strconv"
	"strings"
)

// TriState is an option that can be forced on or off, or left to the detail
// selector.
type TriState int

const (
	Auto TriState = iota
	Yes
	No
)

// ParseTriState parses "yes", "no" or "auto".
func ParseTriState(s string) (TriState, error) {
	switch strings.ToLower(s) {
	case "auto":
		return Auto, nil
	case "yes":
		return Yes, nil
	case "no":
		return No, nil
	}
	return Auto, fmt.Errorf("invalid option %q: must be yes, no or auto", s)
}

func (t TriState) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	}
	return "auto"
}

// StreetDetailAuto selects the street detail level automatically.
const StreetDetailAuto = -1

// MaxStreetDetail is the finest street detail level.
const MaxStreetDetail = 6

// ParseStreetDetail parses a street detail argument: "auto" or a level
// between 0 and 6.
func ParseStreetDetail(s string) (int, error) {
	if strings.ToLower(s) == "auto" {
		return StreetDetailAuto, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || MaxStreetDetail < n {
		return 0, fmt.Errorf("invalid street detail %q: must be auto or 0-%d", s, MaxStreetDetail)
	}
	return n, nil
}

// Options select which features end up on the map.
type Options struct {
	// Name titles the generated document; empty uses DefaultName.
	Name string
	// StreetDetail is the finest street tier to draw, 0 (only motorways and
	// trunk roads) through 6 (service roads and tracks), or StreetDetailAuto
	// to pick the finest level that does not crowd the canvas.
	StreetDetail int
	// Railroads includes passenger railways.
	Railroads TriState
	// Tramways shows dedicated tramways as major streets.
	Tramways TriState
	// Walkways shows pedestrian malls as minor streets.
	Walkways TriState
	// Parks includes parkland and other green areas.
	Parks TriState
	// BorderDetail is the deepest administrative level drawn as a border:
	// 0 for none, 2 for national, 4 for provincial, and so on.
	BorderDetail int
}

// DefaultOptions leave every choice to the detail selector and disable
// borders.
var DefaultOptions = Options{StreetDetail: StreetDetailAuto}

// FetchSelection returns the widest selection the options may resolve to.
// A data fetch sized by it covers every feature the automatic selection
// could decide to keep.
func (opts Options) FetchSelection() Resolved {
	res := Resolved{
		StreetDetail: opts.StreetDetail,
		BorderDetail: opts.BorderDetail,
		Railroads:    opts.Railroads != No,
		Tramways:     opts.Tramways != No,
		Walkways:     opts.Walkways != No,
		Parks:        opts.Parks != No,
	}
	if opts.StreetDetail == StreetDetailAuto {
		res.StreetDetail = MaxStreetDetail
	}
	return res
}

// Tuning holds the thresholds that drive automatic detail selection and
// geometry filtering. The zero value is unusable; start from DefaultTuning.
type Tuning struct {
	// CanvasArea is the area of the output canvas in mm².
	CanvasArea float64
	// TargetStreetDensity is the desired mm of street per mm² of canvas.
	// Automatic street detail stops at the first level that reaches it.
	TargetStreetDensity float64
	// MaxRailDensity is the mm of railroad per mm² of canvas above which
	// automatic selection drops the railroad layer as visually dominant.
	MaxRailDensity float64
	// MinParkExtent is the smallest projected park diagonal in mm drawn
	// when parks are selected automatically; smaller slivers are dropped.
	MinParkExtent float64
	// SimplifyTolerance is the maximum deviation in mm allowed when
	// simplifying projected geometry.
	SimplifyTolerance float64
}

// DefaultTuning is tuned against hand-made infobox maps at city scales.
var DefaultTuning = Tuning{
	CanvasArea:          10000.0,
	TargetStreetDensity: 0.15,
	MaxRailDensity:      0.04,
	MinParkExtent:       1.0,
	SimplifyTolerance:   0.05,
}
