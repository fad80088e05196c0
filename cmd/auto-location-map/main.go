package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"

	locmap "github.com/jkunimune/auto-location-map"
	"github.com/jkunimune/auto-location-map/overpass"
	"github.com/jkunimune/auto-location-map/wiki"
)

type Main struct {
	StreetDetail string `name:"street-detail" default:"auto" desc:"How many levels of street detail to draw: 0 for highways only, 4 for major streets, 6 for all streets, or auto"`
	Railroads    string `default:"auto" desc:"Whether to include passenger railways: yes, no or auto"`
	Tramways     string `default:"auto" desc:"Whether to show dedicated tramways as major streets: yes, no or auto"`
	Walkways     string `default:"auto" desc:"Whether to show pedestrian malls as minor streets: yes, no or auto"`
	Parks        string `default:"auto" desc:"Whether to include parkland: yes, no or auto"`
	BorderDetail int    `name:"border-detail" default:"0" desc:"The administrative level up to which to draw political borders: 0 for none, 2 for national, 4 for provincial"`
	Name         string `default:"" desc:"The name of the map, used for the output file and the SVG title"`
	Source       string `default:"overpass" desc:"Where to load the map data from: overpass or osm-api"`
	Out          string `short:"o" default:"maps" desc:"The directory to save the map in"`
	Minify       bool   `desc:"Minify the SVG output"`
	Preview      bool   `desc:"Open the finished map in a browser"`
	Verbose      bool   `short:"v" desc:"Print debug messages"`
	Area         string `index:"0" desc:"Either the map bounds as south/north/west/east (e.g. 40.69/40.84/-74.03/-73.93) or the name of an existing location map on the Wikimedia Commons"`
}

func main() {
	root := argp.NewCmd(&Main{}, "Generates clean, high-contrast location maps for Wikipedia from OpenStreetMap data")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Main) Run() error {
	if cmd.Area == "" {
		return argp.ShowUsage
	}
	if cmd.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	ctx := context.Background()

	opts, err := cmd.options()
	if err != nil {
		fmt.Println("ERROR:", err)
		return argp.ShowUsage
	}

	bbox, suggested, err := cmd.bounds(ctx)
	if err != nil {
		return err
	}
	logrus.Infof("the bounding box is %v", bbox)
	switch {
	case cmd.Name != "":
		opts.Name = cmd.Name
	case suggested != "":
		opts.Name = suggested
	default:
		opts.Name = locmap.DefaultName(bbox)
	}

	features, err := cmd.fetch(ctx, bbox, opts)
	if err != nil {
		return err
	}

	m, err := locmap.Generate(bbox, features, opts, locmap.DefaultTuning)
	if err != nil {
		return err
	}
	for _, warning := range m.Warnings {
		logrus.Warn(warning)
	}
	logrus.Infof("set the street detail to %d", m.Resolved.StreetDetail)

	out := m.SVG
	if cmd.Minify {
		minifier := minify.New()
		minifier.AddFunc("image/svg+xml", svg.Minify)
		if out, err = minifier.Bytes("image/svg+xml", out); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cmd.Out, 0755); err != nil {
		return err
	}
	path := filepath.Join(cmd.Out, opts.Name+".svg")
	if err := os.WriteFile(path, out, 0644); err != nil {
		return err
	}

	fmt.Printf("Recommended description:\n\t%s\n", locmap.Wikitext(m.Description))
	fmt.Printf("Saved the map to `%s`!\n", path)
	if cmd.Preview {
		return browser.OpenFile(path)
	}
	return nil
}

var bboxSpecifier = regexp.MustCompile(`^[-+0-9.e]+/[-+0-9.e]+/[-+0-9.e]+/[-+0-9.e]+$`)

// bounds reads the area argument: either literal bounds, or the name of an
// existing location map whose pages state them.
func (cmd *Main) bounds(ctx context.Context) (locmap.BoundingBox, string, error) {
	if bboxSpecifier.MatchString(cmd.Area) {
		bbox, err := locmap.ParseBoundingBox(cmd.Area)
		return bbox, "", err
	}
	logrus.Info("reading the existing location map page")
	result, err := wiki.NewClient().Resolve(ctx, cmd.Area)
	if err != nil {
		return locmap.BoundingBox{}, "", err
	}
	if err := result.BBox.Validate(); err != nil {
		return locmap.BoundingBox{}, "", err
	}
	return result.BBox, result.Name, nil
}

func (cmd *Main) options() (locmap.Options, error) {
	opts := locmap.DefaultOptions
	var err error
	if opts.StreetDetail, err = locmap.ParseStreetDetail(cmd.StreetDetail); err != nil {
		return opts, err
	}
	if opts.Railroads, err = locmap.ParseTriState(cmd.Railroads); err != nil {
		return opts, err
	}
	if opts.Tramways, err = locmap.ParseTriState(cmd.Tramways); err != nil {
		return opts, err
	}
	if opts.Walkways, err = locmap.ParseTriState(cmd.Walkways); err != nil {
		return opts, err
	}
	if opts.Parks, err = locmap.ParseTriState(cmd.Parks); err != nil {
		return opts, err
	}
	if cmd.BorderDetail < 0 {
		return opts, fmt.Errorf("border detail must not be negative")
	}
	opts.BorderDetail = cmd.BorderDetail
	return opts, nil
}

func (cmd *Main) fetch(ctx context.Context, bbox locmap.BoundingBox, opts locmap.Options) ([]locmap.Feature, error) {
	logrus.Info("loading data from OpenStreetMap")
	start := time.Now()
	var features []locmap.Feature
	var err error
	switch cmd.Source {
	case "overpass":
		features, err = overpass.FetchBBox(ctx, overpass.NewClient(), bbox, opts.FetchSelection())
	case "osm-api":
		features, err = overpass.MirrorFetch(ctx, bbox, 0.0)
	default:
		return nil, fmt.Errorf("unknown data source %q: must be overpass or osm-api", cmd.Source)
	}
	if err != nil {
		return nil, err
	}
	logrus.Infof("loaded %d shapes in %.0f seconds", len(features), time.Since(start).Seconds())
	return features, nil
}
