// Package wiki pulls the bounding box of an existing location map off its
// Wikimedia Commons file page or its Wikipedia location map module page, so
// a replacement map can cover exactly the same area.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	locmap "github.com/jkunimune/auto-location-map"
)

// UserAgent identifies this tool to the Wikimedia servers.
const UserAgent = "User:Justinkunimune's automatic location map replacement script"

// Default page bases for the two places a location map can live.
const (
	DefaultCommonsURL = "https://commons.wikimedia.org/wiki"
	DefaultModuleURL  = "https://en.wikipedia.org/wiki"
)

// ErrNotFound reports that a page does not exist, either because the server
// said so or because it answered with a placeholder.
var ErrNotFound = errors.New("page does not exist")

// Result is a found location map: the box it covers and a suggested name
// for its replacement.
type Result struct {
	BBox locmap.BoundingBox
	Name string
}

// Client looks location maps up by name.
type Client struct {
	CommonsURL string
	ModuleURL  string
	HTTPClient *http.Client
}

// NewClient returns a client for Wikimedia Commons and English Wikipedia.
func NewClient() *Client {
	return &Client{
		CommonsURL: DefaultCommonsURL,
		ModuleURL:  DefaultModuleURL,
		HTTPClient: &http.Client{Timeout: time.Minute},
	}
}

// Pages spell the bounds many ways: "S: -0.1", "south = -0.1°", syntax
// highlighted Lua fields. One pattern per direction, tried in the order
// south, north, west, east. The unit group flips the sign for °S and °W.
var boundPatterns = [4]*regexp.Regexp{
	regexp.MustCompile(`\b(S|south|bottom)\b[a-z</>\s]*[:=]\s+([-+0-9]+\.[0-9]+)(°[NSEW])?`),
	regexp.MustCompile(`\b(N|north|top)\b[a-z</>\s]*[:=]\s+([-+0-9]+\.[0-9]+)(°[NSEW])?`),
	regexp.MustCompile(`\b(W|west|left)\b[a-z</>\s]*[:=]\s+([-+0-9]+\.[0-9]+)(°[NSEW])?`),
	regexp.MustCompile(`\b(E|east|right)\b[a-z</>\s]*[:=]\s+([-+0-9]+\.[0-9]+)(°[NSEW])?`),
}

var boundNames = [4]string{"south", "north", "west", "east"}

var imagePattern = regexp.MustCompile(`\bimage\b[a-z</>\s]*[:=]\s.*>([^<>/\\]+\.[A-Za-z]+)<`)

// Resolve looks up the location map called name. It tries the Commons file
// page first (adding .png when the name has no extension), then the
// Wikipedia location map module of the same name. The suggested replacement
// name is the map's image name, or failing that the given name, with " 2"
// appended in place of the extension.
func (c *Client) Resolve(ctx context.Context, name string) (*Result, error) {
	filename := strings.TrimPrefix(name, "File:")
	if path.Ext(filename) == "" {
		filename += ".png"
	}
	bbox, image, err := c.scrape(ctx, c.CommonsURL+"/File:"+strings.ReplaceAll(filename, " ", "_"))
	if err != nil {
		moduleName := strings.TrimPrefix(strings.TrimPrefix(name, "Module:"), "Location map/data/")
		var moduleErr error
		bbox, image, moduleErr = c.scrape(ctx, c.ModuleURL+"/Module:Location_map/data/"+strings.ReplaceAll(moduleName, " ", "_"))
		if moduleErr != nil {
			return nil, fmt.Errorf("%q names neither a Commons file (%v) nor a location map module (%v)", name, err, moduleErr)
		}
		filename = moduleName
	}
	if image != "" {
		filename = image
	}
	return &Result{
		BBox: bbox.Normalize(),
		Name: strings.TrimSuffix(filename, path.Ext(filename)) + " 2",
	}, nil
}

// scrape fetches one page and reads the bounds and image name out of its
// HTML.
func (c *Client) scrape(ctx context.Context, address string) (locmap.BoundingBox, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return locmap.BoundingBox{}, "", err
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return locmap.BoundingBox{}, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return locmap.BoundingBox{}, "", fmt.Errorf("%s: %w", address, ErrNotFound)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return locmap.BoundingBox{}, "", err
	}
	page := string(body)
	if strings.Contains(page, "No file by this name exists") ||
		strings.Contains(page, "does not have a Module page with this exact name") {
		return locmap.BoundingBox{}, "", fmt.Errorf("%s: %w", address, ErrNotFound)
	}

	var bounds [4]float64
	for i, pattern := range boundPatterns {
		m := pattern.FindStringSubmatch(page)
		if m == nil {
			return locmap.BoundingBox{}, "", fmt.Errorf("page %s does not state the %s bound", address, boundNames[i])
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return locmap.BoundingBox{}, "", fmt.Errorf("page %s: bad %s bound %q", address, boundNames[i], m[2])
		}
		if m[3] == "°S" || m[3] == "°W" {
			v = -v
		}
		bounds[i] = v
	}

	image := ""
	if m := imagePattern.FindStringSubmatch(page); m != nil {
		image = m[1]
	}
	return locmap.BoundingBox{South: bounds[0], North: bounds[1], West: bounds[2], East: bounds[3]}, image, nil
}
