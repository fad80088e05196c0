package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

const commonsPage = `<html><body>
<h1>File:Test City location map.png</h1>
<p>Geographic limits of the map:</p>
<ul>
<li>S: -0.100°</li>
<li>N: 0.100°</li>
<li>W: 10.000°</li>
<li>E: 10.200°</li>
</ul>
</body></html>`

const modulePage = `<html><body>
<h1>Module:Location map/data/Test City</h1>
<pre>
return {
	name = 'Test City',
	bottom = -0.1,
	top = 0.1,
	left = 10.0,
	right = 10.2,
	image = <a href="/wiki/File:Test_City_location_map.png">Test City location map.png</a>
}
</pre>
</body></html>`

const modulePageNoImage = `<html><body>
<pre>
return {
	name = 'Test City',
	bottom = -0.1,
	top = 0.1,
	left = 10.0,
	right = 10.2,
	image = 'Test City location map.png'
}
</pre>
</body></html>`

const capeTownPage = `<html><body>
<p>Geographic limits of the map:</p>
<ul>
<li>S: 34.200°S</li>
<li>N: 33.900°S</li>
<li>W: 18.300°E</li>
<li>E: 18.600°E</li>
</ul>
</body></html>`

func testClient(commons, module http.HandlerFunc) (*Client, func()) {
	cs := httptest.NewServer(commons)
	ms := httptest.NewServer(module)
	c := NewClient()
	c.CommonsURL = cs.URL
	c.ModuleURL = ms.URL
	c.HTTPClient = cs.Client()
	return c, func() { cs.Close(); ms.Close() }
}

func serve(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}
}

func TestResolveCommons(t *testing.T) {
	var path, agent string
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		agent = r.Header.Get("User-Agent")
		w.Write([]byte(commonsPage))
	}, http.NotFound)
	defer done()

	r, err := c.Resolve(context.Background(), "Test City location map.png")
	test.Error(t, err)
	test.T(t, path, "/File:Test_City_location_map.png")
	test.T(t, agent, UserAgent)
	test.Float(t, r.BBox.South, -0.1)
	test.Float(t, r.BBox.North, 0.1)
	test.Float(t, r.BBox.West, 10.0)
	test.Float(t, r.BBox.East, 10.2)
	test.T(t, r.Name, "Test City location map 2")
}

func TestResolveStripsFilePrefixAndAddsExtension(t *testing.T) {
	var path string
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(commonsPage))
	}, http.NotFound)
	defer done()

	r, err := c.Resolve(context.Background(), "File:Test City location map")
	test.Error(t, err)
	test.T(t, path, "/File:Test_City_location_map.png")
	test.T(t, r.Name, "Test City location map 2")
}

func TestResolveModuleFallback(t *testing.T) {
	var path string
	c, done := testClient(http.NotFound, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(modulePage))
	})
	defer done()

	r, err := c.Resolve(context.Background(), "Module:Location map/data/Test City")
	test.Error(t, err)
	test.T(t, path, "/Module:Location_map/data/Test_City")
	test.Float(t, r.BBox.South, -0.1)
	test.Float(t, r.BBox.East, 10.2)
	test.T(t, r.Name, "Test City location map 2")
}

func TestResolveModuleWithoutImage(t *testing.T) {
	c, done := testClient(http.NotFound, serve(modulePageNoImage))
	defer done()

	r, err := c.Resolve(context.Background(), "Test City")
	test.Error(t, err)
	test.T(t, r.Name, "Test City 2")
}

func TestResolveSouthernHemisphere(t *testing.T) {
	c, done := testClient(serve(capeTownPage), http.NotFound)
	defer done()

	r, err := c.Resolve(context.Background(), "Cape Town location map.png")
	test.Error(t, err)
	test.Float(t, r.BBox.South, -34.2)
	test.Float(t, r.BBox.North, -33.9)
	test.Float(t, r.BBox.West, 18.3)
	test.Float(t, r.BBox.East, 18.6)
	test.T(t, r.Name, "Cape Town location map 2")
}

func TestResolveNotFound(t *testing.T) {
	c, done := testClient(http.NotFound,
		serve("<html>Wikipedia does not have a Module page with this exact name.</html>"))
	defer done()

	_, err := c.Resolve(context.Background(), "Atlantis")
	test.That(t, err != nil, "resolving a nonexistent map errors")
	test.That(t, strings.Contains(err.Error(), "Atlantis"), "the error names the map")
}

func TestResolveMissingBound(t *testing.T) {
	page := `<html><ul><li>S: -0.100</li><li>N: 0.100</li><li>W: 10.000</li></ul></html>`
	c, done := testClient(serve(page), http.NotFound)
	defer done()

	_, err := c.Resolve(context.Background(), "Test City location map.png")
	test.That(t, err != nil, "a page without all four bounds errors")
	test.That(t, strings.Contains(err.Error(), "east"), "the error names the missing bound")
}

func TestScrapeNotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewClient()
	c.HTTPClient = srv.Client()
	_, _, err := c.scrape(context.Background(), srv.URL+"/File:Nope.png")
	test.That(t, errors.Is(err, ErrNotFound), "a 404 maps to ErrNotFound")
}
