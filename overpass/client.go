package overpass

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"golang.org/x/net/html/charset"

	locmap "github.com/jkunimune/auto-location-map"
)

// DefaultURL is the main public Overpass endpoint.
const DefaultURL = "https://overpass-api.de/api/interpreter"

// ErrServerBusy reports an Overpass gateway timeout. Waiting a minute and
// retrying usually helps; if not, the query is too big and wants fewer map
// features or less street detail.
var ErrServerBusy = errors.New("the OpenStreetMap server said it was too busy to respond (error 504); wait a minute and try again, or reduce the map features or street detail if the problem persists")

// Client posts Overpass QL queries and decodes the responses. Rate-limited
// requests are retried after a pause.
type Client struct {
	URL        string
	HTTPClient *http.Client
	Retries    int
	RetryDelay time.Duration
}

// NewClient returns a client for the public Overpass endpoint.
func NewClient() *Client {
	return &Client{
		URL:        DefaultURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
		Retries:    2,
		RetryDelay: 30 * time.Second,
	}
}

// Fetch runs one QL query and returns the decoded OSM data.
func (c *Client) Fetch(ctx context.Context, query string) (*osm.OSM, error) {
	for attempt := 0; ; attempt++ {
		o, retry, err := c.fetch(ctx, query)
		if err == nil {
			return o, nil
		}
		if !retry || c.Retries <= attempt {
			return nil, err
		}
		select {
		case <-time.After(c.RetryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (c *Client) fetch(ctx context.Context, query string) (o *osm.OSM, retry bool, err error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("the OpenStreetMap server rate-limited the query (error %d)", resp.StatusCode)
	case http.StatusGatewayTimeout:
		return nil, false, ErrServerBusy
	default:
		return nil, false, fmt.Errorf("the OpenStreetMap query failed with error code %d", resp.StatusCode)
	}
	o = &osm.OSM{}
	dec := xml.NewDecoder(resp.Body)
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(o); err != nil {
		return nil, false, fmt.Errorf("decoding OpenStreetMap response: %w", err)
	}
	return o, false, nil
}

// FetchBBox fetches everything the resolved selection draws inside bbox in
// a single query.
func FetchBBox(ctx context.Context, c *Client, bbox locmap.BoundingBox, res locmap.Resolved) ([]locmap.Feature, error) {
	o, err := c.Fetch(ctx, BuildQuery(Query{BBox: bbox, Selectors: Selectors(res)}))
	if err != nil {
		return nil, err
	}
	return Features(o)
}
