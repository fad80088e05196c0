package locmap

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

var (
	// ErrEmptyBoundingBox is returned when a bounding box encloses no area.
	ErrEmptyBoundingBox = errors.New("bounding box has no area")

	// ErrBoundingBoxTooLarge is returned when a bounding box exceeds the
	// supported latitude or longitude span.
	ErrBoundingBoxTooLarge = errors.New("bounding box too large")

	// ErrNoRenderableFeatures warns that every layer came out empty and the
	// map shows nothing but its background.
	ErrNoRenderableFeatures = errors.New("no renderable features in the bounding box")

	// ErrNoStreets warns that no street matched the chosen street detail.
	ErrNoStreets = errors.New("no streets matched the chosen street detail")
)

// MalformedGeometryError reports a feature whose geometry cannot be drawn.
// Such features are dropped and the run continues.
type MalformedGeometryError struct {
	ID     string
	Reason string
}

func (e *MalformedGeometryError) Error() string {
	return fmt.Sprintf("feature %s: malformed geometry: %s", e.ID, e.Reason)
}

// ProjectionError reports a coordinate outside the bounding box reaching the
// projector. Filtering should have removed it, so this aborts the run.
type ProjectionError struct {
	Point orb.Point
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("point (%v, %v) lies outside the bounding box", e.Point[0], e.Point[1])
}
