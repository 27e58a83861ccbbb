package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Point is a single measured location on a path.
// Label is set when the point was resolved from a place name.
type Point struct {
	ID          string
	Coordinates Coordinates
	Label       string
}

// Path is an ordered sequence of points owned by the caller.
// The service receives a Path with each request and hands the updated
// Path back; nothing is retained between calls.
type Path struct {
	Points []Point
}

func NewPath(points ...Point) Path {
	p := Path{Points: make([]Point, 0, len(points))}
	p.Points = append(p.Points, points...)
	return p
}

// Add appends a point with a fresh identifier.
func (p *Path) Add(c Coordinates, label string) Point {
	pt := Point{
		ID:          uuid.NewString(),
		Coordinates: c,
		Label:       label,
	}
	p.Points = append(p.Points, pt)
	return pt
}

// Remove drops every point carrying id and keeps the order of the rest.
func (p *Path) Remove(id string) bool {
	if id == "" {
		return false
	}

	kept := p.Points[:0:0]
	for _, pt := range p.Points {
		if pt.ID != id {
			kept = append(kept, pt)
		}
	}

	removed := len(kept) != len(p.Points)
	p.Points = kept
	return removed
}

func (p Path) find(id string) (Point, bool) {
	for _, pt := range p.Points {
		if pt.ID == id {
			return pt, true
		}
	}
	return Point{}, false
}

// Toggle is the single "add or remove point" operation.
//
// A hitID naming an existing point removes that point and returns it with
// added=false. Anything else appends a new point at c and returns it with
// added=true.
func (p *Path) Toggle(hitID string, c Coordinates, label string) (pt Point, added bool) {
	if hitID != "" {
		if existing, ok := p.find(hitID); ok {
			p.Remove(hitID)
			return existing, false
		}
	}
	return p.Add(c, label), true
}

func (p Path) Len() int { return len(p.Points) }

// Coordinates returns the point coordinates in path order.
func (p Path) Coordinates() []Coordinates {
	out := make([]Coordinates, 0, len(p.Points))
	for _, pt := range p.Points {
		out = append(out, pt.Coordinates)
	}
	return out
}

func (p Path) TotalKm() float64 {
	return PathDistanceKm(p.Coordinates())
}

// Validate checks ids and coordinates of every point.
func (p Path) Validate() error {
	seen := make(map[string]struct{}, len(p.Points))
	for i, pt := range p.Points {
		if strings.TrimSpace(pt.ID) == "" {
			return fmt.Errorf("validate path: point #%d: %w", i+1, ErrEmptyPointID)
		}
		// Compared as stored, the same way Toggle and Remove match ids.
		if _, ok := seen[pt.ID]; ok {
			return fmt.Errorf("validate path: point #%d: %w: %q", i+1, ErrDuplicatePointID, pt.ID)
		}
		seen[pt.ID] = struct{}{}

		if err := pt.Coordinates.Validate(); err != nil {
			return fmt.Errorf("validate path: point #%d: %w", i+1, err)
		}
	}
	return nil
}

var (
	ErrEmptyPointID     = errors.New("point id must not be empty")
	ErrDuplicatePointID = errors.New("duplicate point id")
)
