// Package geo indexes destinations by coordinate for radius searches.
package geo

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/pkordes/travel-planner/internal/domain"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50
	tolerance   = 1e-6
	earthRadius = 6371.0 // km
)

// Hit is a destination found by a radius search.
type Hit struct {
	Destination domain.Destination
	DistanceKm  float64
}

type entry struct {
	dest domain.Destination
	rect *rtreego.Rect
}

func (e *entry) Bounds() *rtreego.Rect { return e.rect }

// Index is an R-tree over destination locations. Safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
	size int
}

// NewIndex builds an index over ds.
func NewIndex(ds []domain.Destination) *Index {
	ix := &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
	ix.Insert(ds...)
	return ix
}

// Insert adds destinations to the index.
func (ix *Index) Insert(ds ...domain.Destination) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, d := range ds {
		p := rtreego.Point{d.Location.Latitude, wrapLon(d.Location.Longitude)}
		ix.tree.Insert(&entry{dest: d, rect: p.ToRect(tolerance)})
		ix.size++
	}
}

// Len reports how many destinations are indexed.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.size
}

// Within returns the destinations within radiusKm of (lat, lon), nearest
// first. Equal distances keep creation order.
func (ix *Index) Within(lat, lon, radiusKm float64) ([]Hit, error) {
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, fmt.Errorf("geo.Index.Within: %w: radius must be positive, got %v", domain.ErrInvalidArgument, radiusKm)
	}

	rects, err := searchBounds(lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("geo.Index.Within: %w", err)
	}

	var candidates []rtreego.Spatial
	ix.mu.RLock()
	for _, b := range rects {
		candidates = append(candidates, ix.tree.SearchIntersect(b)...)
	}
	ix.mu.RUnlock()

	seen := make(map[*entry]bool, len(candidates))
	hits := make([]Hit, 0, len(candidates))
	for _, c := range candidates {
		e, ok := c.(*entry)
		if !ok || seen[e] {
			continue
		}
		seen[e] = true
		dist := Distance(lat, lon, e.dest.Location.Latitude, e.dest.Location.Longitude)
		if dist <= radiusKm {
			hits = append(hits, Hit{Destination: e.dest, DistanceKm: dist})
		}
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		if c := a.Destination.CreatedAt.Compare(b.Destination.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Destination.ID.String(), b.Destination.ID.String())
	})
	return hits, nil
}

// searchBounds returns lat/lon boxes that together contain every point
// within radiusKm of (lat, lon). A circle that crosses the antimeridian is
// split in two; one that reaches a pole spans every longitude.
func searchBounds(lat, lon, radiusKm float64) ([]*rtreego.Rect, error) {
	const deg = 180 / math.Pi
	angle := radiusKm / earthRadius
	dLat := angle * deg
	lon = wrapLon(lon)

	minLat, maxLat := lat-dLat, lat+dLat
	if maxLat >= 90 || minLat <= -90 || angle >= math.Pi/2 {
		return boxes(box(minLat, maxLat, -180, 180))
	}

	// Widest longitude offset of a small circle at this latitude.
	ratio := math.Sin(angle) / math.Cos(lat/deg)
	if ratio >= 1 {
		return boxes(box(minLat, maxLat, -180, 180))
	}
	dLon := math.Asin(ratio) * deg

	west, east := lon-dLon, lon+dLon
	switch {
	case west < -180:
		return boxes(box(minLat, maxLat, west+360, 180), box(minLat, maxLat, -180, east))
	case east > 180:
		return boxes(box(minLat, maxLat, west, 180), box(minLat, maxLat, -180, east-360))
	default:
		return boxes(box(minLat, maxLat, west, east))
	}
}

type span struct{ minLat, maxLat, minLon, maxLon float64 }

func box(minLat, maxLat, minLon, maxLon float64) span {
	return span{minLat, maxLat, minLon, maxLon}
}

func boxes(spans ...span) ([]*rtreego.Rect, error) {
	out := make([]*rtreego.Rect, 0, len(spans))
	for _, s := range spans {
		r, err := rtreego.NewRect(
			rtreego.Point{s.minLat, s.minLon},
			[]float64{s.maxLat - s.minLat, s.maxLon - s.minLon},
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// wrapLon maps a longitude into [-180, 180).
func wrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// Distance is the great-circle distance in km between two coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const rad = math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
