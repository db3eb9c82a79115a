package spatialindex

import (
	"math"
	"sort"

	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Corridor narrows a route search to the cities lying near the great-circle segment between source and target.
// Candidates are fetched from an r-tree with the bounding box of source and target expanded by margin (km),
// then kept only if their distance to the segment is at most width (km).
// Bounding boxes crossing the antimeridian are not handled.
type Corridor struct {
	tr     *rtree.RTreeG[da.City]
	margin float64
	width  float64
	size   int
}

func NewCorridor(margin, width float64) *Corridor {
	var tr rtree.RTreeG[da.City]
	return &Corridor{
		tr:     &tr,
		margin: margin,
		width:  width,
	}
}

// Build. insert every city as a point leaf
func (co *Corridor) Build(cities []da.City, log *zap.Logger) {
	log.Info("Building R-tree corridor index...", zap.Int("cities", len(cities)))
	for _, c := range cities {
		loc := c.GetLocation()
		p := [2]float64{loc.GetLon(), loc.GetLat()}
		co.tr.Insert(p, p, c)
		co.size++
	}
	log.Info("R-tree corridor index built.", zap.Int("size", co.size))
}

func (co *Corridor) Size() int {
	return co.size
}

// CitiesBetween returns source first, target last and the corridor cities in between ordered by distance from source.
func (co *Corridor) CitiesBetween(source, target da.City) []da.City {
	if source.Equal(target) {
		return []da.City{source}
	}
	sLoc, tLoc := source.GetLocation(), target.GetLocation()

	lowerSLat, lowerSLon := geo.GetDestinationPoint(sLoc.GetLat(), sLoc.GetLon(), 225, co.margin)
	upperSLat, upperSLon := geo.GetDestinationPoint(sLoc.GetLat(), sLoc.GetLon(), 45, co.margin)
	lowerTLat, lowerTLon := geo.GetDestinationPoint(tLoc.GetLat(), tLoc.GetLon(), 225, co.margin)
	upperTLat, upperTLon := geo.GetDestinationPoint(tLoc.GetLat(), tLoc.GetLon(), 45, co.margin)

	minLat := math.Min(lowerSLat, lowerTLat)
	minLon := math.Min(lowerSLon, lowerTLon)
	maxLat := math.Max(upperSLat, upperTLat)
	maxLon := math.Max(upperSLon, upperTLon)

	segA, segB := sLoc.Coordinate(), tLoc.Coordinate()

	inner := make([]da.City, 0, 16)
	co.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		func(min, max [2]float64, c da.City) bool {
			if c.Equal(source) || c.Equal(target) {
				return true
			}
			if geo.PointSegmentDistance(segA, segB, c.GetLocation().Coordinate()) <= co.width {
				inner = append(inner, c)
			}
			return true
		})

	sort.SliceStable(inner, func(i, j int) bool {
		return geo.Distance(sLoc, inner[i].GetLocation()) < geo.Distance(sLoc, inner[j].GetLocation())
	})

	out := make([]da.City, 0, len(inner)+2)
	out = append(out, source)
	out = append(out, inner...)
	return append(out, target)
}
