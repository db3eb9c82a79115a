package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/routeplanner/pkg"
)

func toS2Point(c Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// PointSegmentDistance. distance in km from snap to the great-circle segment pointA-pointB
func PointSegmentDistance(pointA Coordinate, pointB Coordinate,
	snap Coordinate) float64 {
	angle := s2.DistanceFromSegment(toS2Point(snap), toS2Point(pointA), toS2Point(pointB))
	return angle.Radians() * pkg.EARTH_RADIUS_KM
}
