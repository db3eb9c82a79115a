package geo

import "github.com/twpayne/go-polyline"

// PolylineFromCoords encodes coords with the Google encoded polyline algorithm (precision 5).
func PolylineFromCoords(coords []Coordinate) string {
	pc := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pc = append(pc, []float64{c.GetLat(), c.GetLon()})
	}
	return string(polyline.EncodeCoords(pc))
}
