package geo

import (
	"math"

	"github.com/lintang-b-s/routeplanner/pkg"
	"github.com/lintang-b-s/routeplanner/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// Distance. great-circle distance in km between a and b (spherical law of cosines).
func Distance(a, b WayPoint) float64 {
	return CalculateGreatCircleDistance(a.lat, a.lon, b.lat, b.lon)
}

// CalculateGreatCircleDistance. spherical law of cosines, in km.
// rounding can push the cosine slightly outside [-1,1] for (near) identical points, so it is clamped before acos.
func CalculateGreatCircleDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	if latOne == latTwo && longOne == longTwo {
		return 0
	}
	latOne = util.DegreeToRadians(latOne)
	latTwo = util.DegreeToRadians(latTwo)
	dLong := util.DegreeToRadians(longOne) - util.DegreeToRadians(longTwo)

	cosC := math.Sin(latOne)*math.Sin(latTwo) + math.Cos(latOne)*math.Cos(latTwo)*math.Cos(dLong)
	return pkg.EARTH_RADIUS_KM * math.Acos(util.Clamp(cosC, -1.0, 1.0))
}

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return pkg.EARTH_RADIUS_KM * c
}

// GetDestinationPoint returns the destination point given the starting point, bearing and distance
// dist in km
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / pkg.EARTH_RADIUS_KM

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
