package geo

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/routeplanner/pkg/util"
)

var validate = validator.New()

type wayPointInput struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

// WayPoint is an immutable named coordinate in degrees.
type WayPoint struct {
	name string
	lat  float64
	lon  float64
}

func NewWayPoint(name string, lat, lon float64) (WayPoint, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return WayPoint{}, util.WrapErrorf(nil, util.ErrBadParamInput, "waypoint %q: coordinates must be numbers", name)
	}
	if err := validate.Struct(wayPointInput{Lat: lat, Lon: lon}); err != nil {
		return WayPoint{}, util.WrapErrorf(err, util.ErrBadParamInput, "waypoint %q: invalid coordinate %f/%f", name, lat, lon)
	}
	return WayPoint{
		name: name,
		lat:  lat,
		lon:  lon,
	}, nil
}

// MustWayPoint is NewWayPoint for fixtures. It panics on invalid coordinates.
func MustWayPoint(name string, lat, lon float64) WayPoint {
	wp, err := NewWayPoint(name, lat, lon)
	if err != nil {
		panic(err)
	}
	return wp
}

func (w WayPoint) GetName() string {
	return w.name
}

func (w WayPoint) GetLat() float64 {
	return w.lat
}

func (w WayPoint) GetLon() float64 {
	return w.lon
}

func (w WayPoint) Coordinate() Coordinate {
	return NewCoordinate(w.lat, w.lon)
}

func (w WayPoint) Distance(target WayPoint) float64 {
	return Distance(w, target)
}

func (w WayPoint) String() string {
	if w.name == "" {
		return fmt.Sprintf("WayPoint: %.2f/%.2f", w.lat, w.lon)
	}
	return fmt.Sprintf("WayPoint: %s %.2f/%.2f", w.name, w.lat, w.lon)
}
