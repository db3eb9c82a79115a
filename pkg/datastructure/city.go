package datastructure

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/routeplanner/pkg/geo"
)

type Index uint32

const (
	INVALID_INDEX Index = ^Index(0)
)

// City is a named vertex of the routing graph. Two cities are the same vertex iff their names match.
type City struct {
	name       string
	country    string
	population int
	location   geo.WayPoint
}

func NewCity(name, country string, population int, location geo.WayPoint) City {
	return City{
		name:       name,
		country:    country,
		population: population,
		location:   location,
	}
}

func (c City) GetName() string {
	return c.name
}

func (c City) GetCountry() string {
	return c.country
}

func (c City) GetPopulation() int {
	return c.population
}

func (c City) GetLocation() geo.WayPoint {
	return c.location
}

// Key. identity key used for maps keyed by city.
func (c City) Key() string {
	return c.name
}

func (c City) Equal(other City) bool {
	return c.name == other.name
}

func (c City) IsZero() bool {
	return c.name == ""
}

func (c City) String() string {
	return fmt.Sprintf("City: %s (%s) %.2f/%.2f", c.name, c.country, c.location.GetLat(), c.location.GetLon())
}

// NormalizeCityName. registry lookups are case-insensitive and ignore surrounding whitespace.
func NormalizeCityName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
