package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/routeplanner/pkg"
	"github.com/lintang-b-s/routeplanner/pkg/geo"
)

// Link is an undirected, mode-tagged connection between two cities. distance is in km.
type Link struct {
	from     City
	to       City
	distance float64
	mode     pkg.TransportMode
}

// NewLink. distance is the great-circle distance between the endpoints.
func NewLink(from, to City, mode pkg.TransportMode) Link {
	return Link{
		from:     from,
		to:       to,
		distance: geo.Distance(from.GetLocation(), to.GetLocation()),
		mode:     mode,
	}
}

func NewLinkWithDistance(from, to City, distance float64, mode pkg.TransportMode) Link {
	return Link{
		from:     from,
		to:       to,
		distance: distance,
		mode:     mode,
	}
}

func (l Link) GetFrom() City {
	return l.from
}

func (l Link) GetTo() City {
	return l.to
}

func (l Link) GetDistance() float64 {
	return l.distance
}

func (l Link) GetTransportMode() pkg.TransportMode {
	return l.mode
}

func (l Link) HasMode(mode pkg.TransportMode) bool {
	return l.mode == mode
}

func (l Link) Connects(c City) bool {
	return l.from.Equal(c) || l.to.Equal(c)
}

// Other. opposite endpoint of c. c must be one of the endpoints.
func (l Link) Other(c City) City {
	if l.from.Equal(c) {
		return l.to
	}
	return l.from
}

// Oriented returns the link with from set to c, keeping distance and mode.
func (l Link) Oriented(c City) Link {
	if l.from.Equal(c) {
		return l
	}
	return Link{from: l.to, to: l.from, distance: l.distance, mode: l.mode}
}

func (l Link) String() string {
	return fmt.Sprintf("Link: %s - %s %.2fkm (%s)", l.from.GetName(), l.to.GetName(), l.distance, l.mode)
}

func TotalDistance(links []Link) float64 {
	total := 0.0
	for _, l := range links {
		total += l.distance
	}
	return total
}
