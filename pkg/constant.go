package pkg

import (
	"fmt"
	"strings"
)

// enum of transport_mode
type TransportMode uint8

const (
	SHIP TransportMode = iota
	RAIL
	FLIGHT
	CAR
	BUS
	TRAM
)

const (
	INF_WEIGHT float64 = 1e15

	EARTH_RADIUS_KM = 6371.0

	// transport mode of links read by the bulk loader
	DEFAULT_LOAD_MODE = RAIL
)

var transportModeNames = [...]string{
	SHIP:   "ship",
	RAIL:   "rail",
	FLIGHT: "flight",
	CAR:    "car",
	BUS:    "bus",
	TRAM:   "tram",
}

func (m TransportMode) String() string {
	if int(m) < len(transportModeNames) {
		return transportModeNames[m]
	}
	return fmt.Sprintf("TransportMode(%d)", uint8(m))
}

func (m TransportMode) IsValid() bool {
	return int(m) < len(transportModeNames)
}

func TransportModes() []TransportMode {
	modes := make([]TransportMode, len(transportModeNames))
	for i := range transportModeNames {
		modes[i] = TransportMode(i)
	}
	return modes
}

func ParseTransportMode(mode string) (TransportMode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "ship":
		return SHIP, nil
	case "rail", "train":
		return RAIL, nil
	case "flight", "air":
		return FLIGHT, nil
	case "car", "road":
		return CAR, nil
	case "bus":
		return BUS, nil
	case "tram":
		return TRAM, nil
	default:
		return 0, fmt.Errorf("unknown transport mode: %q", mode)
	}
}
