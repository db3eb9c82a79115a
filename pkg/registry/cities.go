package registry

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/geo"
	"github.com/lintang-b-s/routeplanner/pkg/util"
	"go.uber.org/zap"
)

// Cities is the in-memory city registry. It owns name uniqueness: a later record with an already known
// name (case-insensitive) is ignored.
type Cities struct {
	mu     sync.RWMutex
	cities []da.City
	byName map[string]int
	log    *zap.Logger
}

func NewCities(log *zap.Logger) *Cities {
	return &Cities{
		cities: make([]da.City, 0),
		byName: make(map[string]int),
		log:    log,
	}
}

// ReadCities reads tab separated records "name country population lat lon" from filename.
func (cs *Cities) ReadCities(filename string) (int, error) {
	f, err := os.Open(filename)
	if err != nil {
		cs.log.Error("reading cities failed", zap.String("filename", filename), zap.Error(err))
		return 0, util.WrapErrorf(err, util.ErrNotFound, "reading cities from %s", filename)
	}
	defer f.Close()

	n := cs.LoadCities(f)
	cs.log.Info("cities read", zap.String("filename", filename), zap.Int("added", n), zap.Int("total", cs.Count()))
	return n, nil
}

// LoadCities adds every well-formed record of r and returns the number of cities added.
func (cs *Cities) LoadCities(r io.Reader) int {
	br := bufio.NewReader(r)
	staged := make([]da.City, 0)
	lineNum := 0
	for {
		line, err := util.ReadLine(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				cs.log.Error("reading cities aborted", zap.Int("line", lineNum), zap.Error(err))
			}
			break
		}
		lineNum++
		if strings.TrimSpace(line) == "" {
			continue
		}
		city, err := parseCity(line)
		if err != nil {
			cs.log.Warn("skipping malformed city record", zap.Int("line", lineNum), zap.Error(err))
			continue
		}
		staged = append(staged, city)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	added := 0
	for _, city := range staged {
		key := da.NormalizeCityName(city.GetName())
		if _, ok := cs.byName[key]; ok {
			continue
		}
		cs.byName[key] = len(cs.cities)
		cs.cities = append(cs.cities, city)
		added++
	}
	return added
}

func parseCity(line string) (da.City, error) {
	tokens := strings.Split(line, "\t")
	if len(tokens) < 5 {
		return da.City{}, util.WrapErrorf(nil, util.ErrBadParamInput, "expected 5 fields, got %d", len(tokens))
	}
	name := strings.TrimSpace(tokens[0])
	if name == "" {
		return da.City{}, util.WrapErrorf(nil, util.ErrBadParamInput, "empty city name")
	}
	population, err := strconv.Atoi(strings.TrimSpace(tokens[2]))
	if err != nil {
		return da.City{}, util.WrapErrorf(err, util.ErrBadParamInput, "city %q: population", name)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(tokens[3]), 64)
	if err != nil {
		return da.City{}, util.WrapErrorf(err, util.ErrBadParamInput, "city %q: latitude", name)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(tokens[4]), 64)
	if err != nil {
		return da.City{}, util.WrapErrorf(err, util.ErrBadParamInput, "city %q: longitude", name)
	}
	wp, err := geo.NewWayPoint(name, lat, lon)
	if err != nil {
		return da.City{}, err
	}
	return da.NewCity(name, strings.TrimSpace(tokens[1]), population, wp), nil
}

// Add registers city. It returns false if a city with the same name exists.
func (cs *Cities) Add(city da.City) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	key := da.NormalizeCityName(city.GetName())
	if _, ok := cs.byName[key]; ok {
		return false
	}
	cs.byName[key] = len(cs.cities)
	cs.cities = append(cs.cities, city)
	return true
}

func (cs *Cities) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.cities)
}

// FindCity. case-insensitive lookup by name
func (cs *Cities) FindCity(name string) (da.City, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	idx, ok := cs.byName[da.NormalizeCityName(name)]
	if !ok {
		return da.City{}, false
	}
	return cs.cities[idx], true
}

func (cs *Cities) All() []da.City {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]da.City, len(cs.cities))
	copy(out, cs.cities)
	return out
}

// FindCitiesBetween returns the cities inside the lat/lon rectangle spanned by from and to, ordered by
// latitude from `from` towards `to`. from is always first and to always last.
func (cs *Cities) FindCitiesBetween(from, to da.City) []da.City {
	if from.IsZero() || to.IsZero() {
		return nil
	}
	if from.Equal(to) {
		return []da.City{from}
	}

	fromLoc, toLoc := from.GetLocation(), to.GetLocation()
	minLat, maxLat := minMax(fromLoc.GetLat(), toLoc.GetLat())
	minLon, maxLon := minMax(fromLoc.GetLon(), toLoc.GetLon())

	cs.mu.RLock()
	inner := make([]da.City, 0)
	for _, c := range cs.cities {
		if c.Equal(from) || c.Equal(to) {
			continue
		}
		loc := c.GetLocation()
		if loc.GetLat() >= minLat && loc.GetLat() <= maxLat && loc.GetLon() >= minLon && loc.GetLon() <= maxLon {
			inner = append(inner, c)
		}
	}
	cs.mu.RUnlock()

	northwards := fromLoc.GetLat() <= toLoc.GetLat()
	sort.SliceStable(inner, func(i, j int) bool {
		if northwards {
			return inner[i].GetLocation().GetLat() < inner[j].GetLocation().GetLat()
		}
		return inner[i].GetLocation().GetLat() > inner[j].GetLocation().GetLat()
	})

	out := make([]da.City, 0, len(inner)+2)
	out = append(out, from)
	out = append(out, inner...)
	out = append(out, to)
	return out
}

func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
