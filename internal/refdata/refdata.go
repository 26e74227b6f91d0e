// Package refdata serves the read-only airport, airline and routing tables
// the itinerary generator works from.
package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/refdata/data"
)

type Provider interface {
	Airport(code string) (models.Airport, bool)
	// ResolveAirport accepts an IATA code or a city name.
	ResolveAirport(identifier string) (models.Airport, bool)
	Airports() []models.Airport
	Airline(code string) (models.Airline, bool)
	Airlines() []models.Airline
	NeverDirect(a, b string) bool
	HasDirectRoute(airline, a, b string) bool
	RegionHubs(region string) []string
	BridgeRegions(a, b string) []string
	GlobalHubs() []string
	// CityDuration looks up the table in the given direction only.
	CityDuration(fromCity, toCity string) (int, bool)
}

type Bridge struct {
	Regions []string `json:"regions" yaml:"regions"`
	Via     []string `json:"via" yaml:"via"`
}

type CityDuration struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

type Dataset struct {
	Airports      []models.Airport    `json:"airports" yaml:"airports"`
	Airlines      []models.Airline    `json:"airlines" yaml:"airlines"`
	NeverDirect   []string            `json:"never_direct" yaml:"never_direct"`
	RegionHubs    map[string][]string `json:"region_hubs" yaml:"region_hubs"`
	RegionBridges []Bridge            `json:"region_bridges" yaml:"region_bridges"`
	GlobalHubs    []string            `json:"global_hubs" yaml:"global_hubs"`
	CityDurations []CityDuration      `json:"city_durations" yaml:"city_durations"`
}

type Static struct {
	airports      map[string]models.Airport
	airportOrder  []string
	cities        map[string]string
	airlines      map[string]models.Airline
	airlineOrder  []string
	directRoutes  map[string]map[string]bool
	neverDirect   map[string]bool
	regionHubs    map[string][]string
	bridges       map[string][]string
	globalHubs    []string
	cityDurations map[string]int
}

// Load builds the provider from the embedded tables.
func Load() (*Static, error) {
	var ds Dataset
	for name, raw := range map[string][]byte{
		"airports.json": data.AirportsData,
		"airlines.json": data.AirlinesData,
		"routes.json":   data.RoutesData,
	} {
		if err := json.Unmarshal(raw, &ds); err != nil {
			return nil, errors.Wrapf(err, "decode %s", name)
		}
	}
	return NewStatic(ds)
}

// LoadFile builds the provider from a single JSON or YAML document holding
// every section of a Dataset.
func LoadFile(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read reference data")
	}

	var ds Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &ds)
	default:
		err = json.Unmarshal(raw, &ds)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return NewStatic(ds)
}

func NewStatic(ds Dataset) (*Static, error) {
	s := &Static{
		airports:      make(map[string]models.Airport, len(ds.Airports)),
		cities:        make(map[string]string),
		airlines:      make(map[string]models.Airline, len(ds.Airlines)),
		directRoutes:  make(map[string]map[string]bool),
		neverDirect:   make(map[string]bool),
		regionHubs:    make(map[string][]string),
		bridges:       make(map[string][]string),
		cityDurations: make(map[string]int),
	}

	for _, a := range ds.Airports {
		a.Code = normalizeCode(a.Code)
		if len(a.Code) != 3 {
			return nil, fmt.Errorf("airport code %q must have 3 letters", a.Code)
		}
		if _, dup := s.airports[a.Code]; dup {
			return nil, fmt.Errorf("duplicate airport %s", a.Code)
		}
		s.airports[a.Code] = a
		s.airportOrder = append(s.airportOrder, a.Code)

		city := normalizeCity(a.City)
		if _, seen := s.cities[city]; city != "" && !seen {
			s.cities[city] = a.Code
		}
	}

	for _, al := range ds.Airlines {
		al.Code = normalizeCode(al.Code)
		if _, dup := s.airlines[al.Code]; dup {
			return nil, fmt.Errorf("duplicate airline %s", al.Code)
		}
		hubs, err := s.knownCodes(al.Hubs)
		if err != nil {
			return nil, fmt.Errorf("airline %s hubs: %w", al.Code, err)
		}
		al.Hubs = hubs
		routes := make(map[string]bool, len(al.DirectRoutes))
		for _, r := range al.DirectRoutes {
			a, b, err := splitRoute(r)
			if err != nil {
				return nil, fmt.Errorf("airline %s: %w", al.Code, err)
			}
			routes[pairKey(a, b)] = true
		}
		s.directRoutes[al.Code] = routes
		s.airlines[al.Code] = al
		s.airlineOrder = append(s.airlineOrder, al.Code)
	}

	for _, r := range ds.NeverDirect {
		a, b, err := splitRoute(r)
		if err != nil {
			return nil, fmt.Errorf("never_direct: %w", err)
		}
		s.neverDirect[pairKey(a, b)] = true
	}

	for region, hubs := range ds.RegionHubs {
		codes, err := s.knownCodes(hubs)
		if err != nil {
			return nil, fmt.Errorf("region_hubs %s: %w", region, err)
		}
		s.regionHubs[region] = codes
	}

	for _, b := range ds.RegionBridges {
		if len(b.Regions) != 2 {
			return nil, fmt.Errorf("region bridge %v must name two regions", b.Regions)
		}
		s.bridges[pairKey(b.Regions[0], b.Regions[1])] = b.Via
	}

	hubs, err := s.knownCodes(ds.GlobalHubs)
	if err != nil {
		return nil, fmt.Errorf("global_hubs: %w", err)
	}
	s.globalHubs = hubs

	for _, cd := range ds.CityDurations {
		if cd.Minutes <= 0 {
			return nil, fmt.Errorf("city duration %s-%s must be positive", cd.From, cd.To)
		}
		s.cityDurations[normalizeCity(cd.From)+"|"+normalizeCity(cd.To)] = cd.Minutes
	}

	return s, nil
}

func (s *Static) Airport(code string) (models.Airport, bool) {
	a, ok := s.airports[normalizeCode(code)]
	return a, ok
}

func (s *Static) ResolveAirport(identifier string) (models.Airport, bool) {
	if a, ok := s.Airport(identifier); ok {
		return a, true
	}
	if code, ok := s.cities[normalizeCity(identifier)]; ok {
		return s.airports[code], true
	}
	return models.Airport{}, false
}

func (s *Static) Airports() []models.Airport {
	out := make([]models.Airport, 0, len(s.airportOrder))
	for _, code := range s.airportOrder {
		out = append(out, s.airports[code])
	}
	return out
}

func (s *Static) Airline(code string) (models.Airline, bool) {
	a, ok := s.airlines[normalizeCode(code)]
	return a, ok
}

func (s *Static) Airlines() []models.Airline {
	out := make([]models.Airline, 0, len(s.airlineOrder))
	for _, code := range s.airlineOrder {
		out = append(out, s.airlines[code])
	}
	return out
}

func (s *Static) NeverDirect(a, b string) bool {
	return s.neverDirect[pairKey(normalizeCode(a), normalizeCode(b))]
}

func (s *Static) HasDirectRoute(airline, a, b string) bool {
	return s.directRoutes[normalizeCode(airline)][pairKey(normalizeCode(a), normalizeCode(b))]
}

func (s *Static) RegionHubs(region string) []string {
	return s.regionHubs[region]
}

func (s *Static) BridgeRegions(a, b string) []string {
	return s.bridges[pairKey(a, b)]
}

func (s *Static) GlobalHubs() []string {
	return s.globalHubs
}

func (s *Static) CityDuration(fromCity, toCity string) (int, bool) {
	m, ok := s.cityDurations[normalizeCity(fromCity)+"|"+normalizeCity(toCity)]
	return m, ok
}

func (s *Static) knownCodes(codes []string) ([]string, error) {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = normalizeCode(c)
		if _, ok := s.airports[c]; !ok {
			return nil, fmt.Errorf("unknown airport %s", c)
		}
		out = append(out, c)
	}
	return out, nil
}

// pairKey is order-independent.
func pairKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0] + "|" + pair[1]
}

func splitRoute(r string) (string, string, error) {
	parts := strings.Split(r, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("route %q must look like AAA-BBB", r)
	}
	return normalizeCode(parts[0]), normalizeCode(parts[1]), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
