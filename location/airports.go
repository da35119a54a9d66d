package location

import (
	"strings"

	"github.com/poiesic/mergen/core"
)

const (
	// HomeAirport is the origin assumed when the user names none.
	HomeAirport = "IST"
	// DefaultDestinationIATA is used when the destination city is not recognized.
	DefaultDestinationIATA = "ADB"
	// DefaultDestinationCity pairs with DefaultDestinationIATA.
	DefaultDestinationCity = "İzmir"
)

// Place is a destination the planner knows how to fly to.
type Place struct {
	Name string
	IATA string
	// Province is the administrative city containing the place, empty when
	// the place is itself a province.
	Province string
}

var places = []Place{
	{Name: "Antalya", IATA: "AYT"},
	{Name: "Alanya", IATA: "AYT", Province: "Antalya"},
	{Name: "Belek", IATA: "AYT", Province: "Antalya"},
	{Name: "Side", IATA: "AYT", Province: "Antalya"},
	{Name: "Kemer", IATA: "AYT", Province: "Antalya"},
	{Name: "Lara", IATA: "AYT", Province: "Antalya"},
	{Name: "Konyaaltı", IATA: "AYT", Province: "Antalya"},
	{Name: "Kaş", IATA: "AYT", Province: "Antalya"},
	{Name: "Manavgat", IATA: "AYT", Province: "Antalya"},
	{Name: "Finike", IATA: "AYT", Province: "Antalya"},

	{Name: "İzmir", IATA: "ADB"},
	{Name: "Çeşme", IATA: "ADB", Province: "İzmir"},
	{Name: "Alaçatı", IATA: "ADB", Province: "İzmir"},
	{Name: "Seferihisar", IATA: "ADB", Province: "İzmir"},
	{Name: "Foça", IATA: "ADB", Province: "İzmir"},
	{Name: "Urla", IATA: "ADB", Province: "İzmir"},
	{Name: "Dikili", IATA: "ADB", Province: "İzmir"},

	{Name: "Aydın", IATA: "ADB"},
	{Name: "Kuşadası", IATA: "ADB", Province: "Aydın"},
	{Name: "Didim", IATA: "ADB", Province: "Aydın"},

	{Name: "Muğla", IATA: "BJV"},
	{Name: "Bodrum", IATA: "BJV", Province: "Muğla"},
	{Name: "Gümbet", IATA: "BJV", Province: "Muğla"},
	{Name: "Bitez", IATA: "BJV", Province: "Muğla"},
	{Name: "Turgutreis", IATA: "BJV", Province: "Muğla"},
	{Name: "Yalıkavak", IATA: "BJV", Province: "Muğla"},
	{Name: "Güvercinlik", IATA: "BJV", Province: "Muğla"},
	{Name: "Dalaman", IATA: "DLM", Province: "Muğla"},
	{Name: "Marmaris", IATA: "DLM", Province: "Muğla"},
	{Name: "Fethiye", IATA: "DLM", Province: "Muğla"},
	{Name: "Ölüdeniz", IATA: "DLM", Province: "Muğla"},
	{Name: "Dalyan", IATA: "DLM", Province: "Muğla"},
	{Name: "Göcek", IATA: "DLM", Province: "Muğla"},
	{Name: "Datça", IATA: "DLM", Province: "Muğla"},

	{Name: "Balıkesir", IATA: "EDO"},
	{Name: "Ayvalık", IATA: "EDO", Province: "Balıkesir"},
	{Name: "Akçay", IATA: "EDO", Province: "Balıkesir"},
	{Name: "Altınoluk", IATA: "EDO", Province: "Balıkesir"},

	{Name: "İstanbul", IATA: "IST"},
	{Name: "Ankara", IATA: "ESB"},
	{Name: "Gaziantep", IATA: "GZT"},
	{Name: "Kayseri", IATA: "ASR"},
	{Name: "Van", IATA: "VAN"},
	{Name: "Rize", IATA: "RZV"},
	{Name: "Trabzon", IATA: "TZX"},
	{Name: "Nevşehir", IATA: "NAV"},
}

var (
	airportByPlace = make(map[string]string, len(places))
	// regions maps a normalized province to the normalized names of the
	// resort sub-regions it contains.
	regions = make(map[string][]string)

	knownAirports = make(map[string]struct{})
)

func init() {
	for _, p := range places {
		key := Normalize(p.Name)
		airportByPlace[key] = p.IATA
		knownAirports[p.IATA] = struct{}{}
		if p.Province != "" {
			prov := Normalize(p.Province)
			regions[prov] = append(regions[prov], key)
		}
	}
}

// Places returns the known destinations in catalog order.
func Places() []Place {
	out := make([]Place, len(places))
	copy(out, places)
	return out
}

// AirportFor returns the airport serving the named place.
func AirportFor(name string) (string, bool) {
	code, ok := airportByPlace[Normalize(name)]
	return code, ok
}

// ResolveAirport returns the airport that serves a hotel, trying its area,
// then district, then city. fallback is returned when none is known.
func ResolveAirport(hotel *core.Hotel, fallback string) string {
	if hotel == nil {
		return fallback
	}
	for _, name := range []string{hotel.Area, hotel.District, hotel.City} {
		if code, ok := AirportFor(name); ok {
			return code
		}
	}
	return fallback
}

// InRegion reports whether name is one of the resort sub-regions of city.
func InRegion(city, name string) bool {
	subs, ok := regions[Normalize(city)]
	if !ok {
		return false
	}
	for _, sub := range subs {
		if Matches(sub, name) {
			return true
		}
	}
	return false
}

var centerMarkers = []string{"merkez", "center", "genel", "sehir"}

// IsCityCenter reports whether a destination name denotes a generic city
// center route rather than a specific area.
func IsCityCenter(name string) bool {
	n := Normalize(name)
	for _, m := range centerMarkers {
		if strings.Contains(n, m) {
			return true
		}
	}
	return false
}

// IsKnownAirport reports whether code is served by at least one known place.
func IsKnownAirport(code string) bool {
	_, ok := knownAirports[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
