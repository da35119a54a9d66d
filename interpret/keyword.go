package interpret

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/location"
)

// Keyword tables hold normalized stems. A stem matches any token that
// starts with it, so Turkish case suffixes ("ucaga", "transferli") still
// match.
var (
	luxuryStems     = []string{"luks", "lux", "vip", "premium", "ultra", "butik"}
	economicalStems = []string{"ekonomik", "ucuz", "uygun", "butce", "hesapli", "indirim"}
	flightStems     = []string{"ucak", "ucus", "flight", "bilet", "havayol", "sefer"}
	transferStems   = []string{"transfer", "shuttle", "arac", "servis", "karsilama", "taksi"}

	timeStems = []struct {
		stem string
		pref core.TimePreference
	}{
		{"sabah", core.TimeMorning},
		{"ogle", core.TimeAfternoon},
		{"aksam", core.TimeEvening},
		{"gece", core.TimeNight},
	}

	// preferenceTerms are normalized phrases and the label reported for them.
	preferenceTerms = []struct {
		phrase string
		label  string
	}{
		{"denize sifir", "denize sıfır"},
		{"deniz manzara", "deniz manzarası"},
		{"her sey dahil", "her şey dahil"},
		{"aquapark", "aquapark"},
		{"havuz", "havuz"},
		{"spa", "spa"},
		{"animasyon", "animasyon"},
		{"sessiz", "sessiz"},
		{"cocuk", "çocuk dostu"},
		{"balayi", "balayı"},
		{"plaj", "plaj"},
		{"merkez", "merkezi konum"},
	}

	// hotelPhrases are two-word hotel terms whose words would otherwise
	// trigger a service or time stem: "oda servisi", "sabah kahvaltısı".
	hotelPhrases = [][2]string{
		{"oda", "servis"},
		{"sabah", "kahvalti"},
		{"ogle", "yemeg"},
		{"aksam", "yemeg"},
		{"gece", "kulub"},
		{"arac", "park"},
	}

	// ablative suffixes marking the departure point: "Ankara'dan".
	fromSuffixes = []string{"dan", "den", "tan", "ten"}
)

// minPrefixMatch is the shortest place name allowed to match a longer
// token by prefix; shorter names ("Van", "Kaş") must match a whole token.
const minPrefixMatch = 4

// KeywordInterpreter is a deterministic Interpreter driven by keyword tables.
type KeywordInterpreter struct {
	homeAirport string
	logger      *slog.Logger
}

var _ Interpreter = (*KeywordInterpreter)(nil)

// KeywordOption configures a KeywordInterpreter.
type KeywordOption func(*KeywordInterpreter) error

// WithKeywordHomeAirport sets the origin used when the request names none.
// Default is location.HomeAirport.
func WithKeywordHomeAirport(code string) KeywordOption {
	return func(k *KeywordInterpreter) error {
		code = strings.ToUpper(strings.TrimSpace(code))
		if !core.IsValidIATA(code) {
			return ErrInvalidAirport
		}
		k.homeAirport = code
		return nil
	}
}

// WithKeywordLogger sets a custom logger.
// Default is slog.Default().
func WithKeywordLogger(logger *slog.Logger) KeywordOption {
	return func(k *KeywordInterpreter) error {
		if logger == nil {
			logger = slog.Default()
		}
		k.logger = logger
		return nil
	}
}

// NewKeywordInterpreter creates a keyword interpreter.
func NewKeywordInterpreter(opts ...KeywordOption) (*KeywordInterpreter, error) {
	k := &KeywordInterpreter{
		homeAirport: location.HomeAirport,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(k); err != nil {
			return nil, err
		}
	}
	k.logger = k.logger.With("component", "keyword-interpreter")
	return k, nil
}

// Interpret implements Interpreter.
func (k *KeywordInterpreter) Interpret(_ context.Context, query string) core.TravelIntent {
	tokens := tokenize(query)

	intent := core.TravelIntent{
		DestinationCity: location.DefaultDestinationCity,
		DestinationIATA: location.DefaultDestinationIATA,
		OriginIATA:      k.homeAirport,
		Style:           detectStyle(tokens),
		TimePreference:  detectTime(tokens),
		WantsHotel:      true,
		Preferences:     detectPreferences(tokens),
	}

	origin, destination := detectPlaces(tokens)
	if origin != nil {
		intent.OriginIATA = origin.IATA
	}
	if destination != nil {
		intent.DestinationCity = destination.Name
		intent.DestinationIATA = destination.IATA
		intent.ExplicitCity = true
	}

	intent.WantsFlight = hasStem(tokens, flightStems)
	intent.WantsTransfer = hasStem(tokens, transferStems)
	if !intent.WantsFlight && !intent.WantsTransfer {
		intent.WantsFlight, intent.WantsTransfer = true, true
	}

	k.logger.Debug("interpreted query", "city", intent.DestinationCity, "explicit", intent.ExplicitCity,
		"style", intent.Style, "time", intent.TimePreference)
	return intent
}

// tokenize normalizes text and splits it on anything that is not a letter
// or digit. Apostrophes therefore separate suffixes: "antalya'da" becomes
// "antalya", "da".
func tokenize(text string) []string {
	return strings.FieldsFunc(location.Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hasStem(tokens, stems []string) bool {
	for i, tok := range tokens {
		if inHotelPhrase(tokens, i) {
			continue
		}
		for _, stem := range stems {
			if strings.HasPrefix(tok, stem) {
				return true
			}
		}
	}
	return false
}

// inHotelPhrase reports whether tokens[i] is one word of a hotel phrase.
func inHotelPhrase(tokens []string, i int) bool {
	for _, p := range hotelPhrases {
		if i > 0 && strings.HasPrefix(tokens[i-1], p[0]) && strings.HasPrefix(tokens[i], p[1]) {
			return true
		}
		if i+1 < len(tokens) && strings.HasPrefix(tokens[i], p[0]) && strings.HasPrefix(tokens[i+1], p[1]) {
			return true
		}
	}
	return false
}

func detectStyle(tokens []string) core.TravelStyle {
	switch {
	case hasStem(tokens, luxuryStems):
		return core.StyleLuxury
	case hasStem(tokens, economicalStems):
		return core.StyleEconomical
	default:
		return core.StyleFamily
	}
}

func detectTime(tokens []string) core.TimePreference {
	for i, tok := range tokens {
		if inHotelPhrase(tokens, i) {
			continue
		}
		for _, ts := range timeStems {
			if !strings.HasPrefix(tok, ts.stem) {
				continue
			}
			// "3 gece" is a length of stay, not a departure time.
			if ts.pref == core.TimeNight && i > 0 && isNumber(tokens[i-1]) {
				continue
			}
			return ts.pref
		}
	}
	return core.TimeAny
}

func detectPreferences(tokens []string) []string {
	text := " " + strings.Join(tokens, " ")
	var prefs []string
	for _, term := range preferenceTerms {
		if strings.Contains(text, " "+term.phrase) {
			prefs = append(prefs, term.label)
		}
	}
	return dedupePreferences(prefs)
}

// detectPlaces finds the first place marked as a departure point and the
// first other place, which becomes the destination.
func detectPlaces(tokens []string) (origin, destination *location.Place) {
	places := location.Places()
	for i := range tokens {
		place, width, ok := placeAt(places, tokens, i)
		if !ok {
			continue
		}
		if origin == nil && isDeparture(tokens, i, width, place) {
			origin = place
			continue
		}
		if destination == nil {
			destination = place
		}
		if origin != nil && destination != nil {
			break
		}
	}
	return origin, destination
}

// placeAt reports the longest place name starting at tokens[i].
func placeAt(places []location.Place, tokens []string, i int) (*location.Place, int, bool) {
	var (
		best      *location.Place
		bestWidth int
		bestLen   int
	)
	for p := range places {
		name := tokenize(places[p].Name)
		if len(name) == 0 || i+len(name) > len(tokens) {
			continue
		}
		if !matchName(name, tokens[i:i+len(name)]) {
			continue
		}
		if n := len(strings.Join(name, " ")); n > bestLen {
			best, bestWidth, bestLen = &places[p], len(name), n
		}
	}
	return best, bestWidth, best != nil
}

func matchName(name, window []string) bool {
	last := len(name) - 1
	for j, part := range name {
		if j < last {
			if window[j] != part {
				return false
			}
			continue
		}
		if window[j] == part {
			continue
		}
		if len(part) < minPrefixMatch || !strings.HasPrefix(window[j], part) {
			return false
		}
	}
	return true
}

func isDeparture(tokens []string, i, width int, place *location.Place) bool {
	last := tokens[i+width-1]
	name := tokenize(place.Name)
	suffix := strings.TrimPrefix(last, name[len(name)-1])
	if suffix == "" && i+width < len(tokens) {
		suffix = tokens[i+width]
	}
	for _, s := range fromSuffixes {
		if suffix == s {
			return true
		}
	}
	return false
}

func isNumber(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return tok != ""
}
