package interpret

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/mergen/ai"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/location"
)

const intentPrompt = `Kullanıcı Sorgusu: %q

GÖREV:
Sorgudan seyahat parametrelerini çıkar ve SADECE şu şemada bir JSON nesnesi döndür:
{
  "intent": {"flight": true, "transfer": false, "hotel": true},
  "destination_city": "İzmir",
  "destination_iata": "ADB",
  "origin_iata": "IST",
  "travel_style": "aile",
  "time_preference": "",
  "preferences": ["denize sıfır", "çocuk havuzu"]
}

Kurallar:
- destination_city Türkçe yazılır; sorguda şehir yoksa boş bırak.
- IATA kodları büyük harfle yazılır. Bilinen kodlar: %s.
- Kalkış yeri belirtilmemişse origin_iata "%s" olur.
- travel_style yalnızca "ekonomik", "lüks" veya "aile" olabilir.
- time_preference yalnızca "sabah", "öğle", "akşam", "gece" veya boş olabilir.
- preferences en fazla 6 kısa ifade içerir.
- Giriş ya da açıklama yazma, sadece JSON döndür.`

// flag is a boolean that also accepts the string and number spellings
// models tend to produce.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*f = flag(t)
	case float64:
		*f = t != 0
	case string:
		switch location.Normalize(t) {
		case "true", "yes", "evet", "1":
			*f = true
		default:
			*f = false
		}
	default:
		*f = false
	}
	return nil
}

type intentReply struct {
	Intent struct {
		Flight   flag `json:"flight"`
		Transfer flag `json:"transfer"`
		Hotel    flag `json:"hotel"`
	} `json:"intent"`
	DestinationCity string          `json:"destination_city"`
	DestinationIATA string          `json:"destination_iata"`
	OriginIATA      string          `json:"origin_iata"`
	TravelStyle     string          `json:"travel_style"`
	TimePreference  string          `json:"time_preference"`
	Preferences     json.RawMessage `json:"preferences"`
}

// LLMInterpreter reads requests through a chat model.
type LLMInterpreter struct {
	completer   ai.Completer
	homeAirport string
	logger      *slog.Logger
}

var _ Interpreter = (*LLMInterpreter)(nil)

// LLMOption configures an LLMInterpreter.
type LLMOption func(*LLMInterpreter) error

// WithLLMHomeAirport sets the origin used when the request names none.
// Default is location.HomeAirport.
func WithLLMHomeAirport(code string) LLMOption {
	return func(l *LLMInterpreter) error {
		code = strings.ToUpper(strings.TrimSpace(code))
		if !core.IsValidIATA(code) {
			return ErrInvalidAirport
		}
		l.homeAirport = code
		return nil
	}
}

// WithLLMLogger sets a custom logger.
// Default is slog.Default().
func WithLLMLogger(logger *slog.Logger) LLMOption {
	return func(l *LLMInterpreter) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLLMInterpreter creates an interpreter backed by completer.
func NewLLMInterpreter(completer ai.Completer, opts ...LLMOption) (*LLMInterpreter, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	l := &LLMInterpreter{
		completer:   completer,
		homeAirport: location.HomeAirport,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.logger = l.logger.With("component", "llm-interpreter")
	return l, nil
}

// Interpret implements Interpreter. Any completion or decoding failure
// yields DefaultIntent.
func (l *LLMInterpreter) Interpret(ctx context.Context, query string) core.TravelIntent {
	prompt := fmt.Sprintf(intentPrompt, query, knownAirportList(), l.homeAirport)

	raw, err := l.completer.Complete(ctx, prompt, true)
	if err != nil {
		l.logger.Warn("intent extraction failed, using default intent", "err", err)
		return DefaultIntent(l.homeAirport)
	}

	var reply intentReply
	if err := json.Unmarshal([]byte(ai.CleanJSON(raw)), &reply); err != nil {
		l.logger.Warn("intent reply is not valid JSON, using default intent", "err", err, "reply", raw)
		return DefaultIntent(l.homeAirport)
	}

	intent := l.validate(&reply)
	l.logger.Debug("interpreted query", "city", intent.DestinationCity, "iata", intent.DestinationIATA,
		"explicit", intent.ExplicitCity, "style", intent.Style)
	return intent
}

// validate converts a decoded reply into an intent, replacing every field
// the model got wrong with its default.
func (l *LLMInterpreter) validate(reply *intentReply) core.TravelIntent {
	intent := DefaultIntent(l.homeAirport)
	intent.WantsFlight = bool(reply.Intent.Flight)
	intent.WantsTransfer = bool(reply.Intent.Transfer)

	if city := strings.TrimSpace(reply.DestinationCity); city != "" && location.Normalize(city) != core.UnknownCity {
		intent.DestinationCity = city
		intent.ExplicitCity = true
		intent.DestinationIATA = resolveDestination(city, reply.DestinationIATA)
	}

	if origin := strings.ToUpper(strings.TrimSpace(reply.OriginIATA)); core.IsValidIATA(origin) {
		intent.OriginIATA = origin
	}

	if style, ok := core.ParseTravelStyle(reply.TravelStyle); ok {
		intent.Style = style
	}
	if pref, ok := core.ParseTimePreference(reply.TimePreference); ok {
		intent.TimePreference = pref
	}

	intent.Preferences = decodePreferences(reply.Preferences)
	return intent
}

// decodePreferences accepts a list of strings or a single comma-separated
// string.
func decodePreferences(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return dedupePreferences(list)
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return dedupePreferences(strings.Split(single, ","))
	}
	return nil
}

func knownAirportList() string {
	seen := make(map[string]bool)
	var parts []string
	for _, p := range location.Places() {
		if seen[p.IATA] {
			continue
		}
		seen[p.IATA] = true
		parts = append(parts, p.IATA+" ("+p.Name+")")
	}
	return strings.Join(parts, ", ")
}
