package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/mergen/ai"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/ingestion"
	"github.com/poiesic/mergen/location"
	"github.com/poiesic/mergen/storage"
)

const (
	// MaxTopK bounds the number of hotels a single request can return.
	MaxTopK = 3

	// DefaultScanLimit bounds full-index scans and diversity exploration.
	DefaultScanLimit = 1000

	// overFetch is the nearest-neighbor over-fetch factor that leaves room
	// for post-filtering.
	overFetch = 3

	// minDistinctCities is the number of cities diversity broadening looks for.
	minDistinctCities = 3

	verbatimBoost = 0.3
)

// Stage names the step that produced a Result.
type Stage string

const (
	StageSemantic  Stage = "semantic"
	StageFullScan  Stage = "full_scan"
	StageDiversity Stage = "diversity"
	StageNone      Stage = "none"
)

// NoAccommodationMessage is reported when nothing matched the request.
const NoAccommodationMessage = "Belirtilen kriterlere uygun konaklama bulunamadı"

// CityNotFoundMessage returns the message reported when a named city has no hotels.
func CityNotFoundMessage(city string) string {
	return city + " için uygun otel bulunamadı"
}

// Result is the outcome of a hotel search. Message is set when Hotels is empty.
type Result struct {
	Hotels  []*core.Hotel
	Stage   Stage
	Message string
}

// Matcher finds hotels for a request.
type Matcher struct {
	index     storage.HotelIndex
	embedder  ai.Embedder
	scanLimit int
	logger    *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithScanLimit bounds full-index scans and diversity exploration.
// Default is DefaultScanLimit.
func WithScanLimit(limit int) Option {
	return func(m *Matcher) error {
		if limit < 1 {
			return fmt.Errorf("scan limit must be greater than 0, got %d", limit)
		}
		m.scanLimit = limit
		return nil
	}
}

// NewMatcher creates a new matcher.
func NewMatcher(index storage.HotelIndex, embedder ai.Embedder, opts ...Option) (*Matcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	m := &Matcher{
		index:     index,
		embedder:  embedder,
		scanLimit: DefaultScanLimit,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.logger = m.logger.With("component", "matcher")
	return m, nil
}

// ClampTopK caps topK at MaxTopK.
func ClampTopK(topK int) int {
	return min(topK, MaxTopK)
}

// FindHotels returns up to topK hotels for query. An empty city or
// core.UnknownCity means no city was named.
func (m *Matcher) FindHotels(ctx context.Context, query, city string, topK int) (*Result, error) {
	return m.FindHotelsWithMonitor(ctx, query, city, topK, nil)
}

// FindHotelsWithMonitor is FindHotels with stage callbacks.
func (m *Matcher) FindHotelsWithMonitor(ctx context.Context, query, city string, topK int, monitor MatchMonitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	topK = ClampTopK(topK)
	if !hasCity(city) {
		city = ""
	}
	monitor.Start(query, city, topK)

	embedding, err := m.embedder.EmbedText(ctx, query)
	if err != nil {
		m.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	embedding = ingestion.NormalizeVector(embedding)

	var result *Result
	if city != "" {
		result, err = m.findInCity(ctx, query, city, embedding, topK, monitor)
	} else {
		result, err = m.findDiverse(ctx, query, embedding, topK, monitor)
	}
	if err != nil {
		return nil, err
	}

	m.logger.Debug("hotel search finished", "query", query, "city", city, "stage", result.Stage, "hotels", len(result.Hotels))
	monitor.Finish(result)
	return result, nil
}

// findInCity applies the city filter to the nearest neighbors, then to a
// full scan. A named city is never replaced by another one.
func (m *Matcher) findInCity(ctx context.Context, query, city string, embedding []float32, topK int, monitor MatchMonitor) (*Result, error) {
	candidates, err := m.rankedCandidates(ctx, query, embedding, topK*overFetch)
	if err != nil {
		return nil, err
	}
	monitor.AfterSemanticSearch(candidates)

	hotels := make([]*core.Hotel, 0, topK)
	for _, c := range candidates {
		if inCity(c.Hotel, city) {
			hotels = append(hotels, c.Hotel)
			if len(hotels) == topK {
				break
			}
		}
	}
	monitor.AfterCityFilter(hotels)
	if len(hotels) > 0 {
		return &Result{Hotels: hotels, Stage: StageSemantic}, nil
	}

	all, err := m.index.GetAll(ctx, m.scanLimit)
	if err != nil {
		m.logger.Error("error scanning hotel index", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	for _, h := range all {
		if inCity(h, city) {
			hotels = append(hotels, h)
			if len(hotels) == topK {
				break
			}
		}
	}
	monitor.AfterFullScan(len(all), hotels)
	if len(hotels) > 0 {
		return &Result{Hotels: hotels, Stage: StageFullScan}, nil
	}

	m.logger.Info("no hotel in requested city", "city", city, "scanned", len(all))
	return &Result{Hotels: []*core.Hotel{}, Stage: StageNone, Message: CityNotFoundMessage(city)}, nil
}

// findDiverse widens the nearest-neighbor query until the candidates span
// minDistinctCities cities or the exploration bound is reached, then picks
// topK hotels round-robin across cities.
func (m *Matcher) findDiverse(ctx context.Context, query string, embedding []float32, topK int, monitor MatchMonitor) (*Result, error) {
	total, err := m.index.Count(ctx)
	if err != nil {
		m.logger.Error("error counting hotel index", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	if total == 0 {
		return &Result{Hotels: []*core.Hotel{}, Stage: StageNone, Message: NoAccommodationMessage}, nil
	}

	bound := min(m.scanLimit, total)
	fetch := min(topK*overFetch, bound)

	var groups [][]*core.Hotel
	for round := 0; ; round++ {
		candidates, err := m.rankedCandidates(ctx, query, embedding, fetch)
		if err != nil {
			return nil, err
		}
		if round == 0 {
			monitor.AfterSemanticSearch(candidates)
		}

		groups = groupByCity(candidates)
		monitor.DiversityRound(len(candidates), len(groups))
		if len(groups) >= minDistinctCities || fetch >= bound {
			break
		}
		fetch = min(fetch*2, bound)
	}

	hotels := roundRobin(groups, topK)
	if len(hotels) == 0 {
		return &Result{Hotels: []*core.Hotel{}, Stage: StageNone, Message: NoAccommodationMessage}, nil
	}
	return &Result{Hotels: hotels, Stage: StageDiversity}, nil
}

// rankedCandidates queries the index and re-ranks the hits, boosting hotels
// whose document contains every significant query word.
func (m *Matcher) rankedCandidates(ctx context.Context, query string, embedding []float32, limit int) ([]*core.SearchResult, error) {
	matches, err := m.index.Query(ctx, embedding, limit)
	if err != nil {
		m.logger.Error("error querying for similar hotels", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		if match == nil || match.Hotel == nil {
			continue
		}
		score := match.Score
		if containsAllQueryWords(match.Hotel.Document(), query) {
			score += verbatimBoost
		}
		results = append(results, &core.SearchResult{Hotel: match.Hotel, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

func hasCity(city string) bool {
	n := location.Normalize(city)
	return n != "" && n != core.UnknownCity
}

// inCity reports whether a hotel lies in city. The target may name the
// hotel's province, district or area.
func inCity(h *core.Hotel, city string) bool {
	return location.CityMatches(city, h.City) ||
		location.CityMatches(city, h.District) ||
		location.CityMatches(city, h.Area)
}

// groupByCity buckets ranked candidates by normalized city, keeping rank
// order inside each bucket and ordering buckets by their best hotel.
func groupByCity(candidates []*core.SearchResult) [][]*core.Hotel {
	index := make(map[string]int)
	var groups [][]*core.Hotel
	for _, c := range candidates {
		key := location.Normalize(c.Hotel.City)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c.Hotel)
	}
	return groups
}

func roundRobin(groups [][]*core.Hotel, topK int) []*core.Hotel {
	hotels := make([]*core.Hotel, 0, topK)
	for round := 0; len(hotels) < topK; round++ {
		added := false
		for _, g := range groups {
			if round < len(g) {
				hotels = append(hotels, g[round])
				added = true
				if len(hotels) == topK {
					return hotels
				}
			}
		}
		if !added {
			break
		}
	}
	return hotels
}
