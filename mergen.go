// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package mergen plans travel packages from free-text requests.
//
// A TravelCore reads a request, finds matching hotels in a semantic hotel
// index, attaches the flight and airport transfer that fit each hotel, and
// writes a short summary of every package.
package mergen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/mergen/ai"
	"github.com/poiesic/mergen/ai/openai"
	"github.com/poiesic/mergen/assembly"
	"github.com/poiesic/mergen/cache"
	"github.com/poiesic/mergen/catalog"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/ingestion"
	"github.com/poiesic/mergen/interpret"
	"github.com/poiesic/mergen/location"
	"github.com/poiesic/mergen/observability"
	"github.com/poiesic/mergen/search"
	"github.com/poiesic/mergen/selection"
	"github.com/poiesic/mergen/storage"
	"github.com/poiesic/mergen/storage/badger"
)

// Catalogs are the static datasets a TravelCore plans from.
type Catalogs struct {
	Hotels    []*core.Hotel
	Flights   []*core.Flight
	Transfers []*core.TransferRoute
}

// TravelCore owns the loaded catalogs, the hotel index and the planning
// components. It is safe for concurrent use.
type TravelCore struct {
	catalogs    *Catalogs
	index       storage.HotelIndex
	provider    ai.AIProvider
	interpreter interpret.Interpreter
	indexer     *ingestion.Indexer
	matcher     *search.Matcher
	flights     *selection.FlightSelector
	transfers   *selection.TransferSelector
	assembler   *assembly.Assembler
	pool        *ants.Pool
	loader      *cache.Loader
	closers     []func() error
	closed      atomic.Bool
	logger      *slog.Logger
}

// Option configures a TravelCore.
type Option func(*options) error

type options struct {
	provider    ai.AIProvider
	index       storage.HotelIndex
	catalogs    *Catalogs
	interpreter interpret.Interpreter
	planCache   cache.PlanCache
	progress    bool
	skipEnsure  bool
	logger      *slog.Logger
}

// WithProvider sets the embedding and completion services.
// Default is an OpenAI-compatible provider built from Config.AI.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) error {
		o.provider = provider
		return nil
	}
}

// WithIndex sets the hotel index. Default is the badger index at
// Config.IndexPath. The TravelCore takes ownership and closes it.
func WithIndex(index storage.HotelIndex) Option {
	return func(o *options) error {
		o.index = index
		return nil
	}
}

// WithCatalogs supplies already loaded catalogs instead of reading the
// catalog files named in Config.
func WithCatalogs(c *Catalogs) Option {
	return func(o *options) error {
		o.catalogs = c
		return nil
	}
}

// WithInterpreter overrides the interpreter chosen by Config.Interpreter.
func WithInterpreter(i interpret.Interpreter) Option {
	return func(o *options) error {
		o.interpreter = i
		return nil
	}
}

// WithPlanCache sets the plan cache. Default is a Redis cache when
// Config.RedisAddr is set, otherwise none.
func WithPlanCache(c cache.PlanCache) Option {
	return func(o *options) error {
		o.planCache = c
		return nil
	}
}

// WithIndexProgress prints progress to stderr while the index is built.
func WithIndexProgress() Option {
	return func(o *options) error {
		o.progress = true
		return nil
	}
}

// WithoutIndexCheck skips the startup check that rebuilds an empty or
// damaged index. Callers that rebuild right away with Reindex use it.
func WithoutIndexCheck() Option {
	return func(o *options) error {
		o.skipEnsure = true
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// New loads the catalogs, opens the hotel index and builds every planning
// component. An empty index is rebuilt from the hotel catalog before New
// returns.
func New(ctx context.Context, cfg *Config, opts ...Option) (*TravelCore, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tc := &TravelCore{logger: o.logger.With("component", "travel-core")}
	ok := false
	defer func() {
		if !ok {
			tc.Close()
		}
	}()

	catalogs := o.catalogs
	if catalogs == nil {
		var err error
		if catalogs, err = loadCatalogs(cfg, o.logger); err != nil {
			return nil, err
		}
	}
	tc.catalogs = catalogs

	tc.index = o.index
	if tc.index == nil {
		index, err := badger.OpenHotelIndex(cfg.IndexPath)
		if err != nil {
			return nil, fmt.Errorf("open hotel index: %w", err)
		}
		tc.index = index
	}
	tc.closers = append(tc.closers, tc.index.Close)

	tc.provider = o.provider
	if tc.provider == nil {
		provider, err := openai.NewProvider(cfg.AI)
		if err != nil {
			return nil, err
		}
		tc.provider = provider
	}
	tc.closers = append(tc.closers, tc.provider.Close)

	embedder := observability.InstrumentEmbedder(tc.provider.Embedder())
	completer := observability.InstrumentCompleter(tc.provider.Completer())

	var err error
	tc.interpreter = o.interpreter
	if tc.interpreter == nil {
		if tc.interpreter, err = newInterpreter(cfg, completer, o.logger); err != nil {
			return nil, err
		}
	}

	indexerOpts := []ingestion.Option{ingestion.WithLogger(o.logger)}
	if o.progress {
		indexerOpts = append(indexerOpts, ingestion.WithProgress(os.Stderr))
	}
	if tc.indexer, err = ingestion.NewIndexer(tc.index, embedder, indexerOpts...); err != nil {
		return nil, err
	}
	if tc.matcher, err = search.NewMatcher(tc.index, embedder, search.WithLogger(o.logger)); err != nil {
		return nil, err
	}
	if tc.assembler, err = assembly.NewAssembler(assembly.WithCompleter(completer), assembly.WithLogger(o.logger)); err != nil {
		return nil, err
	}
	tc.flights = selection.NewFlightSelector(catalogs.Flights, selection.WithFlightLogger(o.logger))
	tc.transfers = selection.NewTransferSelector(catalogs.Transfers, selection.WithTransferLogger(o.logger))

	if tc.pool, err = ants.NewPool(cfg.PoolSize); err != nil {
		return nil, err
	}

	planCache := o.planCache
	if planCache == nil && cfg.RedisAddr != "" {
		redisCache, err := cache.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			cache.WithTTL(cfg.CacheTTL), cache.WithLogger(o.logger))
		if err != nil {
			return nil, err
		}
		tc.closers = append(tc.closers, redisCache.Close)
		planCache = redisCache
	}
	tc.loader = cache.NewLoader(planCache, o.logger)

	if !o.skipEnsure {
		rebuilt, err := tc.indexer.EnsureIndex(ctx, catalogs.Hotels)
		if err != nil {
			return nil, fmt.Errorf("prepare hotel index: %w", err)
		}
		if rebuilt {
			tc.logger.Info("hotel index rebuilt", "hotels", len(catalogs.Hotels))
		}
	}

	ok = true
	return tc, nil
}

func newInterpreter(cfg *Config, completer ai.Completer, logger *slog.Logger) (interpret.Interpreter, error) {
	switch cfg.Interpreter {
	case InterpreterKeyword:
		return interpret.NewKeywordInterpreter(
			interpret.WithKeywordHomeAirport(cfg.HomeAirport),
			interpret.WithKeywordLogger(logger),
		)
	case InterpreterLLM:
		return interpret.NewLLMInterpreter(completer,
			interpret.WithLLMHomeAirport(cfg.HomeAirport),
			interpret.WithLLMLogger(logger),
		)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInterpreter, cfg.Interpreter)
}

func loadCatalogs(cfg *Config, logger *slog.Logger) (*Catalogs, error) {
	hotels, _, err := catalog.LoadHotels(cfg.HotelsPath, catalog.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	flights, _, err := catalog.LoadFlights(cfg.FlightsPath, catalog.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	transfers, _, err := catalog.LoadTransfers(cfg.TransfersPath, catalog.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Catalogs{Hotels: hotels, Flights: flights, Transfers: transfers}, nil
}

// Close releases the worker pools, the hotel index, the plan cache and the
// AI provider.
func (tc *TravelCore) Close() error {
	if tc.closed.Swap(true) {
		return nil
	}
	if tc.pool != nil {
		tc.pool.Release()
	}
	if tc.indexer != nil {
		tc.indexer.Release()
	}
	var firstErr error
	for i := len(tc.closers) - 1; i >= 0; i-- {
		if err := tc.closers[i](); err != nil {
			tc.logger.Error("error closing travel core resource", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Catalogs returns the loaded catalogs.
func (tc *TravelCore) Catalogs() *Catalogs {
	return tc.catalogs
}

// IndexSize returns the number of hotels in the index.
func (tc *TravelCore) IndexSize(ctx context.Context) (int, error) {
	if tc.closed.Load() {
		return 0, ErrClosed
	}
	return tc.index.Count(ctx)
}

// Reindex drops the hotel index and embeds the hotel catalog again.
func (tc *TravelCore) Reindex(ctx context.Context) (int, error) {
	if tc.closed.Load() {
		return 0, ErrClosed
	}
	return tc.indexer.Rebuild(ctx, tc.catalogs.Hotels)
}

// PlanTravel answers a free-text travel request with up to topK packages.
// topK is capped at 3 and a topK below 1 returns ErrInvalidTopK. A request
// no hotel matches returns a Plan with no packages and a Message; an error
// is returned only for invalid input or when the hotel search itself fails.
func (tc *TravelCore) PlanTravel(ctx context.Context, query string, topK int) (*core.Plan, error) {
	if tc.closed.Load() {
		return nil, ErrClosed
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	topK = search.ClampTopK(topK)

	start := time.Now()
	plan, hit, err := tc.loader.GetOrLoad(ctx, cache.Key(query, topK), func(ctx context.Context) (*core.Plan, error) {
		return tc.plan(ctx, query, topK)
	})
	observability.ObserveStage("total", time.Since(start))
	switch {
	case err != nil:
		observability.ObservePlan(observability.OutcomeError)
		return nil, err
	case hit:
		observability.ObservePlan(observability.OutcomeCached)
	case len(plan.Packages) == 0:
		observability.ObservePlan(observability.OutcomeEmpty)
	default:
		observability.ObservePlan(observability.OutcomeOK)
	}
	return plan, nil
}

func (tc *TravelCore) plan(ctx context.Context, query string, topK int) (*core.Plan, error) {
	stage := time.Now()
	intent := tc.interpreter.Interpret(ctx, query)
	observability.ObserveStage("interpret", time.Since(stage))

	city := ""
	if intent.ExplicitCity {
		city = intent.DestinationCity
	}

	stage = time.Now()
	result, err := tc.matcher.FindHotels(ctx, query, city, topK)
	observability.ObserveStage("match", time.Since(stage))
	if err != nil {
		return nil, err
	}

	plan := &core.Plan{Query: query, Intent: intent, Packages: []*core.Package{}}
	if len(result.Hotels) == 0 {
		plan.Message = result.Message
		if plan.Message == "" {
			plan.Message = search.NoAccommodationMessage
		}
		return plan, nil
	}

	stage = time.Now()
	plan.Packages = tc.assemble(intent, result.Hotels)
	observability.ObserveStage("select", time.Since(stage))

	stage = time.Now()
	tc.assembler.Summarize(ctx, query, plan.Packages)
	observability.ObserveStage("summarize", time.Since(stage))

	tc.logger.Info("travel plan ready", "query", query, "city", city, "stage", result.Stage, "packages", len(plan.Packages))
	return plan, nil
}

// assemble selects the flight and transfer of every hotel on the worker
// pool. Packages keep the order of hotels.
func (tc *TravelCore) assemble(intent core.TravelIntent, hotels []*core.Hotel) []*core.Package {
	packages := make([]*core.Package, len(hotels))
	var wg sync.WaitGroup
	for i, h := range hotels {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			packages[i] = tc.selectFor(intent, h)
		}
		if err := tc.pool.Submit(task); err != nil {
			tc.logger.Warn("selection pool rejected task, running inline", "hotel", h.Name, "err", err)
			task()
		}
	}
	wg.Wait()
	return packages
}

func (tc *TravelCore) selectFor(intent core.TravelIntent, hotel *core.Hotel) *core.Package {
	airport := location.ResolveAirport(hotel, intent.DestinationIATA)

	var flight *core.Flight
	if intent.WantsFlight {
		flight = tc.flights.Select(intent.OriginIATA, airport, intent.Style, intent.TimePreference)
	}

	var transfer *core.Transfer
	if intent.WantsTransfer {
		transfer = tc.transfers.Select(airport, hotel, intent.Style)
		tier := ""
		if transfer != nil {
			tier = string(transfer.Tier)
		}
		observability.ObserveTransfer(tier)
	}

	return tc.assembler.Assemble(hotel, flight, transfer, airport)
}
