package mergen

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mergen/ai/mock"
	"github.com/poiesic/mergen/cache"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/search"
	"github.com/poiesic/mergen/storage/badger"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.SetDataDir("testdata")
	return cfg
}

func newTestCore(t *testing.T, provider *mock.MockProvider, opts ...Option) *TravelCore {
	t.Helper()
	index, err := badger.NewMemoryIndex()
	require.NoError(t, err)

	if provider == nil {
		provider = mock.NewMockProvider().(*mock.MockProvider)
	}
	opts = append([]Option{WithIndex(index), WithProvider(provider)}, opts...)
	tc, err := New(context.Background(), testConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { tc.Close() })
	return tc
}

func TestNew(t *testing.T) {
	t.Run("loads catalogs and builds the index", func(t *testing.T) {
		provider := mock.NewMockProvider().(*mock.MockProvider)
		tc := newTestCore(t, provider)

		assert.Len(t, tc.Catalogs().Hotels, 4)
		assert.Len(t, tc.Catalogs().Flights, 5)
		assert.Len(t, tc.Catalogs().Transfers, 4)

		count, err := tc.index.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, count)
		assert.Positive(t, provider.GetMockEmbedder().CallCount())
	})

	t.Run("unknown interpreter", func(t *testing.T) {
		cfg := testConfig()
		cfg.Interpreter = "oracle"
		_, err := New(context.Background(), cfg, WithProvider(mock.NewMockProvider()))
		assert.ErrorIs(t, err, ErrUnknownInterpreter)
	})

	t.Run("missing catalog files give empty catalogs", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SetDataDir(t.TempDir())
		index, err := badger.NewMemoryIndex()
		require.NoError(t, err)

		tc, err := New(context.Background(), cfg, WithIndex(index), WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		defer tc.Close()

		plan, err := tc.PlanTravel(context.Background(), "deniz kenarı otel", 3)
		require.NoError(t, err)
		assert.Empty(t, plan.Packages)
		assert.Equal(t, search.NoAccommodationMessage, plan.Message)
	})

	t.Run("index build failure", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}
		provider := mock.NewMockProviderWithServices(embedder, mock.NewMockCompleter())
		index, err := badger.NewMemoryIndex()
		require.NoError(t, err)

		_, err = New(context.Background(), testConfig(), WithIndex(index), WithProvider(provider))
		assert.Error(t, err)
	})
}

func TestPlanTravel_Scenarios(t *testing.T) {
	tc := newTestCore(t, nil)
	ctx := context.Background()

	t.Run("family trip to a named city", func(t *testing.T) {
		plan, err := tc.PlanTravel(ctx, "Antalya'da ailemle, deniz manzaralı otel", 3)
		require.NoError(t, err)
		require.NotEmpty(t, plan.Packages)
		assert.LessOrEqual(t, len(plan.Packages), 3)
		assert.Empty(t, plan.Message)
		assert.Equal(t, core.StyleFamily, plan.Intent.Style)

		for _, pkg := range plan.Packages {
			assert.Equal(t, "Antalya", pkg.Hotel.City)
			assert.Equal(t, "AYT", pkg.Airport)
			require.NotNil(t, pkg.Flight, pkg.Hotel.Name)
			require.NotNil(t, pkg.Transfer, pkg.Hotel.Name)
			assert.Equal(t, "PC2020-0701", pkg.Flight.ID)
			assert.InDelta(t, pkg.Breakdown.Hotel+pkg.Breakdown.Flight+pkg.Breakdown.Transfer, pkg.Breakdown.Total, 1e-9)
			assert.NotEmpty(t, pkg.Summary)
			assert.NotEmpty(t, pkg.ID)
		}
	})

	t.Run("city without hotels", func(t *testing.T) {
		plan, err := tc.PlanTravel(ctx, "Trabzon'da otel arıyorum", 3)
		require.NoError(t, err)
		assert.Empty(t, plan.Packages)
		assert.Equal(t, "Trabzon için uygun otel bulunamadı", plan.Message)
	})

	t.Run("hotel without district or area", func(t *testing.T) {
		plan, err := tc.PlanTravel(ctx, "İzmir'de otel", 3)
		require.NoError(t, err)
		require.Len(t, plan.Packages, 1)

		pkg := plan.Packages[0]
		assert.Equal(t, "Konak Otel", pkg.Hotel.Name)
		assert.Equal(t, "İzmir", pkg.Hotel.District)
		assert.Equal(t, "İzmir", pkg.Hotel.Area)
		assert.Equal(t, "ADB", pkg.Airport)
		require.NotNil(t, pkg.Transfer)
		assert.Equal(t, "ADB-IZMIR-STD", pkg.Transfer.Route.ServiceCode)
		assert.Equal(t, core.TierCity, pkg.Transfer.Tier)
		require.NotNil(t, pkg.Flight)
		assert.Equal(t, "ADB", pkg.Flight.Destination)
	})
}

func TestPlanTravel_Selection(t *testing.T) {
	tc := newTestCore(t, nil)
	ctx := context.Background()

	t.Run("area route beats city route", func(t *testing.T) {
		plan, err := tc.PlanTravel(ctx, "Lara Palace Antalya", 3)
		require.NoError(t, err)
		for _, pkg := range plan.Packages {
			if pkg.Hotel.Name != "Lara Palace" {
				continue
			}
			require.NotNil(t, pkg.Transfer)
			assert.Equal(t, core.TierArea, pkg.Transfer.Tier)
			assert.Equal(t, "AYT-LARA-VIP", pkg.Transfer.Route.ServiceCode)
			return
		}
		t.Fatal("Lara Palace not planned")
	})

	t.Run("luxury style takes the premium cabin", func(t *testing.T) {
		plan, err := tc.PlanTravel(ctx, "Antalya lüks otel", 1)
		require.NoError(t, err)
		require.Len(t, plan.Packages, 1)
		require.NotNil(t, plan.Packages[0].Flight)
		assert.Equal(t, "BUSINESS", plan.Packages[0].Flight.Cabin)
	})

	t.Run("flight only request", func(t *testing.T) {
		plan, err := tc.PlanTravel(ctx, "Bodrum uçak bileti ve otel", 3)
		require.NoError(t, err)
		require.NotEmpty(t, plan.Packages)
		for _, pkg := range plan.Packages {
			assert.NotNil(t, pkg.Flight)
			assert.Nil(t, pkg.Transfer)
			assert.Zero(t, pkg.Breakdown.Transfer)
		}
	})

	t.Run("resolved airport drives the flight", func(t *testing.T) {
		plan, err := tc.PlanTravel(ctx, "Bodrum'da otel", 3)
		require.NoError(t, err)
		require.Len(t, plan.Packages, 1)
		pkg := plan.Packages[0]
		assert.Equal(t, "BJV", pkg.Airport)
		require.NotNil(t, pkg.Flight)
		assert.Equal(t, "BJV", pkg.Flight.Destination)
	})
}

func TestPlanTravel_TopKBound(t *testing.T) {
	tc := newTestCore(t, nil)

	for _, topK := range []int{1, 2, 3, 10} {
		plan, err := tc.PlanTravel(context.Background(), "deniz manzaralı havuzlu otel", topK)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(plan.Packages), min(topK, 3), "topK %d", topK)
		assert.NotEmpty(t, plan.Packages, "topK %d", topK)
	}

	for _, topK := range []int{0, -1} {
		plan, err := tc.PlanTravel(context.Background(), "deniz manzaralı havuzlu otel", topK)
		assert.ErrorIs(t, err, ErrInvalidTopK, "topK %d", topK)
		assert.Nil(t, plan)
	}
}

func TestPlanTravel_Errors(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		tc := newTestCore(t, nil)
		_, err := tc.PlanTravel(context.Background(), "   ", 3)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("embedding failure aborts the request", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		tc := newTestCore(t, mock.NewMockProviderWithServices(embedder, mock.NewMockCompleter()).(*mock.MockProvider))
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("timeout")
		}

		_, err := tc.PlanTravel(context.Background(), "Antalya otel", 3)
		assert.ErrorIs(t, err, search.ErrSearchFailed)
	})

	t.Run("summary failure falls back to template", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(ctx context.Context, prompt string, jsonMode bool) (string, error) {
			return "", errors.New("rate limited")
		}
		tc := newTestCore(t, mock.NewMockProviderWithServices(mock.NewMockEmbedder(), completer).(*mock.MockProvider))

		plan, err := tc.PlanTravel(context.Background(), "Antalya otel", 3)
		require.NoError(t, err)
		require.NotEmpty(t, plan.Packages)
		for _, pkg := range plan.Packages {
			assert.Contains(t, pkg.Summary, "Kriterlerinizle tam uyumlu")
		}
	})

	t.Run("closed core", func(t *testing.T) {
		tc := newTestCore(t, nil)
		require.NoError(t, tc.Close())
		_, err := tc.PlanTravel(context.Background(), "Antalya otel", 3)
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestPlanTravel_Cache(t *testing.T) {
	srv := miniredis.RunT(t)
	planCache, err := cache.NewRedis(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
	require.NoError(t, err)
	t.Cleanup(func() { planCache.Close() })

	provider := mock.NewMockProvider().(*mock.MockProvider)
	tc := newTestCore(t, provider, WithPlanCache(planCache))
	ctx := context.Background()

	first, err := tc.PlanTravel(ctx, "Antalya'da ailemle otel", 3)
	require.NoError(t, err)
	calls := provider.GetMockEmbedder().CallCount()

	second, err := tc.PlanTravel(ctx, "ANTALYA'DA  ailemle otel", 3)
	require.NoError(t, err)
	assert.Equal(t, calls, provider.GetMockEmbedder().CallCount())
	require.Len(t, second.Packages, len(first.Packages))
	assert.Equal(t, first.Packages[0].ID, second.Packages[0].ID)
	assert.True(t, srv.Exists(cache.Key("Antalya'da ailemle otel", 3)))
}

func TestReindex(t *testing.T) {
	tc := newTestCore(t, nil)
	n, err := tc.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	count, err := tc.index.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNew_WithoutIndexCheck(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	tc := newTestCore(t, provider, WithoutIndexCheck())
	ctx := context.Background()

	assert.Equal(t, 0, provider.GetMockEmbedder().CallCount(), "no embedding before an explicit rebuild")
	n, err := tc.IndexSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	written, err := tc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, written)

	n, err = tc.IndexSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestNew_RepairsDamagedIndex(t *testing.T) {
	ctx := context.Background()
	index, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	require.NoError(t, badger.PutRawRecord(index, 42, []byte{0xff, 0xff, 0xff}))

	tc, err := New(ctx, testConfig(), WithIndex(index), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { tc.Close() })

	n, err := tc.IndexSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	plan, err := tc.PlanTravel(ctx, "Antalya'da ailemle, deniz manzaralı otel", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Packages)
}

func TestConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MERGEN_DATA_DIR", dir)
	t.Setenv("MERGEN_INTERPRETER", "llm")
	t.Setenv("MERGEN_POOL_SIZE", "8")
	t.Setenv("MERGEN_CACHE_TTL", "2m")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hotels.json"), cfg.HotelsPath)
	assert.Equal(t, filepath.Join(dir, "index"), cfg.IndexPath)
	assert.Equal(t, InterpreterLLM, cfg.Interpreter)
	assert.Equal(t, 8, cfg.PoolSize)
	assert.Equal(t, "2m0s", cfg.CacheTTL.String())
	assert.Equal(t, "gsk-test", cfg.AI.APIKey)
	assert.Equal(t, groqHost, cfg.AI.CompletionHost)

	t.Run("invalid pool size", func(t *testing.T) {
		t.Setenv("MERGEN_POOL_SIZE", "many")
		_, err := ConfigFromEnv()
		assert.Error(t, err)
	})

	t.Run("unknown home airport", func(t *testing.T) {
		t.Setenv("MERGEN_HOME_AIRPORT", "JFK")
		_, err := ConfigFromEnv()
		assert.Error(t, err)
	})
}

type fixedInterpreter struct {
	intent core.TravelIntent
}

func (f fixedInterpreter) Interpret(context.Context, string) core.TravelIntent {
	return f.intent
}

func TestPlanTravel_Overrides(t *testing.T) {
	hotels := []*core.Hotel{{
		Id: core.IDFromContent("Kaş Koy|Antalya"), Name: "Kaş Koy", City: "Antalya",
		District: "Kaş", Area: "Kaş", Price: 2800, Description: "Dalış için sakin koy.",
	}}
	catalogs := &Catalogs{Hotels: hotels}

	intent := core.TravelIntent{
		DestinationCity: "Antalya", DestinationIATA: "AYT", OriginIATA: "IST",
		Style: core.StyleEconomical, WantsHotel: true, ExplicitCity: true,
	}
	tc := newTestCore(t, nil, WithCatalogs(catalogs), WithInterpreter(fixedInterpreter{intent: intent}))

	plan, err := tc.PlanTravel(context.Background(), "sakin bir koy", 3)
	require.NoError(t, err)
	require.Len(t, plan.Packages, 1)
	assert.Equal(t, core.StyleEconomical, plan.Intent.Style)
	assert.Nil(t, plan.Packages[0].Flight)
	assert.Nil(t, plan.Packages[0].Transfer)
	assert.Equal(t, 2800.0, plan.Packages[0].Breakdown.Total)
}
