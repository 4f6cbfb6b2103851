package selection

import (
	"context"
	"net/url"
	"testing"

	"github.com/quantfolio/folio-portal/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEffective_NoQueryReturnsStoreState(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), nil)
	s.Initialize(ctx, url.Values{ParamAssets: {"stocks"}, ParamPortfolios: {"1,2"}})

	assets, portfolios := s.Effective(nil)
	assert.Equal(t, []models.AssetType{models.AssetStocks}, assets)
	assert.Equal(t, []int{1, 2}, portfolios)
}

func TestEffective_QueryOverridesWithoutMutating(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), nil)
	s.Initialize(ctx, url.Values{ParamPortfolios: {"1,2"}})

	assets, portfolios := s.Effective(url.Values{
		ParamAssets:     {"metals"},
		ParamPortfolios: {"9"},
	})

	assert.Equal(t, []models.AssetType{models.AssetMetals}, assets)
	assert.Equal(t, []int{9}, portfolios)

	// Store state untouched.
	assert.True(t, s.IsAllAssetsSelected())
	assert.Equal(t, []int{1, 2}, s.Portfolios())
}

func TestEffective_InvalidAssetsParamFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), nil)
	s.Initialize(ctx, url.Values{ParamAssets: {"stocks"}})

	assets, _ := s.Effective(url.Values{ParamAssets: {"crypto"}})
	assert.Equal(t, []models.AssetType{models.AssetStocks}, assets)
}

func TestEncodeQuery_OmitsAssetsWhenAllSelected(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), nil)
	s.Initialize(ctx, nil)
	s.SetPortfolios(ctx, []int{2, 1})

	encoded, changed := s.EncodeQuery(url.Values{})

	assert.True(t, changed)
	assert.False(t, encoded.Has(ParamAssets), "assets param omitted when full domain selected")
	assert.Equal(t, "1,2", encoded.Get(ParamPortfolios))
}

func TestEncodeQuery_OmitsPortfoliosWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), nil)
	s.Initialize(ctx, url.Values{ParamAssets: {"stocks"}})

	encoded, changed := s.EncodeQuery(url.Values{ParamPortfolios: {"1"}})

	assert.True(t, changed)
	assert.Equal(t, "stocks", encoded.Get(ParamAssets))
	assert.False(t, encoded.Has(ParamPortfolios))
}

func TestEncodeQuery_UnchangedWhenAlreadyCurrent(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), nil)
	s.Initialize(ctx, url.Values{ParamAssets: {"stocks"}, ParamPortfolios: {"3,5"}})

	_, changed := s.EncodeQuery(url.Values{
		ParamAssets:     {"stocks"},
		ParamPortfolios: {"3,5"},
	})

	assert.False(t, changed, "matching serialized value must not trigger a URL write")
}

func TestEncodeQuery_PreservesUnrelatedParams(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), nil)
	s.Initialize(ctx, nil)

	encoded, _ := s.EncodeQuery(url.Values{"tab": {"returns"}})
	assert.Equal(t, "returns", encoded.Get("tab"))
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), nil)
	s.Initialize(ctx, url.Values{ParamAssets: {"stocks,metals"}, ParamPortfolios: {"4"}})

	snap := s.Snapshot()
	assert.Equal(t, []models.AssetType{models.AssetStocks, models.AssetMetals}, snap.AssetTypes)
	assert.Equal(t, []int{4}, snap.Portfolios)
	assert.False(t, snap.IsAllAssetsSelected)
}
