package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
	FetchRatesFn func(ctx context.Context) (map[string]float64, error)
}

func (m *MockRateSource) FetchRates(ctx context.Context) (map[string]float64, error) {
	if m.FetchRatesFn != nil {
		return m.FetchRatesFn(ctx)
	}
	args := m.Called(ctx)
	var rates map[string]float64
	if args.Get(0) != nil {
		rates = args.Get(0).(map[string]float64)
	}
	return rates, args.Error(1)
}

// Ensure mock implements the interface
var _ services.RateSource = (*MockRateSource)(nil)

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockSource *MockRateSource
	service    *services.CurrencyService
	nowTime    time.Time
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.nowTime = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewCurrencyService(
		suite.mockSource,
		services.WithRateTTL(time.Hour),
		services.WithClock(func() time.Time { return suite.nowTime }),
	)
}

func (suite *CurrencyServiceTestSuite) TestGetRates_RefreshSuccess() {
	ctx := context.Background()
	// The source reports a non-unit rate for the base currency; the service
	// must pin it back to exactly 1.
	fetched := map[string]float64{"USD": 1.0001, "EUR": 0.9, "GBP": 0.75}
	suite.mockSource.On("FetchRates", ctx).Return(fetched, nil).Once()

	table := suite.service.GetRates(ctx)

	suite.Equal(float64(1), table.Rates["USD"])
	suite.Equal(0.9, table.Rates["EUR"])
	suite.Equal(suite.nowTime, table.FetchedAt)
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetRates_SourceFailureServesSeedRates() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("upstream timeout")).Once()

	table := suite.service.GetRates(ctx)

	suite.Equal(domain.SeedRates(), table.Rates)
	suite.True(table.FetchedAt.IsZero())
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetRates_CachedWithinTTL() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(map[string]float64{"EUR": 0.9}, nil).Once()

	first := suite.service.GetRates(ctx)
	suite.nowTime = suite.nowTime.Add(30 * time.Minute)
	second := suite.service.GetRates(ctx)

	suite.Equal(first.FetchedAt, second.FetchedAt)
	suite.mockSource.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *CurrencyServiceTestSuite) TestGetRates_RefreshesPastTTL() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(map[string]float64{"EUR": 0.9}, nil).Once()
	first := suite.service.GetRates(ctx)

	suite.nowTime = suite.nowTime.Add(2 * time.Hour)
	suite.mockSource.On("FetchRates", ctx).Return(map[string]float64{"EUR": 0.95}, nil).Once()
	second := suite.service.GetRates(ctx)

	suite.NotEqual(first.FetchedAt, second.FetchedAt)
	suite.Equal(0.95, second.Rates["EUR"])
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetRates_FailedRefreshKeepsPreviousTable() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(map[string]float64{"EUR": 0.9}, nil).Once()
	first := suite.service.GetRates(ctx)

	suite.nowTime = suite.nowTime.Add(2 * time.Hour)
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("upstream down")).Once()
	second := suite.service.GetRates(ctx)

	suite.Equal(first.Rates, second.Rates)
	suite.Equal(first.FetchedAt, second.FetchedAt)
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestConvert_Identity() {
	ctx := context.Background()
	// No refresh must happen for the identity path.
	converted, err := suite.service.Convert(ctx, 123.45, "USD", "USD")

	suite.Require().NoError(err)
	suite.Equal(123.45, converted)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchRates", ctx)
}

func (suite *CurrencyServiceTestSuite) TestConvert_ThroughBase() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("offline")).Once()

	// Seed rates: EUR 0.85, GBP 0.73.
	converted, err := suite.service.Convert(ctx, 100, "EUR", "GBP")

	suite.Require().NoError(err)
	suite.InDelta(100/0.85*0.73, converted, 1e-9)
}

func (suite *CurrencyServiceTestSuite) TestConvert_FromBase() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("offline")).Once()

	converted, err := suite.service.Convert(ctx, 100, "USD", "EUR")

	suite.Require().NoError(err)
	suite.InDelta(85.0, converted, 1e-9)
}

func (suite *CurrencyServiceTestSuite) TestConvert_RoundTrip() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("offline")).Twice()

	there, err := suite.service.Convert(ctx, 100, "USD", "EUR")
	suite.Require().NoError(err)
	suite.InDelta(85.0, there, 1e-9)

	back, err := suite.service.Convert(ctx, there, "EUR", "USD")
	suite.Require().NoError(err)
	suite.InDelta(100.0, back, 1e-9)
}

func (suite *CurrencyServiceTestSuite) TestConvert_UnknownCode() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("offline")).Twice()

	_, err := suite.service.Convert(ctx, 100, "XYZ", "EUR")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Convert(ctx, 100, "EUR", "XYZ")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRate_IdenticalCodes() {
	ctx := context.Background()
	rate, err := suite.service.GetExchangeRate(ctx, "INR", "INR")

	suite.Require().NoError(err)
	suite.Equal(float64(1), rate)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchRates", ctx)
}

func (suite *CurrencyServiceTestSuite) TestGetExchangeRate_CrossRate() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("offline")).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "EUR", "JPY")

	suite.Require().NoError(err)
	suite.InDelta((1/0.85)*110.0, rate, 1e-9)
}

func (suite *CurrencyServiceTestSuite) TestRatesFor_Rebased() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("offline")).Once()

	rates, err := suite.service.RatesFor(ctx, "EUR", []string{"USD", "GBP", "XYZ"})

	suite.Require().NoError(err)
	suite.Len(rates, 2) // Unknown target codes are silently skipped
	suite.InDelta(1/0.85, rates["USD"], 1e-9)
	suite.InDelta(0.73/0.85, rates["GBP"], 1e-9)
}

func (suite *CurrencyServiceTestSuite) TestRatesFor_AllTargets() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("offline")).Once()

	rates, err := suite.service.RatesFor(ctx, "USD", nil)

	suite.Require().NoError(err)
	suite.Len(rates, len(domain.SeedRates()))
	suite.Equal(float64(1), rates["USD"])
}

func (suite *CurrencyServiceTestSuite) TestRatesFor_UnknownBase() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("offline")).Once()

	_, err := suite.service.RatesFor(ctx, "XYZ", nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestFormat_UnknownCodeFallback() {
	formatted := suite.service.Format(12.5, "XYZ", "en-US")
	suite.Equal("XYZ 12.50", formatted)
}

func (suite *CurrencyServiceTestSuite) TestFormat_BadLocaleFallsBackToSymbol() {
	formatted := suite.service.Format(10, "USD", "!!")
	suite.Equal("$10.00", formatted)
}

func (suite *CurrencyServiceTestSuite) TestIsValidCurrency() {
	suite.True(suite.service.IsValidCurrency("USD"))
	suite.True(suite.service.IsValidCurrency("PKR"))
	suite.False(suite.service.IsValidCurrency("usd"))
	suite.False(suite.service.IsValidCurrency("XYZ"))
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode() {
	info, err := suite.service.GetCurrencyByCode("EUR")
	suite.Require().NoError(err)
	suite.Equal("€", info.Symbol)

	_, err = suite.service.GetCurrencyByCode("XYZ")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyOptions_DeclarationOrder() {
	options := suite.service.GetCurrencyOptions()

	suite.Require().Len(options, len(domain.SupportedCurrencies))
	suite.Equal("USD", options[0].Value)
	suite.Equal("USD - US Dollar", options[0].Label)
	suite.Equal("EUR", options[1].Value)
	suite.Equal("PKR", options[len(options)-1].Value)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
