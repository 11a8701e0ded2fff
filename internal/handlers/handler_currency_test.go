package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/handlers"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetRates(ctx context.Context) domain.RateTable {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateTable)
}

func (m *MockCurrencyService) RatesFor(ctx context.Context, base string, targets []string) (map[string]float64, error) {
	args := m.Called(ctx, base, targets)
	var rates map[string]float64
	if args.Get(0) != nil {
		rates = args.Get(0).(map[string]float64)
	}
	return rates, args.Error(1)
}

func (m *MockCurrencyService) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCurrencyService) GetExchangeRate(ctx context.Context, from, to string) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCurrencyService) Format(amount float64, currencyCode, locale string) string {
	args := m.Called(amount, currencyCode, locale)
	return args.String(0)
}

func (m *MockCurrencyService) IsValidCurrency(code string) bool {
	args := m.Called(code)
	return args.Bool(0)
}

func (m *MockCurrencyService) GetCurrencyByCode(code string) (*domain.Currency, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyOptions() []dto.CurrencyOption {
	args := m.Called()
	var options []dto.CurrencyOption
	if args.Get(0) != nil {
		options = args.Get(0).([]dto.CurrencyOption)
	}
	return options
}

// Ensure mock implements the interface
var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Test Suite ---
type CurrencyHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCurrencySvc *MockCurrencyService
}

func (suite *CurrencyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockCurrencySvc = new(MockCurrencyService)

	// The rate feed is public, no auth middleware.
	handlers.RegisterPublicCurrencyRoutes(suite.router, suite.mockCurrencySvc)
}

func (suite *CurrencyHandlerTestSuite) getRates(query string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(http.MethodGet, "/api/v1/rates"+query, nil)
	suite.Require().NoError(err)
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)
	return rr
}

func (suite *CurrencyHandlerTestSuite) TestGetRates_DefaultsToUSD() {
	suite.mockCurrencySvc.On("RatesFor", mock.Anything, "USD", []string(nil)).
		Return(map[string]float64{"USD": 1, "EUR": 0.85}, nil).Once()

	rr := suite.getRates("")

	suite.Equal(http.StatusOK, rr.Code)
	var resp dto.RatesResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("USD", resp.Base)
	suite.Equal(0.85, resp.Rates["EUR"])
	suite.NotZero(resp.Timestamp)
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestGetRates_NormalizesBaseAndTargets() {
	suite.mockCurrencySvc.On("RatesFor", mock.Anything, "EUR", []string{"USD", "GBP"}).
		Return(map[string]float64{"USD": 1.18, "GBP": 0.86}, nil).Once()

	rr := suite.getRates("?base=eur&currencies=usd,%20gbp")

	suite.Equal(http.StatusOK, rr.Code)
	var resp dto.RatesResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("EUR", resp.Base)
	suite.Len(resp.Rates, 2)
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestGetRates_UnknownBase() {
	suite.mockCurrencySvc.On("RatesFor", mock.Anything, "XYZ", []string(nil)).
		Return(nil, fmt.Errorf("%w: unsupported currency code 'XYZ'", apperrors.ErrValidation)).Once()

	rr := suite.getRates("?base=XYZ")

	suite.Equal(http.StatusBadRequest, rr.Code)
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func TestCurrencyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyHandlerTestSuite))
}
