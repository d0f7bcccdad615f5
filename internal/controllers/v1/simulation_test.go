package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/envelope-zero/payoff/internal/cache"
	v1 "github.com/envelope-zero/payoff/internal/controllers/v1"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/envelope-zero/payoff/test"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var simulationDebts = []payoff.Debt{
	{Name: "Credit card", Balance: 1000, APR: 18, MinPayment: 100, PaymentDayOfMonth: 1},
	{Name: "Car", Balance: 3000, APR: 5, MinPayment: 150, PaymentDayOfMonth: 15},
}

func (suite *TestSuiteStandard) TestSimulationsCreate() {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
		expectedError  string
		check          func(t *testing.T, r v1.SimulationResponse)
	}{
		{
			"Avalanche",
			v1.SimulationRequest{Debts: simulationDebts, Strategy: "avalanche", ExtraMonthlyPayment: 100},
			http.StatusOK,
			"",
			func(t *testing.T, r v1.SimulationResponse) {
				assert.Nil(t, r.Warning)
				assert.True(t, r.Data.PaidOff)
				assert.Equal(t, payoff.Avalanche, r.Data.Strategy)
				assert.Equal(t, float64(350), r.Data.MonthlyPayment)
				assert.Len(t, r.Data.Roadmap, r.Data.TotalMonths)
			},
		},
		{
			"Recommended resolves to avalanche",
			v1.SimulationRequest{Debts: simulationDebts, Strategy: "recommended"},
			http.StatusOK,
			"",
			func(t *testing.T, r v1.SimulationResponse) {
				assert.Equal(t, payoff.Avalanche, r.Data.Strategy)
			},
		},
		{
			"Non-viable debts are ignored",
			v1.SimulationRequest{Debts: append([]payoff.Debt{{Name: "Paid", MinPayment: 10}}, simulationDebts...), Strategy: "snowball"},
			http.StatusOK,
			"",
			func(t *testing.T, r v1.SimulationResponse) {
				assert.Len(t, r.Data.OriginalDebts, 2)
				assert.Equal(t, payoff.Snowball, r.Data.Strategy)
			},
		},
		{
			"Month cap",
			v1.SimulationRequest{Debts: []payoff.Debt{{Name: "Loan shark", Balance: 10000, APR: 24, MinPayment: 100, PaymentDayOfMonth: 1}}, Strategy: "avalanche"},
			http.StatusOK,
			"",
			func(t *testing.T, r v1.SimulationResponse) {
				require.NotNil(t, r.Warning)
				assert.Equal(t, payoff.ErrMonthCapReached.Error(), *r.Warning)
				assert.False(t, r.Data.PaidOff)
				assert.Equal(t, payoff.MaxMonths, r.Data.TotalMonths)
			},
		},
		{
			"Invalid strategy",
			v1.SimulationRequest{Debts: simulationDebts, Strategy: "lottery"},
			http.StatusBadRequest,
			payoff.ErrInvalidStrategy.Error(),
			nil,
		},
		{
			"No viable debts",
			v1.SimulationRequest{Debts: []payoff.Debt{{Name: "Empty"}}, Strategy: "avalanche"},
			http.StatusBadRequest,
			"at least one debt needs a name, a balance, an APR of 0 or more and a minimum payment",
			nil,
		},
		{
			"Negative extra payment",
			v1.SimulationRequest{Debts: simulationDebts, Strategy: "avalanche", ExtraMonthlyPayment: -10},
			http.StatusBadRequest,
			"",
			nil,
		},
		{"Empty body", "", http.StatusBadRequest, "", nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/simulations", tt.body)
			test.AssertHTTPStatus(t, &r, tt.expectedStatus)

			var response v1.SimulationResponse
			test.DecodeResponse(t, &r, &response)

			if tt.expectedStatus != http.StatusOK {
				require.NotNil(t, response.Error)
				if tt.expectedError != "" {
					assert.Contains(t, *response.Error, tt.expectedError)
				}
				return
			}

			assert.Nil(t, response.Error)
			tt.check(t, response)
		})
	}
}

func (suite *TestSuiteStandard) TestSimulationsCount() {
	counter := v1.SimulationCount.WithLabelValues(string(payoff.Snowball), "paid_off")
	before := testutil.ToFloat64(counter)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/simulations", v1.SimulationRequest{
		Debts:    simulationDebts,
		Strategy: "snowball",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), before+1, testutil.ToFloat64(counter))
}

// TestSimulationsCache verifies that cached results are served without
// simulating again.
func (suite *TestSuiteStandard) TestSimulationsCache() {
	mr := miniredis.RunT(suite.T())

	redis := cache.NewRedis(mr.Addr())
	v1.UseCache(redis, time.Hour)
	defer func() {
		v1.UseCache(cache.Nop{}, time.Hour)
		redis.Close()
	}()

	counter := v1.SimulationCount.WithLabelValues(string(payoff.Avalanche), "paid_off")
	before := testutil.ToFloat64(counter)

	body := v1.SimulationRequest{Debts: simulationDebts, Strategy: "avalanche", ExtraMonthlyPayment: 75}

	var responses [2]v1.SimulationResponse
	for i := range responses {
		r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/simulations", body)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
		test.DecodeResponse(suite.T(), &r, &responses[i])
	}

	assert.Equal(suite.T(), before+1, testutil.ToFloat64(counter), "The second simulation must be served from the cache")
	assert.Equal(suite.T(), responses[0].Data, responses[1].Data)
	assert.Len(suite.T(), mr.Keys(), 1)

	// "recommended" resolves to the same simulation
	body.Strategy = "recommended"
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/simulations", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.Equal(suite.T(), before+1, testutil.ToFloat64(counter))
}

// TestSimulationsCacheUnavailable verifies that simulations work when the
// cache cannot be reached.
func (suite *TestSuiteStandard) TestSimulationsCacheUnavailable() {
	mr := miniredis.RunT(suite.T())
	redis := cache.NewRedis(mr.Addr())
	mr.Close()

	v1.UseCache(redis, time.Hour)
	defer func() {
		v1.UseCache(cache.Nop{}, time.Hour)
		redis.Close()
	}()

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/comparisons", v1.ComparisonRequest{Debts: simulationDebts})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestComparisonsCreate() {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
		check          func(t *testing.T, r v1.ComparisonResponse)
	}{
		{
			"Both strategies",
			v1.ComparisonRequest{Debts: simulationDebts, ExtraMonthlyPayment: 100},
			http.StatusOK,
			func(t *testing.T, r v1.ComparisonResponse) {
				assert.Nil(t, r.Warning)
				assert.True(t, r.Data.BothPaidOff)
				assert.Equal(t, payoff.Avalanche, r.Data.Avalanche.Strategy)
				assert.Equal(t, payoff.Snowball, r.Data.Snowball.Strategy)
				assert.Equal(t, payoff.Avalanche, r.Data.Cheaper)
				assert.GreaterOrEqual(t, r.Data.InterestDiff, float64(0))
			},
		},
		{
			"Month cap",
			v1.ComparisonRequest{Debts: []payoff.Debt{{Name: "Loan shark", Balance: 10000, APR: 24, MinPayment: 100, PaymentDayOfMonth: 1}}},
			http.StatusOK,
			func(t *testing.T, r v1.ComparisonResponse) {
				require.NotNil(t, r.Warning)
				assert.False(t, r.Data.BothPaidOff)
			},
		},
		{"No viable debts", v1.ComparisonRequest{}, http.StatusBadRequest, nil},
		{"Negative extra payment", v1.ComparisonRequest{Debts: simulationDebts, ExtraMonthlyPayment: -1}, http.StatusBadRequest, nil},
		{"Broken body", `{ "debts": 5 }`, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/comparisons", tt.body)
			test.AssertHTTPStatus(t, &r, tt.expectedStatus)

			var response v1.ComparisonResponse
			test.DecodeResponse(t, &r, &response)

			if tt.check == nil {
				assert.NotNil(t, response.Error)
				return
			}

			tt.check(t, response)
		})
	}
}
