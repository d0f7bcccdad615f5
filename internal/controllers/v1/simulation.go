package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/envelope-zero/payoff/internal/cache"
	"github.com/envelope-zero/payoff/internal/httputil"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/envelope-zero/payoff/internal/plan"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	simulationCache    cache.Cache = cache.Nop{}
	simulationCacheTTL             = time.Hour
)

// UseCache sets the cache for the results of the simulation endpoints.
func UseCache(c cache.Cache, ttl time.Duration) {
	simulationCache = c
	simulationCacheTTL = ttl
}

// SimulationCount counts the simulations that have been calculated. Results
// served from the cache are not counted.
var SimulationCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payoff_simulations_total",
		Help: "How many simulations have been calculated, partitioned by strategy and result.",
	},
	[]string{"strategy", "result"},
)

func countSimulation(outputs payoff.Outputs) {
	result := "paid_off"
	if !outputs.PaidOff {
		result = "month_cap"
	}

	SimulationCount.WithLabelValues(string(outputs.Strategy), result).Inc()
}

// cached returns the result for the key from the cache. If it is not cached,
// it is calculated and stored.
//
// The cache is optional, errors are logged and the result is calculated.
func cached[T any](c *gin.Context, prefix string, key any, calculate func() T) T {
	k, err := cache.Key(prefix, key)
	if err != nil {
		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("Simulation cache")
		return calculate()
	}

	b, ok, err := simulationCache.Get(c.Request.Context(), k)
	if err != nil {
		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("Simulation cache")
	}

	var result T
	if ok && json.Unmarshal(b, &result) == nil {
		return result
	}

	result = calculate()

	b, err = json.Marshal(result)
	if err == nil {
		err = simulationCache.Set(c.Request.Context(), k, b, simulationCacheTTL)
	}

	if err != nil {
		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("Simulation cache")
	}

	return result
}

// warning returns the message of the error, nil if there is none.
func warning(err error) *string {
	if err == nil {
		return nil
	}

	s := err.Error()
	return &s
}

// RegisterSimulationRoutes registers the routes for the simulations with
// the RouterGroup that is passed.
func RegisterSimulationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSimulations)
	r.POST("", CreateSimulation)
}

// RegisterComparisonRoutes registers the routes for the strategy comparisons
// with the RouterGroup that is passed.
func RegisterComparisonRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsComparisons)
	r.POST("", CreateComparison)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Simulations
// @Success		204
// @Router			/v1/simulations [options]
func OptionsSimulations(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Simulate
// @Description	Simulates paying off the debts with a strategy. Nothing is stored. Debts that cannot take part in a plan are ignored.
// @Tags			Simulations
// @Accept			json
// @Produce		json
// @Success		200			{object}	SimulationResponse
// @Failure		400			{object}	SimulationResponse
// @Param			simulation	body		SimulationRequest	true	"Simulation"
// @Router			/v1/simulations [post]
func CreateSimulation(c *gin.Context) {
	var request SimulationRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{Error: &s})
		return
	}

	choice, err := payoff.ParseChoice(string(request.Strategy))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{Error: &s})
		return
	}

	debts := payoff.Viable(request.Debts)
	if len(debts) == 0 {
		s := plan.ErrNoViableDebts.Error()
		c.JSON(http.StatusBadRequest, SimulationResponse{Error: &s})
		return
	}

	key := SimulationRequest{
		Debts:               debts,
		Strategy:            payoff.Choice(choice.Resolve()),
		ExtraMonthlyPayment: request.ExtraMonthlyPayment,
	}

	outputs := cached(c, "simulation", key, func() payoff.Outputs {
		outputs := payoff.Simulate(debts, choice.Resolve(), request.ExtraMonthlyPayment)
		countSimulation(outputs)

		return outputs
	})

	c.JSON(http.StatusOK, SimulationResponse{
		Data:    &outputs,
		Warning: warning(outputs.Err()),
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Simulations
// @Success		204
// @Router			/v1/comparisons [options]
func OptionsComparisons(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Compare strategies
// @Description	Simulates the debts with both strategies and compares the results. Nothing is stored.
// @Tags			Simulations
// @Accept			json
// @Produce		json
// @Success		200			{object}	ComparisonResponse
// @Failure		400			{object}	ComparisonResponse
// @Param			comparison	body		ComparisonRequest	true	"Comparison"
// @Router			/v1/comparisons [post]
func CreateComparison(c *gin.Context) {
	var request ComparisonRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComparisonResponse{Error: &s})
		return
	}

	debts := payoff.Viable(request.Debts)
	if len(debts) == 0 {
		s := plan.ErrNoViableDebts.Error()
		c.JSON(http.StatusBadRequest, ComparisonResponse{Error: &s})
		return
	}

	key := ComparisonRequest{
		Debts:               debts,
		ExtraMonthlyPayment: request.ExtraMonthlyPayment,
	}

	comparison := cached(c, "comparison", key, func() payoff.Comparison {
		comparison := payoff.Compare(debts, request.ExtraMonthlyPayment)

		countSimulation(comparison.Avalanche)
		countSimulation(comparison.Snowball)

		return comparison
	})

	var w *string
	if !comparison.BothPaidOff {
		w = warning(payoff.ErrMonthCapReached)
	}

	c.JSON(http.StatusOK, ComparisonResponse{
		Data:    &comparison,
		Warning: w,
	})
}
