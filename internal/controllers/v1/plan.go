package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/envelope-zero/payoff/internal/httputil"
	"github.com/envelope-zero/payoff/internal/ledger"
	"github.com/envelope-zero/payoff/internal/models"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/envelope-zero/payoff/internal/plan"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterPlanRoutes registers the routes for the plan of a budget with
// the RouterGroup that is passed.
func RegisterPlanRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsPlan)
		r.GET("", GetPlan)
		r.POST("", CreatePlan)
		r.DELETE("", DeletePlan)
	}

	{
		r.OPTIONS("/check-ins", OptionsPlanCheckIns)
		r.POST("/check-ins", CreatePlanCheckIn)
	}

	{
		r.OPTIONS("/scenario", OptionsPlanScenario)
		r.GET("/scenario", GetPlanScenario)
		r.POST("/scenario", ImplementPlanScenario)
	}

	{
		r.OPTIONS("/automation", OptionsPlanAutomation)
		r.POST("/automation", CreatePlanAutomation)
		r.DELETE("/automation", DeletePlanAutomation)
	}
}

// getPlan returns the plan of the budget with the ID from the URI.
func getPlan(c *gin.Context, db *gorm.DB) (models.Plan, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Plan{}, err
	}

	err = db.First(&models.Budget{}, uri.ID).Error
	if err != nil {
		return models.Plan{}, err
	}

	var p models.Plan
	err = db.Where(&models.Plan{BudgetID: uri.ID.UUID}).First(&p).Error
	if err != nil {
		return models.Plan{}, err
	}

	return p, nil
}

// changePlan applies a change to the stored plan.
//
// The change and the storage of the plan happen in one database transaction
// together with all changes to the ledger. If the version is set and does not
// match the stored plan, the change is refused.
func changePlan(c *gin.Context, version *int, change func(plan.Ledger, *plan.Machine) error) (models.Plan, error) {
	var p models.Plan

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		p, err = getPlan(c, tx)
		if err != nil {
			return err
		}

		if version != nil && *version != p.Version {
			return models.ErrPlanVersionConflict
		}

		m := plan.NewMachine(p.DebtPlan())
		err = change(ledger.New(tx, p.BudgetID), m)
		if err != nil {
			return err
		}

		p.Update(m.Plan())
		return p.SaveVersioned(tx)
	})

	return p, models.ServerError(err)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plans
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/plan [options]
func OptionsPlan(c *gin.Context) {
	httputil.OptionsGetPostDelete(c)
}

// @Summary		Get plan
// @Description	Returns the payoff plan of the budget together with the progress
// @Tags			Plans
// @Produce		json
// @Success		200	{object}	PlanResponse
// @Failure		400	{object}	PlanResponse
// @Failure		404	{object}	PlanResponse
// @Failure		500	{object}	PlanResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/plan [get]
func GetPlan(c *gin.Context) {
	p, err := getPlan(c, models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	data := newPlan(c, p, time.Now())
	c.JSON(http.StatusOK, PlanResponse{Data: &data, Warning: warning(data.Err())})
}

// @Summary		Create plan
// @Description	Calculates a payoff plan for the debts of the budget and stores it. Debts that cannot take part in a plan are ignored.
// @Tags			Plans
// @Accept			json
// @Produce		json
// @Success		201		{object}	PlanResponse
// @Failure		400		{object}	PlanResponse
// @Failure		404		{object}	PlanResponse
// @Failure		409		{object}	PlanResponse
// @Failure		500		{object}	PlanResponse
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			plan	body		PlanCreate	true	"Plan"
// @Router			/v1/budgets/{id}/plan [post]
func CreatePlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	var data PlanCreate
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	var count int64
	err = models.DB.Model(&models.Plan{}).Where(&models.Plan{BudgetID: budget.ID}).Count(&count).Error
	if err == nil && count > 0 {
		err = models.ErrPlanExists
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	debts, err := budget.Debts(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	input := make([]payoff.Debt, 0, len(debts))
	for _, debt := range debts {
		input = append(input, debt.ToPayoff())
	}

	m := plan.NewMachine(nil)
	err = m.SetDebts(input)
	if err == nil {
		err = m.Proceed()
	}
	if err == nil {
		err = m.Choose(data.Strategy)
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	// Reaching the month cap still creates the plan
	debtPlan, capErr := m.Calculate(data.ExtraMonthlyPayment)
	if capErr != nil && !errors.Is(capErr, payoff.ErrMonthCapReached) {
		s := capErr.Error()
		c.JSON(status(capErr), PlanResponse{Error: &s})
		return
	}

	p := models.NewPlan(budget.ID, debtPlan)
	err = models.DB.Create(&p).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	apiResource := newPlan(c, p, time.Now())
	c.JSON(http.StatusCreated, PlanResponse{Data: &apiResource, Warning: warning(capErr)})
}

// @Summary		Reset plan
// @Description	Deletes the plan of the budget. An automated payment is cancelled first, if it cannot be cancelled, the plan is kept.
// @Tags			Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/plan [delete]
func DeletePlan(c *gin.Context) {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		p, err := getPlan(c, tx)
		if err != nil {
			return err
		}

		m := plan.NewMachine(p.DebtPlan())
		if m.Plan().Automated() {
			err = m.CancelAutomation(c.Request.Context(), ledger.New(tx, p.BudgetID))
			if err != nil {
				return err
			}
		}

		err = m.Reset()
		if err != nil {
			return err
		}

		return tx.Delete(&p).Error
	})
	err = models.ServerError(err)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plans
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/plan/check-ins [options]
func OptionsPlanCheckIns(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Check in month
// @Description	Confirms that the payment for a month of the roadmap has been made. Checking in a month twice has no effect.
// @Tags			Plans
// @Accept			json
// @Produce		json
// @Success		200		{object}	PlanResponse
// @Failure		400		{object}	PlanResponse
// @Failure		404		{object}	PlanResponse
// @Failure		409		{object}	PlanResponse
// @Failure		500		{object}	PlanResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			checkIn	body		CheckInCreate	true	"Check-in"
// @Router			/v1/budgets/{id}/plan/check-ins [post]
func CreatePlanCheckIn(c *gin.Context) {
	var data CheckInCreate
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	p, err := changePlan(c, data.Version, func(_ plan.Ledger, m *plan.Machine) error {
		return m.CheckIn(data.Month)
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	apiResource := newPlan(c, p, time.Now())
	c.JSON(http.StatusOK, PlanResponse{Data: &apiResource, Warning: warning(apiResource.Err())})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plans
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/plan/scenario [options]
func OptionsPlanScenario(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Preview scenario
// @Description	Simulates the plan's debts and strategy with another extra monthly payment. The plan is not changed.
// @Tags			Plans
// @Produce		json
// @Success		200					{object}	ScenarioResponse
// @Failure		400					{object}	ScenarioResponse
// @Failure		404					{object}	ScenarioResponse
// @Failure		500					{object}	ScenarioResponse
// @Param			id					path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			extraMonthlyPayment	query		number	true	"The extra monthly payment to preview"
// @Router			/v1/budgets/{id}/plan/scenario [get]
func GetPlanScenario(c *gin.Context) {
	var query ScenarioQuery
	err := httputil.BindQuery(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScenarioResponse{Error: &s})
		return
	}

	p, err := getPlan(c, models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScenarioResponse{Error: &s})
		return
	}

	scenario, err := plan.NewMachine(p.DebtPlan()).Preview(*query.ExtraMonthlyPayment)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScenarioResponse{Error: &s})
		return
	}
	countSimulation(scenario.Candidate)

	c.JSON(http.StatusOK, ScenarioResponse{Data: &scenario, Warning: warning(scenario.Candidate.Err())})
}

// @Summary		Implement scenario
// @Description	Replaces the plan with a simulation for another extra monthly payment. Check-ins for months that the new roadmap does not have are dropped.
// @Tags			Plans
// @Accept			json
// @Produce		json
// @Success		200			{object}	PlanResponse
// @Failure		400			{object}	PlanResponse
// @Failure		404			{object}	PlanResponse
// @Failure		409			{object}	PlanResponse
// @Failure		500			{object}	PlanResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			scenario	body		ScenarioImplement	true	"Scenario"
// @Router			/v1/budgets/{id}/plan/scenario [post]
func ImplementPlanScenario(c *gin.Context) {
	var data ScenarioImplement
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	p, err := changePlan(c, data.Version, func(_ plan.Ledger, m *plan.Machine) error {
		debtPlan, err := m.Implement(data.ExtraMonthlyPayment)
		if err != nil && !errors.Is(err, payoff.ErrMonthCapReached) {
			return err
		}
		countSimulation(debtPlan.Outputs)

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	apiResource := newPlan(c, p, time.Now())
	c.JSON(http.StatusOK, PlanResponse{Data: &apiResource, Warning: warning(apiResource.Err())})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plans
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/plan/automation [options]
func OptionsPlanAutomation(c *gin.Context) {
	httputil.OptionsPostDelete(c)
}

// @Summary		Automate payments
// @Description	Creates a recurring transaction for the monthly payment of the plan in the budget's ledger
// @Tags			Plans
// @Accept			json
// @Produce		json
// @Success		200			{object}	PlanResponse
// @Failure		400			{object}	PlanResponse
// @Failure		404			{object}	PlanResponse
// @Failure		409			{object}	PlanResponse
// @Failure		500			{object}	PlanResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			automation	body		AutomationCreate	false	"Automation"
// @Router			/v1/budgets/{id}/plan/automation [post]
func CreatePlanAutomation(c *gin.Context) {
	var data AutomationCreate
	err := httputil.BindData(c, &data)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	start := data.FirstPaymentDate
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}

	p, err := changePlan(c, data.Version, func(l plan.Ledger, m *plan.Machine) error {
		_, err := m.StartAutomation(c.Request.Context(), l, start)
		return err
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	apiResource := newPlan(c, p, time.Now())
	c.JSON(http.StatusOK, PlanResponse{Data: &apiResource, Warning: warning(apiResource.Err())})
}

// @Summary		Cancel automated payments
// @Description	Deletes the recurring transaction of the plan from the budget's ledger
// @Tags			Plans
// @Produce		json
// @Success		200	{object}	PlanResponse
// @Failure		400	{object}	PlanResponse
// @Failure		404	{object}	PlanResponse
// @Failure		500	{object}	PlanResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/plan/automation [delete]
func DeletePlanAutomation(c *gin.Context) {
	p, err := changePlan(c, nil, func(l plan.Ledger, m *plan.Machine) error {
		return m.CancelAutomation(c.Request.Context(), l)
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{Error: &s})
		return
	}

	apiResource := newPlan(c, p, time.Now())
	c.JSON(http.StatusOK, PlanResponse{Data: &apiResource, Warning: warning(apiResource.Err())})
}
