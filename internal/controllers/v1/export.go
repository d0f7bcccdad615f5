package v1

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/envelope-zero/payoff/internal/httputil"
	"github.com/envelope-zero/payoff/internal/models"
	"github.com/gin-gonic/gin"
)

var payoffVersion string

func RegisterExportRoutes(r *gin.RouterGroup, version string) {
	payoffVersion = version

	{
		r.OPTIONS("", OptionsExport)
		r.GET("", GetExport)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export
// @Description	Exports all budgets, debts, plans and transactions of the instance
// @Tags			Export
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		500	{object}	httpError
// @Router			/v1/export [get]
func GetExport(c *gin.Context) {
	resources := make(map[string]json.RawMessage, len(models.Registry))

	for _, model := range models.Registry {
		b, err := model.Export()
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		resources[reflect.TypeOf(model).Name()] = b
	}

	c.JSON(http.StatusOK, ExportResponse{
		Version:      payoffVersion,
		Data:         resources,
		CreationTime: time.Now(),
		Clacks:       "GNU Terry Pratchett",
	})
}

type ExportResponse struct {
	Version      string                     `json:"version" example:"1.2.0"` // The version of the service the export was made with
	Data         map[string]json.RawMessage `json:"data"`                    // The exported resources by model
	CreationTime time.Time                  `json:"creationTime"`            // Time the export was created
	Clacks       string                     `json:"clacks"`                  // This will always have the value "GNU Terry Pratchett"
}
