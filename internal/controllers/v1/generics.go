package v1

import (
	"net/http"

	"github.com/envelope-zero/payoff/internal/models"
	"github.com/gin-gonic/gin"
)

type resource interface {
	models.Budget | models.Debt | models.Transaction
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS
// request for a specific resource. The options handler is called if the
// resource exists.
func resourceOptionsDetail[R resource](c *gin.Context, options gin.HandlerFunc) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var r R
	err = models.DB.First(&r, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}

// deleteResource deletes the resource with the ID from the URI.
func deleteResource[R models.Budget | models.Debt](c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var r R
	err = models.DB.First(&r, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&r).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

