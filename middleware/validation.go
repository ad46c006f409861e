package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joshu-sajeev/jobboard/common"
)

var validate = validator.New()

// Normalizer is implemented by request bodies that clean up their fields
// (trimming, lower-casing) before validation runs.
type Normalizer interface {
	Normalize()
}

func Bind[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "invalid json: %v", err.Error()))
		return false
	}

	return check(c, dest)
}

// BindQuery binds and validates query string parameters.
func BindQuery[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "invalid query: %v", err.Error()))
		return false
	}

	return check(c, dest)
}

func check(c *gin.Context, dest any) bool {
	if n, ok := dest.(Normalizer); ok {
		n.Normalize()
	}

	if err := validate.Struct(dest); err != nil {
		c.Error(common.APIError{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Fields:  FormatValidationErrors(err),
		})
		return false
	}

	return true
}

func FormatValidationErrors(err error) map[string]any {
	errs := map[string]any{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, e := range verrs {
		errs[e.Field()] = "failed " + e.Tag()
	}
	return errs
}
