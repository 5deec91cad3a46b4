package handler

// helpers.go
// Request plumbing shared by every handler: JSON binding plus validator
// tags, :id path parsing, and the service-error to HTTP-status mapping.

import (
	"net/http"
	"reflect"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validator panics on unknown struct kinds, so decimal.Decimal must be
	// registered as a float for tags like min=0 and gt=0 to evaluate.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body into req and evaluates its validator
// tags. On failure it writes the error response and returns false; the caller
// must not write anything else.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		campos := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			campos[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(campos))
		return false
	}
	return true
}

// pathUUID reads the named path segment as a UUID, writing the 400 response
// itself when the value does not parse.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError translates a service error into its HTTP status.
func respondError(c *gin.Context, err error) {
	c.JSON(apierror.Status(err), apierror.New(err.Error()))
}
