package handler

import (
	"errors"
	"net/http"
	"reflect"

	"ballesteros/internal/apierror"
	"ballesteros/internal/middleware"
	"ballesteros/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal validates as a float so min=0, gt=0 and required work
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags.
// On failure it writes the response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Con(apierror.CodigoSolicitud, "JSON inválido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Con(apierror.CodigoSolicitud, "Parámetros inválidos: "+err.Error()))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, apierror.Con(apierror.CodigoSolicitud, err.Error()))
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}

// paramID parses the :id path parameter, writing a 400 when malformed.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Con(apierror.CodigoSolicitud, "ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// responderError maps service sentinels to status codes. Anything else is
// logged and answered with a generic 500.
func responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.Con(apierror.CodigoNoEncontrado, err.Error()))
	case errors.Is(err, service.ErrConflicto):
		c.JSON(http.StatusConflict, apierror.Con(apierror.CodigoConflicto, err.Error()))
	case errors.Is(err, service.ErrEstadoInvalido):
		c.JSON(http.StatusUnprocessableEntity, apierror.Con(apierror.CodigoEstado, err.Error()))
	case errors.Is(err, service.ErrCredenciales):
		c.JSON(http.StatusUnauthorized, apierror.Con(apierror.CodigoNoAutorizado, err.Error()))
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("unhandled service error")
		c.JSON(http.StatusInternalServerError, apierror.Con(apierror.CodigoInterno, "Error interno del servidor"))
	}
}

// empresaPermitida writes a 403 when the caller is bound to another empresa.
func empresaPermitida(c *gin.Context, empresaID string) bool {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.PuedeOperar(empresaID) {
		return true
	}
	c.JSON(http.StatusForbidden, apierror.Con(apierror.CodigoProhibido, "No puede operar sobre otra empresa"))
	return false
}

// empresaDeSesion resolves the empresa filter for listings. Users bound to
// an empresa only ever see their own, and asking for another one is a 403.
func empresaDeSesion(c *gin.Context, solicitada string) (string, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.PuedeOperar("") {
		return solicitada, true
	}
	if solicitada == "" {
		return claims.EmpresaID, true
	}
	if !empresaPermitida(c, solicitada) {
		return "", false
	}
	return solicitada, true
}
