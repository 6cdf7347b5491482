package handler

import (
	"net/http"

	"ballesteros/internal/dto"
	"ballesteros/internal/middleware"
	"ballesteros/internal/service"

	"github.com/gin-gonic/gin"
)

type AdeudosHandler struct{ svc service.AdeudoService }

func NewAdeudosHandler(svc service.AdeudoService) *AdeudosHandler {
	return &AdeudosHandler{svc: svc}
}

// Listar GET /v1/adeudos?empresa_id=&empleado_id=&estado=
func (h *AdeudosHandler) Listar(c *gin.Context) {
	var f dto.AdeudoFilter
	if !bindQuery(c, &f) {
		return
	}
	empresa, ok := empresaDeSesion(c, f.EmpresaID)
	if !ok {
		return
	}
	f.EmpresaID = empresa

	resp, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdeudosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	if !empresaPermitida(c, resp.EmpresaID) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Liquidar godoc
// @Summary Marca un adeudo como liquidado
// @Tags adeudos
// @Accept json
// @Produce json
// @Param id path string true "Adeudo ID"
// @Param body body dto.LiquidarAdeudoRequest false "Notas"
// @Success 200 {object} dto.AdeudoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/adeudos/{id}/liquidar [post]
func (h *AdeudosHandler) Liquidar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if claims := middleware.GetClaims(c); claims != nil && !claims.PuedeOperar("") {
		actual, err := h.svc.ObtenerPorID(c.Request.Context(), id)
		if err != nil {
			responderError(c, err)
			return
		}
		if !empresaPermitida(c, actual.EmpresaID) {
			return
		}
	}
	var req dto.LiquidarAdeudoRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Liquidar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
