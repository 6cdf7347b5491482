package handler

import (
	"net/http"
	"strconv"

	"ballesteros/internal/apierror"
	"ballesteros/internal/dto"
	"ballesteros/internal/middleware"
	"ballesteros/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CuentasHandler struct{ svc service.CuentaService }

func NewCuentasHandler(svc service.CuentaService) *CuentasHandler {
	return &CuentasHandler{svc: svc}
}

// Crear godoc
// @Summary Alta de cuenta (cajera o fiscal)
// @Tags cuentas
// @Accept json
// @Produce json
// @Param body body dto.CrearCuentaRequest true "Cuenta"
// @Success 201 {object} dto.CuentaResponse
// @Router /v1/cuentas [post]
func (h *CuentasHandler) Crear(c *gin.Context) {
	var req dto.CrearCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if !empresaPermitida(c, req.EmpresaID) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/cuentas?empresa_id=
func (h *CuentasHandler) Listar(c *gin.Context) {
	empresa, ok := empresaDeSesion(c, c.Query("empresa_id"))
	if !ok {
		return
	}
	var empresaID *uuid.UUID
	if empresa != "" {
		id, err := uuid.Parse(empresa)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.Con(apierror.CodigoSolicitud, "empresa_id inválido"))
			return
		}
		empresaID = &id
	}
	resp, err := h.svc.Listar(c.Request.Context(), empresaID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) ObtenerPorID(c *gin.Context) {
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

func (h *CuentasHandler) Actualizar(c *gin.Context) {
	id, ok := h.cuentaAccesible(c)
	if !ok {
		return
	}
	var req dto.ActualizarCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) Desactivar(c *gin.Context) {
	id, ok := h.cuentaAccesible(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegistrarMovimiento godoc
// @Summary Registra un ingreso o egreso manual en la cuenta
// @Tags cuentas
// @Accept json
// @Produce json
// @Param id path string true "Cuenta ID"
// @Param body body dto.MovimientoCuentaRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoCuentaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/cuentas/{id}/movimientos [post]
func (h *CuentasHandler) RegistrarMovimiento(c *gin.Context) {
	id, ok := h.cuentaAccesible(c)
	if !ok {
		return
	}
	var req dto.MovimientoCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarMovimientos GET /v1/cuentas/:id/movimientos?page=&limit=
func (h *CuentasHandler) ListarMovimientos(c *gin.Context) {
	id, ok := h.cuentaAccesible(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), id, page, limit)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Traspaso godoc
// @Summary Traspaso entre dos cuentas de la misma empresa
// @Tags cuentas
// @Accept json
// @Produce json
// @Param body body dto.TraspasoRequest true "Traspaso"
// @Success 201 {object} dto.TraspasoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/cuentas/traspasos [post]
func (h *CuentasHandler) Traspaso(c *gin.Context) {
	var req dto.TraspasoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// the service rejects destinations in another empresa
	origen, err := uuid.Parse(req.CuentaOrigenID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Con(apierror.CodigoSolicitud, "cuenta_origen_id inválido"))
		return
	}
	if !h.cuentaDeEmpresa(c, origen) {
		return
	}
	resp, err := h.svc.Traspaso(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// cuentaAccesible parses :id and, for users bound to an empresa, checks the
// cuenta belongs to it.
func (h *CuentasHandler) cuentaAccesible(c *gin.Context) (uuid.UUID, bool) {
	id, ok := paramID(c)
	if !ok {
		return id, false
	}
	return id, h.cuentaDeEmpresa(c, id)
}

func (h *CuentasHandler) cuentaDeEmpresa(c *gin.Context, id uuid.UUID) bool {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.PuedeOperar("") {
		return true
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return false
	}
	return empresaPermitida(c, resp.EmpresaID)
}
