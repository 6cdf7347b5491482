package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"ballesteros/internal/apierror"
	"ballesteros/internal/dto"
	"ballesteros/internal/middleware"
	"ballesteros/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CortesHandler struct{ svc service.CorteService }

func NewCortesHandler(svc service.CorteService) *CortesHandler {
	return &CortesHandler{svc: svc}
}

// Abrir godoc
// @Summary Abre un corte de caja para un empleado, fecha y sesión
// @Tags cortes
// @Accept json
// @Produce json
// @Param body body dto.AbrirCorteRequest true "Corte"
// @Success 201 {object} dto.CorteResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cortes [post]
func (h *CortesHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if !empresaPermitida(c, req.EmpresaID) {
		return
	}

	claims := middleware.GetClaims(c)
	var creadoPor uuid.UUID
	if claims != nil {
		creadoPor = claims.UserUUID()
		// a cajero tied to an empleado may only open their own cortes
		if yo := empleadoDeCajero(c); yo != "" && !strings.EqualFold(yo, req.EmpleadoID) {
			c.JSON(http.StatusForbidden, apierror.Con(apierror.CodigoProhibido, "Un cajero solo puede abrir sus propios cortes"))
			return
		}
	}

	resp, err := h.svc.Abrir(c.Request.Context(), req, creadoPor)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar PUT /v1/cortes/:id
func (h *CortesHandler) Actualizar(c *gin.Context) {
	id, ok := h.corteAccesible(c)
	if !ok {
		return
	}
	var req dto.ActualizarCorteRequest
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

// Calcular GET /v1/cortes/:id/calculo
func (h *CortesHandler) Calcular(c *gin.Context) {
	id, ok := h.corteAccesible(c)
	if !ok {
		return
	}
	resp, err := h.svc.Calcular(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CalcularLibre godoc
// @Summary Calcula los derivados de una captura sin persistirla
// @Tags cortes
// @Accept json
// @Produce json
// @Param body body dto.CapturaCorte true "Captura"
// @Success 200 {object} dto.CalculoCorteResponse
// @Router /v1/cortes/calcular [post]
func (h *CortesHandler) CalcularLibre(c *gin.Context) {
	var req dto.CapturaCorte
	if !bindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.svc.CalcularLibre(req))
}

// Cerrar godoc
// @Summary Cierra el corte, congela los derivados y genera el adeudo si aplica
// @Tags cortes
// @Accept json
// @Produce json
// @Param id path string true "Corte ID"
// @Param body body dto.CerrarCorteRequest false "Observaciones"
// @Success 200 {object} dto.CierreCorteResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/cortes/{id}/cerrar [post]
func (h *CortesHandler) Cerrar(c *gin.Context) {
	id, ok := h.corteAccesible(c)
	if !ok {
		return
	}
	var req dto.CerrarCorteRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anular POST /v1/cortes/:id/anular
func (h *CortesHandler) Anular(c *gin.Context) {
	id, ok := h.corteAccesible(c)
	if !ok {
		return
	}
	var req dto.AnularCorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Anular(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CortesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	if !empresaPermitida(c, resp.EmpresaID) || !cortePropio(c, resp) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista cortes con filtros y paginación
// @Tags cortes
// @Produce json
// @Param empresa_id query string false "Empresa"
// @Param empleado_id query string false "Empleado"
// @Param estado query string false "activo | cerrado | anulado"
// @Param desde query string false "YYYY-MM-DD"
// @Param hasta query string false "YYYY-MM-DD"
// @Param page query int false "Página"
// @Param limit query int false "Tamaño de página"
// @Success 200 {object} dto.CorteListResponse
// @Router /v1/cortes [get]
func (h *CortesHandler) Listar(c *gin.Context) {
	f, ok := h.filtro(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exportar GET /v1/cortes/exportar, same filters as Listar, answers an xlsx.
func (h *CortesHandler) Exportar(c *gin.Context) {
	f, ok := h.filtro(c)
	if !ok {
		return
	}
	buf, err := h.svc.ExportarExcel(c.Request.Context(), f)
	if err != nil {
		responderError(c, err)
		return
	}
	nombre := fmt.Sprintf("cortes_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// PDF GET /v1/cortes/:id/pdf
func (h *CortesHandler) PDF(c *gin.Context) {
	id, ok := h.corteAccesible(c)
	if !ok {
		return
	}
	path, err := h.svc.GenerarPDF(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (h *CortesHandler) filtro(c *gin.Context) (dto.CorteFilter, bool) {
	var f dto.CorteFilter
	if !bindQuery(c, &f) {
		return f, false
	}
	empresa, ok := empresaDeSesion(c, f.EmpresaID)
	if !ok {
		return f, false
	}
	f.EmpresaID = empresa
	if yo := empleadoDeCajero(c); yo != "" {
		if f.EmpleadoID != "" && !strings.EqualFold(f.EmpleadoID, yo) {
			c.JSON(http.StatusForbidden, apierror.Con(apierror.CodigoProhibido, "Un cajero solo puede consultar sus propios cortes"))
			return f, false
		}
		f.EmpleadoID = yo
	}
	return f, true
}

// corteAccesible parses :id and checks the caller may touch the corte: users
// bound to an empresa only reach its cortes and a cajero tied to an empleado
// only reaches their own.
func (h *CortesHandler) corteAccesible(c *gin.Context) (uuid.UUID, bool) {
	id, ok := paramID(c)
	if !ok {
		return id, false
	}
	claims := middleware.GetClaims(c)
	if claims == nil || (claims.PuedeOperar("") && empleadoDeCajero(c) == "") {
		return id, true
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return id, false
	}
	return id, empresaPermitida(c, resp.EmpresaID) && cortePropio(c, resp)
}

// empleadoDeCajero returns the empleado a cajero session is tied to, or ""
// for any other session.
func empleadoDeCajero(c *gin.Context) string {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Rol != middleware.RolCajero {
		return ""
	}
	return claims.EmpleadoID
}

// cortePropio writes a 403 when a cajero reaches a colleague's corte.
func cortePropio(c *gin.Context, resp *dto.CorteResponse) bool {
	yo := empleadoDeCajero(c)
	if yo == "" || strings.EqualFold(yo, resp.EmpleadoID) {
		return true
	}
	c.JSON(http.StatusForbidden, apierror.Con(apierror.CodigoProhibido, "Un cajero solo puede operar sus propios cortes"))
	return false
}
