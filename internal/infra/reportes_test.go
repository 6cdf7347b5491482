package infra

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ballesteros/internal/corte"
	"ballesteros/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func reporteDePrueba(efectivo string) CorteReporte {
	c := &model.Corte{
		ID:                uuid.New(),
		Fecha:             time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		NumeroSesion:      1,
		VentaBruta:        decimal.RequireFromString("5000"),
		EfectivoReportado: decimal.RequireFromString(efectivo),
		TarjetaCredito:    decimal.RequireFromString("500"),
		TarjetaDebito:     decimal.RequireFromString("300"),
		Gasto:             decimal.RequireFromString("200"),
		Estado:            "cerrado",
	}
	return CorteReporte{
		Corte:     c,
		Empresa:   "Ballesteros Centro",
		Empleado:  "Lucía Pérez",
		Derivados: corte.Calcular(c.Entrada()),
	}
}

func TestCortePDF(t *testing.T) {
	r := reporteDePrueba("3900")
	r.Adeudo = &model.Adeudo{Monto: decimal.RequireFromString("100"), Estado: "pendiente"}

	data, err := CortePDF(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output is a PDF document")
}

func TestGuardarCortePDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pdfs", "nested")
	r := reporteDePrueba("4000")

	path, err := GuardarCortePDF(r, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "corte_"+r.Corte.ID.String()+".pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportarCortesExcel(t *testing.T) {
	rows := []CorteReporte{reporteDePrueba("3900"), reporteDePrueba("4150")}

	buf, err := ExportarCortesExcel(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(hojaCortes, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Fecha", header)

	empleado, err := f.GetCellValue(hojaCortes, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Lucía Pérez", empleado)

	adeudo, err := f.GetCellValue(hojaCortes, "AB2")
	require.NoError(t, err)
	assert.Equal(t, "Sí", adeudo)

	label, err := f.GetCellValue(hojaCortes, "F4")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)

	formula, err := f.GetCellFormula(hojaCortes, "G4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(G2:G3)", formula)
}

func TestExportarCortesExcel_SinFilas(t *testing.T) {
	buf, err := ExportarCortesExcel(nil)
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
