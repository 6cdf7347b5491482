package infra

// pdf.go renders a single corte as a Letter-size summary using go-pdf/fpdf:
//   - company / cashier / session header
//   - captured amounts, two columns
//   - derived figures with the difference in bold
//   - adeudo notice when one was generated

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ballesteros/internal/corte"
	"ballesteros/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// CorteReporte bundles what the PDF and Excel renderers need for one corte.
type CorteReporte struct {
	Corte     *model.Corte
	Empresa   string
	Empleado  string
	Derivados corte.Derivados
	Adeudo    *model.Adeudo
}

type fila struct {
	etiqueta string
	monto    decimal.Decimal
}

// RenderCortePDF writes the PDF for r to w.
func RenderCortePDF(w io.Writer, r CorteReporte) error {
	c := r.Corte

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, tr(r.Empresa), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Corte de caja", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 9)
	info := []string{
		"Cajero: " + r.Empleado,
		fmt.Sprintf("Fecha: %s   Sesión: %d", c.Fecha.Format("02/01/2006"), c.NumeroSesion),
		"Estado: " + c.Estado,
	}
	if c.Etiqueta != nil && *c.Etiqueta != "" {
		info = append(info, "Etiqueta: "+*c.Etiqueta)
	}
	if c.ClosedAt != nil {
		info = append(info, "Cerrado: "+c.ClosedAt.Format("02/01/2006 15:04"))
	}
	for _, line := range info {
		pdf.CellFormat(contentW, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Captured amounts ──────────────────────────────────────────────────────
	captura := []fila{
		{"Venta bruta", c.VentaBruta},
		{"Efectivo reportado", c.EfectivoReportado},
		{"Ventas a crédito", c.VentasCredito},
		{"Ventas plataforma", c.VentasPlataforma},
		{"Cobranza", c.Cobranza},
		{"Tarjeta de crédito", c.TarjetaCredito},
		{"Tarjeta de débito", c.TarjetaDebito},
		{"Transferencias", c.Transferencias},
		{"Retiro parcial", c.RetiroParcial},
		{"Gasto", c.Gasto},
		{"Compra", c.Compra},
		{"Préstamo", c.Prestamo},
		{"Descuento / cortesía", c.DescuentoCortesia},
		{"Otros retiros", c.OtrosRetiros},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Captura", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	half := contentW / 2
	labelW := half * 0.6
	montoW := half * 0.4
	for i, f := range captura {
		ln := 0
		if i%2 == 1 {
			ln = 1
		}
		pdf.CellFormat(labelW, 5, tr(f.etiqueta), "", 0, "L", false, 0, "")
		pdf.CellFormat(montoW, 5, "$"+f.monto.StringFixed(2), "", ln, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Derived figures ──────────────────────────────────────────────────────
	d := r.Derivados
	derivados := []fila{
		{"Total tarjetas", d.TotalTarjetas},
		{"Total ventas no efectivo", d.TotalVentasNoEfectivo},
		{"Total salidas reales", d.TotalSalidasReales},
		{"Efectivo esperado", d.EfectivoEsperado},
		{"Ventas efectivo calculadas", d.VentasEfectivoCalculadas},
		{"Total ventas registradas", d.TotalVentasRegistradas},
		{"Total ingresos registrados", d.TotalIngresosRegistrados},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Resultado", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, f := range derivados {
		pdf.CellFormat(contentW*0.7, 5, tr(f.etiqueta), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 5, "$"+f.monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.7, 7, "DIFERENCIA", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.3, 7, "$"+d.Diferencia.StringFixed(2), "T", 1, "R", false, 0, "")

	// ── Adeudo ───────────────────────────────────────────────────────────────
	if d.GeneraAdeudo {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(180, 0, 0)
		msg := fmt.Sprintf("Faltante mayor a $%d: se genera adeudo por $%s",
			corte.ToleranciaAdeudo, d.MontoAdeudo().StringFixed(2))
		if r.Adeudo != nil {
			msg += " (" + r.Adeudo.Estado + ")"
		}
		pdf.MultiCell(contentW, 5, tr(msg), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	if c.Observaciones != nil && *c.Observaciones != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, tr("Observaciones: "+*c.Observaciones), "", "L", false)
	}

	return pdf.Output(w)
}

// CortePDF renders r into memory.
func CortePDF(r CorteReporte) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderCortePDF(&buf, r); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// GuardarCortePDF writes the PDF to storagePath/corte_<id>.pdf, creating the
// directory if needed, and returns the file path.
func GuardarCortePDF(r CorteReporte, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	data, err := CortePDF(r)
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("corte_%s.pdf", r.Corte.ID))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
