package infra

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const hojaCortes = "Cortes"

var encabezadosCortes = []string{
	"Fecha", "Sesión", "Empresa", "Cajero", "Etiqueta", "Estado",
	"Venta bruta", "Efectivo reportado", "Ventas crédito", "Ventas plataforma",
	"Cobranza", "Tarjeta crédito", "Tarjeta débito", "Transferencias",
	"Retiro parcial", "Gasto", "Compra", "Préstamo", "Descuento/cortesía", "Otros retiros",
	"Total no efectivo", "Total salidas", "Efectivo esperado", "Diferencia",
	"Ventas efectivo calc.", "Ventas registradas", "Ingresos registrados", "Genera adeudo",
}

// ExportarCortesExcel builds a one-sheet workbook with one row per corte and
// a totals row at the bottom.
func ExportarCortesExcel(rows []CorteReporte) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaCortes); err != nil {
		return nil, fmt.Errorf("excel: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: header style: %w", err)
	}
	fmtMoneda := "#,##0.00"
	montoStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &fmtMoneda})
	if err != nil {
		return nil, fmt.Errorf("excel: money style: %w", err)
	}

	for i, h := range encabezadosCortes {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(hojaCortes, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(encabezadosCortes), 1)
	f.SetCellStyle(hojaCortes, "A1", last, headerStyle)

	for i, r := range rows {
		c := r.Corte
		d := r.Derivados
		etiqueta := ""
		if c.Etiqueta != nil {
			etiqueta = *c.Etiqueta
		}
		adeudo := "No"
		if d.GeneraAdeudo {
			adeudo = "Sí"
		}

		valores := []interface{}{
			c.Fecha.Format("2006-01-02"), c.NumeroSesion, r.Empresa, r.Empleado, etiqueta, c.Estado,
			c.VentaBruta.InexactFloat64(), c.EfectivoReportado.InexactFloat64(),
			c.VentasCredito.InexactFloat64(), c.VentasPlataforma.InexactFloat64(),
			c.Cobranza.InexactFloat64(), c.TarjetaCredito.InexactFloat64(),
			c.TarjetaDebito.InexactFloat64(), c.Transferencias.InexactFloat64(),
			c.RetiroParcial.InexactFloat64(), c.Gasto.InexactFloat64(),
			c.Compra.InexactFloat64(), c.Prestamo.InexactFloat64(),
			c.DescuentoCortesia.InexactFloat64(), c.OtrosRetiros.InexactFloat64(),
			d.TotalVentasNoEfectivo.InexactFloat64(), d.TotalSalidasReales.InexactFloat64(),
			d.EfectivoEsperado.InexactFloat64(), d.Diferencia.InexactFloat64(),
			d.VentasEfectivoCalculadas.InexactFloat64(), d.TotalVentasRegistradas.InexactFloat64(),
			d.TotalIngresosRegistrados.InexactFloat64(), adeudo,
		}
		row := i + 2
		for col, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(hojaCortes, cell, v)
		}
	}

	// columns G..AA hold money
	if len(rows) > 0 {
		totalRow := len(rows) + 2
		first, _ := excelize.CoordinatesToCellName(7, 2)
		end, _ := excelize.CoordinatesToCellName(27, totalRow)
		f.SetCellStyle(hojaCortes, first, end, montoStyle)

		labelCell, _ := excelize.CoordinatesToCellName(6, totalRow)
		f.SetCellValue(hojaCortes, labelCell, "TOTAL")
		for col := 7; col <= 27; col++ {
			colName, _ := excelize.ColumnNumberToName(col)
			cell, _ := excelize.CoordinatesToCellName(col, totalRow)
			f.SetCellFormula(hojaCortes, cell, fmt.Sprintf("SUM(%s2:%s%d)", colName, colName, totalRow-1))
		}
	}

	f.AutoFilter(hojaCortes, "A1:"+last, []excelize.AutoFilterOptions{})
	f.SetPanes(hojaCortes, &excelize.Panes{Freeze: true, Split: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write: %w", err)
	}
	return buf, nil
}
