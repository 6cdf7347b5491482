// Package corte holds the cash-register reconciliation arithmetic.
//
// Calcular is a pure function: it performs no I/O, keeps no state and is
// safe to call from any number of goroutines. Every amount is a
// decimal.Decimal so sums over the fourteen captured fields stay exact to
// the cent.
package corte

import "github.com/shopspring/decimal"

// ToleranciaAdeudo is the shortfall (in currency units) a cashier may have
// before the corte generates a debt follow-up. The comparison is strict:
// a difference of exactly -50 does not generate one.
const ToleranciaAdeudo = 50

// Entrada are the totals captured by hand when the drawer is counted.
// Missing fields are zero. Callers validate that every field is >= 0.
type Entrada struct {
	VentaBruta        decimal.Decimal `json:"venta_bruta"`
	EfectivoReportado decimal.Decimal `json:"efectivo_reportado"`
	VentasCredito     decimal.Decimal `json:"ventas_credito"`
	VentasPlataforma  decimal.Decimal `json:"ventas_plataforma"`
	Cobranza          decimal.Decimal `json:"cobranza"`
	TarjetaCredito    decimal.Decimal `json:"tarjeta_credito"`
	TarjetaDebito     decimal.Decimal `json:"tarjeta_debito"`
	Transferencias    decimal.Decimal `json:"transferencias"`
	RetiroParcial     decimal.Decimal `json:"retiro_parcial"`
	Gasto             decimal.Decimal `json:"gasto"`
	Compra            decimal.Decimal `json:"compra"`
	Prestamo          decimal.Decimal `json:"prestamo"`
	DescuentoCortesia decimal.Decimal `json:"descuento_cortesia"`
	OtrosRetiros      decimal.Decimal `json:"otros_retiros"`
}

// Derivados are the values computed from an Entrada.
type Derivados struct {
	TotalTarjetas         decimal.Decimal `json:"total_tarjetas"`
	TotalVentasNoEfectivo decimal.Decimal `json:"total_ventas_no_efectivo"`
	TotalSalidasReales    decimal.Decimal `json:"total_salidas_reales"`
	EfectivoEsperado      decimal.Decimal `json:"efectivo_esperado"`
	Diferencia            decimal.Decimal `json:"diferencia"`

	// VentasEfectivoCalculadas back-derives cash sales: the reported cash
	// already has the drawer outflows taken out and excludes collections.
	VentasEfectivoCalculadas decimal.Decimal `json:"ventas_efectivo_calculadas"`
	TotalVentasRegistradas   decimal.Decimal `json:"total_ventas_registradas"`
	TotalIngresosRegistrados decimal.Decimal `json:"total_ingresos_registrados"`

	GeneraAdeudo bool `json:"genera_adeudo"`
}

// Calcular derives the reconciliation figures for e.
func Calcular(e Entrada) Derivados {
	var d Derivados

	d.TotalTarjetas = e.TarjetaCredito.Add(e.TarjetaDebito)

	d.TotalVentasNoEfectivo = sum(
		e.VentasCredito,
		e.VentasPlataforma,
		d.TotalTarjetas,
		e.Transferencias,
		e.DescuentoCortesia,
	)

	d.TotalSalidasReales = sum(
		e.Gasto,
		e.Compra,
		e.Prestamo,
		e.RetiroParcial,
		e.OtrosRetiros,
	)

	d.EfectivoEsperado = e.VentaBruta.
		Sub(d.TotalVentasNoEfectivo).
		Sub(d.TotalSalidasReales).
		Add(e.Cobranza)

	d.Diferencia = e.EfectivoReportado.Sub(d.EfectivoEsperado)

	d.VentasEfectivoCalculadas = e.EfectivoReportado.
		Add(d.TotalSalidasReales).
		Sub(e.Cobranza)
	d.TotalVentasRegistradas = d.VentasEfectivoCalculadas.Add(d.TotalVentasNoEfectivo)
	d.TotalIngresosRegistrados = d.TotalVentasRegistradas.Add(e.Cobranza)

	d.GeneraAdeudo = d.Diferencia.LessThan(decimal.NewFromInt(-ToleranciaAdeudo))

	return d
}

// MontoAdeudo returns the absolute shortfall that a debt follow-up should carry,
// or zero when d does not generate one.
func (d Derivados) MontoAdeudo() decimal.Decimal {
	if !d.GeneraAdeudo {
		return decimal.Zero
	}
	return d.Diferencia.Abs()
}

func sum(vals ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
	}
	return total
}
