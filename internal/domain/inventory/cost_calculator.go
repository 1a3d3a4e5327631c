package inventory

import "github.com/shopspring/decimal"

// CostCalculator costo promedio ponderado de un material al recibir una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Sin costo previo, el costo de la entrada se toma tal cual.
func CostCalculator(stockActual int, costoActual *decimal.Decimal, cantEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	if costoActual == nil || stockActual <= 0 {
		return costoEntrada
	}
	sum := stockActual + cantEntrada
	if sum <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(int64(stockActual)).Mul(*costoActual).
		Add(decimal.NewFromInt(int64(cantEntrada)).Mul(costoEntrada))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(4)
}
