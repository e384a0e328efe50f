// Package money soma valores monetários sem acumular erro de ponto flutuante.
package money

import (
	"github.com/shopspring/decimal"
)

// Sum soma os valores com precisão decimal
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Float64()
	return f
}

// SumBy soma o valor extraído de cada item
func SumBy[T any](items []T, value func(T) float64) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(value(it)))
	}
	f, _ := total.Float64()
	return f
}

// Sub retorna a - b com precisão decimal
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Float64()
	return f
}

// Div divide o valor em n partes, arredondando para centavos
func Div(a float64, n int) float64 {
	if n == 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(a).Div(decimal.NewFromInt(int64(n))).Round(2).Float64()
	return f
}

// Accumulator acumula valores decimais, útil para agrupamentos
type Accumulator struct {
	total decimal.Decimal
}

// Add soma um valor ao acumulador
func (a *Accumulator) Add(v float64) {
	a.total = a.total.Add(decimal.NewFromFloat(v))
}

// Value retorna o total acumulado
func (a *Accumulator) Value() float64 {
	f, _ := a.total.Float64()
	return f
}
