// Package datetime concentra o tratamento das datas ISO-8601 gravadas nos registros.
package datetime

import (
	"time"
)

// Formatos de data usados nos registros
const (
	ISOLayout   = "2006-01-02T15:04:05.000Z"
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DayLayout,
}

// Clock retorna o instante atual
type Clock func() time.Time

// SystemClock é o relógio real
func SystemClock() time.Time {
	return time.Now()
}

// FormatISO formata o instante como o campo created_date (UTC, milissegundos)
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseISO interpreta uma data ISO-8601. Datas sem fuso (inclusive as só com
// dia) são lidas no fuso informado, nunca em UTC: "2026-10-14" é o dia 14 da
// loja.
func ParseISO(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range parseLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano || layout == time.RFC3339 {
			t, err = time.Parse(layout, value)
		} else {
			t, err = time.ParseInLocation(layout, value, loc)
		}
		if err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// FormatDay formata o instante como yyyy-MM-dd no fuso informado
func FormatDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}

// IsSameDay compara o dia formatado (yyyy-MM-dd) da data com o do instante de referência
func IsSameDay(value string, ref time.Time, loc *time.Location) bool {
	t, ok := ParseISO(value, loc)
	if !ok {
		return false
	}
	return FormatDay(t, loc) == FormatDay(ref, loc)
}

// StartOfDay retorna a meia-noite do dia do instante
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StartOfMonth retorna o primeiro instante do mês do instante
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// EndOfMonth retorna o último instante do mês do instante
func EndOfMonth(t time.Time, loc *time.Location) time.Time {
	return StartOfMonth(t, loc).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Within indica se t está no intervalo fechado [start, end]
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// IsSameMonth indica se a data cai no mês calendário do instante de referência
func IsSameMonth(value string, ref time.Time, loc *time.Location) bool {
	t, ok := ParseISO(value, loc)
	if !ok {
		return false
	}
	return Within(t, StartOfMonth(ref, loc), EndOfMonth(ref, loc))
}

// DaysSince retorna quantos dias completos (24h) se passaram desde t
func DaysSince(t, now time.Time) int {
	return int(now.Sub(t) / (24 * time.Hour))
}
