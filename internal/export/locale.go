package export

import (
	"strconv"
	"strings"
	"time"
)

// Report consumers open these files in pt-BR spreadsheet software, so
// decimals use the comma separator and dates the dd/mm/yyyy form.

// Decimal formats a quantity with the shortest representation and a
// decimal comma
func Decimal(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", ",")
}

// Decimal1 formats a rate or duration with one fixed decimal place and a
// decimal comma
func Decimal1(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', 1, 64), ".", ",")
}

// Decimal2 formats a total with two fixed decimal places and a decimal comma
func Decimal2(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', 2, 64), ".", ",")
}

// DateBR formats a timestamp as a pt-BR calendar date
func DateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// TimeBR formats a timestamp as a pt-BR clock time
func TimeBR(t time.Time) string {
	return t.Format("15:04:05")
}

// DateStamp is the ISO date used in generated file names
func DateStamp(t time.Time) string {
	return t.Format("2006-01-02")
}
