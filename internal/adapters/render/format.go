package render

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const buddhistEraOffset = 543

var (
	thaiPrinter = message.NewPrinter(language.Thai)

	thaiMonths = [...]string{
		"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
		"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
	}
)

// Money formats an amount with grouping and exactly two decimals (1,234.50).
func Money(v float64) string {
	return thaiPrinter.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Qty formats a whole quantity with grouping.
func Qty(n int) string {
	return thaiPrinter.Sprint(number.Decimal(n))
}

func parseDate(date string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	return t, err == nil
}

// BuddhistDate renders a YYYY-MM-DD date as dd/mm/yyyy in the Buddhist era.
// Unparseable input is returned as is.
func BuddhistDate(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year()+buddhistEraOffset)
}

// ThaiDate renders a YYYY-MM-DD date as "15 ม.ค. 2567".
func ThaiDate(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+buddhistEraOffset)
}

// ClockTime renders the time of day as HH:MM.
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}
