// Package history answers read-only questions about the bill collection:
// search, farm filter, ordering and totals.
package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// Sort orders a bill listing.
type Sort string

const (
	SortNone      Sort = ""
	SortDateDesc  Sort = "date-desc"
	SortDateAsc   Sort = "date-asc"
	SortTotalDesc Sort = "total-desc"
	SortTotalAsc  Sort = "total-asc"
)

// ParseSort validates a sort name. An empty name keeps collection order.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case SortNone, SortDateDesc, SortDateAsc, SortTotalDesc, SortTotalAsc:
		return Sort(s), nil
	}
	return SortNone, fmt.Errorf("unknown sort %q (want date-desc, date-asc, total-desc or total-asc)", s)
}

// Query selects and orders bills.
type Query struct {
	// Search matches farm name (case-insensitive), date or id by substring
	Search string

	// FarmID keeps only bills of one farm when set
	FarmID string

	Sort Sort
}

// Filter returns the bills matching q in the requested order. The input is
// not modified.
func Filter(bills []model.Bill, q Query) []model.Bill {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.Bill, 0, len(bills))
	for _, b := range bills {
		if term != "" && !matches(b, term) {
			continue
		}
		if q.FarmID != "" && b.FarmID != q.FarmID {
			continue
		}
		out = append(out, b)
	}

	switch q.Sort {
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return billDate(out[i]).After(billDate(out[j])) })
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return billDate(out[i]).Before(billDate(out[j])) })
	case SortTotalDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].GrandTotal > out[j].GrandTotal })
	case SortTotalAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].GrandTotal < out[j].GrandTotal })
	}
	return out
}

func matches(b model.Bill, term string) bool {
	return strings.Contains(strings.ToLower(b.FarmName), term) ||
		strings.Contains(b.Date, term) ||
		strings.Contains(b.ID, term)
}

// billDate parses the bill date; unparsable dates sort as the zero time.
func billDate(b model.Bill) time.Time {
	t, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Find returns the bill with id.
func Find(bills []model.Bill, id string) (model.Bill, error) {
	for _, b := range bills {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Bill{}, &model.NotFoundError{Kind: "bill", ID: id}
}
