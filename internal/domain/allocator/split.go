// Package allocator divides a shared cost across the ponds that take part in
// it.
//
// The per-pond amount follows the shared-cost rule used on the entry form:
//
//	per_pond = total_price * quantity / participants
//
// total_price is already the price of one shared purchase, and quantity counts
// how many of those purchases are being split. The amount is only defined for
// two or more participants; anything less allocates nothing.
package allocator

import (
	"fmt"
	"sort"
)

// MinParticipants is the smallest participant set that allocates anything.
const MinParticipants = 2

// Split is a shared cost entry owned by a bill draft.
type Split struct {
	ID          string
	Description string
	Quantity    int
	TotalPrice  float64

	// Participants holds pond indices, sorted and unique.
	Participants []int

	// SourcePond is the pond whose entry row holds the split.
	SourcePond int
}

// Share is one pond's part of a split.
type Share struct {
	Pond   int
	Amount float64
}

// Warning is a user-facing notice that does not block editing.
type Warning struct {
	SplitID string
	Message string
}

func (w *Warning) String() string {
	return fmt.Sprintf("split %s: %s", w.SplitID, w.Message)
}

// PerPondAmount returns the amount each participant pond carries.
// It is zero with fewer than two participants, a non-positive quantity or a
// non-positive price.
func PerPondAmount(s Split) float64 {
	n := len(s.Participants)
	if n < MinParticipants || s.Quantity <= 0 || s.TotalPrice <= 0 {
		return 0
	}
	return (s.TotalPrice * float64(s.Quantity)) / float64(n)
}

// Allocate returns one share per participant pond, in pond order.
// It returns nil when the split has fewer than two participants.
func Allocate(s Split) []Share {
	if len(s.Participants) < MinParticipants {
		return nil
	}
	amount := PerPondAmount(s)
	shares := make([]Share, len(s.Participants))
	for i, p := range s.Participants {
		shares[i] = Share{Pond: p, Amount: amount}
	}
	return shares
}

// Includes reports whether pond takes part in the split.
func Includes(s Split, pond int) bool {
	i := sort.SearchInts(s.Participants, pond)
	return i < len(s.Participants) && s.Participants[i] == pond
}

// Billable reports whether the split produces items on a finalized bill.
func Billable(s Split) bool {
	return len(s.Participants) >= MinParticipants && s.Quantity > 0 && s.TotalPrice > 0
}

// Total returns the sum of all shares, which equals total_price * quantity
// for a billable split.
func Total(s Split) float64 {
	var total float64
	for _, sh := range Allocate(s) {
		total += sh.Amount
	}
	return total
}

// SetParticipants replaces the participant set of s. Indices are deduplicated
// and sorted; any index outside [0, pondCount) is an error and leaves s
// unchanged. A single participant with a price set yields a warning: the split
// then contributes nothing until another pond is added.
func SetParticipants(s *Split, ponds []int, pondCount int) (*Warning, error) {
	seen := make(map[int]bool, len(ponds))
	next := make([]int, 0, len(ponds))
	for _, p := range ponds {
		if p < 0 || p >= pondCount {
			return nil, fmt.Errorf("pond index %d out of range [0,%d)", p, pondCount)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		next = append(next, p)
	}
	sort.Ints(next)
	s.Participants = next

	if len(next) == 1 && s.TotalPrice > 0 {
		return &Warning{SplitID: s.ID, Message: "select at least 2 ponds to split"}, nil
	}
	return nil, nil
}
