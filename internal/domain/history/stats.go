package history

import (
	"github.com/shopspring/decimal"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// FarmTotal aggregates the bills of one farm.
type FarmTotal struct {
	FarmID   string
	FarmName string
	Bills    int
	Total    decimal.Decimal
}

// Stats summarises the whole state.
type Stats struct {
	Farms       int
	Ponds       int
	Assets      int
	Bills       int
	TotalBilled decimal.Decimal
	AverageBill decimal.Decimal
	ByFarm      []FarmTotal
}

// Summarize computes Stats. Amounts are accumulated as decimals and rounded
// to satang.
func Summarize(st *model.State) Stats {
	s := Stats{
		Farms:       len(st.Farms),
		Assets:      st.Assets.Count(),
		Bills:       len(st.Bills),
		TotalBilled: decimal.Zero,
		AverageBill: decimal.Zero,
	}
	for _, f := range st.Farms {
		s.Ponds += len(f.Ponds)
	}

	byFarm := make(map[string]*FarmTotal)
	for _, b := range st.Bills {
		amount := decimal.NewFromFloat(b.GrandTotal)
		s.TotalBilled = s.TotalBilled.Add(amount)

		ft, ok := byFarm[b.FarmID]
		if !ok {
			ft = &FarmTotal{FarmID: b.FarmID, FarmName: b.FarmName, Total: decimal.Zero}
			byFarm[b.FarmID] = ft
		}
		ft.Bills++
		ft.Total = ft.Total.Add(amount)
	}

	if s.Bills > 0 {
		s.AverageBill = s.TotalBilled.Div(decimal.NewFromInt(int64(s.Bills))).Round(2)
	}
	s.TotalBilled = s.TotalBilled.Round(2)

	ids := model.Farms{}
	for id := range byFarm {
		ids[id] = nil
	}
	for _, id := range ids.IDs() {
		ft := byFarm[id]
		if f, ok := st.Farms[id]; ok && f != nil {
			ft.FarmName = f.Name
		}
		ft.Total = ft.Total.Round(2)
		s.ByFarm = append(s.ByFarm, *ft)
	}
	return s
}
