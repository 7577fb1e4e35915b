package commission

// Slice is one bar of the per-deal distribution chart.
type Slice struct {
	Name  string
	Value float64
	Color string
}

type ComparisonRow struct {
	Name    string
	Revenue float64
	Cost    float64
	Profit  float64
}

const (
	SliceSetter = "Mötesbokare"
	SliceSales  = "Säljare"
	SliceNet    = "Musse (netto)"

	RowPerDeal = "Per affär"
	RowYear    = "Totalt år"
)

// Distribution splits one deal's revenue between the two roles and the owner.
func Distribution(r Results) []Slice {
	return []Slice{
		{Name: SliceSetter, Value: r.SetterCommission, Color: "#10b981"},
		{Name: SliceSales, Value: r.SalesCommission, Color: "#0ea5e9"},
		{Name: SliceNet, Value: r.MusseNetPerDeal, Color: "#4f46e5"},
	}
}

// Comparison returns per-deal and whole-period revenue, cost and profit.
func Comparison(in Inputs, r Results) []ComparisonRow {
	return []ComparisonRow{
		{
			Name:    RowPerDeal,
			Revenue: r.TotalRevenuePerDeal,
			Cost:    r.TotalCommissionPerDeal,
			Profit:  r.MusseNetPerDeal,
		},
		{
			Name:    RowYear,
			Revenue: r.TotalRevenuePerDeal * in.TotalDeals,
			Cost:    r.TotalCommissionPerDeal * in.TotalDeals,
			Profit:  r.MusseYearlyNet,
		},
	}
}
