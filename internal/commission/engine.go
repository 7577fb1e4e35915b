package commission

// MonthsPerYear is the fixed amortization divisor for the monthly net.
const MonthsPerYear = 12

// CommissionMonthlyMultiplier is how many monthly fees each role earns per deal.
const CommissionMonthlyMultiplier = 1.5

type Inputs struct {
	TotalDeals       float64 `json:"totalDeals"`
	StartupFee       float64 `json:"startupFee"`
	MonthlyFee       float64 `json:"monthlyFee"`
	GuaranteedPeriod float64 `json:"guaranteedPeriod"`
	LifetimeMonths   float64 `json:"lifetimeMonths"`
}

type Results struct {
	SetterCommission       float64 `json:"setterCommission"`
	SalesCommission        float64 `json:"salesCommission"`
	TotalRevenuePerDeal    float64 `json:"totalRevenuePerDeal"`
	TotalCommissionPerDeal float64 `json:"totalCommissionPerDeal"`
	MusseNetPerDeal        float64 `json:"musseNetPerDeal"`
	MusseYearlyNet         float64 `json:"musseYearlyNet"`
	MusseMonthlyNet        float64 `json:"musseMonthlyNet"`
}

// Calculate derives commissions and the owner's net from in. It never fails:
// a non-positive guaranteed period is treated as one month, and a negative
// net is a valid outcome.
func Calculate(in Inputs) Results {
	divisor := in.GuaranteedPeriod
	if divisor <= 0 {
		divisor = 1
	}

	// Both roles are paid by the same formula today but are reported
	// separately so either can change on its own.
	setter := in.StartupFee/divisor + in.MonthlyFee*CommissionMonthlyMultiplier
	sales := in.StartupFee/divisor + in.MonthlyFee*CommissionMonthlyMultiplier

	revenue := in.StartupFee + in.MonthlyFee*in.LifetimeMonths
	totalCommission := setter + sales
	netPerDeal := revenue - totalCommission
	yearly := in.TotalDeals * netPerDeal

	return Results{
		SetterCommission:       setter,
		SalesCommission:        sales,
		TotalRevenuePerDeal:    revenue,
		TotalCommissionPerDeal: totalCommission,
		MusseNetPerDeal:        netPerDeal,
		MusseYearlyNet:         yearly,
		MusseMonthlyNet:        yearly / MonthsPerYear,
	}
}

// ProfitMargin returns the net share of revenue per deal in percent.
// ok is false when there is no revenue to divide by.
func ProfitMargin(r Results) (percent float64, ok bool) {
	if r.TotalRevenuePerDeal == 0 {
		return 0, false
	}
	return r.MusseNetPerDeal / r.TotalRevenuePerDeal * 100, true
}
