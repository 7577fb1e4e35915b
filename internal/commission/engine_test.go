package commission

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultInputs() Inputs {
	return Inputs{
		TotalDeals:       10,
		StartupFee:       15000,
		MonthlyFee:       2500,
		GuaranteedPeriod: 3,
		LifetimeMonths:   12,
	}
}

func TestCalculate_DefaultConfiguration(t *testing.T) {
	r := Calculate(defaultInputs())

	assert.Equal(t, 8750.0, r.SetterCommission)
	assert.Equal(t, 8750.0, r.SalesCommission)
	assert.Equal(t, 17500.0, r.TotalCommissionPerDeal)
	assert.Equal(t, 45000.0, r.TotalRevenuePerDeal)
	assert.Equal(t, 27500.0, r.MusseNetPerDeal)
	assert.Equal(t, 275000.0, r.MusseYearlyNet)
	assert.InDelta(t, 22916.67, r.MusseMonthlyNet, 0.01)
}

func TestCalculate_ZeroGuaranteedPeriodUsesOneMonth(t *testing.T) {
	in := defaultInputs()
	in.GuaranteedPeriod = 0

	r := Calculate(in)

	one := defaultInputs()
	one.GuaranteedPeriod = 1
	assert.Equal(t, Calculate(one), r)

	assert.Equal(t, 18750.0, r.SetterCommission)
	assert.Equal(t, 18750.0, r.SalesCommission)
	assert.Equal(t, 37500.0, r.TotalCommissionPerDeal)
	assert.Equal(t, 7500.0, r.MusseNetPerDeal)
	assert.Equal(t, 75000.0, r.MusseYearlyNet)
	assert.Equal(t, 6250.0, r.MusseMonthlyNet)
	assertFinite(t, r)
}

func TestCalculate_NegativeGuaranteedPeriodUsesOneMonth(t *testing.T) {
	in := defaultInputs()
	in.GuaranteedPeriod = -4

	assert.Equal(t, 18750.0, Calculate(in).SetterCommission)
}

func TestCalculate_ZeroFees(t *testing.T) {
	in := defaultInputs()
	in.StartupFee = 0
	in.MonthlyFee = 0

	r := Calculate(in)

	assert.Zero(t, r.SetterCommission)
	assert.Zero(t, r.SalesCommission)
	assert.Zero(t, r.TotalCommissionPerDeal)
	assert.Zero(t, r.TotalRevenuePerDeal)
	assert.Zero(t, r.MusseNetPerDeal)
	assert.Zero(t, r.MusseYearlyNet)
	assert.Zero(t, r.MusseMonthlyNet)
}

func TestCalculate_NegativeNetIsReported(t *testing.T) {
	in := Inputs{TotalDeals: 5, StartupFee: 12000, MonthlyFee: 1000, GuaranteedPeriod: 1, LifetimeMonths: 1}

	r := Calculate(in)

	// 2 × (12000 + 1500) commissions against 13000 revenue.
	assert.Equal(t, 27000.0, r.TotalCommissionPerDeal)
	assert.Equal(t, 13000.0, r.TotalRevenuePerDeal)
	assert.Equal(t, -14000.0, r.MusseNetPerDeal)
	assert.Equal(t, -70000.0, r.MusseYearlyNet)
}

func TestCalculate_Invariants(t *testing.T) {
	for _, in := range inputGrid() {
		r := Calculate(in)

		require.Equal(t, r.SetterCommission+r.SalesCommission, r.TotalCommissionPerDeal, "%+v", in)
		require.Equal(t, r.TotalRevenuePerDeal-r.TotalCommissionPerDeal, r.MusseNetPerDeal, "%+v", in)
		require.Equal(t, in.TotalDeals*r.MusseNetPerDeal, r.MusseYearlyNet, "%+v", in)
		require.Equal(t, r.MusseYearlyNet/12, r.MusseMonthlyNet, "%+v", in)
		require.Equal(t, r.SetterCommission, r.SalesCommission, "%+v", in)
		assertFinite(t, r)
	}
}

func TestCalculate_MonthlyFeeIsMonotonic(t *testing.T) {
	for _, in := range inputGrid() {
		if in.LifetimeMonths <= 0 {
			continue
		}
		higher := in
		higher.MonthlyFee += 100

		lo, hi := Calculate(in), Calculate(higher)

		require.Greater(t, hi.TotalRevenuePerDeal, lo.TotalRevenuePerDeal, "%+v", in)
		require.Greater(t, hi.TotalCommissionPerDeal, lo.TotalCommissionPerDeal, "%+v", in)
	}
}

func TestCalculate_DoesNotMutateInputs(t *testing.T) {
	in := defaultInputs()
	in.GuaranteedPeriod = 0
	copied := in

	Calculate(in)

	assert.Equal(t, copied, in)
}

func TestProfitMargin(t *testing.T) {
	margin, ok := ProfitMargin(Calculate(defaultInputs()))
	require.True(t, ok)
	assert.InDelta(t, 61.11, margin, 0.01)

	zero := defaultInputs()
	zero.StartupFee, zero.MonthlyFee = 0, 0
	margin, ok = ProfitMargin(Calculate(zero))
	assert.False(t, ok)
	assert.Zero(t, margin)
}

func inputGrid() []Inputs {
	var grid []Inputs
	for _, deals := range []float64{0, 1, 2.5, 10, 100} {
		for _, startup := range []float64{0, 500, 15000, 100000} {
			for _, monthly := range []float64{0, 100, 2500, 20000} {
				for _, period := range []float64{0, 1, 3, 12} {
					for _, lifetime := range []float64{1, 12, 60} {
						grid = append(grid, Inputs{
							TotalDeals:       deals,
							StartupFee:       startup,
							MonthlyFee:       monthly,
							GuaranteedPeriod: period,
							LifetimeMonths:   lifetime,
						})
					}
				}
			}
		}
	}
	return grid
}

func assertFinite(t *testing.T, r Results) {
	t.Helper()
	for _, v := range []float64{
		r.SetterCommission, r.SalesCommission, r.TotalRevenuePerDeal,
		r.TotalCommissionPerDeal, r.MusseNetPerDeal, r.MusseYearlyNet, r.MusseMonthlyNet,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite result: %+v", r)
		}
	}
}
