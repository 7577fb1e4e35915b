package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribution(t *testing.T) {
	slices := Distribution(Calculate(defaultInputs()))

	require.Len(t, slices, 3)
	assert.Equal(t, Slice{Name: SliceSetter, Value: 8750, Color: "#10b981"}, slices[0])
	assert.Equal(t, Slice{Name: SliceSales, Value: 8750, Color: "#0ea5e9"}, slices[1])
	assert.Equal(t, Slice{Name: SliceNet, Value: 27500, Color: "#4f46e5"}, slices[2])
}

func TestComparison(t *testing.T) {
	in := defaultInputs()
	rows := Comparison(in, Calculate(in))

	require.Len(t, rows, 2)
	assert.Equal(t, ComparisonRow{Name: RowPerDeal, Revenue: 45000, Cost: 17500, Profit: 27500}, rows[0])
	assert.Equal(t, ComparisonRow{Name: RowYear, Revenue: 450000, Cost: 175000, Profit: 275000}, rows[1])
}
