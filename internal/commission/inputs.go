package commission

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrUnknownField  = errors.New("unknown input field")
	ErrInvalidNumber = errors.New("invalid number")
)

type Field string

const (
	FieldTotalDeals       Field = "deals"
	FieldStartupFee       Field = "startup"
	FieldMonthlyFee       Field = "monthly"
	FieldGuaranteedPeriod Field = "guarantee"
	FieldLifetimeMonths   Field = "lifetime"
)

// Range is the reference widget configuration for one input.
type Range struct {
	Field   Field
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

// Fields lists the inputs in display order.
var Fields = []Range{
	{Field: FieldTotalDeals, Label: "Antal affärer (år)", Unit: "st", Min: 1, Max: 100, Step: 1, Default: 10},
	{Field: FieldStartupFee, Label: "Fast startavgift", Unit: "kr", Min: 0, Max: 100000, Step: 500, Default: 15000},
	{Field: FieldMonthlyFee, Label: "Månadsavgift", Unit: "kr", Min: 0, Max: 20000, Step: 100, Default: 2500},
	{Field: FieldGuaranteedPeriod, Label: "Garantiperiod", Unit: "mån", Min: 1, Max: 12, Step: 1, Default: 3},
	{Field: FieldLifetimeMonths, Label: "Kundlivslängd", Unit: "mån", Min: 1, Max: 60, Step: 1, Default: 12},
}

var fieldAliases = map[string]Field{
	"deals":     FieldTotalDeals,
	"affärer":   FieldTotalDeals,
	"startup":   FieldStartupFee,
	"start":     FieldStartupFee,
	"monthly":   FieldMonthlyFee,
	"månad":     FieldMonthlyFee,
	"guarantee": FieldGuaranteedPeriod,
	"garanti":   FieldGuaranteedPeriod,
	"lifetime":  FieldLifetimeMonths,
	"livslängd": FieldLifetimeMonths,
}

// Defaults returns the reference starting configuration.
func Defaults() Inputs {
	var in Inputs
	for _, r := range Fields {
		in = in.With(r.Field, r.Default)
	}
	return in
}

func Lookup(f Field) (Range, error) {
	for _, r := range Fields {
		if r.Field == f {
			return r, nil
		}
	}
	return Range{}, fmt.Errorf("%w: %q", ErrUnknownField, f)
}

// ParseField resolves a user-typed field name or alias.
func ParseField(name string) (Field, error) {
	f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// Clamp pins v into [Min, Max]. NaN falls back to the default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}
	return math.Min(r.Max, math.Max(r.Min, v))
}

// Clamp returns a copy of in with every field inside its reference range.
func Clamp(in Inputs) Inputs {
	out := in
	for _, r := range Fields {
		out = out.With(r.Field, r.Clamp(out.Get(r.Field)))
	}
	return out
}

// Get reads one field. Unknown fields read as zero.
func (in Inputs) Get(f Field) float64 {
	switch f {
	case FieldTotalDeals:
		return in.TotalDeals
	case FieldStartupFee:
		return in.StartupFee
	case FieldMonthlyFee:
		return in.MonthlyFee
	case FieldGuaranteedPeriod:
		return in.GuaranteedPeriod
	case FieldLifetimeMonths:
		return in.LifetimeMonths
	}
	return 0
}

// With returns a copy of in with f set to v; in itself is left untouched.
func (in Inputs) With(f Field, v float64) Inputs {
	switch f {
	case FieldTotalDeals:
		in.TotalDeals = v
	case FieldStartupFee:
		in.StartupFee = v
	case FieldMonthlyFee:
		in.MonthlyFee = v
	case FieldGuaranteedPeriod:
		in.GuaranteedPeriod = v
	case FieldLifetimeMonths:
		in.LifetimeMonths = v
	}
	return in
}

// Step moves f by delta steps of its range and clamps the result.
func (in Inputs) Step(f Field, delta int) (Inputs, error) {
	r, err := Lookup(f)
	if err != nil {
		return in, err
	}
	return in.With(f, r.Clamp(in.Get(f)+float64(delta)*r.Step)), nil
}

// unitSuffixes are the units a typed value may end with.
var unitSuffixes = []string{"kr", "mån", "st"}

// ParseAmount reads a number typed the Swedish way: spaces as thousand
// separators, comma or dot decimals and an optional trailing "kr", "mån"
// or "st". Any other letter makes the input invalid.
func ParseAmount(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	for _, unit := range unitSuffixes {
		if strings.HasSuffix(lower, unit) {
			trimmed = trimmed[:len(trimmed)-len(unit)]
			break
		}
	}

	var sb strings.Builder
	for _, r := range trimmed {
		switch {
		case unicode.IsSpace(r):
		case r >= '0' && r <= '9', r == '.', r == '-':
			sb.WriteRune(r)
		case r == ',':
			sb.WriteRune('.')
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
		}
	}

	cleaned := sb.String()
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}
	return v, nil
}
