package bot

import (
	"fmt"
	"html"
	"math"
	"strings"

	"provisionbot/internal/commission"
	"provisionbot/internal/format"
	"provisionbot/internal/storage"
)

const barWidth = 12

var fieldIcons = map[commission.Field]string{
	commission.FieldTotalDeals:       "👥",
	commission.FieldStartupFee:       "💳",
	commission.FieldMonthlyFee:       "💵",
	commission.FieldGuaranteedPeriod: "📅",
	commission.FieldLifetimeMonths:   "📈",
}

// FormatValue renders one input with its unit, e.g. "15 000 kr" or "3 mån".
func FormatValue(r commission.Range, v float64) string {
	if r.Unit == "kr" {
		return format.Currency(v)
	}
	return format.Number(v) + " " + r.Unit
}

// FormatMargin renders the profit margin, or "–" when revenue is zero.
func FormatMargin(results commission.Results) string {
	margin, ok := commission.ProfitMargin(results)
	if !ok {
		return "–"
	}
	return format.Percent(margin)
}

// FormatDashboard renders inputs and every result view as Telegram HTML.
func FormatDashboard(in commission.Inputs, results commission.Results) string {
	var sb strings.Builder

	sb.WriteString("🧮 <b>Provisionskalkyl</b>\n\n")

	sb.WriteString("<b>Förutsättningar</b>\n")
	for _, r := range commission.Fields {
		fmt.Fprintf(&sb, "%s %s: %s\n", fieldIcons[r.Field], r.Label, FormatValue(r, in.Get(r.Field)))
	}

	fmt.Fprintf(&sb, "\n💰 <b>Musses månadslön: %s</b>\n", format.Currency(results.MusseMonthlyNet))
	sb.WriteString("<i>Genomsnittlig nettolön per månad</i>\n")
	fmt.Fprintf(&sb, "📆 Musses årslön: <b>%s</b>\n", format.Currency(results.MusseYearlyNet))
	fmt.Fprintf(&sb, "<i>Baserat på %s affärer</i>\n\n", format.Number(in.TotalDeals))

	fmt.Fprintf(&sb, "Provision mötesbokare: <b>%s</b> per affär\n", format.Currency(results.SetterCommission))
	fmt.Fprintf(&sb, "Provision säljare: <b>%s</b> per affär\n", format.Currency(results.SalesCommission))
	fmt.Fprintf(&sb, "Total intäkt kund: <b>%s</b> över %s månader\n\n",
		format.Currency(results.TotalRevenuePerDeal), format.Number(in.LifetimeMonths))

	sb.WriteString("<b>Fördelning per affär</b>\n")
	sb.WriteString(FormatDistribution(commission.Distribution(results)))

	sb.WriteString("\n<b>Summering</b>\n")
	fmt.Fprintf(&sb, "Total provisionskostnad (per affär): %s\n", format.Currency(results.TotalCommissionPerDeal))
	fmt.Fprintf(&sb, "Vinstmarginal per affär: %s\n", FormatMargin(results))
	fmt.Fprintf(&sb, "Musse netto (år): <b>%s</b>\n\n", format.Currency(results.MusseYearlyNet))

	sb.WriteString(FormatComparison(commission.Comparison(in, results)))

	return sb.String()
}

// FormatDistribution draws a horizontal bar per slice, scaled to the
// largest positive value. Negative values get an empty bar.
func FormatDistribution(slices []commission.Slice) string {
	maxValue := 0.0
	nameWidth := 0
	for _, s := range slices {
		maxValue = math.Max(maxValue, s.Value)
		nameWidth = max(nameWidth, len([]rune(s.Name)))
	}

	var sb strings.Builder
	sb.WriteString("<pre>")
	for _, s := range slices {
		filled := 0
		if maxValue > 0 && s.Value > 0 {
			filled = int(math.Round(s.Value / maxValue * barWidth))
		}
		fmt.Fprintf(&sb, "%s %s%s %s\n",
			padRight(s.Name, nameWidth),
			strings.Repeat("█", filled),
			strings.Repeat("░", barWidth-filled),
			format.Currency(s.Value))
	}
	sb.WriteString("</pre>")
	return sb.String()
}

// FormatComparison renders the per-deal and yearly rows as a fixed-width table.
func FormatComparison(rows []commission.ComparisonRow) string {
	header := []string{"", "Intäkt", "Kostnad", "Vinst"}
	table := [][]string{header}
	for _, row := range rows {
		table = append(table, []string{
			row.Name,
			format.Currency(row.Revenue),
			format.Currency(row.Cost),
			format.Currency(row.Profit),
		})
	}

	widths := make([]int, len(header))
	for _, line := range table {
		for i, cell := range line {
			widths[i] = max(widths[i], len([]rune(cell)))
		}
	}

	var sb strings.Builder
	sb.WriteString("<pre>")
	for _, line := range table {
		for i, cell := range line {
			if i == 0 {
				sb.WriteString(padRight(cell, widths[i]))
				continue
			}
			sb.WriteString("  ")
			sb.WriteString(padLeft(cell, widths[i]))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("</pre>")
	return sb.String()
}

func FormatPresetList(presets []storage.Preset) string {
	if len(presets) == 0 {
		return "Inga sparade förinställningar."
	}

	var sb strings.Builder
	sb.WriteString("📚 <b>Förinställningar</b>\n")
	for _, p := range presets {
		in := p.Inputs()
		fmt.Fprintf(&sb, "\n<b>%s</b>", html.EscapeString(p.Name))
		if p.Description != "" {
			fmt.Fprintf(&sb, " – %s", html.EscapeString(p.Description))
		}
		fmt.Fprintf(&sb, "\n%s affärer, start %s, månad %s\n",
			format.Number(in.TotalDeals), format.Currency(in.StartupFee), format.Currency(in.MonthlyFee))
	}
	sb.WriteString("\nLadda med /preset &lt;namn&gt;")
	return sb.String()
}

func FormatValuePrompt(r commission.Range, current float64) string {
	return fmt.Sprintf("✏️ Ange %s (%s–%s). Nu: %s",
		strings.ToLower(r.Label),
		FormatValue(r, r.Min),
		FormatValue(r, r.Max),
		FormatValue(r, current))
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
