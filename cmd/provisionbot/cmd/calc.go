package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"provisionbot/internal/commission"
	"provisionbot/internal/format"
	"provisionbot/internal/storage"
)

var (
	calcInputs = commission.Defaults()
	calcExport string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Räknar en kalkyl direkt i terminalen",
	Long: `Räknar provision och nettolön utan Telegram eller databas.

Värden utanför tillåtna intervall justeras till närmaste gräns.`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	f := calcCmd.Flags()
	f.Float64Var(&calcInputs.TotalDeals, "deals", calcInputs.TotalDeals, "antal affärer per år")
	f.Float64Var(&calcInputs.StartupFee, "startup", calcInputs.StartupFee, "fast startavgift (kr)")
	f.Float64Var(&calcInputs.MonthlyFee, "monthly", calcInputs.MonthlyFee, "månadsavgift (kr)")
	f.Float64Var(&calcInputs.GuaranteedPeriod, "guarantee", calcInputs.GuaranteedPeriod, "garantiperiod (mån)")
	f.Float64Var(&calcInputs.LifetimeMonths, "lifetime", calcInputs.LifetimeMonths, "kundlivslängd (mån)")
	f.StringVar(&calcExport, "export", "", "skriv även kalkylen till denna .xlsx-fil")

	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	in := commission.Clamp(calcInputs)
	results := commission.Calculate(in)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	margin := "–"
	if m, ok := commission.ProfitMargin(results); ok {
		margin = format.Percent(m)
	}

	rows := [][2]string{
		{"Provision mötesbokare", format.Currency(results.SetterCommission)},
		{"Provision säljare", format.Currency(results.SalesCommission)},
		{"Total intäkt per affär", format.Currency(results.TotalRevenuePerDeal)},
		{"Total provisionskostnad", format.Currency(results.TotalCommissionPerDeal)},
		{"Musse netto per affär", format.Currency(results.MusseNetPerDeal)},
		{"Musses årslön", format.Currency(results.MusseYearlyNet)},
		{"Musses månadslön", format.Currency(results.MusseMonthlyNet)},
		{"Vinstmarginal", margin},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t\n", r[0], r[1])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if calcExport == "" {
		return nil
	}

	data, err := storage.ExportCalculationToExcel(in, results)
	if err != nil {
		return err
	}
	if err := os.WriteFile(calcExport, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", calcExport, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sparade %s\n", calcExport)
	return nil
}
