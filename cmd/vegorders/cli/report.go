package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mos234/vegetable-orders/internal/report"
	"github.com/mos234/vegetable-orders/internal/report/export"
)

func newReportCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "report", Short: "Monthly expense reports"}

	var month, year int
	var xlsxPath, csvPart string
	var asJSON bool
	monthly := &cobra.Command{
		Use:   "monthly",
		Short: "Summarize one month; defaults to the current month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("invalid month %d", month)
			}
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			all, err := c.Orders.List(cmd.Context())
			if err != nil {
				return err
			}
			rep := report.Monthly(all, time.Month(month), year)
			out := cmd.OutOrStdout()

			switch {
			case xlsxPath != "":
				if len(rep.Orders) == 0 {
					return fmt.Errorf("no orders in %02d/%d", month, year)
				}
				if xlsxPath == "-" {
					xlsxPath = export.MonthlyFilename(time.Month(month), year)
				}
				f, err := os.Create(xlsxPath)
				if err != nil {
					return err
				}
				if err := export.WriteMonthlyXLSX(f, rep, c.Labels, now); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "wrote %s\n", xlsxPath)
				return nil
			case csvPart == "summary":
				return export.WriteSummaryCSV(out, rep, c.Labels, now)
			case csvPart == "detail":
				return export.WriteDetailCSV(out, rep, c.Labels)
			case csvPart != "":
				return fmt.Errorf("unknown csv part %q (summary or detail)", csvPart)
			case asJSON:
				return writeJSON(out, rep)
			}

			_, _ = fmt.Fprintln(out, c.Labels.MonthLabel(time.Month(month), year))
			_, _ = fmt.Fprintf(out, "orders: %d  total: %s  average: %s  suppliers: %d\n",
				rep.Summary.TotalOrders, c.Labels.Money(rep.Summary.TotalExpense),
				c.Labels.Money(rep.Summary.AverageOrder), rep.Summary.ActiveSuppliers)
			for _, st := range rep.Suppliers {
				_, _ = fmt.Fprintf(out, "  %s: %s (%d, %.1f%%)\n", st.SupplierName, c.Labels.Money(st.Total), st.Count, st.Percent)
			}
			return nil
		},
	}
	monthly.Flags().IntVar(&month, "month", 0, "month 1-12")
	monthly.Flags().IntVar(&year, "year", 0, "four-digit year")
	monthly.Flags().StringVar(&xlsxPath, "xlsx", "", "write the workbook to this path (- for the default file name)")
	monthly.Flags().StringVar(&csvPart, "csv", "", "print the summary or detail sheet as CSV")
	monthly.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.AddCommand(monthly)
	return cmd
}
