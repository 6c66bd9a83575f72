package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/report"
	"github.com/mos234/vegetable-orders/internal/suppliers"
)

// Sheet names of the monthly workbook.
const (
	SheetSummary   = "summary"
	SheetDetail    = "detail"
	SheetOrders    = "orders"
	SheetSuppliers = "suppliers"
)

var (
	summaryWidths   = []float64{25, 20}
	detailWidths    = []float64{12, 20, 12, 12, 20, 10, 10, 12, 12, 10}
	ordersWidths    = []float64{12, 20, 15, 12, 12, 8, 12, 10}
	suppliersWidths = []float64{25, 15, 30, 15}
)

type sheet struct {
	name   string
	table  Table
	widths []float64
}

// MonthlyFilename returns vegetable_report_MM_YYYY.xlsx.
func MonthlyFilename(month time.Month, year int) string {
	return fmt.Sprintf("vegetable_report_%02d_%d.xlsx", int(month), year)
}

// WriteMonthlyXLSX encodes the summary and detail sheets of r.
func WriteMonthlyXLSX(w io.Writer, r report.MonthlyReport, labels Labels, generatedAt time.Time) error {
	return writeWorkbook(w, labels,
		sheet{name: SheetSummary, table: SummaryTable(r, labels, generatedAt), widths: summaryWidths},
		sheet{name: SheetDetail, table: DetailTable(r.Orders, labels), widths: detailWidths},
	)
}

// WriteOrdersXLSX encodes a single-sheet order list.
func WriteOrdersXLSX(w io.Writer, list []orders.Order, labels Labels) error {
	return writeWorkbook(w, labels, sheet{name: SheetOrders, table: OrdersTable(list, labels), widths: ordersWidths})
}

// WriteSuppliersXLSX encodes a single-sheet supplier list.
func WriteSuppliersXLSX(w io.Writer, list []suppliers.Supplier, labels Labels) error {
	return writeWorkbook(w, labels, sheet{name: SheetSuppliers, table: SuppliersTable(list, labels), widths: suppliersWidths})
}

func writeWorkbook(w io.Writer, labels Labels, sheets ...sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	rtl := labels.Localizer.Tag() == language.Hebrew
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("xlsx: add sheet %s: %w", s.name, err)
		}
		if err := fillSheet(f, s); err != nil {
			return err
		}
		if rtl {
			if err := f.SetSheetView(s.name, -1, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
				return fmt.Errorf("xlsx: sheet view %s: %w", s.name, err)
			}
		}
	}
	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func fillSheet(f *excelize.File, s sheet) error {
	for i, row := range s.table {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(s.name, cell, &values); err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", s.name, i+1, err)
		}
	}
	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return fmt.Errorf("xlsx: %s width: %w", s.name, err)
		}
	}
	return nil
}
