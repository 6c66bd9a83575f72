package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/mos234/vegetable-orders/internal/report"
)

// WriteSummaryCSV emits the summary table of r as CSV.
func WriteSummaryCSV(w io.Writer, r report.MonthlyReport, labels Labels, generatedAt time.Time) error {
	return writeTableCSV(w, SummaryTable(r, labels, generatedAt))
}

// WriteDetailCSV emits the detail table of r as CSV.
func WriteDetailCSV(w io.Writer, r report.MonthlyReport, labels Labels) error {
	return writeTableCSV(w, DetailTable(r.Orders, labels))
}

func writeTableCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	for _, row := range table {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return formatFloat(value)
	default:
		return ""
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
