package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

const (
	reportBrand = "LUX G MODERN COLLECTION"
	reportTitle = "Sales Analysis Report"
)

// FileName is LUX-G_Sales_Report_<period>_<yyyy-mm-dd>.<ext>.
func FileName(p Period, generatedAt time.Time, f Format) string {
	return fmt.Sprintf("LUX-G_Sales_Report_%s_%s.%s", p, generatedAt.Format("2006-01-02"), f)
}

// Row is one exported sale line.
type Row struct {
	Product  string `csv:"Product Name"`
	Quantity int    `csv:"Qty"`
	Revenue  string `csv:"Revenue"`
	Profit   string `csv:"Profit"`
	SoldAt   string `csv:"Sold At"`
}

type summaryLine struct {
	Label string `csv:"Summary"`
	Value string `csv:"Value"`
}

// Money formats amounts as "<ISO code> 1,234.50".
type Money struct {
	unit    currency.Unit
	printer *message.Printer
}

func NewMoney(code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, err
	}
	return Money{unit: unit, printer: message.NewPrinter(language.English)}, nil
}

// Format rounds to cents and groups the whole part with the printer's locale.
// The digits come from the decimal itself, so large totals stay exact.
func (m Money) Format(amount decimal.Decimal) string {
	fixed := amount.Round(2)
	sign := ""
	if fixed.IsNegative() {
		sign = "-"
		fixed = fixed.Neg()
	}
	digits := fixed.StringFixed(2)
	cents := digits[len(digits)-2:]
	return m.printer.Sprintf("%s %s%d.%s", m.unit.String(), sign, fixed.IntPart(), cents)
}

// Rows renders one line per sale. Sale times are shown in loc; a nil loc keeps
// the zone the store returned.
func Rows(sales []domain.SaleWithProduct, money Money, loc *time.Location) []Row {
	rows := make([]Row, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, Row{
			Product:  s.Label(),
			Quantity: s.Quantity,
			Revenue:  money.Format(s.Revenue()),
			Profit:   money.Format(s.Profit),
			SoldAt:   inLocation(s.SoldAt, loc).Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

func summaryLines(sum Summary, money Money) []summaryLine {
	best := "N/A"
	if sum.BestSeller != nil {
		best = fmt.Sprintf("%s (%d units)", sum.BestSeller.Name, sum.BestSeller.Quantity)
	}
	return []summaryLine{
		{"Total Revenue", money.Format(sum.TotalRevenue)},
		{"Total Profit", money.Format(sum.TotalProfit)},
		{"Total Sales Items", fmt.Sprintf("%d", sum.TotalItems)},
		{"Best Selling Product", best},
	}
}

// WriteCSV writes the sale rows, a blank line, then the summary block.
func WriteCSV(w io.Writer, r *Report, money Money) error {
	rows := Rows(r.Sales, money, r.Location)
	if len(rows) == 0 {
		if _, err := io.WriteString(w, "Product Name,Qty,Revenue,Profit,Sold At\n"); err != nil {
			return err
		}
	} else if err := gocsv.Marshal(rows, w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return gocsv.Marshal(summaryLines(r.Summary, money), w)
}

// WriteXLSX builds a workbook with a "Sales" sheet (header, rows, totals) and
// a "Summary" sheet.
func WriteXLSX(w io.Writer, r *Report, money Money) error {
	f := excelize.NewFile()
	const sales = "Sales"
	const summary = "Summary"
	f.SetSheetName("Sheet1", sales)

	f.SetCellValue(sales, "A1", reportBrand)
	f.SetCellValue(sales, "A2", reportTitle)
	f.SetCellValue(sales, "A3", "Period: "+cases.Title(language.English).String(string(r.Period)))
	f.SetCellValue(sales, "D3", "Date Generated: "+inLocation(r.GeneratedAt, r.Location).Format("2006-01-02 15:04"))

	headers := []string{"Product Name", "Qty", "Revenue", "Profit", "Sold At"}
	for i, h := range headers {
		f.SetCellValue(sales, cell(i, 5), h)
	}
	line := 6
	for _, row := range Rows(r.Sales, money, r.Location) {
		f.SetCellValue(sales, cell(0, line), row.Product)
		f.SetCellValue(sales, cell(1, line), row.Quantity)
		f.SetCellValue(sales, cell(2, line), row.Revenue)
		f.SetCellValue(sales, cell(3, line), row.Profit)
		f.SetCellValue(sales, cell(4, line), row.SoldAt)
		line++
	}
	f.SetCellValue(sales, cell(0, line), "Total")
	f.SetCellValue(sales, cell(1, line), r.Summary.TotalItems)
	f.SetCellValue(sales, cell(2, line), money.Format(r.Summary.TotalRevenue))
	f.SetCellValue(sales, cell(3, line), money.Format(r.Summary.TotalProfit))

	f.NewSheet(summary)
	for i, s := range summaryLines(r.Summary, money) {
		f.SetCellValue(summary, cell(0, i+1), s.Label)
		f.SetCellValue(summary, cell(1, i+1), s.Value)
	}
	return f.Write(w)
}

// cell converts a zero-based column and one-based row into an "A1" reference.
// Reports never exceed 26 columns.
func cell(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
