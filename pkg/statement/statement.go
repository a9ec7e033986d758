// Package statement renders a customer's transaction log as a
// downloadable statement, in PDF or XLSX form.
package statement

import (
	"fmt"
	"io"

	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

// Format selects the statement output format.
type Format string

const (
	PDF  Format = "pdf"
	XLSX Format = "xlsx"
)

// ParseFormat converts external input into a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case PDF, XLSX:
		return Format(s), true
	default:
		return "", false
	}
}

var columns = []string{"Date", "Type", "Account", "Amount", "Balance", "Description"}

// Write renders the customer's statement in the given format.
func Write(w io.Writer, c *customer.Customer, format Format) error {
	switch format {
	case PDF:
		return writePDF(w, c)
	case XLSX:
		return writeXLSX(w, c)
	default:
		return fmt.Errorf("unsupported statement format %q", format)
	}
}

func writePDF(w io.Writer, c *customer.Customer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Account Statement")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 8, fmt.Sprintf("Customer %s - %s %s", c.ID(), c.FirstName(), c.LastName()))
	pdf.Ln(12)

	widths := []float64{32, 28, 24, 24, 24, 58}
	pdf.SetFont("Arial", "B", 10)
	for i, col := range columns {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "", false, 0, "")
	}
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	for _, tx := range c.Transactions() {
		cells := []string{
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			string(tx.Kind),
			string(tx.Account),
			tx.Amount.String(),
			tx.BalanceAfter.String(),
			tx.Description,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(7)
	}
	return pdf.Output(w)
}

func writeXLSX(w io.Writer, c *customer.Customer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Statement")
	if err != nil {
		return err
	}

	row := sheet.AddRow()
	for _, col := range columns {
		row.AddCell().SetValue(col)
	}

	for _, tx := range c.Transactions() {
		row = sheet.AddRow()
		row.AddCell().SetValue(tx.Timestamp.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(string(tx.Kind))
		row.AddCell().SetValue(string(tx.Account))
		row.AddCell().SetValue(tx.Amount.String())
		row.AddCell().SetValue(tx.BalanceAfter.String())
		row.AddCell().SetValue(tx.Description)
	}
	return file.Write(w)
}
