package document

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/webdev26/facture-api/pkg/apperror"
)

// Renderer serializes a Document tree into an A4 PDF. Rendering is
// independent of persistence: a failing render never touches the stored
// invoice.
type Renderer struct {
	labels labels
}

type labels struct {
	billedTo    string
	invoice     string
	number      string
	date        string
	description string
	unitPrice   string
	quantity    string
	lineTotal   string
	subtotal    string
	tax         string
	total       string
	closing     string
	signature   string
	bankTitle   string
	address     string
	email       string
	ice         string
}

// NewRenderer creates a PDF renderer with labels for the given language
func NewRenderer(language string) *Renderer {
	if language == "en" {
		return &Renderer{labels: labels{
			billedTo:    "INVOICE FOR",
			invoice:     "Invoice",
			number:      "No",
			date:        "Date",
			description: "Description",
			unitPrice:   "Unit price",
			quantity:    "Qty",
			lineTotal:   "Total",
			subtotal:    "Subtotal",
			tax:         "Tax",
			total:       "Total",
			closing:     "Invoice closed at the sum of",
			signature:   "SIGNATURE",
			bankTitle:   "Bank details:",
			address:     "Address",
			email:       "Email",
			ice:         "ICE",
		}}
	}
	return &Renderer{labels: labels{
		billedTo:    "FACTURE POUR",
		invoice:     "Facture",
		number:      "N°",
		date:        "Date",
		description: "Description",
		unitPrice:   "P.U.",
		quantity:    "Qté",
		lineTotal:   "Total",
		subtotal:    "Total-HT",
		tax:         "TVA",
		total:       "Total TTC",
		closing:     "Facture arrêtée à la somme de",
		signature:   "SIGNATURE",
		bankTitle:   "Coordonnées bancaires :",
		address:     "Adresse",
		email:       "Email",
		ice:         "ICE",
	}}
}

const (
	pageMargin  = 15.0
	tableLeft   = pageMargin
	tableWidth  = 180.0
	colIndex    = 12.0
	colDesc     = 108.0
	colPrice    = 25.0
	colQty      = 12.0
	colTotal    = 23.0
	rowHeight   = 8.0
	totalsLeft  = 115.0
	totalsWidth = 80.0
)

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Render serializes the document to PDF bytes
func (r *Renderer) Render(doc *Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 40)
	pdf.AddPage()

	r.header(pdf, tr, doc)
	r.table(pdf, tr, doc)
	r.totals(pdf, tr, doc)
	r.bankAndFooter(pdf, tr, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperror.NewRenderError(err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(pdf *gofpdf.Fpdf, tr func(string) string, doc *Document) {
	// Billed party block, left
	pdf.SetXY(pageMargin, 25)
	pdf.SetTextColor(0, 146, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(90, 5, tr(r.labels.billedTo), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetX(pageMargin)
	pdf.CellFormat(90, 8, tr(doc.Header.BilledTo.Name), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(pageMargin)
	pdf.CellFormat(90, 5, tr(r.labels.address+": "+doc.Header.BilledTo.Address), "", 1, "L", false, 0, "")
	pdf.SetX(pageMargin)
	pdf.CellFormat(90, 5, tr(r.labels.email+": "+doc.Header.BilledTo.Email), "", 1, "L", false, 0, "")
	pdf.SetX(pageMargin)
	pdf.CellFormat(90, 5, tr(r.labels.ice+": "+doc.Header.BilledTo.ICE), "", 1, "L", false, 0, "")

	// Issuer block, right
	pdf.SetXY(130, 25)
	pdf.SetTextColor(0, 146, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(65, 10, tr(r.labels.invoice), "", 2, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(65, 5, tr(r.labels.number+" "+doc.Header.Number), "", 2, "L", false, 0, "")
	pdf.CellFormat(65, 5, tr(r.labels.date+" : "+doc.Header.IssueDate), "", 2, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(65, 10, tr(doc.Header.Issuer.Name), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(65, 5, tr(doc.Header.Issuer.Address), "", 2, "L", false, 0, "")
	pdf.CellFormat(65, 5, tr(doc.Header.Issuer.City), "", 2, "L", false, 0, "")

	pdf.SetY(75)
}

func (r *Renderer) table(pdf *gofpdf.Fpdf, tr func(string) string, doc *Document) {
	// Header band
	pdf.SetFillColor(168, 218, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(tableLeft)
	pdf.CellFormat(colIndex, rowHeight, "#", "", 0, "L", true, 0, "")
	pdf.CellFormat(colDesc, rowHeight, tr(r.labels.description), "", 0, "L", true, 0, "")
	pdf.CellFormat(colPrice, rowHeight, tr(r.labels.unitPrice), "", 0, "R", true, 0, "")
	pdf.CellFormat(colQty, rowHeight, tr(r.labels.quantity), "", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, rowHeight, tr(r.labels.lineTotal), "", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(238, 238, 238)
	for _, line := range doc.Lines {
		name := line.Name
		if line.Description != "" {
			name += " - " + line.Description
		}
		pdf.SetX(tableLeft)
		pdf.CellFormat(colIndex, rowHeight, fmt.Sprintf("%d", line.Index), "", 0, "L", line.Shaded, 0, "")
		pdf.CellFormat(colDesc, rowHeight, tr(name), "", 0, "L", line.Shaded, 0, "")
		pdf.CellFormat(colPrice, rowHeight, money(line.UnitPrice), "", 0, "R", line.Shaded, 0, "")
		pdf.CellFormat(colQty, rowHeight, fmt.Sprintf("%d", line.Quantity), "", 0, "R", line.Shaded, 0, "")
		pdf.CellFormat(colTotal, rowHeight, money(line.LineTotal), "", 1, "R", line.Shaded, 0, "")
	}
}

func (r *Renderer) totals(pdf *gofpdf.Fpdf, tr func(string) string, doc *Document) {
	cur := " " + doc.Totals.Currency
	pdf.Ln(10)

	row := func(label, value string, band bool) {
		pdf.SetX(totalsLeft)
		if band {
			pdf.SetFillColor(168, 218, 255)
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(totalsWidth/2, rowHeight, tr(label), "", 0, "L", band, 0, "")
		pdf.CellFormat(totalsWidth/2, rowHeight, tr(value), "", 1, "R", band, 0, "")
	}

	row(r.labels.subtotal+" :", money(doc.Totals.Subtotal)+cur, false)
	if doc.Totals.ShowDiscount {
		row(doc.Totals.DiscountLabel+" :", "-"+money(doc.Totals.DiscountAmount)+cur, false)
	}
	row(r.labels.tax+" :", money(doc.Totals.TaxTotal)+cur, false)
	row(r.labels.total+" :", money(doc.Totals.Total)+cur, true)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(102, 102, 102)
	pdf.SetX(totalsLeft)
	pdf.MultiCell(totalsWidth, 4, tr(r.labels.closing+" "+doc.Totals.AmountInWords), "", "L", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetX(totalsLeft)
	pdf.CellFormat(totalsWidth, 12, tr(r.labels.signature), "", 1, "C", false, 0, "")
}

func (r *Renderer) bankAndFooter(pdf *gofpdf.Fpdf, tr func(string) string, doc *Document) {
	// Bank details are anchored above the legal strip regardless of the
	// table height.
	pdf.SetY(-60)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(0, 4, tr(r.labels.bankTitle), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 4, tr("Libellé du compte : "+doc.Bank.AccountLabel), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr("Devise : "+doc.Bank.Currency), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr("RIB : "+doc.Bank.RIB), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr("IBAN : "+doc.Bank.IBAN), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr("Code BIC : "+doc.Bank.BIC), "", 1, "L", false, 0, "")

	// Legal strip
	pdf.SetY(-25)
	pdf.SetFillColor(238, 238, 238)
	pdf.SetFont("Helvetica", "", 7)
	legal := fmt.Sprintf("Capital %s  |  R.C. %s  |  TP %s  |  I.F. %s  |  ICE %s",
		doc.Footer.Capital, doc.Footer.TradeRegister, doc.Footer.ProfessionalTax,
		doc.Footer.FiscalID, doc.Footer.ICE)
	pdf.CellFormat(120, 10, tr(legal), "", 0, "L", true, 0, "")

	pdf.SetFillColor(168, 218, 255)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(60, 10, tr(doc.Footer.ThankYou), "", 0, "C", true, 0, "")
}
