package document

import (
	"github.com/webdev26/facture-api/internal/application/pricing"
	"github.com/webdev26/facture-api/internal/domain/entity"
)

// Options controls locale-dependent parts of the projection. Defaults match
// the Moroccan fiscal documents the layout was designed for.
type Options struct {
	Language    string // "fr" or "en", drives the amount-in-words caption
	Currency    string // display code, e.g. "MAD"
	UnitWord    string // currency unit in words, e.g. "dirhams"
	SubunitWord string // currency sub-unit in words, e.g. "centimes"
	DateFormat  string // Go reference layout for the issue date
}

// DefaultOptions returns the French/MAD rendering options
func DefaultOptions() Options {
	return Options{
		Language:    "fr",
		Currency:    "MAD",
		UnitWord:    "dirhams",
		SubunitWord: "centimes",
		DateFormat:  "02/01/2006",
	}
}

// Party is one identity block of the document header
type Party struct {
	Name    string
	Address string
	City    string
	Email   string
	Phone   string
	ICE     string
}

// Header carries the issuer and billed-party blocks plus document identity
type Header struct {
	LogoURL   string
	Title     string
	Number    string
	IssueDate string
	Issuer    Party
	BilledTo  Party
}

// Line is one row of the itemized table
type Line struct {
	Index       int
	Name        string
	Description string
	UnitPrice   float64
	Quantity    int
	LineTotal   float64
	Shaded      bool
}

// TotalsBlock is the summary band under the table. ShowDiscount gates the
// discount row; a zero discount is not printed.
type TotalsBlock struct {
	Subtotal       float64
	ShowDiscount   bool
	DiscountLabel  string
	DiscountAmount float64
	TaxTotal       float64
	Total          float64
	AmountInWords  string
	Currency       string
}

// BankDetails is the bank coordinates block printed above the footer
type BankDetails struct {
	AccountLabel string
	Currency     string
	RIB          string
	IBAN         string
	BIC          string
}

// LegalFooter is the fixed legal strip at the bottom of the page
type LegalFooter struct {
	Capital         string
	TradeRegister   string
	ProfessionalTax string
	FiscalID        string
	ICE             string
	ThankYou        string
}

// Document is the renderable projection of an invoice: a fixed-layout tree
// the PDF renderer serializes without further computation.
type Document struct {
	Header Header
	Lines  []Line
	Totals TotalsBlock
	Bank   BankDetails
	Footer LegalFooter
}

// orDash substitutes the display placeholder for missing snapshot fields so a
// document can always be produced for display and audit.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Project maps a fully resolved invoice into its printable document tree. It
// is a pure function of its input: no I/O, same bundle in, same tree out.
func Project(inv *entity.Invoice, opts Options) *Document {
	doc := &Document{
		Header: Header{
			LogoURL:   inv.Business.LogoURL,
			Title:     orDash(inv.Title),
			Number:    orDash(inv.Number),
			IssueDate: inv.IssueDate.Format(opts.DateFormat),
			Issuer: Party{
				Name:    orDash(inv.Business.Name),
				Address: orDash(inv.Business.Address),
				City:    orDash(inv.Business.City),
				Email:   orDash(inv.Business.Email),
				Phone:   orDash(inv.Business.Phone),
				ICE:     orDash(inv.Business.ICE),
			},
			BilledTo: Party{
				Name:    orDash(inv.Client.Name),
				Address: orDash(inv.Client.Address),
				Email:   orDash(inv.Client.Email),
				Phone:   orDash(inv.Client.Mobile),
				ICE:     orDash(inv.Client.ICE),
			},
		},
		Bank: BankDetails{
			AccountLabel: orDash(inv.Business.BankAccountLabel),
			Currency:     orDash(inv.Business.BankCurrency),
			RIB:          orDash(inv.Business.RIB),
			IBAN:         orDash(inv.Business.IBAN),
			BIC:          orDash(inv.Business.BIC),
		},
		Footer: LegalFooter{
			Capital:         orDash(inv.Business.Capital),
			TradeRegister:   orDash(inv.Business.TradeRegister),
			ProfessionalTax: orDash(inv.Business.ProfessionalTax),
			FiscalID:        orDash(inv.Business.FiscalID),
			ICE:             orDash(inv.Business.ICE),
			ThankYou:        thankYouLine(opts.Language),
		},
	}

	doc.Lines = make([]Line, 0, len(inv.Items))
	for i, item := range inv.Items {
		doc.Lines = append(doc.Lines, Line{
			Index:       i + 1,
			Name:        orDash(item.Name),
			Description: item.Description,
			UnitPrice:   pricing.Round2(item.UnitPrice),
			Quantity:    item.Quantity,
			LineTotal:   pricing.Round2(item.LineTotal()),
			Shaded:      i%2 == 1,
		})
	}

	total := pricing.Round2(inv.Total)
	doc.Totals = TotalsBlock{
		Subtotal:       pricing.Round2(inv.Subtotal),
		ShowDiscount:   inv.DiscountValue > 0,
		DiscountLabel:  discountLabel(opts.Language),
		DiscountAmount: pricing.Round2(inv.DiscountAmount),
		TaxTotal:       pricing.Round2(inv.TaxTotal),
		Total:          total,
		AmountInWords:  AmountInWords(total, opts.Language, opts.UnitWord, opts.SubunitWord),
		Currency:       opts.Currency,
	}

	return doc
}

func discountLabel(language string) string {
	if language == "en" {
		return "Discount"
	}
	return "Remise"
}

func thankYouLine(language string) string {
	if language == "en" {
		return "Thank you for your trust."
	}
	return "Merci pour votre confiance."
}
