package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/internal/domain/enum"
)

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		Title:          "Prestation de services",
		SequenceNumber: 103,
		Number:         "26-103",
		IssueDate:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DiscountType:   enum.DiscountTypePercentage,
		DiscountValue:  10,
		Subtotal:       300,
		DiscountAmount: 30,
		TaxTotal:       54,
		Total:          324,
		Business: entity.BusinessSnapshot{
			Name:            "Webdev 26",
			Email:           "contact@webdev26.ma",
			Phone:           "+212 600 000 000",
			ICE:             "001234567000089",
			Address:         "12 Rue Oued Fes",
			City:            "Rabat",
			BankAccountLabel: "WEBDEV 26 SARL",
			BankCurrency:    "MAD - Dirham marocain",
			RIB:             "230 810 0000000000000000 00",
			IBAN:            "MA64 2308 1000 0000 0000 0000 000",
			BIC:             "CIHMMAMC",
			Capital:         "100 000 DH",
			TradeRegister:   "123456",
			ProfessionalTax: "25689744",
			FiscalID:        "45781236",
		},
		Client: entity.ClientSnapshot{
			Name:    "Acme Maroc",
			Email:   "billing@acme.ma",
			Mobile:  "+212 661 111 111",
			ICE:     "002233445000067",
			Address: "Zone Industrielle, Casablanca",
		},
		Items: []entity.InvoiceItem{
			{Position: 1, Name: "Site vitrine", Description: "5 pages", UnitPrice: 200, TaxRatePercent: 20, Quantity: 1},
			{Position: 2, Name: "Hébergement", UnitPrice: 50, TaxRatePercent: 14, Quantity: 2},
		},
	}
}

func TestProject(t *testing.T) {
	doc := Project(sampleInvoice(), DefaultOptions())

	assert.Equal(t, "26-103", doc.Header.Number)
	assert.Equal(t, "15/03/2026", doc.Header.IssueDate)
	assert.Equal(t, "Webdev 26", doc.Header.Issuer.Name)
	assert.Equal(t, "Acme Maroc", doc.Header.BilledTo.Name)

	require.Len(t, doc.Lines, 2)
	assert.Equal(t, 1, doc.Lines[0].Index)
	assert.Equal(t, 200.0, doc.Lines[0].LineTotal)
	assert.False(t, doc.Lines[0].Shaded)
	assert.Equal(t, 100.0, doc.Lines[1].LineTotal)
	assert.True(t, doc.Lines[1].Shaded)

	assert.Equal(t, 300.0, doc.Totals.Subtotal)
	assert.True(t, doc.Totals.ShowDiscount)
	assert.Equal(t, "Remise", doc.Totals.DiscountLabel)
	assert.Equal(t, 324.0, doc.Totals.Total)
	assert.Equal(t, "trois cent vingt-quatre dirhams", doc.Totals.AmountInWords)
	assert.Equal(t, "MAD", doc.Totals.Currency)

	assert.Equal(t, "CIHMMAMC", doc.Bank.BIC)
	assert.Equal(t, "100 000 DH", doc.Footer.Capital)
	assert.Equal(t, "Merci pour votre confiance.", doc.Footer.ThankYou)
}

func TestProject_Deterministic(t *testing.T) {
	inv := sampleInvoice()
	opts := DefaultOptions()

	first := Project(inv, opts)
	second := Project(inv, opts)
	assert.Equal(t, first, second)
}

func TestProject_MissingFieldsBecomeDash(t *testing.T) {
	inv := sampleInvoice()
	inv.Client = entity.ClientSnapshot{Name: "Acme Maroc"}
	inv.Business.RIB = ""
	inv.Business.Capital = ""

	doc := Project(inv, DefaultOptions())

	assert.Equal(t, "-", doc.Header.BilledTo.Email)
	assert.Equal(t, "-", doc.Header.BilledTo.ICE)
	assert.Equal(t, "-", doc.Bank.RIB)
	assert.Equal(t, "-", doc.Footer.Capital)
	assert.Equal(t, "Acme Maroc", doc.Header.BilledTo.Name)
}

func TestProject_ZeroDiscountHidesDiscountRow(t *testing.T) {
	inv := sampleInvoice()
	inv.DiscountValue = 0
	inv.DiscountAmount = 0
	inv.Total = 354
	inv.TaxTotal = 54

	doc := Project(inv, DefaultOptions())
	assert.False(t, doc.Totals.ShowDiscount)
}

func TestProject_EnglishOptions(t *testing.T) {
	inv := sampleInvoice()
	opts := Options{
		Language:    "en",
		Currency:    "MAD",
		UnitWord:    "dirhams",
		SubunitWord: "centimes",
		DateFormat:  "2006-01-02",
	}

	doc := Project(inv, opts)
	assert.Equal(t, "2026-03-15", doc.Header.IssueDate)
	assert.Equal(t, "Discount", doc.Totals.DiscountLabel)
	assert.Equal(t, "Thank you for your trust.", doc.Footer.ThankYou)
	assert.Equal(t, "three hundred twenty-four dirhams", doc.Totals.AmountInWords)
}

func TestRender(t *testing.T) {
	doc := Project(sampleInvoice(), DefaultOptions())

	out, err := NewRenderer("fr").Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
