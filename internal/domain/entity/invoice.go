package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/domain/enum"
	"gorm.io/gorm"
)

// BusinessSnapshot holds the issuing business fields frozen at invoice
// creation time, so historical invoices stay stable when the live business
// record changes.
type BusinessSnapshot struct {
	Name             string `gorm:"size:255" json:"name"`
	Email            string `gorm:"size:255" json:"email"`
	Phone            string `gorm:"size:50" json:"phone"`
	ICE              string `gorm:"size:50;column:ice" json:"ice"`
	Address          string `gorm:"type:text" json:"address"`
	City             string `gorm:"size:255" json:"city"`
	LogoURL          string `gorm:"size:255" json:"logo_url"`
	BankAccountLabel string `gorm:"size:255" json:"bank_account_label"`
	BankCurrency     string `gorm:"size:100" json:"bank_currency"`
	RIB              string `gorm:"size:100;column:rib" json:"rib"`
	IBAN             string `gorm:"size:100;column:iban" json:"iban"`
	BIC              string `gorm:"size:50;column:bic" json:"bic"`
	Capital          string `gorm:"size:100" json:"capital"`
	TradeRegister    string `gorm:"size:100" json:"trade_register"`
	ProfessionalTax  string `gorm:"size:100" json:"professional_tax"`
	FiscalID         string `gorm:"size:100" json:"fiscal_id"`
}

// ClientSnapshot holds the billed party fields frozen at invoice creation time
type ClientSnapshot struct {
	Name    string `gorm:"size:255" json:"name"`
	Email   string `gorm:"size:255" json:"email"`
	Mobile  string `gorm:"size:50" json:"mobile"`
	ICE     string `gorm:"size:50;column:ice" json:"ice"`
	Address string `gorm:"type:text" json:"address"`
}

// Invoice represents an issued invoice. Subtotal, discount amount, tax total
// and total are derived from the items and discount; any edit to those inputs
// replaces the whole computed bundle. The sequence number is assigned once at
// creation and survives every later edit.
type Invoice struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	ClientID   *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Title      string     `gorm:"size:255;not null" json:"title"`

	SequenceNumber int       `gorm:"not null" json:"sequence_number"`
	Number         string    `gorm:"size:20;not null;index" json:"number"`
	IssueDate      time.Time `gorm:"type:date;not null" json:"issue_date"`

	DiscountType  enum.DiscountType `gorm:"default:0" json:"discount_type"`
	DiscountValue float64           `gorm:"type:decimal(15,2);default:0" json:"discount_value"`

	Subtotal       float64 `gorm:"type:decimal(15,2);default:0" json:"-"`
	DiscountAmount float64 `gorm:"type:decimal(15,2);default:0" json:"-"`
	TaxTotal       float64 `gorm:"type:decimal(15,2);default:0" json:"-"`
	Total          float64 `gorm:"type:decimal(15,2);default:0" json:"-"`

	Paid bool `gorm:"default:false" json:"paid"`

	Business BusinessSnapshot `gorm:"embedded;embeddedPrefix:business_" json:"business_snapshot"`
	Client   ClientSnapshot   `gorm:"embedded;embeddedPrefix:client_" json:"client_snapshot"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// round2 rounds monetary values for presentation; stored accumulation stays
// unrounded until this point.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MarshalJSON exposes the derived totals rounded to two decimals
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Subtotal       float64 `json:"subtotal"`
		DiscountAmount float64 `json:"discount_amount"`
		TaxTotal       float64 `json:"tax_total"`
		Total          float64 `json:"total"`
	}{
		Alias:          Alias(i),
		Subtotal:       round2(i.Subtotal),
		DiscountAmount: round2(i.DiscountAmount),
		TaxTotal:       round2(i.TaxTotal),
		Total:          round2(i.Total),
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// FormatInvoiceNumber builds the printed document number from the per-business
// sequence and the issue year, e.g. sequence 103 issued in 2026 -> "26-103".
func FormatInvoiceNumber(sequence int, issueDate time.Time) string {
	return fmt.Sprintf("%02d-%03d", issueDate.Year()%100, sequence)
}

// InvoiceItem is an immutable snapshot of a product at invoice creation time,
// not a live reference to the catalog.
type InvoiceItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID      *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Position       int        `gorm:"not null" json:"position"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Description    string     `gorm:"type:text" json:"description"`
	UnitPrice      float64    `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TaxRatePercent float64    `gorm:"type:decimal(5,2);default:0" json:"tax_rate_percent"`
	Quantity       int        `gorm:"not null;default:1" json:"quantity"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// LineTotal returns the pre-discount, pre-tax value of the line
func (it *InvoiceItem) LineTotal() float64 {
	return it.UnitPrice * float64(it.Quantity)
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
