package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business represents a registered issuing business. Its identity, fiscal and
// bank fields are copied onto invoices as a snapshot at creation time.
type Business struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Email   *string   `gorm:"size:255" json:"email,omitempty"`
	Phone   *string   `gorm:"size:50" json:"phone,omitempty"`
	ICE     *string   `gorm:"size:50;column:ice" json:"ice,omitempty"`
	Address *string   `gorm:"type:text" json:"address,omitempty"`
	City    *string   `gorm:"size:255" json:"city,omitempty"`
	LogoURL *string   `gorm:"size:255" json:"logo_url,omitempty"`

	// Bank details printed on every invoice
	BankAccountLabel *string `gorm:"size:255" json:"bank_account_label,omitempty"`
	BankCurrency     *string `gorm:"size:100" json:"bank_currency,omitempty"`
	RIB              *string `gorm:"size:100;column:rib" json:"rib,omitempty"`
	IBAN             *string `gorm:"size:100;column:iban" json:"iban,omitempty"`
	BIC              *string `gorm:"size:50;column:bic" json:"bic,omitempty"`

	// Legal footer fields
	Capital         *string `gorm:"size:100" json:"capital,omitempty"`
	TradeRegister   *string `gorm:"size:100" json:"trade_register,omitempty"`
	ProfessionalTax *string `gorm:"size:100" json:"professional_tax,omitempty"`
	FiscalID        *string `gorm:"size:100" json:"fiscal_id,omitempty"`

	// First invoice sequence number issued by this business. Legacy books
	// migrated from other systems start mid-sequence, so this is data, not
	// a constant.
	SequenceStart int `gorm:"default:1" json:"sequence_start"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner    User      `gorm:"foreignKey:OwnerID" json:"-"`
	Clients  []Client  `gorm:"foreignKey:BusinessID" json:"-"`
	Products []Product `gorm:"foreignKey:BusinessID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:BusinessID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new business
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}
