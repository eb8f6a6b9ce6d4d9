package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a billed party belonging to a business
type Client struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      *string        `gorm:"size:255" json:"email,omitempty"`
	Mobile     *string        `gorm:"size:50" json:"mobile,omitempty"`
	ICE        *string        `gorm:"size:50;column:ice" json:"ice,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Business Business  `gorm:"foreignKey:BusinessID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
