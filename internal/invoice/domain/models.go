// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	// InvoiceStatusPending is the state of a freshly created invoice.
	InvoiceStatusPending InvoiceStatus = "en attente"
	// InvoiceStatusPaid is terminal; the backend does not enforce
	// immutability after payment.
	InvoiceStatusPaid InvoiceStatus = "payée"
)

// Invoice represents an issued invoice. Number carries the formatted
// identifier computed from the client's numbering rule.
type Invoice struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	ClientID     snowflake.ID      `gorm:"column:id_client;not null;index" json:"client_id"`
	Number       string            `gorm:"column:numero_facture;not null" json:"numero_facture"`
	CreationDate time.Time         `gorm:"column:date_creation;not null" json:"date_creation"`
	TotalTTC     float64           `gorm:"column:montant_total_ttc;not null" json:"montant_total_ttc"`
	Status       InvoiceStatus     `gorm:"type:text;not null;default:'en attente'" json:"status"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// LineItem represents a line on an invoice. Subtotals are supplied by the
// caller at creation time and are not re-derived.
type LineItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Name        string       `gorm:"not null" json:"name"`
	Quantity    float64      `gorm:"not null" json:"quantity"`
	UnitPriceHT float64      `gorm:"column:unit_price_ht;not null" json:"unit_price_ht"`
	TaxRate     float64      `gorm:"column:tax_rate;not null" json:"tax_rate"`
	TotalHT     float64      `gorm:"column:total_ht;not null" json:"total_ht"`
	TotalTTC    float64      `gorm:"column:total_ttc;not null" json:"total_ttc"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "invoice_line_items" }
