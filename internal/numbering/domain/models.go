// Package domain contains persistence models for numbering rules
// ("règles de gestion").
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Rule governs how invoice numbers are formatted for one client.
// NumberFormat may contain the placeholders {nom_client}, {annee},
// {mois} and {numero}.
type Rule struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID     snowflake.ID `gorm:"not null;index" json:"client_id"`
	Description  string       `gorm:"type:text" json:"description"`
	NumberFormat string       `gorm:"column:format_numero;not null" json:"format_numero"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Rule) TableName() string { return "numbering_rules" }
