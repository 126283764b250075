package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/facturio/internal/numbering/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *domain.Rule) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO numbering_rules (id, client_id, description, format_numero, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rule.ID,
		rule.ClientID,
		rule.Description,
		rule.NumberFormat,
		rule.CreatedAt,
		rule.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Rule, error) {
	var rule domain.Rule
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, description, format_numero, created_at, updated_at
		 FROM numbering_rules WHERE id = ?`,
		id,
	).Scan(&rule).Error
	if err != nil {
		return nil, err
	}
	if rule.ID == 0 {
		return nil, nil
	}
	return &rule, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Rule, error) {
	var rules []domain.Rule
	err := db.WithContext(ctx).
		Model(&domain.Rule{}).
		Order("created_at desc, id desc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) InvoiceNumbersInPeriod(ctx context.Context, db *gorm.DB, clientID snowflake.ID, from, to time.Time) ([]string, error) {
	var numbers []string
	err := db.WithContext(ctx).Raw(
		`SELECT numero_facture FROM invoices
		 WHERE id_client = ? AND date_creation >= ? AND date_creation < ?`,
		clientID,
		from,
		to,
	).Scan(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
