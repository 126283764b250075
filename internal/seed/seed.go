// Package seed bootstraps demo data for local environments.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/facturio/internal/client/domain"
	numberingdomain "github.com/smallbiznis/facturio/internal/numbering/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	demoClientName  = "Atelier Dupont"
	demoClientSiret = "73282932000074"
	demoRuleFormat  = "FAC-{nom_client}-{annee}-{mois}#{numero}"
)

// EnsureDemoData seeds one client and its numbering rule so the API is
// usable immediately after first startup. Idempotent on the client name.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		demoClient, err := ensureDemoClientTx(ctx, tx, node)
		if err != nil {
			return err
		}
		return ensureDemoRuleTx(ctx, tx, node, demoClient.ID)
	})
}

func ensureDemoClientTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*clientdomain.Client, error) {
	var existing clientdomain.Client
	err := tx.WithContext(ctx).
		Where("name = ?", demoClientName).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing.ID != 0 {
		return &existing, nil
	}

	now := time.Now().UTC()
	demoClient := clientdomain.Client{
		ID:        node.Generate(),
		Name:      demoClientName,
		Address:   "12 rue de la République, 69002 Lyon",
		Siret:     demoClientSiret,
		Metadata:  datatypes.JSONMap{"seed": true},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&demoClient).Error; err != nil {
		return nil, err
	}
	return &demoClient, nil
}

func ensureDemoRuleTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, clientID snowflake.ID) error {
	var existing numberingdomain.Rule
	err := tx.WithContext(ctx).
		Where("client_id = ?", clientID).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID != 0 {
		return nil
	}

	now := time.Now().UTC()
	rule := numberingdomain.Rule{
		ID:           node.Generate(),
		ClientID:     clientID,
		Description:  "Numérotation mensuelle par défaut",
		NumberFormat: demoRuleFormat,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&rule).Error
}
