package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/smallbiznis/facturio/internal/client/domain"
	clientrepository "github.com/smallbiznis/facturio/internal/client/repository"
	"github.com/smallbiznis/facturio/internal/clock"
	invoicedomain "github.com/smallbiznis/facturio/internal/invoice/domain"
	"github.com/smallbiznis/facturio/internal/numbering/domain"
	"github.com/smallbiznis/facturio/internal/numbering/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupNumberingService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&domain.Rule{},
		&invoicedomain.Invoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:      db,
		Log:     zaptest.NewLogger(t),
		Clock:   clock.NewFakeClock(time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)),
		GenID:   node,
		Repo:    repository.Provide(),
		Clients: clientrepository.Provide(),
	})

	return svc, db, node
}

func seedClientAndRule(t *testing.T, db *gorm.DB, node *snowflake.Node, format string) (clientdomain.Client, domain.Rule) {
	t.Helper()

	now := time.Now().UTC()
	owner := clientdomain.Client{
		ID:        node.Generate(),
		Name:      "Dupont",
		Siret:     "12345678900011",
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&owner).Error)

	rule := domain.Rule{
		ID:           node.Generate(),
		ClientID:     owner.ID,
		Description:  "mensuelle",
		NumberFormat: format,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(&rule).Error)

	return owner, rule
}

func seedInvoice(t *testing.T, db *gorm.DB, node *snowflake.Node, clientID snowflake.ID, number string, creationDate time.Time) {
	t.Helper()

	now := time.Now().UTC()
	require.NoError(t, db.Create(&invoicedomain.Invoice{
		ID:           node.Generate(),
		ClientID:     clientID,
		Number:       number,
		CreationDate: creationDate,
		Status:       invoicedomain.InvoiceStatusPending,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error)
}

func TestNextNumberFirstOfMonth(t *testing.T) {
	svc, db, node := setupNumberingService(t)
	_, rule := seedClientAndRule(t, db, node, "FAC-{nom_client}-{annee}-{mois}#{numero}")

	resp, err := svc.NextNumber(context.Background(), domain.NextNumberRequest{
		RuleID:       rule.ID.String(),
		CreationDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "FAC-Dupont-2024-03#001", resp.InvoiceNumber)
}

func TestNextNumberIncrementsWithinMonth(t *testing.T) {
	svc, db, node := setupNumberingService(t)
	owner, rule := seedClientAndRule(t, db, node, "FAC-{annee}-{mois}#{numero}")

	seedInvoice(t, db, node, owner.ID, "FAC-2024-03#007", time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC))
	seedInvoice(t, db, node, owner.ID, "FAC-2024-03#002", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC))

	resp, err := svc.NextNumber(context.Background(), domain.NextNumberRequest{
		RuleID:       rule.ID.String(),
		CreationDate: time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "FAC-2024-03#008", resp.InvoiceNumber)
}

func TestNextNumberIgnoresOtherMonths(t *testing.T) {
	svc, db, node := setupNumberingService(t)
	owner, rule := seedClientAndRule(t, db, node, "FAC#{numero}")

	seedInvoice(t, db, node, owner.ID, "FAC#042", time.Date(2024, time.February, 27, 0, 0, 0, 0, time.UTC))
	seedInvoice(t, db, node, owner.ID, "FAC#099", time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC))

	resp, err := svc.NextNumber(context.Background(), domain.NextNumberRequest{
		RuleID:       rule.ID.String(),
		CreationDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "FAC#001", resp.InvoiceNumber)
}

func TestNextNumberSkipsMalformedNumbers(t *testing.T) {
	svc, db, node := setupNumberingService(t)
	owner, rule := seedClientAndRule(t, db, node, "FAC#{numero}")

	seedInvoice(t, db, node, owner.ID, "LEGACY-0042", time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC))
	seedInvoice(t, db, node, owner.ID, "FAC#abc", time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC))
	seedInvoice(t, db, node, owner.ID, "FAC#005", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))

	resp, err := svc.NextNumber(context.Background(), domain.NextNumberRequest{
		RuleID:       rule.ID.String(),
		CreationDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "FAC#006", resp.InvoiceNumber)
}

func TestNextNumberUnknownRule(t *testing.T) {
	svc, _, node := setupNumberingService(t)

	_, err := svc.NextNumber(context.Background(), domain.NextNumberRequest{
		RuleID:       node.Generate().String(),
		CreationDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestNextNumberInvalidRuleID(t *testing.T) {
	svc, _, _ := setupNumberingService(t)

	_, err := svc.NextNumber(context.Background(), domain.NextNumberRequest{
		RuleID:       "not-a-number",
		CreationDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRuleID)
}

func TestCreateRuleRequiresExistingClient(t *testing.T) {
	svc, _, node := setupNumberingService(t)

	_, err := svc.Create(context.Background(), domain.CreateRuleRequest{
		ClientID:     node.Generate().String(),
		NumberFormat: "FAC#{numero}",
	})
	assert.ErrorIs(t, err, clientdomain.ErrNotFound)
}

func TestCreateAndListRules(t *testing.T) {
	svc, db, node := setupNumberingService(t)
	owner, _ := seedClientAndRule(t, db, node, "FAC#{numero}")

	created, err := svc.Create(context.Background(), domain.CreateRuleRequest{
		ClientID:     owner.ID.String(),
		Description:  "annuelle",
		NumberFormat: "FA-{annee}#{numero}",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.ClientID)
	assert.Equal(t, "FA-{annee}#{numero}", created.NumberFormat)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed.Rules, 2)
}
