package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/facturio/internal/client/domain"
	"github.com/smallbiznis/facturio/internal/clock"
	"github.com/smallbiznis/facturio/internal/config"
	"github.com/smallbiznis/facturio/internal/invoice/domain"
	"github.com/smallbiznis/facturio/internal/invoice/render"
	numberingdomain "github.com/smallbiznis/facturio/internal/numbering/domain"
	"github.com/smallbiznis/facturio/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const creationDateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Repo    domain.Repository
	Rules   numberingdomain.Repository
	Clients clientdomain.Repository
	Metrics *metrics.Metrics
	DocCfg  *config.DocumentConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	genID   *snowflake.Node
	repo    domain.Repository
	rules   numberingdomain.Repository
	clients clientdomain.Repository
	metrics *metrics.Metrics
	docCfg  *config.DocumentConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		clock:   p.Clock,
		genID:   p.GenID,
		repo:    p.Repo,
		rules:   p.Rules,
		clients: p.Clients,
		metrics: p.Metrics,
		docCfg:  p.DocCfg,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.CreateInvoiceResponse, error) {
	ruleID, err := snowflake.ParseString(strings.TrimSpace(req.NumberingRuleID))
	if err != nil || ruleID == 0 {
		return domain.CreateInvoiceResponse{}, numberingdomain.ErrInvalidRuleID
	}

	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return domain.CreateInvoiceResponse{}, domain.ErrInvalidNumber
	}

	creationDate, err := time.ParseInLocation(creationDateLayout, strings.TrimSpace(req.CreationDate), time.UTC)
	if err != nil {
		return domain.CreateInvoiceResponse{}, domain.ErrInvalidCreationDate
	}

	rule, err := s.rules.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return domain.CreateInvoiceResponse{}, err
	}
	if rule == nil {
		return domain.CreateInvoiceResponse{}, numberingdomain.ErrRuleNotFound
	}

	var totalTTC float64
	for _, item := range req.Items {
		totalTTC += item.TotalTTC
	}

	now := s.clock.Now()
	invoice := domain.Invoice{
		ID:           s.genID.Generate(),
		ClientID:     rule.ClientID,
		Number:       number,
		CreationDate: creationDate,
		TotalTTC:     totalTTC,
		Status:       domain.InvoiceStatusPending,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return domain.CreateInvoiceResponse{}, err
	}

	// Items are inserted one by one without a wrapping transaction. A
	// failure mid-loop leaves the header and earlier items in place.
	for _, item := range req.Items {
		line := domain.LineItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoice.ID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPriceHT: item.UnitPriceHT,
			TaxRate:     item.TaxRate,
			TotalHT:     item.TotalHT,
			TotalTTC:    item.TotalTTC,
			CreatedAt:   now,
		}
		if err := s.repo.InsertItem(ctx, s.db, &line); err != nil {
			s.log.Error("line item insert failed",
				zap.String("invoice_id", invoice.ID.String()),
				zap.String("item_name", item.Name),
				zap.Error(err),
			)
			return domain.CreateInvoiceResponse{}, domain.ErrPartialWrite
		}
	}

	s.metrics.RecordInvoiceCreated(string(invoice.Status))

	return domain.CreateInvoiceResponse{InvoiceID: invoice.ID.String()}, nil
}

func (s *Service) List(ctx context.Context) (domain.ListInvoiceResponse, error) {
	invoices, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}
	return domain.ListInvoiceResponse{Invoices: invoices}, nil
}

func (s *Service) GetWithItems(ctx context.Context, id string) (domain.InvoiceWithItems, error) {
	invoice, err := s.findByStringID(ctx, id)
	if err != nil {
		return domain.InvoiceWithItems{}, err
	}

	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return domain.InvoiceWithItems{}, err
	}

	return domain.InvoiceWithItems{Invoice: *invoice, Items: items}, nil
}

func (s *Service) MarkPaid(ctx context.Context, id string) error {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return domain.ErrInvalidInvoiceID
	}

	matched, err := s.repo.MarkPaid(ctx, s.db, invoiceID)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) Render(ctx context.Context, id string, format render.Format) (render.Document, error) {
	invoice, err := s.findByStringID(ctx, id)
	if err != nil {
		return render.Document{}, err
	}

	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return render.Document{}, err
	}

	view := render.InvoiceView{
		Number:       invoice.Number,
		ClientName:   s.clientName(ctx, invoice.ClientID),
		CreationDate: invoice.CreationDate.Format(creationDateLayout),
		TotalTTC:     invoice.TotalTTC,
	}
	views := make([]render.LineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, render.LineItemView{
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPriceHT: item.UnitPriceHT,
			TaxRate:     item.TaxRate,
			TotalHT:     item.TotalHT,
			TotalTTC:    item.TotalTTC,
		})
	}

	doc, err := render.Invoice(view, views, format, s.labels())
	if err != nil {
		return render.Document{}, err
	}

	s.metrics.RecordDocumentRendered(string(format))

	return doc, nil
}

func (s *Service) findByStringID(ctx context.Context, id string) (*domain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return nil, domain.ErrInvalidInvoiceID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) labels() render.Labels {
	cfg := config.DefaultDocumentConfig()
	if s.docCfg != nil {
		cfg = s.docCfg.Get()
	}

	labels := render.Labels{
		TotalsCaption: cfg.TotalsCaption,
		FooterCaption: cfg.FooterCaption,
	}
	copy(labels.ColumnHeaders[:], cfg.ColumnHeaders)
	return labels
}

func (s *Service) clientName(ctx context.Context, clientID snowflake.ID) string {
	owner, err := s.clients.FindByID(ctx, s.db, clientID)
	if err != nil || owner == nil {
		return "Client-" + clientID.String()
	}
	return owner.Name
}
