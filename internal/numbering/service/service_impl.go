package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/facturio/internal/client/domain"
	"github.com/smallbiznis/facturio/internal/clock"
	"github.com/smallbiznis/facturio/internal/numbering/domain"
	"github.com/smallbiznis/facturio/internal/numbering/format"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Repo    domain.Repository
	Clients clientdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	genID   *snowflake.Node
	repo    domain.Repository
	clients clientdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("numbering.service"),
		clock:   p.Clock,
		genID:   p.GenID,
		repo:    p.Repo,
		clients: p.Clients,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRuleRequest) (domain.Rule, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Rule{}, domain.ErrInvalidClientID
	}

	numberFormat := strings.TrimSpace(req.NumberFormat)
	if numberFormat == "" {
		return domain.Rule{}, domain.ErrInvalidFormat
	}

	owner, err := s.clients.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.Rule{}, err
	}
	if owner == nil {
		return domain.Rule{}, clientdomain.ErrNotFound
	}

	now := s.clock.Now()
	rule := domain.Rule{
		ID:           s.genID.Generate(),
		ClientID:     clientID,
		Description:  strings.TrimSpace(req.Description),
		NumberFormat: numberFormat,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &rule); err != nil {
		return domain.Rule{}, err
	}

	return rule, nil
}

func (s *Service) List(ctx context.Context) (domain.ListRuleResponse, error) {
	rules, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListRuleResponse{}, err
	}
	return domain.ListRuleResponse{Rules: rules}, nil
}

func (s *Service) NextNumber(ctx context.Context, req domain.NextNumberRequest) (domain.NextNumberResponse, error) {
	ruleID, err := snowflake.ParseString(strings.TrimSpace(req.RuleID))
	if err != nil || ruleID == 0 {
		return domain.NextNumberResponse{}, domain.ErrInvalidRuleID
	}

	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return domain.NextNumberResponse{}, err
	}
	if rule == nil {
		return domain.NextNumberResponse{}, domain.ErrRuleNotFound
	}

	from, to := monthBounds(req.CreationDate)
	numbers, err := s.repo.InvoiceNumbersInPeriod(ctx, s.db, rule.ClientID, from, to)
	if err != nil {
		return domain.NextNumberResponse{}, err
	}
	lastSeq := maxTrailingSequence(numbers)

	label := s.clientLabel(ctx, rule.ClientID)
	next := format.Next(rule.NumberFormat, req.CreationDate, label, lastSeq)

	return domain.NextNumberResponse{InvoiceNumber: next}, nil
}

func (s *Service) clientLabel(ctx context.Context, clientID snowflake.ID) string {
	owner, err := s.clients.FindByID(ctx, s.db, clientID)
	if err != nil || owner == nil {
		return "Client-" + clientID.String()
	}
	return owner.Name
}

func monthBounds(ref time.Time) (time.Time, time.Time) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// maxTrailingSequence extracts the highest integer trailing the last '#' in
// the given invoice numbers. Numbers without a '#' or with a non-numeric
// tail are skipped; the separator convention is assumed, not validated.
func maxTrailingSequence(numbers []string) *int {
	var highest *int
	for _, number := range numbers {
		idx := strings.LastIndex(number, "#")
		if idx < 0 || idx == len(number)-1 {
			continue
		}
		seq, err := strconv.Atoi(number[idx+1:])
		if err != nil {
			continue
		}
		if highest == nil || seq > *highest {
			value := seq
			highest = &value
		}
	}
	return highest
}
