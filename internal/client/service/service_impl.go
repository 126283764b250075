package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/facturio/internal/client/domain"
	"github.com/smallbiznis/facturio/internal/clock"
	pkgdb "github.com/smallbiznis/facturio/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	siret := strings.TrimSpace(req.Siret)
	if siret == "" {
		return domain.Client{}, domain.ErrInvalidSiret
	}

	now := s.clock.Now()
	client := domain.Client{
		ID:        s.genID.Generate(),
		Name:      name,
		Address:   strings.TrimSpace(req.Address),
		Siret:     siret,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrSiretTaken
		}
		return domain.Client{}, err
	}

	return client, nil
}

func (s *Service) List(ctx context.Context) (domain.ListClientResponse, error) {
	clients, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListClientResponse{}, err
	}
	return domain.ListClientResponse{Clients: clients}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Client{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	return *item, nil
}
