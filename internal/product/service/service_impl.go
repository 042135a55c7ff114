package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/saletrack/internal/clock"
	"github.com/smallbiznis/saletrack/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		clock: p.Clock,
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.Attributes) (*domain.Response, error) {
	attrs := req.Normalize()
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p := &domain.Product{
		ID:        s.genID.Generate().Int64(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	attrs.Apply(p)

	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.String("name", p.Name),
	)

	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*domain.Response, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrNotFound
	}

	item, err := s.repo.FindByBarcode(ctx, s.db, barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	attrs := req.Attributes.Normalize()
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	attrs.Apply(item)
	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(p.ID).String(),
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		MRP:       p.MRP,
		Barcode:   p.Barcode,
		Unit:      p.Unit,
		Category:  p.Category,
		HSNCode:   p.HSNCode,
		GSTRate:   p.GSTRate,
		CessRate:  p.CessRate,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
