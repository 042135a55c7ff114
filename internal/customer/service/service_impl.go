package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/clock"
	"github.com/smallbiznis/saletrack/internal/customer/domain"
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
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	mobile := strings.TrimSpace(req.Mobile)
	if mobile == "" {
		return domain.Customer{}, domain.ErrInvalidMobile
	}

	email := trimOptional(req.Email)
	if email != nil && !strings.Contains(*email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:             s.genID.Generate(),
		Name:           name,
		Mobile:         mobile,
		Email:          email,
		GSTNo:          trimOptional(req.GSTNo),
		TotalPurchases: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return customers, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) GetByMobile(ctx context.Context, mobile string) (domain.Customer, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return domain.Customer{}, domain.ErrInvalidMobile
	}

	item, err := s.repo.FindByMobile(ctx, s.db, mobile)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) GetByGSTNo(ctx context.Context, gstNo string) (domain.Customer, error) {
	gstNo = strings.TrimSpace(gstNo)
	if gstNo == "" {
		return domain.Customer{}, domain.ErrNotFound
	}

	item, err := s.repo.FindByGSTNo(ctx, s.db, gstNo)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
