package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Name   string  `json:"name"`
	Mobile string  `json:"mobile"`
	Email  *string `json:"email"`
	GSTNo  *string `json:"gst_no"`
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context) ([]Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	GetByMobile(ctx context.Context, mobile string) (Customer, error)
	GetByGSTNo(ctx context.Context, gstNo string) (Customer, error)
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidMobile = errors.New("invalid_mobile")
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
