package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Siret   string `json:"siret"`
}

type ListClientResponse struct {
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
}

var (
	ErrNotFound     = errors.New("client_not_found")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidSiret = errors.New("invalid_siret")
	ErrInvalidID    = errors.New("invalid_id")
	ErrSiretTaken   = errors.New("siret_taken")
)
