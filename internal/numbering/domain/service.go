package domain

import (
	"context"
	"errors"
	"time"
)

type CreateRuleRequest struct {
	ClientID     string `json:"client_id"`
	Description  string `json:"description"`
	NumberFormat string `json:"format_numero"`
}

type ListRuleResponse struct {
	Rules []Rule `json:"rules"`
}

type NextNumberRequest struct {
	RuleID       string
	CreationDate time.Time
}

type NextNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}

type Service interface {
	Create(ctx context.Context, req CreateRuleRequest) (Rule, error)
	List(ctx context.Context) (ListRuleResponse, error)
	// NextNumber computes the next invoice number for the rule: it reads the
	// rule template, scans the client's invoices in the calendar month of the
	// creation date for the highest sequence, and formats the successor.
	NextNumber(ctx context.Context, req NextNumberRequest) (NextNumberResponse, error)
}

var (
	ErrRuleNotFound    = errors.New("numbering_rule_not_found")
	ErrInvalidClientID = errors.New("invalid_client_id")
	ErrInvalidFormat   = errors.New("invalid_format_numero")
	ErrInvalidRuleID   = errors.New("invalid_numbering_rule_id")
)
