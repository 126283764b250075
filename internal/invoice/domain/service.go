package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/facturio/internal/invoice/render"
)

type CreateLineItem struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	UnitPriceHT float64 `json:"unit_price_ht"`
	TaxRate     float64 `json:"tax_rate"`
	TotalHT     float64 `json:"total_ht"`
	TotalTTC    float64 `json:"total_ttc"`
}

type CreateInvoiceRequest struct {
	NumberingRuleID string           `json:"numbering_rule_id"`
	ClientName      string           `json:"client_name"`
	Address         string           `json:"address"`
	InvoiceNumber   string           `json:"invoice_number"`
	CreationDate    string           `json:"creation_date"`
	Items           []CreateLineItem `json:"items"`
}

type CreateInvoiceResponse struct {
	InvoiceID string `json:"invoice_id"`
}

type ListInvoiceResponse struct {
	Invoices []Invoice `json:"invoices"`
}

type InvoiceWithItems struct {
	Invoice Invoice    `json:"invoice"`
	Items   []LineItem `json:"items"`
}

type Service interface {
	// Create computes the total from the items' TTC subtotals, persists the
	// invoice header and then each line item. An empty item list is valid
	// and yields a total of 0. There is no surrounding transaction: a failed
	// item insert leaves the header orphaned and is surfaced as
	// ErrPartialWrite.
	Create(ctx context.Context, req CreateInvoiceRequest) (CreateInvoiceResponse, error)
	List(ctx context.Context) (ListInvoiceResponse, error)
	GetWithItems(ctx context.Context, id string) (InvoiceWithItems, error)
	MarkPaid(ctx context.Context, id string) error
	// Render produces the downloadable document for a stored invoice.
	Render(ctx context.Context, id string, format render.Format) (render.Document, error)
}

var (
	ErrNotFound            = errors.New("invoice_not_found")
	ErrInvalidInvoiceID    = errors.New("invalid_invoice_id")
	ErrInvalidNumber       = errors.New("invalid_invoice_number")
	ErrInvalidCreationDate = errors.New("invalid_creation_date")
	ErrPartialWrite        = errors.New("invoice_partial_write")
)
