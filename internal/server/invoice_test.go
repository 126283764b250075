package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/facturio/internal/invoice/domain"
	"github.com/smallbiznis/facturio/internal/invoice/render"
)

type fakeInvoiceService struct {
	renderCalls int
	markPaidID  string
	markPaidErr error
	doc         render.Document
}

func (f *fakeInvoiceService) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.CreateInvoiceResponse, error) {
	_ = ctx
	_ = req
	return invoicedomain.CreateInvoiceResponse{InvoiceID: "1"}, nil
}

func (f *fakeInvoiceService) List(ctx context.Context) (invoicedomain.ListInvoiceResponse, error) {
	_ = ctx
	return invoicedomain.ListInvoiceResponse{}, nil
}

func (f *fakeInvoiceService) GetWithItems(ctx context.Context, id string) (invoicedomain.InvoiceWithItems, error) {
	_ = ctx
	_ = id
	return invoicedomain.InvoiceWithItems{}, nil
}

func (f *fakeInvoiceService) MarkPaid(ctx context.Context, id string) error {
	_ = ctx
	f.markPaidID = id
	return f.markPaidErr
}

func (f *fakeInvoiceService) Render(ctx context.Context, id string, format render.Format) (render.Document, error) {
	_ = ctx
	_ = id
	_ = format
	f.renderCalls++
	return f.doc, nil
}

func newInvoiceTestRouter(svc invoicedomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{invoiceSvc: svc}
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/api/invoices/generate/:id", srv.GenerateInvoiceDocument)
	router.PUT("/api/invoices/:id", srv.MarkInvoicePaid)
	return router
}

func TestGenerateInvoiceDocumentRejectsFormatBeforeRendering(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := newInvoiceTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/generate/1?format=xml", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if svc.renderCalls != 0 {
		t.Fatalf("expected no render call, got %d", svc.renderCalls)
	}
}

func TestGenerateInvoiceDocumentServesAttachment(t *testing.T) {
	svc := &fakeInvoiceService{
		doc: render.Document{
			Data:        []byte("%PDF-1.4"),
			ContentType: "application/pdf",
			Filename:    "FAC_2024_001.pdf",
		},
	}
	router := newInvoiceTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/generate/1?format=pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Disposition"); !strings.Contains(got, `filename="FAC_2024_001.pdf"`) {
		t.Fatalf("unexpected content disposition %q", got)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if resp.Body.String() != "%PDF-1.4" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestMarkInvoicePaidRejectsOtherStatuses(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := newInvoiceTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/invoices/1", bytes.NewBufferString(`{"status":"annulée"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if svc.markPaidID != "" {
		t.Fatal("expected service not to be called")
	}
}

func TestMarkInvoicePaidUnknownInvoice(t *testing.T) {
	svc := &fakeInvoiceService{markPaidErr: invoicedomain.ErrNotFound}
	router := newInvoiceTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/invoices/42", bytes.NewBufferString(`{"status":"payée"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if svc.markPaidID != "42" {
		t.Fatalf("expected service call with id 42, got %q", svc.markPaidID)
	}
}

func TestMarkInvoicePaidSuccess(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := newInvoiceTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/invoices/42", bytes.NewBufferString(`{"status":"payée"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if svc.markPaidID != "42" {
		t.Fatalf("expected service call with id 42, got %q", svc.markPaidID)
	}
}
