package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/facturio/internal/invoice/domain"
	"github.com/smallbiznis/facturio/internal/invoice/render"
)

type createInvoiceLineItem struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	UnitPriceHT float64 `json:"unit_price_ht"`
	TaxRate     float64 `json:"tax_rate"`
	TotalHT     float64 `json:"total_ht"`
	TotalTTC    float64 `json:"total_ttc"`
}

type createInvoiceRequest struct {
	NumberingRuleID string                  `json:"numbering_rule_id"`
	ClientName      string                  `json:"client_name"`
	Address         string                  `json:"address"`
	InvoiceNumber   string                  `json:"invoice_number"`
	CreationDate    string                  `json:"creation_date"`
	Items           []createInvoiceLineItem `json:"items"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]invoicedomain.CreateLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, invoicedomain.CreateLineItem{
			Name:        strings.TrimSpace(item.Name),
			Quantity:    item.Quantity,
			UnitPriceHT: item.UnitPriceHT,
			TaxRate:     item.TaxRate,
			TotalHT:     item.TotalHT,
			TotalTTC:    item.TotalTTC,
		})
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		NumberingRuleID: strings.TrimSpace(req.NumberingRuleID),
		ClientName:      strings.TrimSpace(req.ClientName),
		Address:         strings.TrimSpace(req.Address),
		InvoiceNumber:   req.InvoiceNumber,
		CreationDate:    req.CreationDate,
		Items:           items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.GetWithItems(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateInvoiceRequest struct {
	Status string `json:"status"`
}

// MarkInvoicePaid flips an invoice to "payée". Any other target status is
// rejected.
func (s *Server) MarkInvoicePaid(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if invoicedomain.InvoiceStatus(strings.TrimSpace(req.Status)) != invoicedomain.InvoiceStatusPaid {
		AbortWithError(c, newValidationError("status", "invalid_status", "invalid value"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if err := s.invoiceSvc.MarkPaid(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": invoicedomain.InvoiceStatusPaid}})
}

// GenerateInvoiceDocument streams a rendered invoice as an attachment. The
// format is validated before the invoice is even loaded.
func (s *Server) GenerateInvoiceDocument(c *gin.Context) {
	format, err := render.ParseFormat(strings.TrimSpace(c.Query("format")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	doc, err := s.invoiceSvc.Render(c.Request.Context(), id, format)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(doc.Data)))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidInvoiceID,
		invoicedomain.ErrInvalidNumber,
		invoicedomain.ErrInvalidCreationDate:
		return true
	default:
		return false
	}
}
