package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	numberingdomain "github.com/smallbiznis/facturio/internal/numbering/domain"
)

type createNumberingRuleRequest struct {
	ClientID     string `json:"client_id"`
	Description  string `json:"description"`
	NumberFormat string `json:"format_numero"`
}

func (s *Server) CreateNumberingRule(c *gin.Context) {
	var req createNumberingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.numberingSvc.Create(c.Request.Context(), numberingdomain.CreateRuleRequest{
		ClientID:     strings.TrimSpace(req.ClientID),
		Description:  strings.TrimSpace(req.Description),
		NumberFormat: req.NumberFormat,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListNumberingRules(c *gin.Context) {
	resp, err := s.numberingSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// NextInvoiceNumber previews the next number for a rule without reserving
// it.
func (s *Server) NextInvoiceNumber(c *gin.Context) {
	ruleID := strings.TrimSpace(c.Query("numbering_rule_id"))
	if ruleID == "" {
		AbortWithError(c, newValidationError("numbering_rule_id", "invalid_numbering_rule_id", "invalid value"))
		return
	}

	creationDate, err := parseCreationDate(c.Query("creation_date"))
	if err != nil {
		AbortWithError(c, newValidationError("creation_date", "invalid_creation_date", "invalid value"))
		return
	}

	resp, err := s.numberingSvc.NextNumber(c.Request.Context(), numberingdomain.NextNumberRequest{
		RuleID:       ruleID,
		CreationDate: creationDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseCreationDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(value), time.UTC)
}

func isNumberingValidationError(err error) bool {
	switch err {
	case numberingdomain.ErrInvalidClientID,
		numberingdomain.ErrInvalidFormat,
		numberingdomain.ErrInvalidRuleID:
		return true
	default:
		return false
	}
}
