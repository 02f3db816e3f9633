package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
	"github.com/soundsystems/shirtcalc/internal/service/quoting"
)

// QuoteHandler exposes the calculator as a JSON API.
type QuoteHandler struct {
	svc    quoting.Quoter
	logger *zap.Logger
}

// NewQuoteHandler constructs the JSON API handler.
func NewQuoteHandler(svc quoting.Quoter, logger *zap.Logger) *QuoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteHandler{svc: svc, logger: logger}
}

type quoteRequestBody struct {
	Brand          string         `json:"brand"`
	Color          string         `json:"color"`
	Quantities     map[string]int `json:"quantities"`
	DesignElements *int           `json:"design_elements"`
	ExtraColors    int            `json:"extra_colors"`
	Wholesale      bool           `json:"wholesale"`
}

// Catalog returns the pricing catalog.
func (h *QuoteHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, newCatalogResponse(h.svc.Catalog()))
}

// Create computes a quote. An omitted design_elements charges one screen.
func (h *QuoteHandler) Create(c *gin.Context) {
	var body quoteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn("invalid quote payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	color, err := models.ParseColor(body.Color)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "invalid quote request",
			"fields": pricing.FieldErrors{pricing.FieldColor: "must be light or dark"},
		})
		return
	}

	req := models.QuoteRequest{
		Brand:          body.Brand,
		Color:          color,
		Quantities:     body.Quantities,
		DesignElements: pricing.DefaultDesignElements,
		ExtraColors:    body.ExtraColors,
		Wholesale:      body.Wholesale,
	}
	if body.DesignElements != nil {
		req.DesignElements = *body.DesignElements
	}

	quote, err := h.svc.Quote(c.Request.Context(), req, quoting.ChannelAPI)
	if err != nil {
		if fields, ok := pricing.IsValidation(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid quote request", "fields": fields})
			return
		}
		h.logger.Error("failed to compute quote", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to compute quote"})
		return
	}

	c.JSON(http.StatusOK, newQuoteResponse(quote, h.svc.Catalog().Currency))
}
