package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
	"github.com/soundsystems/shirtcalc/internal/service/quoting"
)

// SessionCookie names the cookie carrying the form session ID.
const SessionCookie = "shirtcalc_session"

const sessionCookieMaxAge = 24 * 60 * 60

// FormHandler serves the server-rendered quote form.
type FormHandler struct {
	svc      quoting.Quoter
	sessions *quoting.SessionManager
	logger   *zap.Logger
}

// NewFormHandler constructs the HTML form handler.
func NewFormHandler(svc quoting.Quoter, sessions *quoting.SessionManager, logger *zap.Logger) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{svc: svc, sessions: sessions, logger: logger}
}

// Show renders the form and, in the quote-computed state, the quote table.
func (h *FormHandler) Show(c *gin.Context) {
	id := h.sessionID(c)
	state := h.sessions.Get(id)
	h.render(c, http.StatusOK, state, nil)
}

// Submit validates the form and computes a quote for the session's brand and color.
func (h *FormHandler) Submit(c *gin.Context) {
	id := h.sessionID(c)
	state := h.sessions.Get(id)
	brand := h.brand(state)

	inputs := collectInputs(c, brand)
	req, err := pricing.FromForm(brand, state.Color, func(key string) string { return inputs[key] })
	if err == nil {
		var quote models.Quote
		quote, err = h.svc.Quote(c.Request.Context(), req, quoting.ChannelWeb)
		if err == nil {
			if !h.sessions.StoreQuote(id, state, quote, inputs) {
				h.logger.Debug("selection changed while pricing, quote discarded", zap.String("color", string(state.Color)))
			}
			h.render(c, http.StatusOK, h.sessions.Get(id), nil)
			return
		}
	}

	fields, ok := pricing.IsValidation(err)
	if !ok {
		h.logger.Error("failed to compute quote", zap.Error(err))
		c.String(http.StatusInternalServerError, "unable to compute quote")
		return
	}

	h.sessions.StoreInputs(id, inputs)
	h.render(c, http.StatusUnprocessableEntity, h.sessions.Get(id), fields)
}

// SetColor toggles the garment color; any computed quote is discarded.
func (h *FormHandler) SetColor(c *gin.Context) {
	color, err := models.ParseColor(c.PostForm("color"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	id := h.sessionID(c)
	if h.sessions.SetColor(id, color) {
		h.logger.Debug("color changed, quote discarded", zap.String("color", string(color)))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// SetBrand switches the brand; any computed quote is discarded.
func (h *FormHandler) SetBrand(c *gin.Context) {
	brand, ok := h.svc.Catalog().Brand(c.PostForm("brand"))
	if !ok {
		c.String(http.StatusBadRequest, "unknown brand")
		return
	}

	h.sessions.SetBrand(h.sessionID(c), brand.ID)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *FormHandler) render(c *gin.Context, status int, state quoting.FormState, errs pricing.FieldErrors) {
	catalog := h.svc.Catalog()
	c.HTML(status, "index.html", newPageView(catalog, h.brand(state), state.Color, state.Inputs, errs, state.Quote))
}

func (h *FormHandler) brand(state quoting.FormState) models.Brand {
	catalog := h.svc.Catalog()
	if b, ok := catalog.Brand(state.Brand); ok {
		return b
	}
	b, _ := catalog.Brand("")
	return b
}

func (h *FormHandler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, sessionCookieMaxAge, "/", "", false, true)
	return id
}

func collectInputs(c *gin.Context, brand models.Brand) map[string]string {
	keys := []string{pricing.FieldDesignElements, pricing.FieldExtraColors, "wholesale"}
	for _, g := range brand.Garments {
		keys = append(keys, pricing.QuantityField(g.ID))
	}

	inputs := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := c.GetPostForm(k); ok {
			inputs[k] = v
		}
	}
	return inputs
}
