package order

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/noah-isme/bouquet-order/internal/common"
	"github.com/noah-isme/bouquet-order/internal/pricing"
)

const maxMultipartMemory = 1 << 20

// Handler exposes the quote and order endpoints used by the order page.
type Handler struct {
	Svc *Service
	// ThankYouURL receives browsers after a successful native form post.
	ThankYouURL string
}

type sizeOption struct {
	Index   int    `json:"index"`
	Flowers int    `json:"flowers"`
	Price   string `json:"price"`
}

// Pricing returns the active price tables.
func (h *Handler) Pricing(w http.ResponseWriter, _ *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	tables := h.Svc.Tables
	sizes := make([]sizeOption, 0, len(tables.Sizes))
	for i, flowers := range tables.Sizes {
		price, ok := tables.SizePrice(flowers)
		label := ""
		if ok {
			label = pricing.FormatCurrency(price)
		}
		sizes = append(sizes, sizeOption{Index: i, Flowers: flowers, Price: label})
	}
	a := tables.AddOns
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"sizes": sizes,
		"addons": map[string]string{
			"crown":     pricing.FormatCurrency(a.Crown),
			"butterfly": pricing.FormatCurrency(a.Butterfly),
			"writing":   pricing.FormatCurrency(a.Writing),
			"glitter":   pricing.FormatCurrency(a.Glitter),
			"gems":      pricing.FormatCurrency(a.Gems),
			"dahlia":    pricing.FormatCurrency(a.Dahlia),
			"plumeria":  pricing.FormatCurrency(a.Plumeria),
		},
		"maxFlowerQuantity": MaxFlowerQuantity,
	}})
}

// Quote prices the posted selection without validating it.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	sel, _, err := readSelection(r)
	if err != nil {
		common.WriteError(w, common.BadRequest("invalid payload", err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.Quote(sel)})
}

// Submit validates and relays an order.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	sel, native, err := readSelection(r)
	if err != nil {
		common.WriteError(w, common.BadRequest("invalid payload", err))
		return
	}
	out, err := h.Svc.Submit(r.Context(), sel)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if native && h.ThankYouURL != "" && acceptsHTML(r) {
		http.Redirect(w, r, h.ThankYouURL, http.StatusSeeOther)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": out})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", strings.Join(vErr.Messages, "\n"),
			map[string]any{"messages": vErr.Messages})
	case errors.Is(err, ErrSubmitFailed):
		common.JSONError(w, http.StatusBadGateway, "SUBMIT_FAILED", MsgSubmitFailed, nil)
	default:
		common.WriteError(w, err)
	}
}

// readSelection decodes JSON bodies or native form posts. The bool reports
// whether the request came from a native form.
func readSelection(r *http.Request) (pricing.Selection, bool, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return pricing.Selection{}, false, err
		}
		sel, err := DecodeSelection(body)
		return sel, false, err
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return pricing.Selection{}, true, err
		}
		return SelectionFromForm(r.Form), true, nil
	default:
		if err := r.ParseForm(); err != nil {
			return pricing.Selection{}, true, err
		}
		return SelectionFromForm(r.Form), true, nil
	}
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
