package order

import (
	"errors"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/bouquet-order/internal/pricing"
)

// MaxFlowerQuantity is the largest accepted dahlia or plumeria quantity.
const MaxFlowerQuantity = 100

// User-facing validation messages, reported in this order.
const (
	MsgPrimaryColor = "Please choose a primary ribbon colour."
	MsgName         = "Please enter your name."
	MsgPhone        = "Please enter your phone number."
	MsgQuantity     = "Flower quantities must be between 0 and 100."
)

var validate = validator.New()

type submission struct {
	PrimaryColor  string `validate:"required"`
	CustomerName  string `validate:"required"`
	CustomerPhone string `validate:"required"`
	DahliaQty     int    `validate:"gte=0,lte=100"`
	PlumeriaQty   int    `validate:"gte=0,lte=100"`
}

// Validate returns every rule the selection breaks. An empty result means the
// order may be submitted.
func Validate(sel pricing.Selection) []string {
	sub := submission{
		CustomerName:  strings.TrimSpace(sel.CustomerName),
		CustomerPhone: strings.TrimSpace(sel.CustomerPhone),
		DahliaQty:     sel.DahliaQty,
		PlumeriaQty:   sel.PlumeriaQty,
	}
	if sel.PrimaryColor != nil {
		sub.PrimaryColor = strings.TrimSpace(*sel.PrimaryColor)
	}

	failed := map[string]bool{}
	if err := validate.Struct(sub); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []string{err.Error()}
		}
		for _, fe := range fieldErrs {
			failed[fe.StructField()] = true
		}
	}

	msgs := make([]string, 0, 4)
	if failed["PrimaryColor"] {
		msgs = append(msgs, MsgPrimaryColor)
	}
	if failed["CustomerName"] {
		msgs = append(msgs, MsgName)
	}
	if failed["CustomerPhone"] {
		msgs = append(msgs, MsgPhone)
	}
	if failed["DahliaQty"] || failed["PlumeriaQty"] {
		msgs = append(msgs, MsgQuantity)
	}
	return msgs
}
