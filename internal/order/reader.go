package order

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/noah-isme/bouquet-order/internal/pricing"
)

// Form field names used by the order page.
const (
	FieldPrimaryRibbon   = "primary_ribbon"
	FieldSecondaryRibbon = "secondary_ribbon"
	FieldSizeIndex       = "size_index"
	FieldDahliaQty       = "dahlia_qty"
	FieldPlumeriaQty     = "plumeria_qty"
	FieldGlitter         = "addon_glitter"
	FieldCrown           = "addon_crown"
	FieldButterfly       = "addon_butterfly"
	FieldWriting         = "addon_writing"
	FieldGems            = "addon_gems"
	FieldName            = "name"
	FieldPhone           = "phone"
	FieldDetails         = "details"
)

// SelectionFromForm reads a native form post. Absent colours become nil, absent
// checkboxes false and absent quantities 0.
func SelectionFromForm(values url.Values) pricing.Selection {
	return pricing.Selection{
		PrimaryColor:   optionalString(values.Get(FieldPrimaryRibbon)),
		SecondaryColor: optionalString(values.Get(FieldSecondaryRibbon)),
		SizeIndex:      pricing.ParseInt(values.Get(FieldSizeIndex)),
		DahliaQty:      pricing.ParseInt(values.Get(FieldDahliaQty)),
		PlumeriaQty:    pricing.ParseInt(values.Get(FieldPlumeriaQty)),
		AddOns: pricing.AddOns{
			Glitter:   checked(values.Get(FieldGlitter)),
			Crown:     checked(values.Get(FieldCrown)),
			Butterfly: checked(values.Get(FieldButterfly)),
			Writing:   checked(values.Get(FieldWriting)),
			Gems:      checked(values.Get(FieldGems)),
		},
		CustomerName:  strings.TrimSpace(values.Get(FieldName)),
		CustomerPhone: strings.TrimSpace(values.Get(FieldPhone)),
		Details:       strings.TrimSpace(values.Get(FieldDetails)),
	}
}

// selectionRequest is the JSON shape posted by the page script.
type selectionRequest struct {
	PrimaryColor   *string  `json:"primaryColor"`
	SecondaryColor *string  `json:"secondaryColor"`
	SizeIndex      looseInt `json:"sizeIndex"`
	AddOns         struct {
		Glitter          bool     `json:"glitter"`
		Crown            bool     `json:"crown"`
		Butterfly        bool     `json:"butterfly"`
		Writing          bool     `json:"writing"`
		Gems             bool     `json:"gems"`
		DahliaQuantity   looseInt `json:"dahliaQuantity"`
		PlumeriaQuantity looseInt `json:"plumeriaQuantity"`
	} `json:"addons"`
	Details string `json:"details"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

func (r selectionRequest) selection() pricing.Selection {
	var primary, secondary *string
	if r.PrimaryColor != nil {
		primary = optionalString(*r.PrimaryColor)
	}
	if r.SecondaryColor != nil {
		secondary = optionalString(*r.SecondaryColor)
	}
	return pricing.Selection{
		PrimaryColor:   primary,
		SecondaryColor: secondary,
		SizeIndex:      int(r.SizeIndex),
		DahliaQty:      int(r.AddOns.DahliaQuantity),
		PlumeriaQty:    int(r.AddOns.PlumeriaQuantity),
		AddOns: pricing.AddOns{
			Glitter:   r.AddOns.Glitter,
			Crown:     r.AddOns.Crown,
			Butterfly: r.AddOns.Butterfly,
			Writing:   r.AddOns.Writing,
			Gems:      r.AddOns.Gems,
		},
		CustomerName:  strings.TrimSpace(r.Name),
		CustomerPhone: strings.TrimSpace(r.Phone),
		Details:       strings.TrimSpace(r.Details),
	}
}

// DecodeSelection parses a JSON order body into a selection.
func DecodeSelection(body []byte) (pricing.Selection, error) {
	var req selectionRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return req.selection(), nil
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return pricing.Selection{}, err
	}
	return req.selection(), nil
}

// looseInt accepts JSON numbers, numeric strings and null. Anything that does
// not start with an integer decodes as 0.
type looseInt int

func (l *looseInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*l = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	*l = looseInt(pricing.ParseInt(raw))
	return nil
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "on", "true", "yes", "checked":
		return true
	default:
		return false
	}
}
