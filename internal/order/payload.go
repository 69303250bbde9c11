package order

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/noah-isme/bouquet-order/internal/pricing"
)

// DisplayItem is a line item with money already formatted for the page.
type DisplayItem struct {
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

// Display holds the strings the page writes into its summary panel.
type Display struct {
	FlowerCount  string        `json:"flowerCount"`
	RoseCount    string        `json:"roseCount"`
	SpecialCount string        `json:"specialCount"`
	Items        []DisplayItem `json:"items"`
	Total        string        `json:"total"`
}

// NewDisplay formats counts and a breakdown.
func NewDisplay(counts pricing.DerivedCounts, bd pricing.Breakdown) Display {
	items := make([]DisplayItem, 0, len(bd.Items))
	for _, it := range bd.Items {
		items = append(items, DisplayItem{
			Label:     it.Label,
			Quantity:  it.Quantity,
			UnitPrice: pricing.FormatCurrency(it.UnitPrice),
			Subtotal:  pricing.FormatCurrency(it.Subtotal),
		})
	}
	return Display{
		FlowerCount:  strconv.Itoa(counts.BaseTotal),
		RoseCount:    strconv.Itoa(counts.RoseCount),
		SpecialCount: strconv.Itoa(counts.SpecialTotal),
		Items:        items,
		Total:        pricing.FormatCurrency(bd.Total),
	}
}

// Payload is everything relayed for one order.
type Payload struct {
	Reference string
	Subject   string
	Selection pricing.Selection
	Counts    pricing.DerivedCounts
	Breakdown pricing.Breakdown
}

// Project builds the relay payload for a priced selection.
func Project(ref, subject string, sel pricing.Selection, counts pricing.DerivedCounts, bd pricing.Breakdown) Payload {
	return Payload{
		Reference: ref,
		Subject:   subject,
		Selection: sel,
		Counts:    counts,
		Breakdown: bd,
	}
}

// Fields flattens the payload into the hidden form fields sent to the relay.
func (p Payload) Fields() url.Values {
	v := url.Values{}
	v.Set("order_ref", p.Reference)
	v.Set(FieldPrimaryRibbon, deref(p.Selection.PrimaryColor, ""))
	v.Set(FieldSecondaryRibbon, deref(p.Selection.SecondaryColor, "none"))
	v.Set("bouquet_size", strconv.Itoa(p.Counts.BaseTotal))
	v.Set("rose_count", strconv.Itoa(p.Counts.RoseCount))
	v.Set("special_count", strconv.Itoa(p.Counts.SpecialTotal))
	v.Set(FieldDahliaQty, strconv.Itoa(pricing.ClampQuantity(p.Selection.DahliaQty)))
	v.Set(FieldPlumeriaQty, strconv.Itoa(pricing.ClampQuantity(p.Selection.PlumeriaQty)))
	v.Set("addons", addOnList(p.Selection.AddOns))
	v.Set("price_breakdown", breakdownText(p.Breakdown))
	v.Set("total_price", pricing.FormatMoney(p.Breakdown.Total))
	v.Set(FieldName, p.Selection.CustomerName)
	v.Set(FieldPhone, p.Selection.CustomerPhone)
	v.Set(FieldDetails, p.Selection.Details)

	subject := strings.TrimSpace(p.Subject)
	if subject == "" {
		subject = "New bouquet order"
	}
	v.Set("_subject", fmt.Sprintf("%s (%s)", subject, pricing.FormatCurrency(p.Breakdown.Total)))
	v.Set("_template", "table")
	v.Set("_captcha", "false")
	return v
}

func addOnList(a pricing.AddOns) string {
	names := make([]string, 0, 5)
	if a.Crown {
		names = append(names, "crown")
	}
	if a.Butterfly {
		names = append(names, "butterfly")
	}
	if a.Writing {
		names = append(names, "writing")
	}
	if a.Glitter {
		names = append(names, "glitter")
	}
	if a.Gems {
		names = append(names, "gems")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func breakdownText(bd pricing.Breakdown) string {
	lines := make([]string, 0, len(bd.Items))
	for _, it := range bd.Items {
		lines = append(lines, fmt.Sprintf("%s: %d x %s = %s",
			it.Label, it.Quantity, pricing.FormatCurrency(it.UnitPrice), pricing.FormatCurrency(it.Subtotal)))
	}
	return strings.Join(lines, "\n")
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
