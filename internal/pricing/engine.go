package pricing

import "fmt"

// AddOns captures the independent add-on toggles of an order.
type AddOns struct {
	Crown     bool `json:"crown"`
	Butterfly bool `json:"butterfly"`
	Writing   bool `json:"writing"`
	Glitter   bool `json:"glitter"`
	Gems      bool `json:"gems"`
}

// Selection is the raw state of the order form. Quantities are kept as parsed so
// that validation can still see out-of-range input; the engine clamps them.
type Selection struct {
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	SizeIndex      int     `json:"sizeIndex"`
	DahliaQty      int     `json:"dahliaQuantity"`
	PlumeriaQty    int     `json:"plumeriaQuantity"`
	AddOns         AddOns  `json:"addons"`
	CustomerName   string  `json:"name"`
	CustomerPhone  string  `json:"phone"`
	Details        string  `json:"details"`
}

// DerivedCounts are the flower counts implied by a selection.
type DerivedCounts struct {
	BaseTotal    int `json:"baseTotal"`
	SpecialTotal int `json:"specialTotal"`
	RoseCount    int `json:"roseCount"`
}

// LineItem is one priced row of a breakdown.
type LineItem struct {
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unitPrice"`
	Subtotal  Money  `json:"subtotal"`
}

// Breakdown is the ordered list of line items and their exact total.
type Breakdown struct {
	Items []LineItem `json:"items"`
	Total Money      `json:"total"`
}

// ClampSizeIndex pins idx into the valid range of a size table of length n.
func ClampSizeIndex(idx, n int) int {
	if n <= 0 || idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// DeriveCounts computes base, special and rose counts. Special flowers displace
// roses down to zero; they never grow the bouquet.
func DeriveCounts(sel Selection, sizes []int) DerivedCounts {
	base := 0
	if len(sizes) > 0 {
		base = sizes[ClampSizeIndex(sel.SizeIndex, len(sizes))]
	}
	special := ClampQuantity(sel.DahliaQty) + ClampQuantity(sel.PlumeriaQty)
	roses := base - special
	if roses < 0 {
		roses = 0
	}
	return DerivedCounts{
		BaseTotal:    base,
		SpecialTotal: special,
		RoseCount:    roses,
	}
}

// BuildBreakdown prices a selection. Items appear in a fixed order: bouquet,
// special flowers, flat add-ons, per-rose add-ons. Per-rose add-ons are dropped
// when the bouquet has no roses left.
func BuildBreakdown(sel Selection, counts DerivedCounts, tables Tables) Breakdown {
	items := make([]LineItem, 0, 8)
	add := func(label string, qty int, unit Money) {
		items = append(items, LineItem{
			Label:     label,
			Quantity:  qty,
			UnitPrice: unit,
			Subtotal:  Money(qty) * unit,
		})
	}

	if price, ok := tables.SizePrice(counts.BaseTotal); ok {
		add(fmt.Sprintf("Bouquet (%d flowers)", counts.BaseTotal), 1, price)
	}

	if qty := ClampQuantity(sel.DahliaQty); qty > 0 {
		add("Dahlia", qty, tables.AddOns.Dahlia)
	}
	if qty := ClampQuantity(sel.PlumeriaQty); qty > 0 {
		add("Plumeria", qty, tables.AddOns.Plumeria)
	}

	if sel.AddOns.Crown {
		add("Crown", 1, tables.AddOns.Crown)
	}
	if sel.AddOns.Butterfly {
		add("Butterfly", 1, tables.AddOns.Butterfly)
	}
	if sel.AddOns.Writing {
		add("Writing", 1, tables.AddOns.Writing)
	}

	if counts.RoseCount > 0 {
		if sel.AddOns.Glitter {
			add("Glitter (per rose)", counts.RoseCount, tables.AddOns.Glitter)
		}
		if sel.AddOns.Gems {
			add("Gems (per rose)", counts.RoseCount, tables.AddOns.Gems)
		}
	}

	var total Money
	for _, it := range items {
		total += it.Subtotal
	}
	return Breakdown{Items: items, Total: total}
}

// Quote derives counts and prices the selection in one call.
func Quote(sel Selection, tables Tables) (DerivedCounts, Breakdown) {
	counts := DeriveCounts(sel, tables.Sizes)
	return counts, BuildBreakdown(sel, counts, tables)
}
