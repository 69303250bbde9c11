package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bouquet-order/internal/pricing"
)

func TestPayloadFields(t *testing.T) {
	sel := validSelection()
	sel.Details = "Happy birthday"
	counts, bd := pricing.Quote(sel, pricing.DefaultTables())

	fields := Project("ref-1", "Bouquet order", sel, counts, bd).Fields()
	require.Equal(t, "ref-1", fields.Get("order_ref"))
	require.Equal(t, "blush", fields.Get(FieldPrimaryRibbon))
	require.Equal(t, "none", fields.Get(FieldSecondaryRibbon))
	require.Equal(t, "12", fields.Get("bouquet_size"))
	require.Equal(t, "10", fields.Get("rose_count"))
	require.Equal(t, "2", fields.Get("special_count"))
	require.Equal(t, "crown, glitter", fields.Get("addons"))
	require.Equal(t, "45.50", fields.Get("total_price"))
	require.Equal(t, "Bouquet order ($45.50)", fields.Get("_subject"))
	require.Equal(t, "Happy birthday", fields.Get(FieldDetails))
	require.Equal(t, "Bouquet (12 flowers): 1 x $25.00 = $25.00\n"+
		"Dahlia: 2 x $5.00 = $10.00\n"+
		"Crown: 1 x $3.00 = $3.00\n"+
		"Glitter (per rose): 10 x $0.75 = $7.50", fields.Get("price_breakdown"))
}

func TestPayloadFieldsDefaults(t *testing.T) {
	sel := pricing.Selection{DahliaQty: -3}
	counts, bd := pricing.Quote(sel, pricing.DefaultTables())
	fields := Project("ref-2", "", sel, counts, bd).Fields()
	require.Equal(t, "none", fields.Get("addons"))
	require.Equal(t, "0", fields.Get(FieldDahliaQty))
	require.Equal(t, "New bouquet order ($15.00)", fields.Get("_subject"))
	require.Equal(t, "table", fields.Get("_template"))
}

func TestNewDisplay(t *testing.T) {
	counts, bd := pricing.Quote(validSelection(), pricing.DefaultTables())
	d := NewDisplay(counts, bd)
	require.Equal(t, "12", d.FlowerCount)
	require.Equal(t, "10", d.RoseCount)
	require.Equal(t, "2", d.SpecialCount)
	require.Equal(t, "$45.50", d.Total)
	require.Len(t, d.Items, 4)
	require.Equal(t, "$0.75", d.Items[3].UnitPrice)
}
