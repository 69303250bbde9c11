package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bouquet-order/internal/pricing"
)

func strPtr(s string) *string { return &s }

func validSelection() pricing.Selection {
	return pricing.Selection{
		PrimaryColor:  strPtr("blush"),
		SizeIndex:     2,
		DahliaQty:     2,
		AddOns:        pricing.AddOns{Crown: true, Glitter: true},
		CustomerName:  "Ana",
		CustomerPhone: "555-0000",
	}
}

func TestValidateAcceptsCompleteSelection(t *testing.T) {
	require.Empty(t, Validate(validSelection()))
}

func TestValidateReportsMessagesInOrder(t *testing.T) {
	sel := pricing.Selection{
		CustomerPhone: "555-1234",
		DahliaQty:     150,
	}
	require.Equal(t, []string{MsgPrimaryColor, MsgName, MsgQuantity}, Validate(sel))
}

func TestValidateAllRulesBroken(t *testing.T) {
	sel := pricing.Selection{
		PrimaryColor: strPtr("   "),
		CustomerName: " ",
		DahliaQty:    -1,
		PlumeriaQty:  101,
	}
	require.Equal(t, []string{MsgPrimaryColor, MsgName, MsgPhone, MsgQuantity}, Validate(sel))
}

func TestValidateQuantityBounds(t *testing.T) {
	for _, tc := range []struct {
		dahlia, plumeria int
		ok               bool
	}{
		{0, 0, true},
		{100, 100, true},
		{101, 0, false},
		{0, 101, false},
		{-1, 0, false},
		{pricing.ParseInt("99999999999999999999"), 0, false},
		{0, pricing.ParseInt("-99999999999999999999"), false},
	} {
		sel := validSelection()
		sel.DahliaQty, sel.PlumeriaQty = tc.dahlia, tc.plumeria
		msgs := Validate(sel)
		if tc.ok {
			require.Empty(t, msgs, "%d/%d", tc.dahlia, tc.plumeria)
		} else {
			require.Equal(t, []string{MsgQuantity}, msgs, "%d/%d", tc.dahlia, tc.plumeria)
		}
	}
}
