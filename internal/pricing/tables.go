package pricing

import (
	"errors"
	"fmt"
)

// AddOnPrices holds the unit price of every add-on and special flower.
// Crown, Butterfly and Writing are flat; Glitter and Gems are charged per rose;
// Dahlia and Plumeria are charged per flower.
type AddOnPrices struct {
	Crown     Money `json:"crown"`
	Butterfly Money `json:"butterfly"`
	Writing   Money `json:"writing"`
	Glitter   Money `json:"glitter"`
	Gems      Money `json:"gems"`
	Dahlia    Money `json:"dahlia"`
	Plumeria  Money `json:"plumeria"`
}

// Tables is the pricing configuration handed to the engine.
type Tables struct {
	// Sizes lists the selectable bouquet sizes in slider order.
	Sizes []int
	// SizePrices maps a flower count to the flat bouquet price.
	SizePrices map[int]Money
	AddOns     AddOnPrices
}

// DefaultTables returns the prices published on the order page.
func DefaultTables() Tables {
	return Tables{
		Sizes: []int{7, 9, 12, 15, 20, 30},
		SizePrices: map[int]Money{
			7:  1500,
			9:  2000,
			12: 2500,
			15: 3000,
			20: 4000,
			30: 5000,
		},
		AddOns: AddOnPrices{
			Crown:     300,
			Butterfly: 100,
			Writing:   300,
			Glitter:   75,
			Gems:      50,
			Dahlia:    500,
			Plumeria:  500,
		},
	}
}

// MaxUnitPrice bounds configured prices ($1,000,000.00).
const MaxUnitPrice Money = 100_000_000

// SizePrice returns the flat price for a bouquet of the given flower count.
func (t Tables) SizePrice(flowers int) (Money, bool) {
	price, ok := t.SizePrices[flowers]
	return price, ok
}

// Validate reports configuration mistakes that would produce nonsensical quotes.
func (t Tables) Validate() error {
	if len(t.Sizes) == 0 {
		return errors.New("pricing: at least one bouquet size is required")
	}
	for _, size := range t.Sizes {
		if size <= 0 || size > MaxQuantity {
			return fmt.Errorf("pricing: bouquet size %d out of range", size)
		}
	}
	for size, price := range t.SizePrices {
		if price < 0 || price > MaxUnitPrice {
			return fmt.Errorf("pricing: price for %d flowers out of range", size)
		}
	}
	addons := map[string]Money{
		"crown":     t.AddOns.Crown,
		"butterfly": t.AddOns.Butterfly,
		"writing":   t.AddOns.Writing,
		"glitter":   t.AddOns.Glitter,
		"gems":      t.AddOns.Gems,
		"dahlia":    t.AddOns.Dahlia,
		"plumeria":  t.AddOns.Plumeria,
	}
	for name, price := range addons {
		if price < 0 || price > MaxUnitPrice {
			return fmt.Errorf("pricing: %s price out of range", name)
		}
	}
	return nil
}
