package domain

// Mention is a candidate product reference found in an utterance, before it
// is resolved against the catalog. RawQuantity is empty when none was said.
type Mention struct {
	RawName     string
	RawQuantity string
}

func (m Mention) HasQuantity() bool {
	return m.RawQuantity != ""
}

// LineItem is a priced, quantity-bound product ready for review and checkout.
// Price is the rendered currency string; Amount is the same value as a number.
type LineItem struct {
	ID          string
	ProductID   int
	DisplayName string
	Quantity    string
	Price       string
	Amount      float64
}
