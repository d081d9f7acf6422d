package price

import (
	"encoding/json"
	"strconv"
)

// Price is a product price exactly as the database returned it. Keeping the
// text form avoids float rounding between the table and the page.
type Price string

// MarshalJSON emits numeric prices as JSON numbers and anything else as a string.
func (p Price) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(p), 64); err == nil && json.Valid([]byte(p)) {
		return []byte(p), nil
	}
	return json.Marshal(string(p))
}

func (p *Price) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	*p = Price(b)
	return nil
}

// PricedItem is a detected product that matched a row in the products table.
type PricedItem struct {
	Product string `json:"product"`
	Price   Price  `json:"price"`
}
