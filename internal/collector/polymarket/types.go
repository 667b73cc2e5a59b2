package polymarket

import (
	"encoding/json"
	"strconv"
)

// APIMarket is a market entry from the CLOB market listing.
type APIMarket struct {
	ConditionID string `json:"condition_id"`
	Question    string `json:"question"`
	Active      bool   `json:"active"`
	Closed      bool   `json:"closed"`
}

// APIOrderbook is a market orderbook as returned by the CLOB API. Levels
// arrive as [price, size] string pairs, best level first.
type APIOrderbook struct {
	Bids []PriceLevel `json:"bids"`
	Asks []PriceLevel `json:"asks"`
}

// PriceLevel is one orderbook level.
type PriceLevel struct {
	Price float64
	Size  float64
}

// UnmarshalJSON accepts both the array form ["0.42","100"] and the object
// form {"price":"0.42","size":"100"} the API has been seen to return.
func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var arr []json.Number
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) > 0 {
			l.Price, _ = arr[0].Float64()
		}
		if len(arr) > 1 {
			l.Size, _ = arr[1].Float64()
		}
		return nil
	}

	var obj struct {
		Price string `json:"price"`
		Size  string `json:"size"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	l.Price, _ = strconv.ParseFloat(obj.Price, 64)
	l.Size, _ = strconv.ParseFloat(obj.Size, 64)
	return nil
}

// BestBid returns the top-of-book bid price, or 0 when the side is empty.
func (ob APIOrderbook) BestBid() float64 {
	if len(ob.Bids) == 0 {
		return 0
	}
	return ob.Bids[0].Price
}

// BestAsk returns the top-of-book ask price, or 0 when the side is empty.
func (ob APIOrderbook) BestAsk() float64 {
	if len(ob.Asks) == 0 {
		return 0
	}
	return ob.Asks[0].Price
}
