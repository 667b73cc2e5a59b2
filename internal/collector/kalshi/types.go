package kalshi

// Market is one tradable Kalshi market. Prices are quoted in cents (1-99);
// zero means no resting order on that side.
type Market struct {
	Ticker      string  `json:"ticker"`
	EventTicker string  `json:"event_ticker"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	YesBid      float64 `json:"yes_bid"`
	YesAsk      float64 `json:"yes_ask"`
	Volume      int64   `json:"volume"`
}
