package sdk

// Wire models for the Kite Connect REST API.
// Field tags follow the API's JSON schema; only fields this application
// consumes are mapped.

// Session is the result of exchanging a request token for an access token
type Session struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	PublicToken string `json:"public_token"`
	LoginTime   string `json:"login_time"`
}

// Holding represents one delivery holding
type Holding struct {
	TradingSymbol   string  `json:"tradingsymbol"`
	Exchange        string  `json:"exchange"`
	InstrumentToken uint32  `json:"instrument_token"`
	ISIN            string  `json:"isin"`
	Product         string  `json:"product"`
	Quantity        int     `json:"quantity"`
	T1Quantity      int     `json:"t1_quantity"`
	AveragePrice    float64 `json:"average_price"`
	LastPrice       float64 `json:"last_price"`
	PnL             float64 `json:"pnl"`
}

// Position represents one position row (day or net)
type Position struct {
	TradingSymbol   string  `json:"tradingsymbol"`
	Exchange        string  `json:"exchange"`
	InstrumentToken uint32  `json:"instrument_token"`
	Product         string  `json:"product"`
	Quantity        int     `json:"quantity"`
	AveragePrice    float64 `json:"average_price"`
	LastPrice       float64 `json:"last_price"`
	PnL             float64 `json:"pnl"`
}

// Positions groups day and net positions
type Positions struct {
	Net []Position `json:"net"`
	Day []Position `json:"day"`
}

// LTPQuote is the minimal last-traded-price quote
type LTPQuote struct {
	InstrumentToken uint32  `json:"instrument_token"`
	LastPrice       float64 `json:"last_price"`
}

// DepthLevel is a single resting order book level
type DepthLevel struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Orders   int     `json:"orders"`
}

// Depth is the five-level market depth of a quote
type Depth struct {
	Buy  []DepthLevel `json:"buy"`
	Sell []DepthLevel `json:"sell"`
}

// Quote is the full market quote including depth
type Quote struct {
	InstrumentToken uint32  `json:"instrument_token"`
	LastPrice       float64 `json:"last_price"`
	Volume          int64   `json:"volume"`
	Depth           Depth   `json:"depth"`
}

// OrderParams are the fields submitted when placing an order
type OrderParams struct {
	TradingSymbol   string
	Exchange        string
	TransactionType string
	OrderType       string
	Quantity        int
	Product         string
	Price           float64 // only sent for LIMIT orders
	Validity        string
	Tag             string
}

// OrderResponse carries the broker-assigned order id
type OrderResponse struct {
	OrderID string `json:"order_id"`
}

// SegmentMargins represents available funds for one trading segment
type SegmentMargins struct {
	Enabled   bool    `json:"enabled"`
	Net       float64 `json:"net"`
	Available struct {
		Cash        float64 `json:"cash"`
		LiveBalance float64 `json:"live_balance"`
	} `json:"available"`
	Utilised struct {
		Debits float64 `json:"debits"`
	} `json:"utilised"`
}
