package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// GenerateSession exchanges a request token (obtained from the external login
// flow) for an access token and installs it on the client.
//
// The exchange posts api_key, request_token and a SHA-256 checksum of
// apiKey + requestToken + apiSecret to /session/token.
func (c *Client) GenerateSession(requestToken string) (*Session, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("request_token", requestToken)
	params.Set("checksum", sessionChecksum(c.apiKey, requestToken, c.apiSecret))

	data, err := c.request(http.MethodPost, "/session/token", params, false)
	if err != nil {
		return nil, fmt.Errorf("session exchange failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("session exchange returned no access token")
	}

	c.SetAccessToken(session.AccessToken)
	return &session, nil
}

// Holdings retrieves the account's delivery holdings.
// Calls GET /portfolio/holdings.
func (c *Client) Holdings() ([]Holding, error) {
	data, err := c.request(http.MethodGet, "/portfolio/holdings", nil, true)
	if err != nil {
		return nil, err
	}

	var holdings []Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return nil, fmt.Errorf("failed to decode holdings: %w", err)
	}
	return holdings, nil
}

// Positions retrieves day and net positions.
// Calls GET /portfolio/positions.
func (c *Client) Positions() (*Positions, error) {
	data, err := c.request(http.MethodGet, "/portfolio/positions", nil, true)
	if err != nil {
		return nil, err
	}

	var positions Positions
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to decode positions: %w", err)
	}
	return &positions, nil
}

// LTP retrieves last traded prices for the given quote identifiers
// (exchange:symbol form). Calls GET /quote/ltp.
func (c *Client) LTP(instruments []string) (map[string]LTPQuote, error) {
	params := url.Values{}
	for _, instrument := range instruments {
		params.Add("i", instrument)
	}

	data, err := c.request(http.MethodGet, "/quote/ltp", params, true)
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]LTPQuote)
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode ltp quotes: %w", err)
	}
	return quotes, nil
}

// Quote retrieves full market quotes, including five-level depth, for the
// given quote identifiers. Calls GET /quote.
func (c *Client) Quote(instruments []string) (map[string]Quote, error) {
	params := url.Values{}
	for _, instrument := range instruments {
		params.Add("i", instrument)
	}

	data, err := c.request(http.MethodGet, "/quote", params, true)
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]Quote)
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	return quotes, nil
}

// PlaceOrder places an order of the given variety ("regular" for this
// application). Calls POST /orders/{variety}.
func (c *Client) PlaceOrder(variety string, p OrderParams) (*OrderResponse, error) {
	params := url.Values{}
	params.Set("tradingsymbol", p.TradingSymbol)
	params.Set("exchange", p.Exchange)
	params.Set("transaction_type", p.TransactionType)
	params.Set("order_type", p.OrderType)
	params.Set("quantity", strconv.Itoa(p.Quantity))
	params.Set("product", p.Product)
	if p.OrderType == "LIMIT" {
		params.Set("price", strconv.FormatFloat(p.Price, 'f', 2, 64))
	}
	validity := p.Validity
	if validity == "" {
		validity = "DAY"
	}
	params.Set("validity", validity)
	if p.Tag != "" {
		params.Set("tag", p.Tag)
	}

	data, err := c.request(http.MethodPost, "/orders/"+variety, params, true)
	if err != nil {
		return nil, err
	}

	var resp OrderResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	return &resp, nil
}

// Margins retrieves available funds for a segment. An empty segment defaults
// to "equity". Calls GET /user/margins/{segment}.
func (c *Client) Margins(segment string) (*SegmentMargins, error) {
	if segment == "" {
		segment = "equity"
	}

	data, err := c.request(http.MethodGet, "/user/margins/"+segment, nil, true)
	if err != nil {
		return nil, err
	}

	var margins SegmentMargins
	if err := json.Unmarshal(data, &margins); err != nil {
		return nil, fmt.Errorf("failed to decode margins: %w", err)
	}
	return &margins, nil
}
