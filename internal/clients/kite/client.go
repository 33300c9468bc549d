// Package kite provides client functionality for interacting with the Kite Connect API.
package kite

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mkartik/evenfolio/internal/clients/kite/sdk"
)

// Client for the Kite Connect API (using SDK directly)
type Client struct {
	sdkClient *sdk.Client
	log       zerolog.Logger
}

// NewClient creates a new Kite client.
// The client starts without a session; install one via SetAccessToken or
// GenerateSession before fetching account data or placing orders.
func NewClient(apiKey, apiSecret string, log zerolog.Logger) *Client {
	return &Client{
		sdkClient: sdk.NewClient(apiKey, apiSecret, log),
		log:       log.With().Str("client", "kite").Logger(),
	}
}

// NewClientWithSDK creates a new Kite client with a provided SDK client (for testing)
func NewClientWithSDK(sdkClient *sdk.Client, log zerolog.Logger) *Client {
	return &Client{
		sdkClient: sdkClient,
		log:       log.With().Str("client", "kite").Logger(),
	}
}

// LoginURL returns the broker login URL for the external auth flow
func (c *Client) LoginURL() string {
	return c.sdkClient.LoginURL()
}

// GenerateSession exchanges a request token for an access token.
// Failure here is fatal to the calling flow: no partial session survives.
func (c *Client) GenerateSession(requestToken string) (*sdk.Session, error) {
	c.log.Debug().Msg("GenerateSession: exchanging request token")

	session, err := c.sdkClient.GenerateSession(requestToken)
	if err != nil {
		c.log.Error().Err(err).Msg("GenerateSession: session exchange failed")
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	c.log.Info().Str("user_id", session.UserID).Msg("Session initialized")
	return session, nil
}

// SetAccessToken installs an externally obtained access token
func (c *Client) SetAccessToken(token string) {
	c.sdkClient.SetAccessToken(token)
}

// HasSession reports whether the client holds a session access token
func (c *Client) HasSession() bool {
	return c.sdkClient.HasSession()
}

// Holdings fetches the account's opening (delivery) holdings
func (c *Client) Holdings() ([]sdk.Holding, error) {
	c.log.Debug().Msg("Holdings: calling SDK")

	holdings, err := c.sdkClient.Holdings()
	if err != nil {
		c.log.Error().Err(err).Msg("Holdings: SDK call failed")
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	c.log.Debug().Int("holdings_count", len(holdings)).Msg("Holdings: fetched")
	return holdings, nil
}

// Positions fetches day and net positions
func (c *Client) Positions() (*sdk.Positions, error) {
	c.log.Debug().Msg("Positions: calling SDK")

	positions, err := c.sdkClient.Positions()
	if err != nil {
		c.log.Error().Err(err).Msg("Positions: SDK call failed")
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}

	c.log.Debug().
		Int("day_count", len(positions.Day)).
		Int("net_count", len(positions.Net)).
		Msg("Positions: fetched")
	return positions, nil
}

// LTP fetches last traded prices for the given quote identifiers in one batch call
func (c *Client) LTP(quoteIDs []string) (map[string]sdk.LTPQuote, error) {
	if len(quoteIDs) == 0 {
		return make(map[string]sdk.LTPQuote), nil
	}

	c.log.Debug().Strs("quote_ids", quoteIDs).Msg("LTP: calling SDK")

	quotes, err := c.sdkClient.LTP(quoteIDs)
	if err != nil {
		c.log.Error().Err(err).Msg("LTP: SDK call failed")
		return nil, fmt.Errorf("failed to get last traded prices: %w", err)
	}

	return quotes, nil
}

// Quote fetches full quotes, including order book depth, for the given quote identifiers
func (c *Client) Quote(quoteIDs []string) (map[string]sdk.Quote, error) {
	if len(quoteIDs) == 0 {
		return make(map[string]sdk.Quote), nil
	}

	c.log.Debug().Strs("quote_ids", quoteIDs).Msg("Quote: calling SDK")

	quotes, err := c.sdkClient.Quote(quoteIDs)
	if err != nil {
		c.log.Error().Err(err).Msg("Quote: SDK call failed")
		return nil, fmt.Errorf("failed to get quotes: %w", err)
	}

	return quotes, nil
}

// PlaceOrder submits one regular order
func (c *Client) PlaceOrder(params sdk.OrderParams) (*sdk.OrderResponse, error) {
	c.log.Debug().
		Str("symbol", params.TradingSymbol).
		Str("side", params.TransactionType).
		Str("order_type", params.OrderType).
		Int("quantity", params.Quantity).
		Msg("PlaceOrder: calling SDK")

	resp, err := c.sdkClient.PlaceOrder("regular", params)
	if err != nil {
		c.log.Error().Err(err).Str("symbol", params.TradingSymbol).Msg("PlaceOrder: SDK call failed")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	c.log.Info().
		Str("order_id", resp.OrderID).
		Str("symbol", params.TradingSymbol).
		Msg("Order placed")
	return resp, nil
}

// Margins fetches available funds for a segment (empty segment means equity)
func (c *Client) Margins(segment string) (*sdk.SegmentMargins, error) {
	c.log.Debug().Str("segment", segment).Msg("Margins: calling SDK")

	margins, err := c.sdkClient.Margins(segment)
	if err != nil {
		c.log.Error().Err(err).Msg("Margins: SDK call failed")
		return nil, fmt.Errorf("failed to get margins: %w", err)
	}

	return margins, nil
}

// Close gracefully shuts down the client and its SDK client
func (c *Client) Close() {
	c.sdkClient.Close()
}
