package sdk

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	client := NewClient("test_key", "test_secret", log)
	client.baseURL = server.URL
	t.Cleanup(client.Close)

	return client, server
}

func successBody(t *testing.T, data interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"status": "success",
		"data":   data,
	})
	require.NoError(t, err)
	return body
}

func TestGenerateSession_SendsChecksum(t *testing.T) {
	var gotChecksum, gotRequestToken, gotAPIKey string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/session/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotAPIKey = r.PostForm.Get("api_key")
		gotRequestToken = r.PostForm.Get("request_token")
		gotChecksum = r.PostForm.Get("checksum")

		w.Write(successBody(t, map[string]string{
			"user_id":      "AB1234",
			"access_token": "token_abc",
		}))
	})

	session, err := client.GenerateSession("req_token_1")
	require.NoError(t, err)

	assert.Equal(t, "AB1234", session.UserID)
	assert.Equal(t, "token_abc", session.AccessToken)
	assert.True(t, client.HasSession())

	assert.Equal(t, "test_key", gotAPIKey)
	assert.Equal(t, "req_token_1", gotRequestToken)

	sum := sha256.Sum256([]byte("test_key" + "req_token_1" + "test_secret"))
	assert.Equal(t, hex.EncodeToString(sum[:]), gotChecksum)
}

func TestGenerateSession_NoAccessToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(successBody(t, map[string]string{"user_id": "AB1234"}))
	})

	_, err := client.GenerateSession("req_token_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
	assert.False(t, client.HasSession())
}

func TestAuthorizedRequest_RequiresSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the server without a session")
	})

	_, err := client.Holdings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not initialized")
}

func TestHoldings_DecodesAndAuthorizes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/portfolio/holdings", r.URL.Path)
		require.Equal(t, "token test_key:tok", r.Header.Get("Authorization"))
		require.Equal(t, "3", r.Header.Get("X-Kite-Version"))

		w.Write(successBody(t, []map[string]interface{}{
			{
				"tradingsymbol":    "INFY",
				"exchange":         "NSE",
				"instrument_token": 408065,
				"quantity":         10,
				"average_price":    1400.5,
				"last_price":       1510.25,
			},
		}))
	})
	client.SetAccessToken("tok")

	holdings, err := client.Holdings()
	require.NoError(t, err)
	require.Len(t, holdings, 1)

	assert.Equal(t, "INFY", holdings[0].TradingSymbol)
	assert.Equal(t, uint32(408065), holdings[0].InstrumentToken)
	assert.Equal(t, 10, holdings[0].Quantity)
	assert.Equal(t, 1510.25, holdings[0].LastPrice)
}

func TestLTP_SendsInstrumentParams(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote/ltp", r.URL.Path)
		require.Equal(t, []string{"NSE:INFY", "NSE:TCS"}, r.URL.Query()["i"])

		w.Write(successBody(t, map[string]interface{}{
			"NSE:INFY": map[string]interface{}{"instrument_token": 408065, "last_price": 1510.25},
			"NSE:TCS":  map[string]interface{}{"instrument_token": 2953217, "last_price": 3305.0},
		}))
	})
	client.SetAccessToken("tok")

	quotes, err := client.LTP([]string{"NSE:INFY", "NSE:TCS"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, 1510.25, quotes["NSE:INFY"].LastPrice)
	assert.Equal(t, 3305.0, quotes["NSE:TCS"].LastPrice)
}

func TestQuote_DecodesDepth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote", r.URL.Path)

		w.Write(successBody(t, map[string]interface{}{
			"NSE:M50": map[string]interface{}{
				"instrument_token": 4701441,
				"last_price":       182.4,
				"depth": map[string]interface{}{
					"buy": []map[string]interface{}{
						{"price": 182.3, "quantity": 50, "orders": 2},
					},
					"sell": []map[string]interface{}{
						{"price": 182.5, "quantity": 40, "orders": 1},
						{"price": 182.6, "quantity": 90, "orders": 3},
					},
				},
			},
		}))
	})
	client.SetAccessToken("tok")

	quotes, err := client.Quote([]string{"NSE:M50"})
	require.NoError(t, err)

	quote := quotes["NSE:M50"]
	require.Len(t, quote.Depth.Buy, 1)
	require.Len(t, quote.Depth.Sell, 2)
	assert.Equal(t, 182.5, quote.Depth.Sell[0].Price)
	assert.Equal(t, 90, quote.Depth.Sell[1].Quantity)
}

func TestPlaceOrder_FormFields(t *testing.T) {
	var gotForm map[string]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders/regular", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())

		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		w.Write(successBody(t, map[string]string{"order_id": "151220000000000"}))
	})
	client.SetAccessToken("tok")

	resp, err := client.PlaceOrder("regular", OrderParams{
		TradingSymbol:   "M50",
		Exchange:        "NSE",
		TransactionType: "BUY",
		OrderType:       "LIMIT",
		Quantity:        12,
		Product:         "CNC",
		Price:           182.6,
		Tag:             "run-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "151220000000000", resp.OrderID)

	assert.Equal(t, "M50", gotForm["tradingsymbol"])
	assert.Equal(t, "NSE", gotForm["exchange"])
	assert.Equal(t, "BUY", gotForm["transaction_type"])
	assert.Equal(t, "LIMIT", gotForm["order_type"])
	assert.Equal(t, "12", gotForm["quantity"])
	assert.Equal(t, "CNC", gotForm["product"])
	assert.Equal(t, "182.60", gotForm["price"])
	assert.Equal(t, "DAY", gotForm["validity"])
	assert.Equal(t, "run-1", gotForm["tag"])
}

func TestPlaceOrder_MarketOmitsPrice(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.False(t, r.PostForm.Has("price"), "market orders must not carry a price")
		w.Write(successBody(t, map[string]string{"order_id": "151220000000001"}))
	})
	client.SetAccessToken("tok")

	_, err := client.PlaceOrder("regular", OrderParams{
		TradingSymbol:   "INFY",
		Exchange:        "NSE",
		TransactionType: "BUY",
		OrderType:       "MARKET",
		Quantity:        5,
		Product:         "CNC",
	})
	require.NoError(t, err)
}

func TestMargins_DefaultsToEquity(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/margins/equity", r.URL.Path)

		w.Write(successBody(t, map[string]interface{}{
			"enabled":   true,
			"net":       15000.5,
			"available": map[string]interface{}{"cash": 12000.0, "live_balance": 15000.5},
			"utilised":  map[string]interface{}{"debits": 3000.0},
		}))
	})
	client.SetAccessToken("tok")

	margins, err := client.Margins("")
	require.NoError(t, err)
	assert.True(t, margins.Enabled)
	assert.Equal(t, 15000.5, margins.Net)
	assert.Equal(t, 12000.0, margins.Available.Cash)
	assert.Equal(t, 3000.0, margins.Utilised.Debits)
}

func TestRequest_APIErrorMapping(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"status":     "error",
			"message":    "Incorrect `api_key` or `access_token`.",
			"error_type": "TokenException",
		})
	})
	client.SetAccessToken("bad")

	_, err := client.Holdings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TokenException")
	assert.Contains(t, err.Error(), "Incorrect")
}

func TestRequest_RateLimiting(t *testing.T) {
	requestTimes := make([]time.Time, 0, 3)
	var mu sync.Mutex

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestTimes = append(requestTimes, time.Now())
		mu.Unlock()
		w.Write(successBody(t, []map[string]interface{}{}))
	})
	client.SetAccessToken("tok")

	for i := 0; i < 3; i++ {
		_, err := client.Holdings()
		require.NoError(t, err)
	}

	mu.Lock()
	times := requestTimes
	mu.Unlock()

	require.Len(t, times, 3)
	assert.GreaterOrEqual(t, times[1].Sub(times[0]), rateLimitDelay)
	assert.GreaterOrEqual(t, times[2].Sub(times[1]), rateLimitDelay)
}

func TestClose_RejectsNewRequests(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	client := NewClient("test_key", "test_secret", log)
	client.SetAccessToken("tok")
	client.Close()

	_, err := client.Holdings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
