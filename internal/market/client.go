// Package market looks up mark prices and price precision from the
// exchanges' public REST APIs. Both lookups are allowed to fail silently:
// callers get an absent result and fall back to manual entry or default
// formatting. Results are cached with separate TTLs to bound call volume —
// prices go stale in seconds, precision is effectively static.
package market

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

const (
	defaultBybitBaseURL = "https://api.bybit.com"
	defaultBingXBaseURL = "https://open-api.bingx.com"
)

// Client fetches mark prices and price precision with TTL caching. Safe for
// concurrent use.
type Client struct {
	httpClient *http.Client

	// Base URLs are overridable for tests.
	BybitBaseURL string
	BingXBaseURL string

	priceTTL     time.Duration
	precisionTTL time.Duration

	mu         sync.RWMutex
	prices     map[string]priceEntry
	precisions map[string]precisionEntry
}

type priceEntry struct {
	price   decimal.Decimal
	expires time.Time
}

type precisionEntry struct {
	precision int
	expires   time.Time
}

// NewClient creates a market data client with the given cache windows.
func NewClient(priceTTL, precisionTTL time.Duration) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		BybitBaseURL: defaultBybitBaseURL,
		BingXBaseURL: defaultBingXBaseURL,
		priceTTL:     priceTTL,
		precisionTTL: precisionTTL,
		prices:       make(map[string]priceEntry),
		precisions:   make(map[string]precisionEntry),
	}
}

// MarkPrice returns the current mark price for a symbol, or false when the
// exchange is unknown or the lookup fails.
func (c *Client) MarkPrice(exchange pnl.Exchange, symbol string) (decimal.Decimal, bool) {
	key := string(exchange) + ":" + symbol

	c.mu.RLock()
	entry, ok := c.prices[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.price, true
	}

	var (
		price decimal.Decimal
		err   error
	)
	switch exchange {
	case pnl.Bybit:
		price, err = c.bybitMarkPrice(symbol)
	case pnl.BingX:
		price, err = c.bingxMarkPrice(symbol)
	default:
		return decimal.Zero, false
	}
	if err != nil {
		log.Debug().Err(err).Str("exchange", string(exchange)).Str("symbol", symbol).Msg("mark price lookup failed")
		return decimal.Zero, false
	}

	c.mu.Lock()
	c.prices[key] = priceEntry{price: price, expires: time.Now().Add(c.priceTTL)}
	c.mu.Unlock()
	return price, true
}

// PricePrecision returns the number of price decimals reported by the
// exchange for a symbol, or false when unavailable.
func (c *Client) PricePrecision(exchange pnl.Exchange, symbol string) (int, bool) {
	key := string(exchange) + ":" + symbol

	c.mu.RLock()
	entry, ok := c.precisions[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.precision, true
	}

	var (
		precision int
		err       error
	)
	switch exchange {
	case pnl.Bybit:
		precision, err = c.bybitPrecision(symbol)
	case pnl.BingX:
		precision, err = c.bingxPrecision(symbol)
	default:
		return 0, false
	}
	if err != nil {
		log.Debug().Err(err).Str("exchange", string(exchange)).Str("symbol", symbol).Msg("precision lookup failed")
		return 0, false
	}

	c.mu.Lock()
	c.precisions[key] = precisionEntry{precision: precision, expires: time.Now().Add(c.precisionTTL)}
	c.mu.Unlock()
	return precision, true
}

// ---- Bybit v5 ----

type bybitTickersResponse struct {
	Result struct {
		List []struct {
			MarkPrice string `json:"markPrice"`
		} `json:"list"`
	} `json:"result"`
}

type bybitInstrumentsResponse struct {
	Result struct {
		List []struct {
			PriceFilter struct {
				TickSize string `json:"tickSize"`
			} `json:"priceFilter"`
		} `json:"list"`
	} `json:"result"`
}

func (c *Client) bybitMarkPrice(symbol string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/v5/market/tickers?category=linear&symbol=%s", c.BybitBaseURL, url.QueryEscape(symbol))
	var resp bybitTickersResponse
	if err := c.getJSON(u, &resp); err != nil {
		return decimal.Zero, err
	}
	if len(resp.Result.List) == 0 {
		return decimal.Zero, fmt.Errorf("no ticker for %s", symbol)
	}
	return decimal.NewFromString(resp.Result.List[0].MarkPrice)
}

func (c *Client) bybitPrecision(symbol string) (int, error) {
	u := fmt.Sprintf("%s/v5/market/instruments-info?category=linear&symbol=%s", c.BybitBaseURL, url.QueryEscape(symbol))
	var resp bybitInstrumentsResponse
	if err := c.getJSON(u, &resp); err != nil {
		return 0, err
	}
	if len(resp.Result.List) == 0 {
		return 0, fmt.Errorf("no instrument info for %s", symbol)
	}
	return tickSizeDecimals(resp.Result.List[0].PriceFilter.TickSize), nil
}

// tickSizeDecimals converts a tick size such as "0.0010" into a number of
// price decimals.
func tickSizeDecimals(tick string) int {
	if !strings.Contains(tick, ".") {
		return 0
	}
	frac := strings.TrimRight(strings.SplitN(tick, ".", 2)[1], "0")
	return len(frac)
}

// ---- BingX swap v2 ----

type bingxPriceResponse struct {
	Data struct {
		Price string `json:"price"`
	} `json:"data"`
}

type bingxContractsResponse struct {
	Data []struct {
		Symbol         string `json:"symbol"`
		PricePrecision int    `json:"pricePrecision"`
	} `json:"data"`
}

// bingxSymbol inserts the dash BingX expects, e.g. BTCUSDT -> BTC-USDT.
func bingxSymbol(symbol string) string {
	if strings.Contains(symbol, "-") {
		return symbol
	}
	return strings.Replace(symbol, "USDT", "-USDT", 1)
}

func (c *Client) bingxMarkPrice(symbol string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/openApi/swap/v2/quote/price?symbol=%s", c.BingXBaseURL, url.QueryEscape(bingxSymbol(symbol)))
	var resp bingxPriceResponse
	if err := c.getJSON(u, &resp); err != nil {
		return decimal.Zero, err
	}
	if resp.Data.Price == "" {
		return decimal.Zero, fmt.Errorf("no price for %s", symbol)
	}
	return decimal.NewFromString(resp.Data.Price)
}

func (c *Client) bingxPrecision(symbol string) (int, error) {
	u := c.BingXBaseURL + "/openApi/swap/v2/quote/contracts"
	var resp bingxContractsResponse
	if err := c.getJSON(u, &resp); err != nil {
		return 0, err
	}
	for _, contract := range resp.Data {
		if contract.Symbol == symbol || contract.Symbol == bingxSymbol(symbol) {
			return contract.PricePrecision, nil
		}
	}
	// Unknown contracts fall back to two decimals rather than failing.
	return 2, nil
}

func (c *Client) getJSON(url string, out any) error {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
