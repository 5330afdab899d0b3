package nepse

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client talks to an unofficial NEPSE data API. The upstream is a community
// mirror with no auth and no stability guarantees, so every call carries the
// configured timeout and the caller is expected to cache responses.
type Client struct {
	client *resty.Client
	logger *zap.Logger
}

var _ QuoteSource = (*Client)(nil)

// NewClient creates a quote source backed by the HTTP API at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		client: client,
		logger: logger,
	}
}

type liveMarketResponse struct {
	LiveMarket []struct {
		Symbol           string          `json:"symbol"`
		LastTradedPrice  decimal.Decimal `json:"lastTradedPrice"`
		PointChange      decimal.Decimal `json:"pointChange"`
		PercentageChange decimal.Decimal `json:"percentageChange"`
		Volume           int64           `json:"volume"`
	} `json:"live_market"`
}

type marketSummaryResponse struct {
	Summary struct {
		NepseIndex        decimal.Decimal `json:"nepseIndex"`
		TotalTurnover     decimal.Decimal `json:"totalTurnover"`
		TotalTradedShares int64           `json:"totalTradedShares"`
		MarketStatus      string          `json:"marketStatus"`
	} `json:"summary"`
}

type stockDetailResponse struct {
	Company struct {
		Symbol        string `json:"symbol"`
		CompanyName   string `json:"companyName"`
		Sector        string `json:"sector"`
		ListedShares  int64  `json:"listedShares"`
		PaidUpCapital int64  `json:"paidUpCapital"`
	} `json:"company"`
}

type priceHistoryResponse struct {
	History []struct {
		Date   string          `json:"date"`
		Close  decimal.Decimal `json:"close"`
		Volume int64           `json:"volume"`
	} `json:"history"`
}

// LiveMarket fetches the current quote set for all traded symbols.
func (c *Client) LiveMarket(ctx context.Context) (*LiveMarket, error) {
	var result liveMarketResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/live-market")
	if err != nil {
		return nil, fmt.Errorf("nepse live market request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("nepse live market returned status %d", resp.StatusCode())
	}

	market := &LiveMarket{
		Ticks: make([]Tick, 0, len(result.LiveMarket)),
		AsOf:  time.Now(),
	}
	for _, row := range result.LiveMarket {
		market.Ticks = append(market.Ticks, Tick{
			Symbol:           row.Symbol,
			LastTradedPrice:  row.LastTradedPrice,
			PointChange:      row.PointChange,
			PercentageChange: row.PercentageChange,
			Volume:           row.Volume,
		})
	}

	c.logger.Debug("fetched live market", zap.Int("symbols", len(market.Ticks)))
	return market, nil
}

// MarketSummary fetches the exchange-wide summary block.
func (c *Client) MarketSummary(ctx context.Context) (*MarketSummary, error) {
	var result marketSummaryResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/market-summary")
	if err != nil {
		return nil, fmt.Errorf("nepse market summary request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("nepse market summary returned status %d", resp.StatusCode())
	}

	return &MarketSummary{
		Index:             result.Summary.NepseIndex,
		TotalTurnover:     result.Summary.TotalTurnover,
		TotalTradedShares: result.Summary.TotalTradedShares,
		MarketStatus:      result.Summary.MarketStatus,
		AsOf:              time.Now(),
	}, nil
}

// StockDetail fetches the company profile for one symbol.
func (c *Client) StockDetail(ctx context.Context, symbol string) (*StockDetail, error) {
	var result stockDetailResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		SetPathParam("symbol", symbol).
		Get("/company/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("nepse stock detail request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("symbol %s not listed", symbol)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("nepse stock detail returned status %d", resp.StatusCode())
	}

	return &StockDetail{
		Symbol:        result.Company.Symbol,
		CompanyName:   result.Company.CompanyName,
		Sector:        result.Company.Sector,
		ListedShares:  result.Company.ListedShares,
		PaidUpCapital: result.Company.PaidUpCapital,
	}, nil
}

// PriceHistory fetches daily closes for one symbol.
func (c *Client) PriceHistory(ctx context.Context, symbol string) ([]PricePoint, error) {
	var result priceHistoryResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		SetPathParam("symbol", symbol).
		Get("/price-history/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("nepse price history request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("nepse price history returned status %d", resp.StatusCode())
	}

	points := make([]PricePoint, 0, len(result.History))
	for _, row := range result.History {
		points = append(points, PricePoint{
			Date:   row.Date,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}
	return points, nil
}
