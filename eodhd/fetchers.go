package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/date"
	"github.com/etnz/relperf/remote"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// fetchPrices returns the daily adjusted close prices for a given EODHD ticker.
// The EODHD ticker format is typically "SYMBOL.EXCHANGECODE".
func fetchPrices(ctx context.Context, client *http.Client, baseURL, apiKey, ticker string) (*date.History[float64], error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&period=d
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	//
	// Without from and to, the whole history is returned (a year with a free subscription).
	query := url.Values{}
	query.Set("api_token", apiKey)
	query.Set("fmt", "json")
	query.Set("period", "d")
	addr := fmt.Sprintf("%s/eod/%s?%s", baseURL, url.PathEscape(ticker), query.Encode())

	type Info struct {
		Date          date.Date           `json:"date"`
		Close         decimal.NullDecimal `json:"close"`
		AdjustedClose decimal.NullDecimal `json:"adjusted_close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := remote.GetJSON(ctx, client, addr, &content); err != nil {
		return nil, describe(ticker, err)
	}

	prices := new(date.History[float64])
	for _, info := range content {
		price := info.AdjustedClose
		if !price.Valid {
			price = info.Close
		}
		if !price.Valid {
			continue
		}
		prices.Append(info.Date, price.Decimal.InexactFloat64())
	}
	return prices, nil
}

// describe turns eodhd http errors into readable ones.
func describe(ticker string, err error) error {
	var se *remote.StatusError
	if !errors.As(err, &se) {
		return err
	}
	msg := strings.TrimSpace(string(se.Body))
	switch se.StatusCode {
	case http.StatusNotFound:
		// eodhd answers "Ticker Not Found." as plain text.
		return fmt.Errorf("%w: eodhd ticker %s: %s", relperf.ErrNoData, ticker, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("eodhd rejected the api key for %s: %s", ticker, se.Status)
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return fmt.Errorf("eodhd quota exceeded fetching %s: %s", ticker, se.Status)
	default:
		return err
	}
}
