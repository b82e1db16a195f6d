package neutronpay

import (
	"context"
	"net/http"
	"net/url"
)

// GetAccount returns the account profile.
func (c *Client) GetAccount(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.Do(ctx, http.MethodGet, "/api/v2/account", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBalances returns per-currency balances.
func (c *Client) GetBalances(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.Do(ctx, http.MethodGet, "/api/v2/account/balance", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRate returns the current exchange rate for a currency pair.
func (c *Client) GetRate(ctx context.Context, sourceCcy, destCcy string) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("sourceCcy", sourceCcy)
	q.Set("destCcy", destCcy)
	var out map[string]interface{}
	if err := c.Do(ctx, http.MethodGet, "/api/v2/rate?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFiatInstitutions returns the fiat institutions available for payouts
// in the given country.
func (c *Client) ListFiatInstitutions(ctx context.Context, countryCode string) (map[string]interface{}, error) {
	var out map[string]interface{}
	path := "/api/v2/reference/fiat-institution/by-country/" + url.PathEscape(countryCode)
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOnchainAddress returns the account's Bitcoin deposit address.
func (c *Client) GetOnchainAddress(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.Do(ctx, http.MethodGet, "/api/v2/account/onchain-address", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStablecoinAddress returns the account's stablecoin deposit address,
// optionally scoped to a network (e.g. "tron", "ethereum").
func (c *Client) GetStablecoinAddress(ctx context.Context, network string) (map[string]interface{}, error) {
	path := "/api/v2/account/stablecoin-onchain-address"
	if network != "" {
		path += "?network=" + url.QueryEscape(network)
	}
	var out map[string]interface{}
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
