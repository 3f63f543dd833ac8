package gateway

import (
	"context"
	"net/http"
	"net/url"

	"verigate/pkg/auth"
)

// LookupCAC searches the corporate registry by company name.
func (c *Client) LookupCAC(ctx context.Context, companyName string) (*APIResponse, error) {
	query := url.Values{"companyName": {companyName}}
	return c.call(ctx, http.MethodGet, "/verify/identity/cac-lookup", nil, query, auth.RequireAny(ActionCAC))
}

// LookupCACDirectors lists the registered directors of a company.
func (c *Client) LookupCACDirectors(ctx context.Context, companyID string) (*APIResponse, error) {
	query := url.Values{"companyId": {companyID}}
	return c.call(ctx, http.MethodGet, "/verify/identity/cac-directors-lookup", nil, query, auth.RequireAny(ActionCAC))
}

// LookupCACSecretary returns the registered secretary of a company.
func (c *Client) LookupCACSecretary(ctx context.Context, companyID string) (*APIResponse, error) {
	query := url.Values{"companyId": {companyID}}
	return c.call(ctx, http.MethodGet, "/verify/identity/cac-secretary-lookup", nil, query, auth.RequireAny(ActionCAC))
}

// LookupCACShareholders lists the registered shareholders of a company.
func (c *Client) LookupCACShareholders(ctx context.Context, companyID string) (*APIResponse, error) {
	query := url.Values{"companyId": {companyID}}
	return c.call(ctx, http.MethodGet, "/verify/identity/cac-shareholders-lookup", nil, query, auth.RequireAny(ActionCAC))
}
