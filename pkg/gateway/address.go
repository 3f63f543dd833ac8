package gateway

import (
	"context"
	"net/http"
	"net/url"

	"verigate/pkg/auth"
)

// AddressSubmission describes a physical address to be verified and the
// applicant it belongs to.
type AddressSubmission struct {
	Street    string                 `json:"street"`
	StateName string                 `json:"stateName"`
	LGAName   string                 `json:"lgaName"`
	Landmark  string                 `json:"landmark"`
	City      string                 `json:"city"`
	Applicant map[string]interface{} `json:"applicant"`
}

// SubmitPhysicalAddress submits an address for physical verification and
// returns the tracking reference.
func (c *Client) SubmitPhysicalAddress(ctx context.Context, submission AddressSubmission) (*APIResponse, error) {
	return c.call(ctx, http.MethodPost, "/addresses", submission, nil, auth.RequireAny(ActionAddress))
}

// PhysicalAddress returns the state of a previously submitted address
// verification.
func (c *Client) PhysicalAddress(ctx context.Context, reference string) (*APIResponse, error) {
	query := url.Values{"reference": {reference}}
	return c.call(ctx, http.MethodGet, "/addresses", nil, query, auth.RequireAny(ActionAddress))
}
