package gateway

import (
	"context"
	"net/http"

	"verigate/pkg/auth"
)

// OTPChannel selects how a one-time password is delivered during the BVN
// consent flows.
type OTPChannel string

const (
	OTPChannelEmail OTPChannel = "email"
	OTPChannelSMS   OTPChannel = "sms"
)

// InitiateBVNAccountsLookup starts a lookup of all accounts linked to a BVN
// and returns the consent session.
func (c *Client) InitiateBVNAccountsLookup(ctx context.Context, bvn string) (*APIResponse, error) {
	body := map[string]interface{}{"bvn": bvn}
	return c.call(ctx, http.MethodPost, "/verify/identity/initiate-bvn-accounts-lookup", body, nil, auth.RequireAny(ActionBVNAccounts))
}

// RequestBVNAccountsOTP asks the gateway to deliver the consent OTP for an
// accounts lookup session. The phone number is only used for the SMS
// channel.
func (c *Client) RequestBVNAccountsOTP(ctx context.Context, sessionID string, channel OTPChannel, phoneNumber string) (*APIResponse, error) {
	body := map[string]interface{}{
		"session_id":   sessionID,
		"method":       string(channel),
		"phone_number": phoneNumber,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/bvn-accounts-lookup-request-otp", body, nil, auth.RequireAny(ActionBVNAccounts))
}

// FetchBVNAccountsDetails completes an accounts lookup session with the OTP
// the holder received.
func (c *Client) FetchBVNAccountsDetails(ctx context.Context, sessionID, otp string) (*APIResponse, error) {
	body := map[string]interface{}{
		"session_id": sessionID,
		"otp":        otp,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/fetch-bvn-accounts-details", body, nil, auth.RequireAny(ActionBVNAccounts))
}

// LookupCreditHistory returns the credit bureau history linked to a BVN.
func (c *Client) LookupCreditHistory(ctx context.Context, bvn string) (*APIResponse, error) {
	body := map[string]interface{}{"bvn": bvn}
	return c.call(ctx, http.MethodPost, "/verify/identity/credit-history-lookup", body, nil, auth.RequireAny(ActionCreditHistory))
}

// InitiateBVNIgree starts an iGree consent session for a BVN.
func (c *Client) InitiateBVNIgree(ctx context.Context, bvn string) (*APIResponse, error) {
	body := map[string]interface{}{"bvn": bvn}
	return c.call(ctx, http.MethodPost, "/verify/identity/initiate-bvn-igree", body, nil, auth.RequireAny(ActionBVNIgree))
}

// RequestBVNIgreeOTP asks the gateway to deliver the consent OTP for an
// iGree session.
func (c *Client) RequestBVNIgreeOTP(ctx context.Context, sessionID string, channel OTPChannel, phoneNumber string) (*APIResponse, error) {
	body := map[string]interface{}{
		"session_id":   sessionID,
		"method":       string(channel),
		"phone_number": phoneNumber,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/bvn-igree-request-otp", body, nil, auth.RequireAny(ActionBVNIgree))
}

// FetchBVNIgreeDetails completes an iGree session with the OTP the holder
// received.
func (c *Client) FetchBVNIgreeDetails(ctx context.Context, sessionID, otp string) (*APIResponse, error) {
	body := map[string]interface{}{
		"session_id": sessionID,
		"otp":        otp,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/fetch-bvn-igree-details", body, nil, auth.RequireAny(ActionBVNIgree))
}
