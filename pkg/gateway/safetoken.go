package gateway

import (
	"context"
	"net/http"

	"verigate/pkg/auth"
)

// GenerateSafeToken generates a soft-token OTP for the given token ID.
func (c *Client) GenerateSafeToken(ctx context.Context, tokenID string) (*APIResponse, error) {
	body := map[string]interface{}{"tokenId": tokenID}
	return c.call(ctx, http.MethodPost, "/soft-token/generate", body, nil, auth.RequireAny(ActionSafeToken))
}

// SendSafeToken delivers a soft-token OTP to the given email and mobile
// number.
func (c *Client) SendSafeToken(ctx context.Context, tokenID, email, mobileNo string) (*APIResponse, error) {
	body := map[string]interface{}{
		"tokenId":  tokenID,
		"email":    email,
		"mobileNo": mobileNo,
	}
	return c.call(ctx, http.MethodPost, "/soft-token/send", body, nil, auth.RequireAny(ActionSafeToken))
}

// VerifySafeToken checks an OTP a user entered against the soft token.
func (c *Client) VerifySafeToken(ctx context.Context, tokenID, otp string) (*APIResponse, error) {
	body := map[string]interface{}{
		"tokenId": tokenID,
		"otp":     otp,
	}
	return c.call(ctx, http.MethodPost, "/soft-token/verify", body, nil, auth.RequireAny(ActionSafeToken))
}
