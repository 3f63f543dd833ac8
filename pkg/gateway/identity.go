package gateway

import (
	"context"
	"net/http"
	"net/url"

	"verigate/pkg/auth"
)

// VerifyNIN verifies a National Identification Number against the holder's
// name.
func (c *Client) VerifyNIN(ctx context.Context, nin, firstName, lastName string) (*APIResponse, error) {
	body := map[string]interface{}{
		"nin":       nin,
		"firstName": firstName,
		"lastName":  lastName,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/nin", body, nil, auth.RequireAny(ActionNIN))
}

// VerifyNINFull verifies a NIN and returns the full identity record.
func (c *Client) VerifyNINFull(ctx context.Context, nin string) (*APIResponse, error) {
	body := map[string]interface{}{"id": nin}
	return c.call(ctx, http.MethodPost, "/verify/identity/nin/verify", body, nil, auth.RequireAny(ActionNIN))
}

// VerifyBVNFull verifies a Bank Verification Number and returns the full
// record.
func (c *Client) VerifyBVNFull(ctx context.Context, bvn string) (*APIResponse, error) {
	body := map[string]interface{}{"id": bvn}
	return c.call(ctx, http.MethodPost, "/verify/identity/bvn/verify", body, nil, auth.RequireAny(ActionBVN))
}

// VerifyBVNBoolean verifies a BVN as a yes/no match against the holder's
// name.
func (c *Client) VerifyBVNBoolean(ctx context.Context, bvn, firstName, lastName string) (*APIResponse, error) {
	body := map[string]interface{}{
		"bvn":       bvn,
		"firstName": firstName,
		"lastName":  lastName,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/bvn", body, nil, auth.RequireAny(ActionBVN))
}

// VerifyBankAccount resolves a bank account number to its holder.
func (c *Client) VerifyBankAccount(ctx context.Context, accountNumber, bankCode string) (*APIResponse, error) {
	body := map[string]interface{}{
		"accountNumber": accountNumber,
		"bankCode":      bankCode,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/account-number/resolve", body, nil, auth.RequireAny(ActionBankAccount))
}

// BankList returns the banks supported by account resolution. Available to
// projects provisioned for either account verification or bill payment.
func (c *Client) BankList(ctx context.Context) (*APIResponse, error) {
	return c.call(ctx, http.MethodGet, "/verify/identity/account-number/bank-list", nil, nil,
		auth.RequireAny(ActionBankAccount, ActionVAS))
}

// VerifyTIN verifies a Tax Identification Number.
func (c *Client) VerifyTIN(ctx context.Context, tin string) (*APIResponse, error) {
	query := url.Values{"tin": {tin}}
	return c.call(ctx, http.MethodGet, "/verify/identity/tin", nil, query, auth.RequireAny(ActionTIN))
}

// VerifyDriversLicence verifies a driver's licence number.
func (c *Client) VerifyDriversLicence(ctx context.Context, licenceID string) (*APIResponse, error) {
	body := map[string]interface{}{"id": licenceID}
	return c.call(ctx, http.MethodPost, "/verify/identity/driver-license/verify", body, nil, auth.RequireAny(ActionDriversLicence))
}

// VerifyIntlPassport verifies an international passport against the holder's
// last name and date of birth (YYYY-MM-DD).
func (c *Client) VerifyIntlPassport(ctx context.Context, passportNumber, lastName, dateOfBirth string) (*APIResponse, error) {
	body := map[string]interface{}{
		"passport_number": passportNumber,
		"last_name":       lastName,
		"date_of_birth":   dateOfBirth,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/intl-passport-lookup", body, nil, auth.RequireAny(ActionPassport))
}
