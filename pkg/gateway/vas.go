package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"verigate/pkg/auth"
)

// Billers lists the billers available for value-added-services payments.
func (c *Client) Billers(ctx context.Context) (*APIResponse, error) {
	return c.call(ctx, http.MethodGet, "/vas/billers", nil, nil, auth.RequireAny(ActionVAS))
}

// BillerPaymentItems lists the payment items of one biller.
func (c *Client) BillerPaymentItems(ctx context.Context, billerID string) (*APIResponse, error) {
	query := url.Values{"biller-id": {billerID}}
	return c.call(ctx, http.MethodGet, "/vas/billers/payment-item", nil, query, auth.RequireAny(ActionVAS))
}

// ValidateVASCustomer checks that a customer ID is valid for a payment code
// before paying.
func (c *Client) ValidateVASCustomer(ctx context.Context, customerID, paymentCode string) (*APIResponse, error) {
	// The gateway validates customers in batches; a single validation is a
	// one-element batch.
	body := []map[string]interface{}{
		{"customerId": customerID, "paymentCode": paymentCode},
	}
	return c.call(ctx, http.MethodPost, "/vas/validate-customer", body, nil, auth.RequireAny(ActionVAS))
}

// VASPayment describes one bill payment. Reference must be unique per
// payment; when empty a random reference is generated.
type VASPayment struct {
	CustomerID  string  `json:"customerId"`
	Amount      float64 `json:"amount"`
	Reference   string  `json:"reference"`
	PaymentCode string  `json:"paymentCode"`
}

// PayVAS executes a bill payment and returns the transaction record. The
// payment reference used (supplied or generated) is echoed in the response
// data.
func (c *Client) PayVAS(ctx context.Context, payment VASPayment) (*APIResponse, error) {
	if payment.Reference == "" {
		payment.Reference = uuid.NewString()
	}
	return c.call(ctx, http.MethodPost, "/vas/pay", payment, nil, auth.RequireAny(ActionVAS))
}

// VASTransactions returns the transactions recorded under a request
// reference.
func (c *Client) VASTransactions(ctx context.Context, requestReference string) (*APIResponse, error) {
	query := url.Values{"request-reference": {requestReference}}
	return c.call(ctx, http.MethodGet, "/vas/transactions", nil, query, auth.RequireAny(ActionVAS))
}
