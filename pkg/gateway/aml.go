package gateway

import (
	"context"
	"net/http"

	"verigate/pkg/auth"
)

// EntityType selects the subject kind of an AML check.
type EntityType string

const (
	EntityPerson   EntityType = "Person"
	EntityBusiness EntityType = "Business"
)

// VerifyDomesticPEP screens a full name against the domestic politically
// exposed persons register.
func (c *Client) VerifyDomesticPEP(ctx context.Context, fullName string) (*APIResponse, error) {
	body := map[string]interface{}{"fullName": fullName}
	return c.call(ctx, http.MethodPost, "/verify/identity/verification/domestic-pep", body, nil, auth.RequireAny(ActionPEP))
}

// VerifyGlobalAML screens a person or business name against global AML
// watchlists.
func (c *Client) VerifyGlobalAML(ctx context.Context, query string, entityType EntityType) (*APIResponse, error) {
	body := map[string]interface{}{
		"type":  string(entityType),
		"query": query,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/verification/name/aml-checks", body, nil, auth.RequireAny(ActionAML))
}

// CompareFaces compares the faces in two images and reports the match
// confidence.
func (c *Client) CompareFaces(ctx context.Context, image1URL, image2URL string) (*APIResponse, error) {
	body := map[string]interface{}{
		"image1": image1URL,
		"image2": image2URL,
	}
	return c.call(ctx, http.MethodPost, "/verify/identity/face-comparison", body, nil, auth.RequireAny(ActionFaceComparison))
}
