package clients

import "net/http"

// ClaimHeaders carries the authenticated identity context forwarded to every
// backend service. The upstream auth proxy injects these as x-jwt-claim-*
// headers; the BFF relays them verbatim so backends see the same identity the
// admin user authenticated with.
type ClaimHeaders struct {
	TenantID  string
	VendorID  string
	UserID    string
	UserEmail string
}

// Apply sets the claim headers on an outgoing request. The legacy X-Tenant-ID
// header is set alongside for services still on the pre-Istio contract.
func (h ClaimHeaders) Apply(req *http.Request) {
	if h.TenantID != "" {
		req.Header.Set("x-jwt-claim-tenant-id", h.TenantID)
		req.Header.Set("X-Tenant-ID", h.TenantID)
	}
	if h.VendorID != "" {
		req.Header.Set("x-jwt-claim-vendor-id", h.VendorID)
	}
	if h.UserID != "" {
		req.Header.Set("x-jwt-claim-user-id", h.UserID)
		req.Header.Set("X-User-ID", h.UserID)
	}
	if h.UserEmail != "" {
		req.Header.Set("x-jwt-claim-email", h.UserEmail)
		req.Header.Set("X-User-Email", h.UserEmail)
	}
}
