// Package tenanthost maps an inbound request's Host header and path onto
// a tenant slug, so that subdomain addressing (acme.smartcard.app) and
// path addressing (/acme) converge on one internal route shape before any
// route matching happens.
package tenanthost

import (
	"net/http"
	"strings"

	"github.com/smartcard-app/smartcard-golang/internal/slugs"
)

// Resolver extracts tenant slugs for one platform domain.
type Resolver struct {
	domain string
}

// New returns a Resolver for the given platform domain
// (e.g. "smartcard.app"). The domain comparison is case-insensitive.
func New(platformDomain string) *Resolver {
	return &Resolver{domain: strings.ToLower(platformDomain)}
}

// SlugFromHost extracts the tenant slug from a subdomain-form host
// (<slug>.<platform-domain>). A port suffix is ignored. Hosts that are
// not a single label under the platform domain, or whose label fails
// slug governance (including reserved words such as "www"), yield
// ok=false; they are simply not tenant hosts, never an error.
func (r *Resolver) SlugFromHost(host string) (string, bool) {
	h := strings.ToLower(host)
	if i := strings.IndexByte(h, ':'); i >= 0 {
		h = h[:i]
	}

	suffix := "." + r.domain
	if !strings.HasSuffix(h, suffix) {
		return "", false
	}
	label := strings.TrimSuffix(h, suffix)
	if label == "" || strings.Contains(label, ".") {
		return "", false
	}
	if !slugs.IsValid(label) {
		return "", false
	}
	return label, true
}

// ResolveSlug determines the tenant slug intended by a request, and the
// path remaining after tenant extraction. The subdomain form wins and
// keeps the path unchanged; otherwise the first path segment is taken as
// the slug. An extracted candidate that fails slug governance is treated
// identically to "no tenant".
func (r *Resolver) ResolveSlug(host, path string) (slug, rest string, ok bool) {
	if s, found := r.SlugFromHost(host); found {
		if path == "" {
			path = "/"
		}
		return s, path, true
	}

	p := strings.TrimPrefix(path, "/")
	seg, remainder := p, "/"
	if i := strings.IndexByte(p, '/'); i >= 0 {
		seg, remainder = p[:i], p[i:]
	}
	if !slugs.IsValid(seg) {
		return "", "", false
	}
	return seg, remainder, true
}

// Rewriter wraps an http.Handler (the router) so that subdomain-form
// requests are rewritten to path form before routing: the slug is
// injected as the first path segment. Path-form requests pass through
// untouched. This must sit in front of the router so the rest of the
// system never knows which addressing scheme was used.
func (r *Resolver) Rewriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if slug, ok := r.SlugFromHost(req.Host); ok {
			if req.URL.Path == "/" || req.URL.Path == "" {
				req.URL.Path = "/" + slug
			} else {
				req.URL.Path = "/" + slug + req.URL.Path
			}
			req.URL.RawPath = ""
		}
		next.ServeHTTP(w, req)
	})
}
