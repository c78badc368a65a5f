// Package install resolves one-click install trigger URLs for discovered
// packages.
package install

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"

	"github.com/iconick/hiddengems/internal/core"
)

// ErrEmptyIdentifier is returned when the package identifier is blank.
var ErrEmptyIdentifier = errors.New("install: empty package identifier")

// Authorizer reports whether the caller may trigger installs.
type Authorizer func(ctx context.Context) bool

// AllowAll authorizes every caller.
func AllowAll(context.Context) bool { return true }

// Resolver builds signed install trigger URLs. The token ties a URL to
// one identifier so it cannot be replayed for another package.
type Resolver struct {
	actionURL string
	secret    []byte
	authorize Authorizer
}

// NewResolver creates a Resolver. authorize may be nil, in which case
// every caller is allowed.
func NewResolver(actionURL string, secret []byte, authorize Authorizer) *Resolver {
	if authorize == nil {
		authorize = AllowAll
	}
	return &Resolver{actionURL: actionURL, secret: secret, authorize: authorize}
}

// InstallURL returns the signed trigger URL for identifier. Callers
// failing authorization get a PermissionDenied failure.
func (r *Resolver) InstallURL(ctx context.Context, identifier string) (string, error) {
	if identifier == "" {
		return "", ErrEmptyIdentifier
	}
	if !r.authorize(ctx) {
		return "", core.NewFailure(core.PermissionDenied, "insufficient permissions to install packages", nil)
	}

	q := url.Values{}
	q.Set("action", "install-plugin")
	q.Set("plugin", identifier)
	q.Set("token", r.token(identifier))
	return r.actionURL + "?" + q.Encode(), nil
}

func (r *Resolver) token(identifier string) string {
	mac := hmac.New(sha256.New, r.secret)
	mac.Write([]byte("install-plugin:" + identifier))
	return hex.EncodeToString(mac.Sum(nil))[:12]
}
