package install

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconick/hiddengems/internal/core"
)

func TestInstallURL(t *testing.T) {
	r := NewResolver("/update.php", []byte("secret"), nil)

	got, err := r.InstallURL(context.Background(), "tiny-forms")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/update.php", u.Path)

	q := u.Query()
	assert.Equal(t, "install-plugin", q.Get("action"))
	assert.Equal(t, "tiny-forms", q.Get("plugin"))
	assert.Len(t, q.Get("token"), 12)
}

func TestInstallURLDeterministic(t *testing.T) {
	r := NewResolver("/update.php", []byte("secret"), nil)

	first, err := r.InstallURL(context.Background(), "tiny-forms")
	require.NoError(t, err)
	second, err := r.InstallURL(context.Background(), "tiny-forms")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInstallURLTokenBoundToIdentifier(t *testing.T) {
	r := NewResolver("/update.php", []byte("secret"), nil)

	a, err := r.InstallURL(context.Background(), "plugin-a")
	require.NoError(t, err)
	b, err := r.InstallURL(context.Background(), "plugin-b")
	require.NoError(t, err)

	tokenA := mustQuery(t, a).Get("token")
	tokenB := mustQuery(t, b).Get("token")
	assert.NotEqual(t, tokenA, tokenB)
}

func TestInstallURLEmptyIdentifier(t *testing.T) {
	r := NewResolver("/update.php", []byte("secret"), nil)

	_, err := r.InstallURL(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
}

func TestInstallURLDenied(t *testing.T) {
	deny := func(context.Context) bool { return false }
	r := NewResolver("/update.php", []byte("secret"), deny)

	_, err := r.InstallURL(context.Background(), "tiny-forms")

	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.PermissionDenied, f.Kind)
	assert.False(t, f.Retryable)
}

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}
