package installer

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestGenerateSecret_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		secret, err := GenerateSecret()
		require.NoError(t, err)
		assert.Regexp(t, hexToken, secret)
		assert.NotContains(t, secret, ":")
		assert.NotContains(t, secret, "@")
		assert.NotContains(t, secret, "/")
	}
}

func TestGenerateSecret_NoCollisions(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		secret, err := GenerateSecret()
		require.NoError(t, err)
		require.False(t, seen[secret], "duplicate secret after %d draws", i)
		seen[secret] = true
	}
}

// failingReader simulates an exhausted entropy source.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read /dev/urandom: no such device")
}

// shortReader yields fewer bytes than requested, then stops.
type shortReader struct{ n int }

func (r *shortReader) Read(p []byte) (int, error) {
	if r.n <= 0 {
		return 0, errors.New("exhausted")
	}
	n := r.n
	if n > len(p) {
		n = len(p)
	}
	r.n -= n
	return n, nil
}

func TestGenerateSecret_EntropyUnavailable(t *testing.T) {
	orig := entropy
	t.Cleanup(func() { entropy = orig })

	entropy = failingReader{}
	secret, err := GenerateSecret()
	require.ErrorIs(t, err, ErrEntropyUnavailable)
	assert.Empty(t, secret, "a failed draw must never return a partial token")

	// A source that runs dry mid-read is just as fatal; no short token.
	entropy = &shortReader{n: 10}
	secret, err = GenerateSecret()
	require.ErrorIs(t, err, ErrEntropyUnavailable)
	assert.Empty(t, secret)
}

func TestNewCredentials_IndependentDraws(t *testing.T) {
	creds, err := NewCredentials()
	require.NoError(t, err)

	assert.Regexp(t, hexToken, creds.DBPassword)
	assert.Regexp(t, hexToken, creds.AuthSecret)
	assert.Regexp(t, hexToken, creds.APIKey)

	assert.NotEqual(t, creds.DBPassword, creds.AuthSecret)
	assert.NotEqual(t, creds.DBPassword, creds.APIKey)
	assert.NotEqual(t, creds.AuthSecret, creds.APIKey)
}

func TestConnectionString_Compose(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	got := ConnectionString("vymanager", secret, "localhost", 5432, "vymanager_auth")
	want := "postgresql://vymanager:" + secret + "@localhost:5432/vymanager_auth"
	assert.Equal(t, want, got)

	// Pure function: same inputs, same output.
	assert.Equal(t, got, ConnectionString("vymanager", secret, "localhost", 5432, "vymanager_auth"))
}

func TestConnectionString_RoundTripsThroughURLParser(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	raw := ConnectionString("vymanager", secret, "localhost", 5432, "vymanager_auth")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "vymanager", u.User.Username())
	password, set := u.User.Password()
	assert.True(t, set)
	assert.Equal(t, secret, password, "password must survive URL parsing unchanged")
	assert.Equal(t, "localhost:5432", u.Host)
	assert.Equal(t, "/vymanager_auth", u.Path)
}

func TestCredentials_DatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	creds := Credentials{DBPassword: strings.Repeat("ab", 32)}

	got := creds.DatabaseURL(cfg)
	assert.Equal(t, "postgresql://vymanager:"+strings.Repeat("ab", 32)+"@localhost:5432/vymanager_auth", got)
}
