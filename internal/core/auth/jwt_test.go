package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "blog-test", TTL: time.Minute}

	tok, err := j.Issue("a@x.com", "ADMIN")
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "ADMIN", claims.Role)
	require.Equal(t, "a@x.com", claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "blog-test", TTL: time.Minute}
	other := &JWTer{Secret: []byte("other-secret"), Issuer: "blog-test", TTL: time.Minute}

	tok, err := j.Issue("a@x.com", "USER")
	require.NoError(t, err)
	_, err = other.Parse(tok)
	require.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Minute}
	tok, err := j.Issue("a@x.com", "USER")
	require.NoError(t, err)

	verifier := &JWTer{Secret: []byte("test-secret"), Issuer: "blog-test", TTL: time.Minute}
	_, err = verifier.Parse(tok)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "blog-test", TTL: -2 * time.Minute}
	tok, err := j.Issue("a@x.com", "USER")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	require.Error(t, err)
}
