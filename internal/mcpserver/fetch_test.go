package mcpserver

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedIP(t *testing.T) {
	for ip, blocked := range map[string]bool{
		"127.0.0.1":     true,
		"10.1.2.3":      true,
		"172.20.0.9":    true,
		"192.168.0.10":  true,
		"169.254.10.1":  true,
		"0.0.0.0":       true,
		"::1":           true,
		"::":            true,
		"fe80::abcd":    true,
		"fd12::1":       true,
		"9.9.9.9":       false,
		"151.101.1.69":  false,
		"2606:4700::11": false,
	} {
		t.Run(ip, func(t *testing.T) {
			parsed := net.ParseIP(ip)
			require.NotNil(t, parsed)
			assert.Equal(t, blocked, isBlockedIP(parsed))
		})
	}
}

func TestPublicAddrs_Loopback(t *testing.T) {
	_, err := publicAddrs(context.Background(), "127.0.0.1")
	assert.ErrorContains(t, err, "blocked request to private address")
}

func TestNewModelClient(t *testing.T) {
	strict := newModelClient(false)
	assert.Equal(t, fetchTimeout, strict.Timeout)
	assert.NotNil(t, strict.Transport)
	assert.NotNil(t, strict.CheckRedirect)

	open := newModelClient(true)
	assert.Nil(t, open.Transport, "private fetches use the default transport")
}

func TestFetchModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/model.yaml":
			_, _ = w.Write([]byte(pingModel("fetched")))
		case "/big.yaml":
			_, _ = w.Write([]byte(strings.Repeat("#", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg.AllowPrivateIPs = true
	maxSize := cfg.MaxInlineSize
	t.Cleanup(func() {
		cfg.AllowPrivateIPs = false
		cfg.MaxInlineSize = maxSize
	})

	data, err := fetchModel(context.Background(), srv.URL+"/model.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "/fetched")

	_, err = fetchModel(context.Background(), srv.URL+"/missing.yaml")
	assert.ErrorContains(t, err, "unexpected status")

	cfg.MaxInlineSize = 16
	_, err = fetchModel(context.Background(), srv.URL+"/big.yaml")
	assert.ErrorContains(t, err, "exceeds maximum 16 bytes")
}

func TestFetchModel_Scheme(t *testing.T) {
	for _, u := range []string{"file:///etc/passwd", "ftp://example.com/model.yaml", "model.yaml"} {
		_, err := fetchModel(context.Background(), u)
		assert.ErrorContains(t, err, "scheme must be http or https", u)
	}
}
