package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/erraggy/restdoc"
)

const (
	fetchTimeout     = 30 * time.Second
	dialTimeout      = 10 * time.Second
	maxFetchRedirect = 5
)

// errNoAddress is returned when a model host resolves to nothing.
var errNoAddress = errors.New("host has no addresses")

// isBlockedIP reports whether a model URL may not reach ip: private,
// loopback, link-local and unspecified addresses are refused.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// publicAddrs resolves host and fails if any address is blocked.
func publicAddrs(ctx context.Context, host string) ([]net.IPAddr, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%s: %w", host, errNoAddress)
	}
	for _, a := range addrs {
		if isBlockedIP(a.IP) {
			return nil, fmt.Errorf("blocked request to private address: %s (%s)", host, a.IP)
		}
	}
	return addrs, nil
}

// newModelClient returns the client used to download Source Models. Unless
// allowPrivate is set, every dial and redirect target must resolve to
// public addresses only.
func newModelClient(allowPrivate bool) *http.Client {
	client := &http.Client{
		Timeout: fetchTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxFetchRedirect {
				return fmt.Errorf("stopped after %d redirects", maxFetchRedirect)
			}
			if allowPrivate {
				return nil
			}
			_, err := publicAddrs(req.Context(), req.URL.Hostname())
			return err
		},
	}
	if allowPrivate {
		return client
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	client.Transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			addrs, err := publicAddrs(ctx, host)
			if err != nil {
				return nil, err
			}
			var dialErr error
			for _, a := range addrs {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(a.IP.String(), port))
				if err == nil {
					return conn, nil
				}
				dialErr = err
			}
			return nil, dialErr
		},
	}
	return client
}

// fetchModel downloads a Source Model document over http or https.
// Private addresses are refused unless RESTDOC_ALLOW_PRIVATE_IPS is set,
// and bodies larger than RESTDOC_MAX_INLINE_SIZE are rejected.
func fetchModel(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid url %q: scheme must be http or https", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", restdoc.UserAgent())
	req.Header.Set("Accept", "application/yaml, application/json;q=0.9, */*;q=0.1")

	resp, err := newModelClient(cfg.AllowPrivateIPs).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("fetch %s: document exceeds maximum %d bytes", rawURL, cfg.MaxInlineSize)
	}
	return data, nil
}
