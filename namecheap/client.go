package namecheap

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/context"

	er "github.com/jeffmcadams/namecheap-go/internal/errors"
)

// Namecheap supported commands: https://www.namecheap.com/support/api/methods/
const (
	ProductionAPIURL = "https://api.namecheap.com/xml.response"
	SandboxAPIURL    = "https://api.sandbox.namecheap.com/xml.response"
)

// Documented API rate limits. The client does not throttle itself; callers
// that need pacing own it.
const (
	RateLimitMinute = 20
	RateLimitHour   = 700
	RateLimitDay    = 8000
)

// Config carries the credentials every API call is signed with.
type Config struct {
	ApiUser  string
	ApiKey   string
	UserName string
	ClientIp string
	Sandbox  bool
}

// Client is a typed client for the Namecheap XML API. All methods are safe
// for concurrent use; the client holds no mutable state between calls.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the transport, e.g. to add timeouts or a proxy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the endpoint. Used by tests and mitm debugging.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	var missing []string
	if cfg.ApiUser == "" {
		missing = append(missing, "api user (NAMECHEAP_API_USER)")
	}
	if cfg.ApiKey == "" {
		missing = append(missing, "api key (NAMECHEAP_API_KEY)")
	}
	if cfg.UserName == "" {
		missing = append(missing, "username (NAMECHEAP_USERNAME)")
	}
	if cfg.ClientIp == "" {
		missing = append(missing, "client ip (NAMECHEAP_CLIENT_IP)")
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing required Namecheap API credentials: %s", strings.Join(missing, ", "))
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    ProductionAPIURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	if cfg.Sandbox {
		c.baseURL = SandboxAPIURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL reports the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Add("ApiUser", c.cfg.ApiUser)
	params.Add("ApiKey", c.cfg.ApiKey)
	params.Add("UserName", c.cfg.UserName)
	params.Add("ClientIp", c.cfg.ClientIp)
	return params
}

// do executes one API command and returns the raw response body. Status and
// error-envelope handling stays with the typed decoders so that they control
// the error taxonomy.
func (c *Client) do(ctx context.Context, command string, params url.Values) ([]byte, error) {
	form := c.baseParams()
	form.Add("Command", command)
	for key, values := range params {
		for _, v := range values {
			form.Add(key, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build Namecheap API request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call Namecheap API command %s", command)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read Namecheap response")
	}

	// Cloudflare fronts the API; a 522 arrives as a plain-text body.
	if strings.TrimSpace(string(body)) == "error code: 522" {
		return nil, er.ErrConnectionTimeout
	}

	return body, nil
}

// splitDomain splits a full domain name into its SLD and TLD parts,
// e.g. "example.co.uk" -> ("example", "co.uk").
func splitDomain(domain string) (string, string, error) {
	parts := strings.SplitN(domain, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid domain name %q", domain)
	}
	return parts[0], parts[1], nil
}
