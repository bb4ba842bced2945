package autodiscover

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sirosfoundation/go-autodiscover/pkg/discovery"
	"github.com/sirosfoundation/go-autodiscover/pkg/message"
	"github.com/sirosfoundation/go-autodiscover/pkg/transport"
)

// Request describes one discovery call.
type Request struct {
	// EmailAddress is the mailbox to discover settings for. Required;
	// must contain exactly one '@'. The part after it is the SMTP
	// domain used to build candidate endpoints.
	EmailAddress string

	// Password is the mailbox credential. Required.
	Password string

	// Username overrides the authentication user name.
	// Defaults to EmailAddress.
	Username string

	// Settings lists additional setting names to request, in order.
	// SettingExternalEwsURL is always requested.
	Settings []string

	// DisableDNS turns off SRV-based candidate-domain expansion. The
	// zero value leaves expansion enabled.
	DisableDNS bool
}

// Result is the outcome of a successful discovery.
type Result struct {
	// URL is the discovered EWS endpoint URL.
	URL string

	// Settings maps setting names to values. It is populated only when
	// the request asked for settings, and then always includes
	// SettingExternalEwsURL.
	Settings map[string]string
}

// DomainExpander yields alternate candidate domains for an SMTP domain.
// Implementations must degrade to an empty result on failure.
type DomainExpander interface {
	Expand(ctx context.Context, domain string) []string
}

// AttemptURLs holds the three endpoint URLs tried for one candidate
// domain.
type AttemptURLs struct {
	// DirectPost is POSTed directly
	DirectPost string
	// AltPost is the autodiscover.<domain> variant, also POSTed directly
	AltPost string
	// RedirectGet is probed with a non-following GET; a 302 Location is
	// then POSTed
	RedirectGet string
}

// ClientConfig holds client configuration. The zero value of every
// field selects a sensible default.
type ClientConfig struct {
	// HTTPSConfig configures the probe transport (timeouts, TLS bounds)
	HTTPSConfig *transport.HTTPSConfig

	// Expander supplies candidate-domain expansion. Defaults to a
	// _autodiscover._tcp SRV expander on the system resolver.
	Expander DomainExpander

	// Logger receives debug records for attempt lifecycle events
	Logger *slog.Logger

	// CustomAttemptURLs overrides endpoint URL construction for a
	// candidate domain. Race semantics are unaffected.
	CustomAttemptURLs func(domain string) AttemptURLs
}

// Client is the Autodiscover client.
type Client struct {
	httpClient  *transport.HTTPSClient
	expander    DomainExpander
	logger      *slog.Logger
	attemptURLs func(domain string) AttemptURLs
}

// NewClient creates a new Autodiscover client. A nil config selects
// defaults throughout.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = &ClientConfig{}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	expander := config.Expander
	if expander == nil {
		expander = discovery.NewSRVExpanderWithConfig(discovery.SRVExpanderConfig{Logger: logger})
	}

	return &Client{
		httpClient:  transport.NewHTTPSClient(config.HTTPSConfig),
		expander:    expander,
		logger:      logger,
		attemptURLs: config.CustomAttemptURLs,
	}
}

// Discover resolves the EWS endpoint for the requested mailbox. It
// validates the request, expands the candidate domain set, races every
// endpoint attempt, and folds the winning response into a Result.
//
// The candidate set is the SMTP domain itself plus, unless DisableDNS
// is set, whatever the domain expander contributes. No result is ever
// cached and failed attempts are not retried.
func (c *Client) Discover(ctx context.Context, req Request) (*Result, error) {
	domain, err := smtpDomain(req.EmailAddress)
	if err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	username := req.Username
	if username == "" {
		username = req.EmailAddress
	}

	body, err := message.BuildGetUserSettingsRequest(req.EmailAddress, req.Settings)
	if err != nil {
		return nil, err
	}

	candidates := []string{domain}
	if !req.DisableDNS {
		candidates = append(candidates, c.expander.Expand(ctx, domain)...)
	}

	raw, err := c.race(ctx, candidates, body, username, req.Password)
	if err != nil {
		return nil, err
	}

	tree, err := message.Normalize(raw)
	if err != nil {
		return nil, err
	}
	settings, err := message.ExtractSettings(tree)
	if err != nil {
		return nil, err
	}

	result := &Result{URL: settings[message.SettingExternalEwsURL]}
	if len(req.Settings) > 0 {
		result.Settings = settings
	}
	return result, nil
}

// DiscoverURL is a convenience wrapper returning only the endpoint URL.
func (c *Client) DiscoverURL(ctx context.Context, req Request) (string, error) {
	result, err := c.Discover(ctx, req)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

// smtpDomain extracts the SMTP domain from an email address containing
// exactly one '@'.
func smtpDomain(emailAddress string) (string, error) {
	if strings.Count(emailAddress, "@") != 1 {
		return "", fmt.Errorf("%w: email address %q must contain exactly one '@'", ErrInvalidInput, emailAddress)
	}
	_, domain, _ := strings.Cut(emailAddress, "@")
	if domain == "" {
		return "", fmt.Errorf("%w: email address %q has an empty domain", ErrInvalidInput, emailAddress)
	}
	return domain, nil
}
