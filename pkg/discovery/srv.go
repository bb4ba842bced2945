package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/miekg/dns"
)

// Common errors
var (
	// ErrNoRecordsFound is returned when the SRV query succeeds but yields no records
	ErrNoRecordsFound = errors.New("no autodiscover SRV records found")
	// ErrLookupFailed is returned when the SRV query itself fails
	ErrLookupFailed = errors.New("SRV lookup failed")
)

// srvService is the service label queried under the SMTP domain
const srvService = "_autodiscover._tcp."

// SRVExpanderConfig contains configuration for the SRV expander
type SRVExpanderConfig struct {
	// DNSServer is the DNS server to use for lookups (optional)
	// Format: "ip:port" (e.g., "8.8.8.8:53")
	// If empty, the system default resolver is used
	DNSServer string

	// Logger receives debug records for suppressed lookup failures.
	// If nil, failures are suppressed silently.
	Logger *slog.Logger
}

// SRVExpander discovers alternate candidate domains for a mailbox's
// SMTP domain via _autodiscover._tcp SRV records.
type SRVExpander struct {
	config    SRVExpanderConfig
	dnsClient *dns.Client
}

// NewSRVExpander creates an expander using the system default resolver.
func NewSRVExpander() *SRVExpander {
	return NewSRVExpanderWithConfig(SRVExpanderConfig{})
}

// NewSRVExpanderWithConfig creates an expander with custom configuration.
func NewSRVExpanderWithConfig(config SRVExpanderConfig) *SRVExpander {
	return &SRVExpander{
		config:    config,
		dnsClient: new(dns.Client),
	}
}

// Expand returns the SRV target names for domain, in resolver order.
// Record priority and weight are discarded; the targets are raced
// against each other anyway. Any lookup failure degrades to an empty
// result so that discovery proceeds on the SMTP domain alone.
func (e *SRVExpander) Expand(ctx context.Context, domain string) []string {
	targets, err := e.Lookup(ctx, domain)
	if err != nil {
		if e.config.Logger != nil {
			e.config.Logger.DebugContext(ctx, "autodiscover SRV expansion skipped",
				"domain", domain, "error", err)
		}
		return nil
	}
	return targets
}

// Lookup performs the SRV query for domain and reports failure
// distinctly from an empty record set. Most callers want Expand.
func (e *SRVExpander) Lookup(ctx context.Context, domain string) ([]string, error) {
	dnsServer := e.config.DNSServer
	if dnsServer == "" {
		config, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read DNS config: %v", ErrLookupFailed, err)
		}
		if len(config.Servers) == 0 {
			return nil, fmt.Errorf("%w: no DNS servers configured", ErrLookupFailed)
		}
		dnsServer = config.Servers[0] + ":" + config.Port
	}

	queryDomain := srvService + domain

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(queryDomain), dns.TypeSRV)
	msg.RecursionDesired = true

	resp, _, err := e.dnsClient.ExchangeContext(ctx, msg, dnsServer)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLookupFailed, queryDomain, err)
	}

	if resp.Rcode == dns.RcodeNameError {
		return nil, fmt.Errorf("%w: %s", ErrNoRecordsFound, queryDomain)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%w: %s: rcode=%d", ErrLookupFailed, queryDomain, resp.Rcode)
	}

	var targets []string
	for _, rr := range resp.Answer {
		srv, ok := rr.(*dns.SRV)
		if !ok {
			continue
		}
		target := strings.TrimSuffix(srv.Target, ".")
		if target == "" {
			continue
		}
		targets = append(targets, target)
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecordsFound, queryDomain)
	}
	return targets, nil
}
