package discovery

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runTestDNS starts a DNS server on a loopback UDP port and returns its
// address.
func runTestDNS(t *testing.T, handler dns.HandlerFunc) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &dns.Server{PacketConn: pc, Handler: handler}
	go server.ActivateAndServe()
	t.Cleanup(func() { server.Shutdown() })

	return pc.LocalAddr().String()
}

// srvAnswer builds a handler answering every SRV question with the
// given targets.
func srvAnswer(targets ...string) dns.HandlerFunc {
	return func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		for i, target := range targets {
			m.Answer = append(m.Answer, &dns.SRV{
				Hdr:      dns.RR_Header{Name: r.Question[0].Name, Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: 60},
				Priority: uint16(i),
				Weight:   1,
				Port:     443,
				Target:   dns.Fqdn(target),
			})
		}
		w.WriteMsg(m)
	}
}

func TestLookup_ReturnsTargetsInResolverOrder(t *testing.T) {
	addr := runTestDNS(t, srvAnswer("mail.example.com", "mail2.example.com"))

	expander := NewSRVExpanderWithConfig(SRVExpanderConfig{DNSServer: addr})
	targets, err := expander.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"mail.example.com", "mail2.example.com"}, targets)
}

func TestLookup_QueriesAutodiscoverService(t *testing.T) {
	var mu sync.Mutex
	var question string
	addr := runTestDNS(t, func(w dns.ResponseWriter, r *dns.Msg) {
		mu.Lock()
		question = r.Question[0].Name
		mu.Unlock()
		srvAnswer("mail.example.com")(w, r)
	})

	expander := NewSRVExpanderWithConfig(SRVExpanderConfig{DNSServer: addr})
	_, err := expander.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "_autodiscover._tcp.example.com.", question)
}

func TestLookup_NXDomain(t *testing.T) {
	addr := runTestDNS(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeNameError)
		w.WriteMsg(m)
	})

	expander := NewSRVExpanderWithConfig(SRVExpanderConfig{DNSServer: addr})
	_, err := expander.Lookup(context.Background(), "example.com")
	assert.ErrorIs(t, err, ErrNoRecordsFound)
}

func TestLookup_EmptyAnswerIsDistinctFromFailure(t *testing.T) {
	addr := runTestDNS(t, srvAnswer())

	expander := NewSRVExpanderWithConfig(SRVExpanderConfig{DNSServer: addr})
	_, err := expander.Lookup(context.Background(), "example.com")
	assert.ErrorIs(t, err, ErrNoRecordsFound)
}

func TestLookup_ServerFailure(t *testing.T) {
	addr := runTestDNS(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeServerFailure)
		w.WriteMsg(m)
	})

	expander := NewSRVExpanderWithConfig(SRVExpanderConfig{DNSServer: addr})
	_, err := expander.Lookup(context.Background(), "example.com")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestExpand_DegradesToEmptyOnFailure(t *testing.T) {
	// Unreachable resolver: expansion must contribute nothing rather
	// than surface an error.
	expander := NewSRVExpanderWithConfig(SRVExpanderConfig{DNSServer: "127.0.0.1:1"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	targets := expander.Expand(ctx, "example.com")
	assert.Empty(t, targets)
}

func TestExpand_ReturnsTargets(t *testing.T) {
	addr := runTestDNS(t, srvAnswer("autodiscover.hosted.example.net"))

	expander := NewSRVExpanderWithConfig(SRVExpanderConfig{DNSServer: addr})
	targets := expander.Expand(context.Background(), "example.com")
	assert.Equal(t, []string{"autodiscover.hosted.example.net"}, targets)
}
