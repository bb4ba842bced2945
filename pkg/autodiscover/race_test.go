package autodiscover

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRace_RedirectThenPostFollowsLocation(t *testing.T) {
	var mu sync.Mutex
	var postedBody string
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/redirect":
			w.Header().Set("Location", server.URL+"/real/autodiscover.svc")
			w.WriteHeader(http.StatusFound)
		case "/real/autodiscover.svc":
			require.Equal(t, http.MethodPost, r.Method)
			if _, _, ok := r.BasicAuth(); !ok {
				t.Error("redirected POST arrived without basic auth")
			}
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			postedBody = string(body)
			mu.Unlock()
			fmt.Fprint(w, settingsResponse([2]string{"ExternalEwsUrl", ewsURL}))
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	client := clientFor(AttemptURLs{
		DirectPost:  deadURL,
		AltPost:     deadURL,
		RedirectGet: server.URL + "/redirect",
	}, &stubExpander{})

	result, err := client.Discover(context.Background(), Request{
		EmailAddress: "foo@bar.onmicrosoft.com",
		Password:     "secret",
		DisableDNS:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, ewsURL, result.URL)
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, postedBody, "<a:Mailbox>foo@bar.onmicrosoft.com</a:Mailbox>",
		"the redirect target must receive the same request body")
}

func TestRace_ResultIdenticalRegardlessOfWinner(t *testing.T) {
	// The same fixed response body is served no matter which attempt
	// reaches it; the extracted result must not depend on the winner.
	winners := []string{"direct", "alt", "redirect"}

	var results []*Result
	for _, winner := range winners {
		t.Run(winner, func(t *testing.T) {
			server := newDiscoveryServer(t, settingsResponse(
				[2]string{"ExternalEwsUrl", ewsURL},
				[2]string{"ExternalEwsVersion", "15.20.4649.17"},
			))

			urls := AttemptURLs{DirectPost: deadURL, AltPost: deadURL, RedirectGet: server.URL + "/nored"}
			switch winner {
			case "direct":
				urls.DirectPost = server.URL + "/autodiscover/autodiscover.svc"
			case "alt":
				urls.AltPost = server.URL + "/autodiscover/autodiscover.svc"
			case "redirect":
				urls.RedirectGet = server.URL + "/redirect"
			}

			client := clientFor(urls, &stubExpander{})
			result, err := client.Discover(context.Background(), Request{
				EmailAddress: "foo@bar.onmicrosoft.com",
				Password:     "secret",
				Settings:     []string{"ExternalEwsVersion"},
				DisableDNS:   true,
			})
			require.NoError(t, err)
			results = append(results, result)
		})
	}

	require.Len(t, results, len(winners))
	for _, result := range results[1:] {
		assert.Equal(t, results[0], result)
	}
}

func TestRace_CancelsLosersOnceWinnerCompletes(t *testing.T) {
	// The winner answers immediately; the loser parks until its request
	// context is cancelled by the race.
	loserCancelled := make(chan struct{})
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/autodiscover/autodiscover.svc":
			fmt.Fprint(w, settingsResponse([2]string{"ExternalEwsUrl", ewsURL}))
		case "/slow":
			// Drain the request body: the server only watches for client
			// disconnect (which fires r.Context()) once the body is read.
			io.Copy(io.Discard, r.Body)
			select {
			case <-r.Context().Done():
				close(loserCancelled)
			case <-time.After(30 * time.Second):
			}
		}
	}))
	defer server.Close()

	client := clientFor(AttemptURLs{
		DirectPost:  server.URL + "/autodiscover/autodiscover.svc",
		AltPost:     server.URL + "/slow",
		RedirectGet: deadURL,
	}, &stubExpander{})

	start := time.Now()
	result, err := client.Discover(context.Background(), Request{
		EmailAddress: "foo@bar.onmicrosoft.com",
		Password:     "secret",
		DisableDNS:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, ewsURL, result.URL)
	assert.Less(t, time.Since(start), 10*time.Second, "the race must not wait for losers")

	select {
	case <-loserCancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("losing attempt was not cancelled after the winner completed")
	}
}

func TestAttemptsFor_DefaultURLPatterns(t *testing.T) {
	client := NewClient(nil)
	attempts := client.attemptsFor("example.com")
	require.Len(t, attempts, 3)

	assert.Equal(t, patternDirectPost, attempts[0].pattern)
	assert.Equal(t, "https://example.com/autodiscover/autodiscover.svc", attempts[0].url)

	assert.Equal(t, patternDirectPost, attempts[1].pattern)
	assert.Equal(t, "https://autodiscover.example.com/autodiscover/autodiscover.svc", attempts[1].url)

	assert.Equal(t, patternRedirectThenPost, attempts[2].pattern)
	assert.Equal(t, "http://autodiscover.example.com/autodiscover/autodiscover.svc", attempts[2].url)
}

func TestAllEndpointsFailedError_ListsAttempts(t *testing.T) {
	err := &AllEndpointsFailedError{Attempts: []*AttemptError{
		{Pattern: patternDirectPost, URL: "https://a.example.com/autodiscover/autodiscover.svc", Err: fmt.Errorf("connection refused")},
		{Pattern: patternRedirectThenPost, URL: "http://autodiscover.a.example.com/autodiscover/autodiscover.svc", Err: fmt.Errorf("status 200")},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "all 2 autodiscover attempts failed")
	assert.Contains(t, msg, "direct-post https://a.example.com")
	assert.Contains(t, msg, "redirect-then-post http://autodiscover.a.example.com")
}
