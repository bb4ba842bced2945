// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package goautodiscover implements the Microsoft Exchange 2010 SOAP
Autodiscover protocol (GetUserSettings) for locating a mailbox's EWS
web-service endpoint from nothing but an email address and credentials.

# Overview

go-autodiscover derives the set of plausible Autodiscover service
endpoints from the address's SMTP domain (optionally widened through
_autodiscover._tcp DNS SRV records), probes all of them concurrently
over HTTPS using the URL patterns Exchange deployments actually use,
and returns the first response that comes back, cancelling the losing
probes. The winning SOAP body is normalized into a namespace-free tree
and folded into a flat name-to-value settings map.

# Package Structure

	github.com/sirosfoundation/go-autodiscover/pkg/autodiscover - client API, endpoint racing
	github.com/sirosfoundation/go-autodiscover/pkg/message      - SOAP request building, response normalization
	github.com/sirosfoundation/go-autodiscover/pkg/discovery    - DNS SRV candidate-domain expansion
	github.com/sirosfoundation/go-autodiscover/pkg/transport    - HTTPS transport (authenticated POST, redirect probing)

# Quick Start

To discover the EWS endpoint for a mailbox:

	import "github.com/sirosfoundation/go-autodiscover/pkg/autodiscover"

	client := autodiscover.NewClient(nil)
	result, err := client.Discover(ctx, autodiscover.Request{
	    EmailAddress: "user@example.com",
	    Password:     "secret",
	})
	if err != nil {
	    // handle error
	}
	fmt.Println(result.URL)

Additional settings can be requested by name:

	result, err := client.Discover(ctx, autodiscover.Request{
	    EmailAddress: "user@example.com",
	    Password:     "secret",
	    Settings:     []string{autodiscover.SettingExternalEwsVersion},
	})

# Protocol

Requests are SOAP envelopes against the fixed Exchange 2010
Autodiscover schema; the protocol version is not negotiated. The
client does not cache results and does not retry failed attempts: the
breadth of the concurrent probe matrix already absorbs transient
per-endpoint failure.

# References

  - MS-OXWSADISC: Autodiscover Publishing and Lookup SOAP-Based Web Service Protocol
  - RFC 6186 / RFC 2782: DNS SRV service location

# License

BSD-2-Clause License
*/
package goautodiscover
