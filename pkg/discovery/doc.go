// Package discovery expands an SMTP domain into additional candidate
// Autodiscover domains by querying _autodiscover._tcp DNS SRV records.
// Expansion is best-effort: a failed lookup contributes nothing rather
// than aborting discovery.
package discovery
