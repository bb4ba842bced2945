// Package transport implements the HTTP side of Autodiscover probing:
// basic-authenticated SOAP POSTs and redirect-probing GETs that do not
// follow the redirect themselves.
package transport
