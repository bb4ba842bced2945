// Package autodiscover provides the main client interface for Exchange
// SOAP Autodiscover: candidate-domain expansion, concurrent endpoint
// racing, and extraction of the discovered user settings.
package autodiscover
