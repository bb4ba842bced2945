// Package message implements the Autodiscover SOAP wire format: building
// GetUserSettings request envelopes, normalizing namespaced response XML
// into a flat addressable tree, and extracting the user settings payload.
package message
