package message

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Namespace URIs and protocol constants for the Exchange 2010 SOAP
// Autodiscover service. These are fixed by MS-OXWSADISC; the protocol
// version is not negotiated.
const (
	// SOAPNamespace is the SOAP envelope namespace
	SOAPNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	// AutodiscoverNamespace is the Exchange 2010 Autodiscover schema namespace
	AutodiscoverNamespace = "http://schemas.microsoft.com/exchange/2010/Autodiscover"
	// AddressingNamespace is the WS-Addressing namespace
	AddressingNamespace = "http://www.w3.org/2005/08/addressing"
	// XSINamespace is the XML Schema instance namespace
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

	// GetUserSettingsAction is the WS-Addressing action URI for the
	// GetUserSettings operation
	GetUserSettingsAction = "http://schemas.microsoft.com/exchange/2010/Autodiscover/Autodiscover/GetUserSettings"

	// ServerVersion is the requested Autodiscover protocol version
	ServerVersion = "Exchange2010"

	// SettingExternalEwsURL is the setting carrying the EWS endpoint URL.
	// Every request includes it, whether or not the caller asked for it.
	SettingExternalEwsURL = "ExternalEwsUrl"
)

// NormalizeName strips any namespace prefix from an XML tag or attribute
// name and lower-cases the first character of what remains. Applying it
// to an already-normalized name is a no-op.
//
//	NormalizeName("a:Foo") == "foo"
//	NormalizeName("Bar")   == "bar"
func NormalizeName(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
