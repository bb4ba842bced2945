package message

import (
	"fmt"

	"github.com/beevik/etree"
)

// BuildGetUserSettingsRequest renders the SOAP request envelope for a
// GetUserSettings call on behalf of emailAddress. The requested setting
// names are emitted in caller order; SettingExternalEwsURL is appended
// when absent and never emitted more than once.
//
// Text content is escaped by the XML serializer; the caller is expected
// to have validated that emailAddress is a plausible address.
func BuildGetUserSettingsRequest(emailAddress string, settings []string) ([]byte, error) {
	names := make([]string, 0, len(settings)+1)
	haveEwsURL := false
	for _, s := range settings {
		if s == SettingExternalEwsURL {
			if haveEwsURL {
				continue
			}
			haveEwsURL = true
		}
		names = append(names, s)
	}
	if !haveEwsURL {
		names = append(names, SettingExternalEwsURL)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	envelope := doc.CreateElement("soap:Envelope")
	envelope.CreateAttr("xmlns:soap", SOAPNamespace)
	envelope.CreateAttr("xmlns:a", AutodiscoverNamespace)
	envelope.CreateAttr("xmlns:wsa", AddressingNamespace)
	envelope.CreateAttr("xmlns:xsi", XSINamespace)

	header := envelope.CreateElement("soap:Header")
	header.CreateElement("a:RequestedServerVersion").SetText(ServerVersion)
	header.CreateElement("wsa:Action").SetText(GetUserSettingsAction)

	body := envelope.CreateElement("soap:Body")
	request := body.CreateElement("a:GetUserSettingsRequestMessage").CreateElement("a:Request")
	request.CreateElement("a:Users").
		CreateElement("a:User").
		CreateElement("a:Mailbox").SetText(emailAddress)

	requested := request.CreateElement("a:RequestedSettings")
	for _, name := range names {
		requested.CreateElement("a:Setting").SetText(name)
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}
	return data, nil
}
