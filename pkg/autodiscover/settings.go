package autodiscover

import "github.com/sirosfoundation/go-autodiscover/pkg/message"

// Well-known GetUserSettings setting names. Any name the server
// understands may be requested; these are the ones clients most often
// need.
const (
	// SettingExternalEwsURL is the external EWS endpoint URL. It is
	// present in every result whether or not it was requested.
	SettingExternalEwsURL = message.SettingExternalEwsURL

	SettingInternalEwsURL      = "InternalEwsUrl"
	SettingExternalEwsVersion  = "ExternalEwsVersion"
	SettingUserDisplayName     = "UserDisplayName"
	SettingUserDN              = "UserDN"
	SettingUserDeploymentID    = "UserDeploymentId"
	SettingInternalMailboxSrv  = "InternalMailboxServer"
	SettingEwsSupportedSchemas = "EwsSupportedSchemas"
)
