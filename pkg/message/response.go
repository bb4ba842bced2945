package message

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a response parsed but does not
// carry the expected GetUserSettings payload shape. This is what a
// non-success Autodiscover status (error response, redirect-to-another-
// address) looks like to this client; those payloads are not decoded
// further.
var ErrMalformedResponse = errors.New("response does not contain a user settings payload")

// settingsPath is the fixed location of the user settings list inside a
// normalized GetUserSettings response.
var settingsPath = []string{
	"envelope",
	"body",
	"getUserSettingsResponseMessage",
	"response",
	"userResponses",
	"userResponse",
	"userSettings",
}

// ExtractSettings walks a normalized response tree to the user settings
// list and folds it into a name-to-value map. A single setting entry is
// handled the same as a list of them. Duplicate names keep the last
// value seen; entries without a string name are skipped.
func ExtractSettings(root Node) (map[string]string, error) {
	n := root
	for _, name := range settingsPath {
		child, ok := n.Child(name)
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedResponse, name)
		}
		n = child
	}

	entries, ok := n.Slice("userSetting")
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformedResponse, "userSetting")
	}

	settings := make(map[string]string, len(entries))
	for _, entry := range entries {
		setting, ok := entry.(Node)
		if !ok {
			continue
		}
		name, ok := setting.Text("name")
		if !ok {
			continue
		}
		value, _ := setting.Text("value")
		settings[name] = value
	}
	return settings, nil
}
