package display

import (
	"encoding/json"
)

// MarshalJSON marshals v with pretty formatting for terminal consumption.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
