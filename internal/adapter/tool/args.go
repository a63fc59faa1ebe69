package tool

import (
	"encoding/json"
	"strings"
)

// decodeArgs unmarshals model-produced JSON arguments. An empty string is
// treated as an empty object so tools with only optional fields still run.
func decodeArgs(arguments string, dst any) error {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}
	return json.Unmarshal([]byte(arguments), dst)
}
