// Package records defines the dashboard's entity types — alerts, database
// connections, index recommendations, reports, and team members — together
// with their closed status enumerations, the legal status-transition rules
// for each entity, and the seed data every collection starts from.
//
// Every status / severity / category / role field is a distinct typed string
// that validates itself during YAML decoding, so a malformed seed file fails
// at load time rather than rendering an impossible state.
package records

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeEnum decodes a YAML scalar into an enumerated string type, rejecting
// any value outside the closed set.
func decodeEnum[S ~string](value *yaml.Node, kind string, valid ...S) (S, error) {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return "", fmt.Errorf("records: %s: %w", kind, err)
	}
	for _, v := range valid {
		if S(raw) == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("records: invalid %s %q", kind, raw)
}
