package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Arguments decodes a tool-call argument payload into a generic map.
// An empty or whitespace-only payload decodes to an empty map, matching the
// "{}" normalization applied to zero-parameter tools during assembly.
//
// When strict decoding fails the payload is run through jsonrepair and
// decoded again, so the common streaming artifacts (single quotes, unquoted
// keys, a missing closing brace) still yield usable arguments.
func Arguments(raw string) (map[string]interface{}, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]interface{}{}, nil
	}

	var result map[string]interface{}
	if err := decode(raw, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ArgumentsAs decodes a tool-call argument payload into T, with the same
// repair fallback as [Arguments].
func ArgumentsAs[T any](raw string) (T, error) {
	var result T
	if strings.TrimSpace(raw) == "" {
		return result, nil
	}
	if err := decode(raw, &result); err != nil {
		return result, err
	}
	return result, nil
}

// decode unmarshals raw into out, retrying once with repaired JSON.
func decode(raw string, out interface{}) error {
	err := json.Unmarshal([]byte(raw), out)
	if err == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(raw)
	if repairErr != nil {
		return fmt.Errorf("decode arguments: %w (repair also failed: %v)", err, repairErr)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("decode repaired arguments: %w (original: %s, repaired: %s)", err, raw, repaired)
	}
	return nil
}
