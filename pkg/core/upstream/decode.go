package upstream

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// decodeEnvelope parses the upstream's query envelope. Fava itself emits
// clean JSON, but proxies and plugins in front of it have been seen to add
// trailing commas or comments, so decoding falls back through
// progressively more lenient parsers:
//
//  1. standard encoding/json
//  2. json-repair (trailing commas, single quotes, unclosed braces)
//  3. Hjson (comments, unquoted keys)
func decodeEnvelope(raw string) (*QueryEnvelope, error) {
	var env QueryEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil {
		return &env, nil
	}

	if repaired, err := jsonrepair.RepairJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), &env); err == nil {
			return &env, nil
		}
	}

	var loose interface{}
	if err := hjson.Unmarshal([]byte(raw), &loose); err == nil {
		if b, err := json.Marshal(loose); err == nil {
			if err := json.Unmarshal(b, &env); err == nil {
				return &env, nil
			}
		}
	}

	return nil, fmt.Errorf("upstream response is not a query envelope")
}
