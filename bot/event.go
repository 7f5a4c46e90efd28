package bot

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

// commitEvent is the inbound payload. Gateways deliver it either directly
// or wrapped in an envelope with the real payload under "body", which may
// itself still be string-encoded.
type commitEvent struct {
	User      string `json:"user"`
	Repo      string `json:"repo"`
	CommitSha string `json:"commit_sha"`
}

func parseCommitEvent(data []byte) (*commitEvent, error) {
	outer := map[string]interface{}{}
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, err
	}

	ev := &commitEvent{}
	if body, ok := outer["body"]; ok {
		if s, isString := body.(string); isString {
			if err := json.Unmarshal([]byte(s), ev); err != nil {
				return nil, err
			}
			return ev, nil
		}
		if err := decodeWithJsonTags(body, ev); err != nil {
			return nil, err
		}
		return ev, nil
	}

	if err := decodeWithJsonTags(outer, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func decodeWithJsonTags(input interface{}, output interface{}) error {
	config := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   output,
		TagName:  "json",
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
