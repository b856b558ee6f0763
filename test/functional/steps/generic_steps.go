package steps

import (
	"encoding/json"
	"fmt"
	"strings"
)

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	fc.require.Equal(code, fc.response.StatusCode, "Unexpected status code, body: %v", fc.responseData)
	return nil
}

// theResponseFieldShouldBe accepts dotted paths such as "health.status".
func (fc *FeatureContext) theResponseFieldShouldBe(path, expected string) error {
	fc.require.NotNil(fc.responseData, "response has no body")

	var current any = fc.responseData
	for _, key := range strings.Split(path, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return fmt.Errorf("field %s is not reachable in %v", path, fc.responseData)
		}
		current = object[key]
	}

	fc.require.Equal(expected, fmt.Sprint(current), "field %s", path)
	return nil
}

func (fc *FeatureContext) theResponseShouldNotMention(text string) error {
	body, err := json.Marshal(fc.responseData)
	fc.require.NoError(err)
	fc.require.NotContains(string(body), text)
	return nil
}
