package render

import (
	"encoding/json"
	"fmt"

	"specview/internal/spec"
)

// JSON dumps the whole model as indented JSON. Ordered mappings marshal
// in document order, so the dump is stable across loads of the same text.
func JSON(api *spec.ApiSpec) ([]byte, error) {
	if api == nil {
		return nil, fmt.Errorf("render: nil spec")
	}
	out, err := json.MarshalIndent(api, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: marshal model: %w", err)
	}
	return out, nil
}
