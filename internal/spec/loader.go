package spec

import (
	"bytes"
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// Format identifies the serialization the source text was parsed as.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Parse decodes raw UTF-8 text into the intermediate document tree.
//
// Strict JSON is attempted first: JSON parses are fast-failing, and most
// YAML parsers accept JSON as a subset, so trying JSON first avoids
// silently reading malformed JSON as oddly-structured YAML. On JSON
// failure the YAML decoder gets a turn; if both refuse the text the load
// fails with a ParseError. Pure function of the input, no I/O.
func Parse(raw []byte) (*document, Format, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, "", newError(KindParse, "Invalid JSON or YAML: empty document")
	}

	var fromJSON document
	jsonErr := json.Unmarshal(raw, &fromJSON)
	if jsonErr == nil {
		return &fromJSON, FormatJSON, nil
	}

	var fromYAML document
	if yamlErr := yaml.Unmarshal(raw, &fromYAML); yamlErr != nil {
		return nil, "", &Error{
			Kind:    KindParse,
			Message: "Invalid JSON or YAML",
			Cause:   errors.Join(jsonErr, yamlErr),
		}
	}
	return &fromYAML, FormatYAML, nil
}

// Load runs the whole pipeline on raw text: parse, dialect gate,
// normalization. It is safe to call concurrently on independent inputs;
// there is no shared state.
func Load(raw []byte) (*ApiSpec, error) {
	doc, _, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return normalize(doc)
}

// LoadWithFormat is Load, also reporting which serialization matched.
func LoadWithFormat(raw []byte) (*ApiSpec, Format, error) {
	doc, format, err := Parse(raw)
	if err != nil {
		return nil, "", err
	}
	api, err := normalize(doc)
	if err != nil {
		return nil, format, err
	}
	return api, format, nil
}

// DetectVersion reports the declared dialect version string of raw text
// without fully normalizing it ("3.0.3", "2.0", ...).
func DetectVersion(raw []byte) (string, error) {
	doc, _, err := Parse(raw)
	if err != nil {
		return "", err
	}
	switch {
	case doc.OpenAPI != "":
		return string(doc.OpenAPI), nil
	case doc.Swagger != "":
		return string(doc.Swagger), nil
	default:
		return "", newError(KindValidation, "missing openapi or swagger version")
	}
}
