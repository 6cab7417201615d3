package converter

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties is an insertion-ordered JSON object.
type Properties = orderedmap.OrderedMap[string, any]

// NewProperties returns an empty Properties map.
func NewProperties() *Properties {
	return orderedmap.New[string, any]()
}

// ModernComponentRecord is the converted form of one legacy component.
type ModernComponentRecord struct {
	TargetType      string         `json:"targetType"`
	HTMLView        string         `json:"htmlView"`
	Properties      *Properties    `json:"properties"`
	BlockProperties map[string]any `json:"blockProperties,omitempty"`
}

// Result holds the output of a conversion.
type Result struct {
	Component ModernComponentRecord `json:"component"`
	Handler   string                `json:"handler"`
	Warnings  []Warning             `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnrecognizedType WarningType = "unrecognized_type"
	WarningMalformedPayload WarningType = "malformed_payload"
	WarningEmptyContent     WarningType = "empty_content"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type    WarningType `json:"type"`
	Class   string      `json:"class,omitempty"`
	Message string      `json:"message"`
}
