// Package thingmodel loads a thing-model JSON document into an ordered list of
// typed capability items.
package thingmodel

import "strings"

// Kind is the capability kind of a thing-model content entry.
type Kind string

const (
	Telemetry Kind = "telemetry"
	Property  Kind = "property"
	Command   Kind = "command"
)

// SentinelName is the name suffix of the terminal entry of every kind's enum,
// so no capability may use it.
const SentinelName = "MAX"

// Kinds lists every capability kind in emission order.
var Kinds = []Kind{Telemetry, Property, Command}

// ParseKind normalizes a raw "@type" tag. The second result is false for tags
// that are not a capability kind (e.g. DTDL "Component" or "Relationship").
func ParseKind(tag string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(tag)))
	switch k {
	case Telemetry, Property, Command:
		return k, true
	default:
		return "", false
	}
}

// SchemaType is the abstract data type declared for a capability.
type SchemaType string

const (
	Boolean   SchemaType = "boolean"
	Integer   SchemaType = "integer"
	Float     SchemaType = "float"
	Double    SchemaType = "double"
	String    SchemaType = "string"
	Enum      SchemaType = "enum"
	Timestamp SchemaType = "timestamp"
	Duration  SchemaType = "duration"

	// Object is reported for complex schemas that carry no "@type" tag.
	Object SchemaType = "object"
)

// Item is one capability of the device.
type Item struct {
	Kind   Kind
	Name   string
	Schema SchemaType
}

// Model is a parsed thing model. It is never mutated after Parse returns.
type Model struct {
	// Items in document order; the order is the emission order.
	Items []Item
	// Skipped holds the raw "@type" of contents entries that are not a
	// capability kind, in document order.
	Skipped []string
	// Digest is the hex BLAKE2b-256 of the raw document.
	Digest string
}

// ByKind returns the items of kind k in document order.
func (m *Model) ByKind(k Kind) []Item {
	var out []Item
	for _, it := range m.Items {
		if it.Kind == k {
			out = append(out, it)
		}
	}
	return out
}

// Count returns the number of items of kind k.
func (m *Model) Count(k Kind) int {
	n := 0
	for _, it := range m.Items {
		if it.Kind == k {
			n++
		}
	}
	return n
}
