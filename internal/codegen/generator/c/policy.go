package cgen

import "github.com/ticos/tmgen/internal/codegen/thingmodel"

// Accessors selects which C functions are generated for a capability.
type Accessors struct {
	Getter bool
	Setter bool
}

// Policy maps each enabled capability kind to its accessors. Items of a kind
// missing from the policy are rejected, never dropped.
type Policy map[thingmodel.Kind]Accessors

// DefaultPolicy generates telemetry getters, property getters and setters,
// and command setters.
func DefaultPolicy() Policy {
	return Policy{
		thingmodel.Telemetry: {Getter: true},
		thingmodel.Property:  {Getter: true, Setter: true},
		thingmodel.Command:   {Setter: true},
	}
}

// TelemetryPropertyPolicy is DefaultPolicy without command support, for
// firmware whose runtime has no command dispatch.
func TelemetryPropertyPolicy() Policy {
	p := DefaultPolicy()
	delete(p, thingmodel.Command)
	return p
}

// Enabled reports whether k produces any accessor.
func (p Policy) Enabled(k thingmodel.Kind) bool {
	a, ok := p[k]
	return ok && (a.Getter || a.Setter)
}
