// Package cgen derives the C symbols of a thing model: accessor declarations,
// stub definitions, per-kind enums and per-kind dispatch tables.
package cgen

import (
	"fmt"
	"strings"

	"github.com/ticos/tmgen/internal/codegen/common"
	"github.com/ticos/tmgen/internal/codegen/generr"
	"github.com/ticos/tmgen/internal/codegen/render"
	"github.com/ticos/tmgen/internal/codegen/thingmodel"
)

// Placeholders filled from an Output.
const (
	KeyFuncDecs      = "FUNC_DECS"
	KeyFuncDefs      = "FUNC_DEFS"
	KeyTelemetryTabs = "TELEMETRY_TABS"
	KeyPropertyTabs  = "PROPERTY_TABS"
	KeyCommandTabs   = "COMMAND_TABS"
	KeyTelemetryEnum = "TELEMETRY_ENUM"
	KeyPropertyEnum  = "PROPERTY_ENUM"
	KeyCommandEnum   = "COMMAND_ENUM"
)

var tabKeys = map[thingmodel.Kind]string{
	thingmodel.Telemetry: KeyTelemetryTabs,
	thingmodel.Property:  KeyPropertyTabs,
	thingmodel.Command:   KeyCommandTabs,
}

var enumKeys = map[thingmodel.Kind]string{
	thingmodel.Telemetry: KeyTelemetryEnum,
	thingmodel.Property:  KeyPropertyEnum,
	thingmodel.Command:   KeyCommandEnum,
}

// Fragments is the generated text of one capability kind.
type Fragments struct {
	Kind         thingmodel.Kind
	Items        int
	Declarations string
	Definitions  string
	EnumEntries  string
	TableRows    string
}

// Output is the emitted symbol table of a whole thing model.
type Output struct {
	// Declarations and Definitions of every kind, in document order.
	Declarations string
	Definitions  string
	Kinds        map[thingmodel.Kind]*Fragments

	declCount int
}

// DeclarationCount is the number of function prototypes in Declarations.
func (o *Output) DeclarationCount() int { return o.declCount }

// Context freezes the fragments into a render context. Entries of extra are
// copied first, so generated fragments always win on a name clash.
func (o *Output) Context(extra render.Context) render.Context {
	ctx := make(render.Context, len(extra)+8)
	for k, v := range extra {
		ctx[k] = v
	}
	ctx[KeyFuncDecs] = o.Declarations
	ctx[KeyFuncDefs] = o.Definitions
	for _, k := range thingmodel.Kinds {
		f := o.Kinds[k]
		ctx[tabKeys[k]] = f.TableRows
		ctx[enumKeys[k]] = f.EnumEntries
	}
	return ctx
}

type kindBuilder struct {
	items               int
	decs, defs, en, tab strings.Builder
}

// Emit walks the model in document order and generates every fragment.
// Each kind's enum ends with exactly one TICOS_<KIND>_MAX entry, even when the
// kind has no items or is disabled by the policy.
func Emit(m *thingmodel.Model, policy Policy) (*Output, error) {
	builders := make(map[thingmodel.Kind]*kindBuilder, len(thingmodel.Kinds))
	for _, k := range thingmodel.Kinds {
		builders[k] = &kindBuilder{}
	}

	var decs, defs strings.Builder
	declCount := 0

	for _, it := range m.Items {
		if !policy.Enabled(it.Kind) {
			return nil, generr.UnsupportedKind(fmt.Sprintf("%s %q: %s items are not enabled", it.Kind, it.Name, it.Kind))
		}
		sym, err := newSymbol(it, policy[it.Kind])
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", it.Kind, it.Name, err)
		}

		b := builders[it.Kind]
		b.items++
		for _, d := range sym.declarations() {
			b.decs.WriteString(d)
			decs.WriteString(d)
			declCount++
		}
		for _, d := range sym.definitions() {
			b.defs.WriteString(d)
			defs.WriteString(d)
		}
		b.en.WriteString(enumLine(sym.enum))
		b.tab.WriteString(sym.tableRow())
	}

	out := &Output{
		Declarations: decs.String(),
		Definitions:  defs.String(),
		Kinds:        make(map[thingmodel.Kind]*Fragments, len(builders)),
		declCount:    declCount,
	}
	for _, k := range thingmodel.Kinds {
		b := builders[k]
		b.en.WriteString(enumLine(common.SentinelName(k)))
		out.Kinds[k] = &Fragments{
			Kind:         k,
			Items:        b.items,
			Declarations: b.decs.String(),
			Definitions:  b.defs.String(),
			EnumEntries:  b.en.String(),
			TableRows:    b.tab.String(),
		}
	}
	return out, nil
}
