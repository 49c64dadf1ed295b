package common

import (
	"fmt"
	"strings"

	"github.com/ticos/tmgen/internal/codegen/generr"
	"github.com/ticos/tmgen/internal/codegen/thingmodel"
)

// ValueTagPrefix matches the ticos_val_type_t enum of the device runtime.
const ValueTagPrefix = "TICOS_VAL_TYPE_"

type cMapping struct {
	ctype string
	zero  string
}

// double still maps to float: the device runtime has no double accessors.
var cTypes = map[thingmodel.SchemaType]cMapping{
	thingmodel.Boolean:   {ctype: "bool", zero: "false"},
	thingmodel.Integer:   {ctype: "int", zero: "0"},
	thingmodel.Float:     {ctype: "float", zero: "0.0f"},
	thingmodel.Double:    {ctype: "float", zero: "0.0f"},
	thingmodel.String:    {ctype: "const char*", zero: `""`},
	thingmodel.Enum:      {ctype: "int", zero: "0"},
	thingmodel.Timestamp: {ctype: "time_t", zero: "0"},
	thingmodel.Duration:  {ctype: "time_t", zero: "0"},
}

func lookup(t thingmodel.SchemaType) (cMapping, error) {
	m, ok := cTypes[t]
	if !ok {
		return cMapping{}, generr.UnknownType(fmt.Sprintf("%q has no C mapping", string(t)))
	}
	return m, nil
}

// CType maps a schema type to the C primitive used in generated signatures.
func CType(t thingmodel.SchemaType) (string, error) {
	m, err := lookup(t)
	if err != nil {
		return "", err
	}
	return m.ctype, nil
}

// ValueTag maps a schema type to its ticos_val_type_t member,
// e.g. integer -> TICOS_VAL_TYPE_INTEGER.
func ValueTag(t thingmodel.SchemaType) (string, error) {
	if _, err := lookup(t); err != nil {
		return "", err
	}
	return ValueTagPrefix + strings.ToUpper(string(t)), nil
}

// ZeroValue returns the literal a generated getter stub returns.
func ZeroValue(t thingmodel.SchemaType) (string, error) {
	m, err := lookup(t)
	if err != nil {
		return "", err
	}
	return m.zero, nil
}

// SchemaTypes lists every mapped schema type in a stable order.
func SchemaTypes() []thingmodel.SchemaType {
	return []thingmodel.SchemaType{
		thingmodel.Boolean, thingmodel.Integer, thingmodel.Float, thingmodel.Double,
		thingmodel.String, thingmodel.Enum, thingmodel.Timestamp, thingmodel.Duration,
	}
}
