package common

import (
	"strings"

	"github.com/ticos/tmgen/internal/codegen/thingmodel"
)

// SymbolPrefix namespaces every generated C symbol.
const SymbolPrefix = "ticos"

// GetterName returns the accessor firmware calls to read a value for reporting,
// e.g. ticos_telemetry_temp_send.
func GetterName(kind thingmodel.Kind, name string) string {
	return SymbolPrefix + "_" + string(kind) + "_" + name + "_send"
}

// SetterName returns the handler invoked with a value pushed by the cloud,
// e.g. ticos_property_led_recv.
func SetterName(kind thingmodel.Kind, name string) string {
	return SymbolPrefix + "_" + string(kind) + "_" + name + "_recv"
}

// EnumName returns the enum identifier of a capability. The capability name
// keeps its case: TICOS_PROPERTY_sleep_time.
func EnumName(kind thingmodel.Kind, name string) string {
	return strings.ToUpper(SymbolPrefix) + "_" + strings.ToUpper(string(kind)) + "_" + name
}

// SentinelName returns the terminal enum entry of a kind, TICOS_<KIND>_MAX.
func SentinelName(kind thingmodel.Kind) string {
	return EnumName(kind, thingmodel.SentinelName)
}

// ParamName returns the setter parameter name for a capability.
func ParamName(name string) string {
	return name + "_"
}
