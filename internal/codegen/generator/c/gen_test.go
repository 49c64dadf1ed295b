package cgen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cgen "github.com/ticos/tmgen/internal/codegen/generator/c"
	"github.com/ticos/tmgen/internal/codegen/generr"
	"github.com/ticos/tmgen/internal/codegen/render"
	"github.com/ticos/tmgen/internal/codegen/thingmodel"
)

func model(items ...thingmodel.Item) *thingmodel.Model {
	return &thingmodel.Model{Items: items}
}

func TestEmitTelemetry(t *testing.T) {
	out, err := cgen.Emit(model(
		thingmodel.Item{Kind: thingmodel.Telemetry, Name: "temp", Schema: thingmodel.Integer},
	), cgen.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, "int ticos_telemetry_temp_send(void);\n", out.Declarations)
	if diff := cmp.Diff("int ticos_telemetry_temp_send(void)\n{\n    return 0;\n}\n\n", out.Definitions); diff != "" {
		t.Errorf("definitions mismatch (-want +got):\n%s", diff)
	}

	tel := out.Kinds[thingmodel.Telemetry]
	assert.Equal(t, "    TICOS_TELEMETRY_temp,\n    TICOS_TELEMETRY_MAX,\n", tel.EnumEntries)
	assert.Equal(t, "    { \"temp\", TICOS_VAL_TYPE_INTEGER, ticos_telemetry_temp_send },\n", tel.TableRows)
	assert.Equal(t, 1, tel.Items)
}

func TestEmitProperty(t *testing.T) {
	out, err := cgen.Emit(model(
		thingmodel.Item{Kind: thingmodel.Property, Name: "led", Schema: thingmodel.Boolean},
	), cgen.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t,
		"bool ticos_property_led_send(void);\nint ticos_property_led_recv(bool led_);\n",
		out.Declarations)
	want := "bool ticos_property_led_send(void)\n{\n    return false;\n}\n\n" +
		"int ticos_property_led_recv(bool led_)\n{\n    (void)led_;\n    return 0;\n}\n\n"
	if diff := cmp.Diff(want, out.Definitions); diff != "" {
		t.Errorf("definitions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t,
		"    { \"led\", TICOS_VAL_TYPE_BOOLEAN, ticos_property_led_send, ticos_property_led_recv },\n",
		out.Kinds[thingmodel.Property].TableRows)
}

func TestEmitCommand(t *testing.T) {
	out, err := cgen.Emit(model(
		thingmodel.Item{Kind: thingmodel.Command, Name: "reboot", Schema: thingmodel.Integer},
	), cgen.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, "int ticos_command_reboot_recv(int reboot_);\n", out.Declarations)
	assert.Equal(t,
		"    { \"reboot\", TICOS_VAL_TYPE_INTEGER, ticos_command_reboot_recv },\n",
		out.Kinds[thingmodel.Command].TableRows)
	assert.Equal(t, "    TICOS_COMMAND_reboot,\n    TICOS_COMMAND_MAX,\n", out.Kinds[thingmodel.Command].EnumEntries)
}

func TestEmitDeclarationCount(t *testing.T) {
	tests := []struct{ n, m, k int }{{0, 0, 1}, {1, 0, 0}, {2, 3, 4}, {0, 5, 0}, {7, 1, 2}}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d-%d-%d", tc.n, tc.m, tc.k), func(t *testing.T) {
			var items []thingmodel.Item
			add := func(kind thingmodel.Kind, count int) {
				for i := 0; i < count; i++ {
					items = append(items, thingmodel.Item{Kind: kind, Name: fmt.Sprintf("%s%d", kind, i), Schema: thingmodel.Float})
				}
			}
			add(thingmodel.Telemetry, tc.n)
			add(thingmodel.Property, tc.m)
			add(thingmodel.Command, tc.k)

			out, err := cgen.Emit(model(items...), cgen.DefaultPolicy())
			require.NoError(t, err)

			want := tc.n + 2*tc.m + tc.k
			assert.Equal(t, want, out.DeclarationCount())
			assert.Equal(t, want, strings.Count(out.Declarations, ";\n"))
			assert.Equal(t, want, strings.Count(out.Definitions, "\n{\n"))
		})
	}
}

func TestEmitSentinelOncePerKind(t *testing.T) {
	for _, m := range []*thingmodel.Model{
		model(),
		model(thingmodel.Item{Kind: thingmodel.Property, Name: "a", Schema: thingmodel.String}),
		model(
			thingmodel.Item{Kind: thingmodel.Telemetry, Name: "a", Schema: thingmodel.Integer},
			thingmodel.Item{Kind: thingmodel.Telemetry, Name: "b", Schema: thingmodel.Integer},
		),
	} {
		out, err := cgen.Emit(m, cgen.DefaultPolicy())
		require.NoError(t, err)
		for _, k := range thingmodel.Kinds {
			f := out.Kinds[k]
			sentinel := "TICOS_" + strings.ToUpper(string(k)) + "_MAX,"
			assert.Equal(t, 1, strings.Count(f.EnumEntries, sentinel), "kind %s", k)
			assert.True(t, strings.HasSuffix(f.EnumEntries, "    "+sentinel+"\n"), "kind %s", k)
			assert.Equal(t, f.Items+1, strings.Count(f.EnumEntries, "\n"), "kind %s", k)
		}
	}
}

func TestEmitPreservesDocumentOrder(t *testing.T) {
	out, err := cgen.Emit(model(
		thingmodel.Item{Kind: thingmodel.Property, Name: "b", Schema: thingmodel.Integer},
		thingmodel.Item{Kind: thingmodel.Telemetry, Name: "z", Schema: thingmodel.Integer},
		thingmodel.Item{Kind: thingmodel.Property, Name: "a", Schema: thingmodel.Integer},
	), cgen.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t,
		"int ticos_property_b_send(void);\nint ticos_property_b_recv(int b_);\n"+
			"int ticos_telemetry_z_send(void);\n"+
			"int ticos_property_a_send(void);\nint ticos_property_a_recv(int a_);\n",
		out.Declarations)
	assert.Equal(t, "    TICOS_PROPERTY_b,\n    TICOS_PROPERTY_a,\n    TICOS_PROPERTY_MAX,\n",
		out.Kinds[thingmodel.Property].EnumEntries)
	assert.Equal(t, "int ticos_property_b_send(void);\nint ticos_property_b_recv(int b_);\n"+
		"int ticos_property_a_send(void);\nint ticos_property_a_recv(int a_);\n",
		out.Kinds[thingmodel.Property].Declarations)
}

func TestEmitIsDeterministic(t *testing.T) {
	m := model(
		thingmodel.Item{Kind: thingmodel.Telemetry, Name: "temp", Schema: thingmodel.Double},
		thingmodel.Item{Kind: thingmodel.Property, Name: "mode", Schema: thingmodel.Enum},
		thingmodel.Item{Kind: thingmodel.Command, Name: "at", Schema: thingmodel.Timestamp},
	)
	a, err := cgen.Emit(m, cgen.DefaultPolicy())
	require.NoError(t, err)
	b, err := cgen.Emit(m, cgen.DefaultPolicy())
	require.NoError(t, err)

	if diff := cmp.Diff(a.Context(nil), b.Context(nil)); diff != "" {
		t.Errorf("context differs between runs (-a +b):\n%s", diff)
	}
}

func TestEmitUnknownType(t *testing.T) {
	out, err := cgen.Emit(model(
		thingmodel.Item{Kind: thingmodel.Telemetry, Name: "ok", Schema: thingmodel.Integer},
		thingmodel.Item{Kind: thingmodel.Property, Name: "blob", Schema: thingmodel.Object},
	), cgen.DefaultPolicy())

	assert.Nil(t, out)
	require.ErrorIs(t, err, generr.ErrUnknownType)
	assert.Contains(t, err.Error(), `property "blob"`)
}

func TestEmitCommandPolicy(t *testing.T) {
	m := model(
		thingmodel.Item{Kind: thingmodel.Telemetry, Name: "temp", Schema: thingmodel.Integer},
		thingmodel.Item{Kind: thingmodel.Command, Name: "reboot", Schema: thingmodel.Integer},
	)

	t.Run("disabled command kind rejects command items", func(t *testing.T) {
		_, err := cgen.Emit(m, cgen.TelemetryPropertyPolicy())
		require.ErrorIs(t, err, generr.ErrUnsupportedKind)
		assert.Contains(t, err.Error(), `command "reboot"`)
	})

	t.Run("disabled command kind still gets a sentinel", func(t *testing.T) {
		out, err := cgen.Emit(model(m.Items[0]), cgen.TelemetryPropertyPolicy())
		require.NoError(t, err)
		assert.Equal(t, "    TICOS_COMMAND_MAX,\n", out.Kinds[thingmodel.Command].EnumEntries)
		assert.Empty(t, out.Kinds[thingmodel.Command].TableRows)
		assert.Equal(t, 1, out.DeclarationCount())
	})

	assert.True(t, cgen.DefaultPolicy().Enabled(thingmodel.Command))
	assert.False(t, cgen.TelemetryPropertyPolicy().Enabled(thingmodel.Command))
	assert.False(t, cgen.Policy{thingmodel.Command: {}}.Enabled(thingmodel.Command))
}

func TestOutputContext(t *testing.T) {
	out, err := cgen.Emit(model(
		thingmodel.Item{Kind: thingmodel.Telemetry, Name: "temp", Schema: thingmodel.Integer},
	), cgen.DefaultPolicy())
	require.NoError(t, err)

	ctx := out.Context(render.Context{"DATE_TIME": "today", cgen.KeyFuncDecs: "stale"})

	assert.Equal(t, "today", ctx["DATE_TIME"])
	assert.Equal(t, out.Declarations, ctx[cgen.KeyFuncDecs])
	assert.Equal(t, out.Definitions, ctx[cgen.KeyFuncDefs])
	assert.Equal(t, "", ctx[cgen.KeyCommandTabs])
	assert.Equal(t, "    TICOS_COMMAND_MAX,\n", ctx[cgen.KeyCommandEnum])
	for _, key := range []string{
		cgen.KeyFuncDecs, cgen.KeyFuncDefs,
		cgen.KeyTelemetryTabs, cgen.KeyPropertyTabs, cgen.KeyCommandTabs,
		cgen.KeyTelemetryEnum, cgen.KeyPropertyEnum, cgen.KeyCommandEnum,
	} {
		assert.Contains(t, ctx, key)
	}
}
