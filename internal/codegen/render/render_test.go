package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticos/tmgen/internal/codegen/generr"
	"github.com/ticos/tmgen/internal/codegen/render"
)

func TestRender(t *testing.T) {
	ctx := render.Context{"NAME": "led", "TYPE": "bool", "EMPTY": ""}

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "bare", text: "$TYPE x;", want: "bool x;"},
		{name: "braced", text: "${NAME}_", want: "led_"},
		{name: "adjacent", text: "$TYPE$NAME", want: "boolled"},
		{name: "braced followed by brace", text: "{\n${NAME}}", want: "{\nled}"},
		{name: "escaped dollar", text: "cost: $$5", want: "cost: $5"},
		{name: "lone dollar", text: "a $ b $1 ${ c", want: "a $ b $1 ${ c"},
		{name: "unterminated brace", text: "${NAME", want: "${NAME"},
		{name: "empty value", text: "[$EMPTY]", want: "[]"},
		{name: "no placeholders", text: "int main(void);", want: "int main(void);"},
		{name: "empty", text: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := render.Render(tc.text, ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderIsCaseSensitive(t *testing.T) {
	_, err := render.Render("$name", render.Context{"NAME": "x"})
	require.ErrorIs(t, err, generr.ErrTemplatePlaceholder)
}

func TestRenderFailsOnUnresolvedPlaceholders(t *testing.T) {
	out, err := render.Render("$FUNC_DECS ${TELEMETRY_ENUM} $FUNC_DECS $DATE_TIME", render.Context{"DATE_TIME": "now"})

	assert.Empty(t, out)
	require.ErrorIs(t, err, generr.ErrTemplatePlaceholder)
	assert.Equal(t, "unresolved template placeholder: FUNC_DECS, TELEMETRY_ENUM", err.Error())
}

func TestRenderIsIdempotent(t *testing.T) {
	src, err := render.Builtin().Template(render.HeaderTemplate)
	require.NoError(t, err)

	ctx := render.Context{}
	for _, name := range render.Placeholders(src) {
		ctx[name] = "/* " + name + " */\n"
	}

	once, err := render.Render(src, ctx)
	require.NoError(t, err)
	twice, err := render.Render(once, ctx)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Empty(t, render.Placeholders(once))
}

func TestRenderEscapeIsConsumedOnce(t *testing.T) {
	ctx := render.Context{"FOO": "x"}

	once, err := render.Render("price $$FOO, $$5", ctx)
	require.NoError(t, err)
	assert.Equal(t, "price $FOO, $5", once)

	twice, err := render.Render(once, ctx)
	require.NoError(t, err)
	assert.Equal(t, "price x, $5", twice)

	_, err = render.Render(once, render.Context{})
	require.ErrorIs(t, err, generr.ErrTemplatePlaceholder)
}

func TestPlaceholders(t *testing.T) {
	got := render.Placeholders("$A ${B} $$C $A ${D")
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestBuiltinTemplates(t *testing.T) {
	src := render.Builtin()

	header, err := src.Template(render.HeaderTemplate)
	require.NoError(t, err)
	assert.Subset(t, render.Placeholders(header),
		[]string{"DATE_TIME", "FUNC_DECS", "TELEMETRY_ENUM", "PROPERTY_ENUM", "COMMAND_ENUM"})

	source, err := src.Template(render.SourceTemplate)
	require.NoError(t, err)
	assert.Subset(t, render.Placeholders(source),
		[]string{"DATE_TIME", "FUNC_DEFS", "TELEMETRY_TABS", "PROPERTY_TABS", "COMMAND_TABS"})

	wrapper, err := src.Template(render.WrapperTemplate)
	require.NoError(t, err)
	assert.Empty(t, render.Placeholders(wrapper))

	_, err = src.Template("nope")
	assert.ErrorIs(t, err, generr.ErrTemplateFileMissing)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, render.HeaderTemplate), []byte("// $GEN_DATE\n"), 0o644))

	src := render.DirSource(dir)
	text, err := src.Template(render.HeaderTemplate)
	require.NoError(t, err)
	assert.Equal(t, "// $GEN_DATE\n", text)

	_, err = src.Template(render.SourceTemplate)
	require.ErrorIs(t, err, generr.ErrTemplateFileMissing)
	assert.Contains(t, err.Error(), "iot_c in "+dir)

	_, err = render.DirSource(filepath.Join(dir, "absent")).Template(render.HeaderTemplate)
	assert.ErrorIs(t, err, generr.ErrTemplateFileMissing)
}

func TestMapSource(t *testing.T) {
	src := render.MapSource{render.WrapperTemplate: "int x;\n"}

	text, err := src.Template(render.WrapperTemplate)
	require.NoError(t, err)
	assert.Equal(t, "int x;\n", text)

	_, err = src.Template(render.HeaderTemplate)
	assert.ErrorIs(t, err, generr.ErrTemplateFileMissing)
}
