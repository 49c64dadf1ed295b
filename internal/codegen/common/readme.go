package common

import (
	"bytes"
	"fmt"
	"text/template"
)

// BundleInfo describes a generated file set for the auxiliary files that ship
// next to the C sources.
type BundleInfo struct {
	Platform  string
	Version   string
	Digest    string
	Generated string
	Sources   []string
	Headers   []string
	Counts    map[string]int
}

const readmeTemplate = `# Ticos thing model ({{.Platform}})

Generated by tmgen {{.Version}} on {{.Generated}}.
Thing model digest: ` + "`{{.Digest}}`" + `

## Files
{{range .Headers}}
- ` + "`{{.}}`" + `{{end}}{{range .Sources}}
- ` + "`{{.}}`" + `{{end}}

## Capabilities

| Kind | Count |
|------|-------|
| telemetry | {{index .Counts "telemetry"}} |
| property | {{index .Counts "property"}} |
| command | {{index .Counts "command"}} |

Fill in the bodies of the ` + "`ticos_*_send`" + ` functions with the values to
report and the ` + "`ticos_*_recv`" + ` functions with the handling of values pushed
by the cloud. Regenerating overwrites every file listed above.
`

const installerTemplate = `#!/bin/sh
# Installs the generated thing model into an ESP-IDF project as a component.
# Generated by tmgen {{.Version}} on {{.Generated}}.
set -e

if [ -z "$1" ]; then
    echo "usage: $0 <esp-idf project dir>" >&2
    exit 1
fi

HERE=$(cd "$(dirname "$0")" && pwd)
DEST="$1/components/ticos_thingmodel"

mkdir -p "$DEST/include"
{{range .Headers}}cp "$HERE/{{.}}" "$DEST/include/{{.}}"
{{end}}{{range .Sources}}cp "$HERE/{{.}}" "$DEST/{{.}}"
{{end}}
cat > "$DEST/CMakeLists.txt" <<'CMAKE'
idf_component_register(
    SRCS{{range .Sources}} "{{.}}"{{end}}
    INCLUDE_DIRS "include"
    REQUIRES mqtt
)
CMAKE

echo "installed ticos_thingmodel into $DEST"
`

var (
	readmeTmpl    = template.Must(template.New("README.md").Parse(readmeTemplate))
	installerTmpl = template.Must(template.New("install.sh").Parse(installerTemplate))
)

// RenderReadme returns the README shipped with a platform bundle.
func RenderReadme(info BundleInfo) (string, error) {
	return execute(readmeTmpl, info)
}

// RenderInstaller returns the ESP-IDF install script of a platform bundle.
func RenderInstaller(info BundleInfo) (string, error) {
	return execute(installerTmpl, info)
}

func execute(t *template.Template, info BundleInfo) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, info); err != nil {
		return "", fmt.Errorf("exec %s tmpl: %w", t.Name(), err)
	}
	return buf.String(), nil
}
