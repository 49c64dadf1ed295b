package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ticos/tmgen/internal/codegen/generr"
)

// Template names looked up in a Source.
const (
	HeaderTemplate  = "iot_h"
	SourceTemplate  = "iot_c"
	WrapperTemplate = "mqtt_wrapper_c"
)

//go:embed templates
var builtinFS embed.FS

// Source supplies template text by name.
type Source interface {
	Template(name string) (string, error)
}

// FSSource reads templates from a file system.
type FSSource struct {
	fsys  fs.FS
	label string
}

// DirSource reads templates from a directory on disk.
func DirSource(dir string) *FSSource {
	return &FSSource{fsys: os.DirFS(dir), label: dir}
}

// Builtin returns the templates compiled into the binary.
func Builtin() *FSSource {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		panic(err)
	}
	return &FSSource{fsys: sub, label: "builtin templates"}
}

func (s *FSSource) Template(name string) (string, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", generr.TemplateFileMissing(fmt.Sprintf("%s in %s", name, s.label), err)
	}
	if err != nil {
		return "", generr.IO(fmt.Sprintf("read template %s in %s", name, s.label), err)
	}
	return string(data), nil
}

func (s *FSSource) String() string { return s.label }

// MapSource serves templates from memory.
type MapSource map[string]string

func (m MapSource) Template(name string) (string, error) {
	t, ok := m[name]
	if !ok {
		return "", generr.TemplateFileMissing(name, fs.ErrNotExist)
	}
	return t, nil
}
