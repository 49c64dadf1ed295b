package generator

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/ticos/tmgen/internal/codegen/common"
	"github.com/ticos/tmgen/internal/codegen/generr"
)

// Generated file names.
const (
	HeaderFile    = "ticos_thingmodel.h"
	SourceFile    = "ticos_thingmodel.c"
	WrapperFile   = "ticos_mqtt_wrapper.c"
	ReadmeFile    = "README.md"
	InstallerFile = "install.sh"
)

// BundleDir is the subdirectory of the output directory that receives a
// platform bundle.
const BundleDir = "ticos_thingmodel"

// AuxGenerator renders one auxiliary file of a platform bundle.
type AuxGenerator func(info common.BundleInfo) (Artifact, error)

// Platform selects the files that accompany the thing-model sources. A
// platform with a Subdir writes into that subdirectory of the output directory.
type Platform struct {
	Name    string
	Subdir  string
	Wrapper bool
	Aux     []AuxGenerator
}

var platforms = map[string]Platform{
	"none":    {Name: "none"},
	"arduino": {Name: "arduino", Subdir: BundleDir, Wrapper: true, Aux: []AuxGenerator{readme}},
	"esp32":   {Name: "esp32", Subdir: BundleDir, Wrapper: true, Aux: []AuxGenerator{readme, installer}},
}

// LookupPlatform resolves a platform tag; the empty tag means "none".
func LookupPlatform(name string) (Platform, error) {
	if name == "" {
		name = "none"
	}
	p, ok := platforms[name]
	if !ok {
		return Platform{}, generr.UnsupportedPlatform(fmt.Sprintf("%q (supported: %v)", name, PlatformNames()))
	}
	return p, nil
}

// PlatformNames lists the supported platform tags.
func PlatformNames() []string {
	names := make([]string, 0, len(platforms))
	for k := range platforms {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func readme(info common.BundleInfo) (Artifact, error) {
	text, err := common.RenderReadme(info)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: ReadmeFile, Content: text}, nil
}

func installer(info common.BundleInfo) (Artifact, error) {
	text, err := common.RenderInstaller(info)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: InstallerFile, Content: text, Mode: fs.FileMode(0o755)}, nil
}
