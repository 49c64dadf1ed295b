package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is set via ldflags at build time:
//
//	-ldflags "-X github.com/ticos/tmgen/internal/codegen/common.Version=x.y.z"
var Version = ""

const devVersion = "0.0.1-dev"

// GeneratorVersion is the version stamped into every generated file.
type GeneratorVersion struct {
	Full                string
	Major, Minor, Patch int
}

func (v GeneratorVersion) String() string { return v.Full }

// CurrentVersion resolves the build version. Development builds report 0.0.1-dev.
func CurrentVersion() (GeneratorVersion, error) {
	full := devVersion
	if Version != "" {
		full = strings.TrimPrefix(Version, "v")
		base := strings.SplitN(full, "-", 2)[0]
		if !strings.Contains(base, ".") {
			return GeneratorVersion{}, fmt.Errorf("invalid version format: %s (expected x.y.z)", Version)
		}
	}
	v := GeneratorVersion{Full: full}
	v.Major, v.Minor, v.Patch = splitVersion(full)
	return v, nil
}

// splitVersion extracts major, minor, patch from "1.2.3" or "1.2.3-dirty".
func splitVersion(version string) (major, minor, patch int) {
	nums := strings.Split(strings.SplitN(version, "-", 2)[0], ".")
	vals := []*int{&major, &minor, &patch}
	for i := 0; i < len(nums) && i < len(vals); i++ {
		*vals[i], _ = strconv.Atoi(nums[i])
	}
	return
}
