package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ticos/tmgen/internal/codegen/common"
)

type Version struct {
	Out io.Writer `kong:"-"`
}

func (v *Version) Run() error {
	ver, err := common.CurrentVersion()
	if err != nil {
		return err
	}
	out := v.Out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintf(out, "tmgen %s\n", ver)
	return err
}
