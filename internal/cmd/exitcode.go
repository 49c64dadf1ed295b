package cmd

import "github.com/ticos/tmgen/internal/codegen/generr"

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitLoggerSetup = 2
	ExitSchema      = 3
	ExitUnknownType = 4
	ExitTemplate    = 5
	ExitIO          = 6
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch generr.KindOf(err) {
	case generr.KindSchemaMissing, generr.KindSchemaParse, generr.KindDuplicateName,
		generr.KindUnsupportedKind, generr.KindUnsupportedPlatform:
		return ExitSchema
	case generr.KindUnknownType:
		return ExitUnknownType
	case generr.KindTemplateFileMissing, generr.KindTemplatePlaceholder:
		return ExitTemplate
	case generr.KindIO:
		return ExitIO
	default:
		return ExitFailure
	}
}
