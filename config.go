package mdstrings

import "github.com/goliatone/go-mdstrings/internal/runtimeconfig"

var (
	ErrDirectiveTagInvalid     = runtimeconfig.ErrDirectiveTagInvalid
	ErrDirectiveTagDuplicate   = runtimeconfig.ErrDirectiveTagDuplicate
	ErrMaxInputBytesInvalid    = runtimeconfig.ErrMaxInputBytesInvalid
	ErrHeadingOffsetInvalid    = runtimeconfig.ErrHeadingOffsetInvalid
	ErrOutputMacroRequired     = runtimeconfig.ErrOutputMacroRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	DirectiveConfig = runtimeconfig.DirectiveConfig
	OutputConfig    = runtimeconfig.OutputConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
