package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrDirectiveTagInvalid indicates a directive tag that cannot be matched as an HTML-like tag.
var ErrDirectiveTagInvalid = errors.New("mdstrings config: directive tag is invalid")

// ErrDirectiveTagDuplicate indicates two directive kinds share the same tag.
var ErrDirectiveTagDuplicate = errors.New("mdstrings config: directive tags must be distinct")
var ErrMaxInputBytesInvalid = errors.New("mdstrings config: max input bytes must be positive")
var ErrHeadingOffsetInvalid = errors.New("mdstrings config: heading offset must be between 0 and 5")
var ErrOutputMacroRequired = errors.New("mdstrings config: output macro names are required")
var ErrLoggingProviderRequired = errors.New("mdstrings config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("mdstrings config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mdstrings config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mdstrings config: logging format is invalid")

// DefaultMaxInputBytes caps a single markdown input (2 MiB).
const DefaultMaxInputBytes int64 = 2 * 1024 * 1024

const (
	DefaultDocTag     = "tvh_class_doc"
	DefaultItemsTag   = "tvh_class_items"
	DefaultIncludeTag = "tvh_include"
)

// DefaultDeclarationTemplate wraps a listing into a C array declaration.
const DefaultDeclarationTemplate = "const char *{{ name|safe }}[] = {\n{{ listing|safe }}};\n"

// DefaultPagesTemplate renders the page lookup table.
const DefaultPagesTemplate = "\n\nconst struct tvh_doc_page tvh_doc_markdown_pages[] = {\n" +
	"{% for page in pages %}  { \"{{ page.name|safe }}\", {{ page.symbol|safe }} },\n{% endfor %}" +
	"  { NULL, NULL },\n};\n"

var tagPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Config aggregates the options threaded through every conversion component.
// Fields use simple types so the CLI and tests can populate them directly.
type Config struct {
	// Human skips tagging and produces the plain decoded document.
	Human bool
	// Debug traces every markdown handler invocation.
	Debug bool
	// MaxInputBytes is the largest input accepted per file.
	MaxInputBytes int64
	// HeadingOffset is added to every heading level on output.
	HeadingOffset int
	Directives    DirectiveConfig
	Output        OutputConfig
	Markdown      MarkdownConfig
	Logging       LoggingConfig
}

// DirectiveConfig names the raw HTML tags that become include directives.
type DirectiveConfig struct {
	DocTag     string
	ItemsTag   string
	IncludeTag string
}

// OutputConfig controls the generated listing text.
type OutputConfig struct {
	TranslateCall       string
	DocMacro            string
	ItemsMacro          string
	IncludeMacro        string
	Sentinel            string
	DeclarationTemplate string
	PagesTemplate       string
	PagesSymbolPrefix   string
}

// MarkdownConfig captures parser behaviour.
type MarkdownConfig struct {
	Extensions       []string
	StripFrontMatter bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
	Debug     bool
}

func DefaultConfig() Config {
	return Config{
		MaxInputBytes: DefaultMaxInputBytes,
		HeadingOffset: 1,
		Directives: DirectiveConfig{
			DocTag:     DefaultDocTag,
			ItemsTag:   DefaultItemsTag,
			IncludeTag: DefaultIncludeTag,
		},
		Output: OutputConfig{
			TranslateCall:       "LANGPREF N_",
			DocMacro:            "DOCINCPREF",
			ItemsMacro:          "ITEMSINCPREF",
			IncludeMacro:        "MDINCLUDE",
			Sentinel:            "NULL",
			DeclarationTemplate: DefaultDeclarationTemplate,
			PagesTemplate:       DefaultPagesTemplate,
			PagesSymbolPrefix:   "tvh_doc_root_",
		},
		Markdown: MarkdownConfig{
			Extensions:       []string{"table", "strikethrough", "footnote", "tasklist"},
			StripFrontMatter: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.MaxInputBytes <= 0 {
		return ErrMaxInputBytesInvalid
	}
	if cfg.HeadingOffset < 0 || cfg.HeadingOffset > 5 {
		return fmt.Errorf("%w: %d", ErrHeadingOffsetInvalid, cfg.HeadingOffset)
	}

	seen := map[string]struct{}{}
	for _, tag := range []string{cfg.Directives.DocTag, cfg.Directives.ItemsTag, cfg.Directives.IncludeTag} {
		if !tagPattern.MatchString(tag) {
			return fmt.Errorf("%w: %q", ErrDirectiveTagInvalid, tag)
		}
		if _, ok := seen[tag]; ok {
			return fmt.Errorf("%w: %s", ErrDirectiveTagDuplicate, tag)
		}
		seen[tag] = struct{}{}
	}

	out := cfg.Output
	for _, name := range []string{out.TranslateCall, out.DocMacro, out.ItemsMacro, out.IncludeMacro, out.Sentinel} {
		if strings.TrimSpace(name) == "" {
			return ErrOutputMacroRequired
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
