package commands

import (
	"strings"

	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// CommandLogger returns the logger for a command group such as "markdown",
// tagged so command entries can be told apart from pipeline entries.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandLogger(provider, name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
