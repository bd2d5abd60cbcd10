// Package commands exposes the converter's command handlers to hosts that
// drive them through a go-command registry, a dispatcher or a cron scheduler.
package commands

import (
	"context"
	"errors"
	"io"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdstrings"
	markdowncmd "github.com/goliatone/go-mdstrings/internal/commands/markdown"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// DefaultBatchCron is applied to ScheduledBatch when no expression is set.
const DefaultBatchCron = "@daily"

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// Stdout receives generated tables and batch progress. Defaults to io.Discard.
	Stdout io.Writer
	// ScheduledBatch, when set together with CronRegistrar, regenerates the
	// batch output on BatchCron.
	ScheduledBatch *markdowncmd.ConvertBatchCommand
	BatchCron      string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterModuleCommands builds the convert and page table handlers for
// module and registers them with the configured integrations.
func RegisterModuleCommands(module *mdstrings.Module, opts RegistrationOptions) (*RegistrationResult, error) {
	if module == nil {
		return nil, errors.New("command registration: module is nil")
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = module.LoggerProvider()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	set, err := markdowncmd.RegisterMarkdownCommands(nil, module.Converter(), provider,
		markdowncmd.WithStdout(stdout),
	)
	if err != nil {
		return nil, err
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0, 3),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error
	for _, handler := range []any{set.ConvertFile, set.ConvertBatch, set.ListPages} {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if opts.CronRegistrar != nil && opts.ScheduledBatch != nil {
		expr := strings.TrimSpace(opts.BatchCron)
		if expr == "" {
			expr = DefaultBatchCron
		}
		msg := *opts.ScheduledBatch
		if err := msg.Validate(); err != nil {
			errs = errors.Join(errs, err)
		} else if err := opts.CronRegistrar(command.HandlerConfig{Expression: expr}, func() error {
			return set.ConvertBatch.Execute(context.Background(), msg)
		}); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return result, errs
}
