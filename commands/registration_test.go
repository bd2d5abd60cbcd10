package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdstrings"
	markdowncmd "github.com/goliatone/go-mdstrings/internal/commands/markdown"
)

func newModule(t *testing.T) *mdstrings.Module {
	t.Helper()
	module, err := mdstrings.New(mdstrings.DefaultConfig(), mdstrings.WithFilesystem(fstest.MapFS{
		"docs/intro.md": {Data: []byte("# Intro\n")},
	}))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestRegisterModuleCommandsBuildsHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}

	result, err := RegisterModuleCommands(newModule(t), RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatcher,
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 3 {
		t.Fatalf("expected three handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != len(result.Handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(result.Subscriptions) != 3 {
		t.Fatalf("expected dispatcher subscriptions, got %d", len(result.Subscriptions))
	}

	var hasFile, hasBatch, hasPages bool
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case *markdowncmd.ConvertFileHandler:
			hasFile = true
		case *markdowncmd.ConvertBatchHandler:
			hasBatch = true
		case *markdowncmd.ListPagesHandler:
			hasPages = true
		}
	}
	if !hasFile || !hasBatch || !hasPages {
		t.Fatalf("unexpected handler set %#v", result.Handlers)
	}
}

func TestRegisterModuleCommandsWithoutRegistrars(t *testing.T) {
	result, err := RegisterModuleCommands(newModule(t), RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 3 {
		t.Fatalf("expected handlers to be built even without registrars, got %d", len(result.Handlers))
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterModuleCommandsRequiresModule(t *testing.T) {
	if _, err := RegisterModuleCommands(nil, RegistrationOptions{}); err == nil {
		t.Fatal("expected error for nil module")
	}
}

func TestRegisterModuleCommandsJoinsRegistryErrors(t *testing.T) {
	boom := errors.New("registry down")
	result, err := RegisterModuleCommands(newModule(t), RegistrationOptions{
		Registry: &recordingRegistry{err: boom},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected registry error, got %v", err)
	}
	if len(result.Handlers) != 3 {
		t.Fatalf("expected handlers despite registry failure, got %d", len(result.Handlers))
	}
}

func TestRegisterModuleCommandsSchedulesBatch(t *testing.T) {
	cron := &recordingCron{}
	out := filepath.Join(t.TempDir(), "markdown.c")

	_, err := RegisterModuleCommands(newModule(t), RegistrationOptions{
		CronRegistrar: cron.Registrar(),
		ScheduledBatch: &markdowncmd.ConvertBatchCommand{
			InputPattern: "docs/%s.md",
			NamePattern:  "tvh_doc_%s",
			Output:       out,
			List:         []string{"intro"},
		},
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(cron.registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(cron.registrations))
	}
	reg := cron.registrations[0]
	if reg.config.Expression != DefaultBatchCron {
		t.Fatalf("expected default cron expression, got %q", reg.config.Expression)
	}
	if reg.handler == nil {
		t.Fatal("expected cron handler function")
	}
	if err := reg.handler(); err != nil {
		t.Fatalf("run scheduled batch: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "const char *tvh_doc_intro[] = {\n\"## \",\nLANGPREF N_(\"Intro\"),\nNULL\n};\n"
	if string(data) != want {
		t.Fatalf("unexpected batch output %q", data)
	}
}

func TestRegisterModuleCommandsRejectsInvalidScheduledBatch(t *testing.T) {
	cron := &recordingCron{}
	_, err := RegisterModuleCommands(newModule(t), RegistrationOptions{
		CronRegistrar:  cron.Registrar(),
		ScheduledBatch: &markdowncmd.ConvertBatchCommand{List: []string{"intro"}},
		BatchCron:      "@hourly",
	})
	if err == nil {
		t.Fatal("expected validation error for scheduled batch without paths")
	}
	if len(cron.registrations) != 0 {
		t.Fatalf("expected no cron registration, got %d", len(cron.registrations))
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler func() error
}

type recordingCron struct {
	registrations []cronRegistration
}

func (c *recordingCron) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		var fn func() error
		if h, ok := handler.(func() error); ok {
			fn = h
		}
		c.registrations = append(c.registrations, cronRegistration{
			config:  cfg,
			handler: fn,
		})
		return nil
	}
}

type recordingDispatcher struct {
	handlers      []any
	subscriptions []*recordingSubscription
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	d.handlers = append(d.handlers, handler)
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
