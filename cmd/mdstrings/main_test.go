package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mdstrings/cmd/mdstrings/internal/bootstrap"
	"github.com/goliatone/go-mdstrings/internal/fault"
	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

type stubConverter struct {
	files []string
	names []string
	batch []interfaces.BatchRequest
	pages [][]string
}

func (s *stubConverter) ConvertFile(_ context.Context, path, name string) (*interfaces.ConvertResult, error) {
	s.files = append(s.files, path)
	s.names = append(s.names, name)
	return &interfaces.ConvertResult{Name: name, Output: "const char *" + name + "[] = {\nNULL\n};\n"}, nil
}

func (s *stubConverter) ConvertBytes(context.Context, []byte, string) (*interfaces.ConvertResult, error) {
	return nil, nil
}

func (s *stubConverter) ConvertBatch(_ context.Context, req interfaces.BatchRequest) ([]*interfaces.ConvertResult, error) {
	s.batch = append(s.batch, req)
	for _, entry := range req.List {
		if req.OnEntry != nil {
			req.OnEntry(strings.ReplaceAll(req.InputPattern, "%s", entry))
		}
		if _, err := req.Output.WriteString(entry + ";"); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (s *stubConverter) Pages(_ context.Context, pages []string) (string, error) {
	s.pages = append(s.pages, pages)
	return "pages\n", nil
}

func stubModule(t *testing.T, svc *stubConverter) *bootstrap.Options {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	captured := &bootstrap.Options{}
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		*captured = opts
		return &bootstrap.Module{
			Converter: svc,
			Logger:    logging.NoOp(),
		}, nil
	}
	return captured
}

func TestRunConvertsSingleFile(t *testing.T) {
	svc := &stubConverter{}
	opts := stubModule(t, svc)

	var stdout bytes.Buffer
	if err := run([]string{"--in=docs/guide.md", "--name=class/guide"}, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(svc.files) != 1 {
		t.Fatalf("expected one conversion, got %d", len(svc.files))
	}
	if !filepath.IsAbs(svc.files[0]) || !strings.HasSuffix(svc.files[0], filepath.Join("docs", "guide.md")) {
		t.Fatalf("expected absolute input path, got %s", svc.files[0])
	}
	if svc.names[0] != "class/guide" {
		t.Fatalf("expected name passed through, got %s", svc.names[0])
	}
	if !strings.HasPrefix(stdout.String(), "const char *class/guide[] = {") {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if opts.Config.HeadingOffset != 1 || opts.Config.Human {
		t.Fatalf("unexpected config %+v", opts.Config)
	}
}

func TestRunRequiresName(t *testing.T) {
	svc := &stubConverter{}
	stubModule(t, svc)

	err := run([]string{"--in=docs/guide.md"}, io.Discard, io.Discard)
	if !fault.IsMissingArgument(err) {
		t.Fatalf("expected missing name, got %v", err)
	}
	if len(svc.files) != 0 {
		t.Fatal("expected no conversion without a name")
	}
}

func TestRunPrintsPages(t *testing.T) {
	svc := &stubConverter{}
	stubModule(t, svc)

	var stdout bytes.Buffer
	if err := run([]string{"--pages=intro class/mpegts", "--in=ignored.md"}, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.String() != "pages\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if len(svc.pages) != 1 || strings.Join(svc.pages[0], ",") != "intro,class/mpegts" {
		t.Fatalf("unexpected pages %v", svc.pages)
	}
	if len(svc.files) != 0 {
		t.Fatal("expected pages mode to skip conversion")
	}
}

func TestRunBatchAppendsToOutput(t *testing.T) {
	svc := &stubConverter{}
	stubModule(t, svc)

	out := filepath.Join(t.TempDir(), "markdown.c")
	if err := os.WriteFile(out, []byte("/* head */\n"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	var stdout bytes.Buffer
	args := []string{
		"--batch",
		"--inpath=docs/%s.md",
		"--name=tvh_doc_%s",
		"--out=" + out,
		"--list=intro  class/dvr",
	}
	if err := run(args, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := string(data); got != "/* head */\nintro;class/dvr;" {
		t.Fatalf("unexpected output file %q", got)
	}
	req := svc.batch[0]
	if !filepath.IsAbs(req.InputPattern) || req.NamePattern != "tvh_doc_%s" {
		t.Fatalf("unexpected request %+v", req)
	}
	if strings.Count(stdout.String(), "Markdown: ") != 2 {
		t.Fatalf("expected progress lines, got %q", stdout.String())
	}
}

func TestRunHumanAndDebugFlags(t *testing.T) {
	svc := &stubConverter{}
	opts := stubModule(t, svc)

	if err := run([]string{"--human", "--debug", "--in=a.md", "--name=a", "--heading-offset=0"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !opts.Config.Human || !opts.Config.Debug {
		t.Fatalf("expected human and debug, got %+v", opts.Config)
	}
	if opts.Config.Logging.Level != "debug" {
		t.Fatalf("expected debug logging, got %q", opts.Config.Logging.Level)
	}
	if opts.Config.HeadingOffset != 0 {
		t.Fatalf("expected heading offset 0, got %d", opts.Config.HeadingOffset)
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	stubModule(t, &stubConverter{})
	if err := run([]string{"--bogus"}, io.Discard, io.Discard); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFatalMessageCarriesTextCode(t *testing.T) {
	stubModule(t, &stubConverter{})

	err := run([]string{"--in=docs/guide.md"}, io.Discard, io.Discard)
	if got := fatalMessage(err); got != "FATAL: MISSING_ARGUMENT: Specify class name." {
		t.Fatalf("unexpected fatal line %q", got)
	}
}
