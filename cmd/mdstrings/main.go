package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-mdstrings"
	"github.com/goliatone/go-mdstrings/cmd/mdstrings/internal/bootstrap"
	"github.com/goliatone/go-mdstrings/internal/commands"
	markdowncmd "github.com/goliatone/go-mdstrings/internal/commands/markdown"
	"github.com/goliatone/go-mdstrings/internal/identity"
	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/internal/markdown"
)

var moduleBuilder = bootstrap.BuildModule

type cli struct {
	In    string `name:"in" help:"Markdown file to convert."`
	Name  string `name:"name" help:"Array name; with --batch a pattern with one %s."`
	Human bool   `name:"human" help:"Print the normalized markdown instead of a C table."`
	Debug bool   `name:"debug" help:"Trace every markdown handler on stderr."`

	Pages string `name:"pages" help:"Space separated pages; print the page lookup table and exit."`

	Batch  bool   `name:"batch" help:"Convert every --list entry and append the tables to --out."`
	Inpath string `name:"inpath" help:"Input path pattern with one %s, expanded per --list entry."`
	Out    string `name:"out" help:"Output file for --batch, opened for appending."`
	List   string `name:"list" help:"Space separated entries for --batch."`

	HeadingOffset int   `name:"heading-offset" default:"1" help:"Added to every heading level."`
	MaxInput      int64 `name:"max-input" default:"2097152" help:"Largest accepted input in bytes."`

	LogProvider string   `name:"log-provider" default:"console" enum:"console,gologger" help:"Logging backend."`
	LogLevel    string   `name:"log-level" default:"info" help:"Minimum log level."`
	LogFormat   string   `name:"log-format" default:"" help:"go-logger output format (json, console, pretty)."`
	LogFocus    []string `name:"log-focus" help:"Only log these modules (go-logger)."`
}

func (c cli) config() mdstrings.Config {
	cfg := mdstrings.DefaultConfig()
	cfg.Human = c.Human
	cfg.Debug = c.Debug
	cfg.HeadingOffset = c.HeadingOffset
	cfg.MaxInputBytes = c.MaxInput
	cfg.Logging.Provider = c.LogProvider
	cfg.Logging.Level = c.LogLevel
	cfg.Logging.Format = c.LogFormat
	cfg.Logging.Focus = c.LogFocus
	if c.Debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Debug = true
	}
	return cfg
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, fatalMessage(err))
		os.Exit(1)
	}
}

// fatalMessage formats err as "FATAL: <TEXT_CODE>: <message>".
func fatalMessage(err error) string {
	return "FATAL: " + commands.Diagnostic(err)
}

func run(args []string, stdout, stderr io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("mdstrings"),
		kong.Description("Convert markdown documentation into translatable C string tables."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Config:    c.config(),
		LogWriter: stderr,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Converter == nil {
		return fmt.Errorf("converter not configured")
	}

	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"run_id": identity.RunUUID().String(),
	})

	set, err := markdowncmd.RegisterMarkdownCommands(nil, module.Converter, module.Provider,
		markdowncmd.WithStdout(stdout),
		markdowncmd.WithConvertBatchOptions(commands.WithTimeout[markdowncmd.ConvertBatchCommand](0)),
	)
	if err != nil {
		return err
	}

	switch {
	case c.Pages != "":
		return set.ListPages.Execute(ctx, markdowncmd.ListPagesCommand{
			Pages: markdown.SplitList(c.Pages),
		})
	case c.Batch:
		inpath, err := bootstrap.AbsPath(c.Inpath)
		if err != nil {
			return err
		}
		return set.ConvertBatch.Execute(ctx, markdowncmd.ConvertBatchCommand{
			InputPattern: inpath,
			NamePattern:  c.Name,
			Output:       c.Out,
			List:         markdown.SplitList(c.List),
		})
	default:
		input, err := bootstrap.AbsPath(c.In)
		if err != nil {
			return err
		}
		return set.ConvertFile.Execute(ctx, markdowncmd.ConvertFileCommand{
			Input: input,
			Name:  c.Name,
		})
	}
}
