package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

const (
	convertFileMessageType  = "mdstrings.markdown.convert_file"
	convertBatchMessageType = "mdstrings.markdown.convert_batch"
	listPagesMessageType    = "mdstrings.markdown.list_pages"
)

// ConvertFileCommand converts one markdown file and prints the result.
type ConvertFileCommand struct {
	// Input is the markdown file to read.
	Input string `json:"input"`
	// Name is the identifier of the emitted array. "/" becomes "_".
	Name string `json:"name"`
}

// Type implements command.Message.
func (ConvertFileCommand) Type() string { return convertFileMessageType }

// Validate requires both the input file and the array name.
func (cmd ConvertFileCommand) Validate() error {
	if err := validation.Validate(cmd.Input, notBlank("input", "Specify input file.")); err != nil {
		return fault.MissingArgument("input", err)
	}
	if err := validation.Validate(cmd.Name, notBlank("name", "Specify class name.")); err != nil {
		return fault.MissingArgument("name", err)
	}
	return nil
}

// ConvertBatchCommand converts every List entry, appending each output to
// the Output file.
type ConvertBatchCommand struct {
	// InputPattern is expanded with each entry through its %s placeholder.
	InputPattern string `json:"inpath"`
	// NamePattern is expanded the same way to name each array.
	NamePattern string `json:"name"`
	// Output is the file the converted documents are appended to.
	Output string `json:"out"`
	// List holds the entries to convert, in order.
	List []string `json:"list"`
}

// Type implements command.Message.
func (ConvertBatchCommand) Type() string { return convertBatchMessageType }

// Validate requires the input pattern and the output path.
func (cmd ConvertBatchCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.InputPattern, notBlank("inpath", "inpath is required")),
		validation.Field(&cmd.Output, notBlank("out", "out is required")),
	)
	if err != nil {
		return fault.MissingArgument(firstField(err, "inpath"), err)
	}
	return nil
}

// ListPagesCommand prints the page lookup table for Pages.
type ListPagesCommand struct {
	Pages []string `json:"pages"`
}

// Type implements command.Message.
func (ListPagesCommand) Type() string { return listPagesMessageType }

// Validate requires at least one page.
func (cmd ListPagesCommand) Validate() error {
	if err := validation.Validate(cmd.Pages, validation.Required.Error("pages is required")); err != nil {
		return fault.MissingArgument("pages", err)
	}
	return nil
}

func notBlank(field, message string) validation.Rule {
	return validation.By(func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError("mdstrings.markdown."+field+"_required", message)
		}
		return nil
	})
}

// firstField returns the json name of the first failing field.
func firstField(err error, fallback string) string {
	errs, ok := err.(validation.Errors)
	if !ok {
		return fallback
	}
	for _, name := range []string{"inpath", "out"} {
		if _, failed := errs[name]; failed {
			return name
		}
	}
	return fallback
}
