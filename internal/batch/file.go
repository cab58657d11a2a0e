package batch

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/realcalc/internal/format"
)

//go:embed schema.cue
var schemaSource string

// File is a batch of named cases.
type File struct {
	// Name identifies the batch in logs and reports.
	Name string `yaml:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty"`

	// Timeout is the default per-case wall-clock limit, e.g. "500ms".
	Timeout string `yaml:"timeout,omitempty"`

	// Style is the default rendering style, e.g. "auto" or "dp:3".
	Style string `yaml:"style,omitempty"`

	// Base is the rendering radix. Zero means 10.
	Base int `yaml:"base,omitempty"`

	// Cases run in order.
	Cases []Case `yaml:"cases"`
}

// Case is a single operation in a batch.
type Case struct {
	// Name uniquely identifies the case within its batch.
	Name string `yaml:"name"`

	// Op is the operation name, see Names.
	Op string `yaml:"op"`

	// Args are the operand literals, see ParseOperand.
	Args []string `yaml:"args"`

	// Style overrides the batch style.
	Style string `yaml:"style,omitempty"`

	// Timeout overrides the batch timeout.
	Timeout string `yaml:"timeout,omitempty"`
}

// SchemaError reports a batch file that does not match the schema.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Load reads and parses a batch file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(data)
}

// Parse parses a batch file from YAML. The document is validated against the
// embedded schema before it is decoded, and unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("invalid batch: %w", err)
	}

	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid batch: %w", err)
	}
	return &f, nil
}

func validateSchema(raw any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Batch"))

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return formatCUEError(err)
	}
	return formatCUEError(def.Unify(doc).Validate(cue.Concrete(true)))
}

// formatCUEError keeps the first CUE error and its path.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	msg, args := first.Msg()
	return &SchemaError{
		Path:    strings.Join(first.Path(), "."),
		Message: fmt.Sprintf(msg, args...),
	}
}

// validate checks what the schema cannot: operand counts, unique case names,
// and that styles and durations parse.
func (f *File) validate() error {
	if _, err := f.base(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(f.Cases))
	for i, c := range f.Cases {
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		op, ok := Lookup(c.Op)
		if !ok {
			return fmt.Errorf("case %q: unknown operation %q", c.Name, c.Op)
		}
		if len(c.Args) != op.Arity {
			return fmt.Errorf("case %q: %s takes %d operand(s), got %d", c.Name, c.Op, op.Arity, len(c.Args))
		}
		if _, err := f.style(c); err != nil {
			return fmt.Errorf("case %q: %w", c.Name, err)
		}
		if _, err := f.timeout(c, 0); err != nil {
			return fmt.Errorf("case %q: %w", c.Name, err)
		}
	}
	return nil
}

func (f *File) base() (format.Base, error) {
	if f.Base == 0 {
		return format.Decimal, nil
	}
	return format.NewBase(f.Base)
}

// style resolves the rendering style of c.
func (f *File) style(c Case) (format.Style, error) {
	switch {
	case c.Style != "":
		return format.ParseStyle(c.Style)
	case f.Style != "":
		return format.ParseStyle(f.Style)
	}
	return format.StyleAuto, nil
}

// timeout resolves the limit of c, falling back to def when neither the case
// nor the batch sets one.
func (f *File) timeout(c Case, def time.Duration) (time.Duration, error) {
	text := c.Timeout
	if text == "" {
		text = f.Timeout
	}
	if text == "" {
		return def, nil
	}
	d, err := time.ParseDuration(text)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	return d, nil
}
