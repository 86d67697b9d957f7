package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tokenlistConverter/internal/model"
)

//go:embed tokenlist.schema.json
var tokenListSchema []byte

const schemaURL = "https://uniswap.org/tokenlist.schema.json"

// Validator checks a parsed JSON document against a schema.
type Validator interface {
	Validate(doc any) error
}

// ValidationError lists every rule a document violated.
type ValidationError struct {
	Violations []model.SchemaViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "schema validation failed"
	}
	first := e.Violations[0]
	return fmt.Sprintf("schema validation failed: %d violation(s), first at %q: %s", len(e.Violations), first.InstancePath, first.Message)
}

// Violations extracts schema violations from err, if any.
func Violations(err error) []model.SchemaViolation {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Violations
	}
	return nil
}

// TokenListValidator validates token list documents. The compiled schema is
// immutable, so one instance may be shared across goroutines.
type TokenListValidator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// NewTokenListValidator compiles the token list schema with format assertions
// enabled. An empty path selects the bundled schema.
func NewTokenListValidator(path string) (*TokenListValidator, error) {
	raw := tokenListSchema
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		raw = data
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &TokenListValidator{
		schema:  compiled,
		printer: message.NewPrinter(language.English),
	}, nil
}

// Validate returns nil for a conforming document and *ValidationError otherwise.
// The document must come from ParseDocument.
func (v *TokenListValidator) Validate(doc any) error {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("validate: %w", err)
	}

	violations := make([]model.SchemaViolation, 0)
	collectViolations(verr, v.printer, &violations)
	return &ValidationError{Violations: violations}
}

// ParseDocument decodes JSON the way the validator expects (numbers kept as json.Number).
func ParseDocument(r io.Reader) (any, error) {
	return jsonschema.UnmarshalJSON(r)
}

// collectViolations flattens the error tree into its leaves. Only locations,
// the keyword, and the message are kept; instance values are dropped.
func collectViolations(verr *jsonschema.ValidationError, printer *message.Printer, out *[]model.SchemaViolation) {
	if len(verr.Causes) > 0 {
		for _, cause := range verr.Causes {
			collectViolations(cause, printer, out)
		}
		return
	}

	keywordPath := verr.ErrorKind.KeywordPath()
	keyword := ""
	if len(keywordPath) > 0 {
		keyword = keywordPath[len(keywordPath)-1]
	}

	*out = append(*out, model.SchemaViolation{
		InstancePath: jsonPointer(verr.InstanceLocation),
		SchemaPath:   schemaPath(verr.SchemaURL),
		Keyword:      keyword,
		Message:      violationMessage(verr.ErrorKind, printer),
	})
}

// violationMessage renders the error kind without echoing the instance value.
func violationMessage(k jsonschema.ErrorKind, printer *message.Printer) string {
	switch typed := k.(type) {
	case *kind.Pattern:
		return fmt.Sprintf("value does not match pattern %s", typed.Want)
	case *kind.Format:
		return fmt.Sprintf("value is not valid %s", typed.Want)
	case *kind.Minimum:
		return fmt.Sprintf("must be >= %s", typed.Want.RatString())
	case *kind.Maximum:
		return fmt.Sprintf("must be <= %s", typed.Want.RatString())
	case *kind.ExclusiveMinimum:
		return fmt.Sprintf("must be > %s", typed.Want.RatString())
	case *kind.ExclusiveMaximum:
		return fmt.Sprintf("must be < %s", typed.Want.RatString())
	case *kind.MultipleOf:
		return fmt.Sprintf("must be multiple of %s", typed.Want.RatString())
	default:
		return k.LocalizedString(printer)
	}
}

func jsonPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, token := range tokens {
		token = strings.ReplaceAll(token, "~", "~0")
		token = strings.ReplaceAll(token, "/", "~1")
		sb.WriteByte('/')
		sb.WriteString(token)
	}
	return sb.String()
}

func schemaPath(url string) string {
	if idx := strings.Index(url, "#"); idx >= 0 {
		return url[idx:]
	}
	return url
}
