package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validList = `{
  "name": "T",
  "version": {"major": 1, "minor": 0, "patch": 0},
  "logoURI": "https://example.com/logo.png",
  "tokens": [
    {"chainId": 1, "address": "0xfff9976782d46cc05630d1f6ebab18b2324d6b14", "symbol": "W", "name": "Wrapped", "decimals": 18}
  ]
}`

func newValidator(t *testing.T) *TokenListValidator {
	t.Helper()
	v, err := NewTokenListValidator("")
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func parse(t *testing.T, raw string) any {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

func TestValidateAcceptsTokenList(t *testing.T) {
	v := newValidator(t)
	if err := v.Validate(parse(t, validList)); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}

func TestValidateMissingName(t *testing.T) {
	v := newValidator(t)
	err := v.Validate(parse(t, `{"tokens": []}`))
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Violations) == 0 {
		t.Fatalf("expected violations")
	}

	found := false
	for _, violation := range verr.Violations {
		if violation.Keyword == "required" && strings.Contains(violation.Message, "name") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing required violation: %+v", verr.Violations)
	}
}

func TestViolationsCarryNoInstanceValues(t *testing.T) {
	v := newValidator(t)
	raw := `{
  "name": "T",
  "tokens": [
    {"chainId": 1, "address": "0xSECRETSECRETSECRETSECRETSECRETSECRETSECR", "symbol": "W", "name": "Wrapped", "decimals": 18, "logoURI": "SECRET logo"}
  ]
}`

	violations := Violations(v.Validate(parse(t, raw)))
	if len(violations) == 0 {
		t.Fatalf("expected violations")
	}

	paths := make(map[string]bool)
	for _, violation := range violations {
		paths[violation.InstancePath] = true
		if strings.Contains(violation.Message, "SECRET") {
			t.Fatalf("violation leaks instance value: %+v", violation)
		}
	}
	if !paths["/tokens/0/address"] {
		t.Fatalf("missing address violation: %+v", violations)
	}
	if !paths["/tokens/0/logoURI"] {
		t.Fatalf("missing logoURI violation: %+v", violations)
	}
}

func TestNumericViolationsCarryOnlyBounds(t *testing.T) {
	v := newValidator(t)
	raw := `{
  "name": "T",
  "version": {"major": -987654, "minor": 0, "patch": 0},
  "tokens": [
    {"chainId": -424242, "address": "0xfff9976782d46cc05630d1f6ebab18b2324d6b14", "symbol": "W", "name": "Wrapped", "decimals": 313373}
  ]
}`

	violations := Violations(v.Validate(parse(t, raw)))
	messages := make(map[string]string)
	for _, violation := range violations {
		messages[violation.InstancePath] = violation.Message
		for _, leaked := range []string{"313", "424", "987"} {
			if strings.Contains(violation.Message, leaked) {
				t.Fatalf("violation leaks instance value: %+v", violation)
			}
		}
	}

	expected := map[string]string{
		"/tokens/0/decimals": "must be <= 255",
		"/tokens/0/chainId":  "must be >= 1",
		"/version/major":     "must be >= 0",
	}
	for path, want := range expected {
		if got, ok := messages[path]; !ok || got != want {
			t.Fatalf("message at %s = %q, want %q (all: %+v)", path, got, want, violations)
		}
	}
}

func TestValidateRejectsDecimalsOutOfRange(t *testing.T) {
	v := newValidator(t)
	raw := `{"name": "T", "tokens": [{"chainId": 1, "address": "0xfff9976782d46cc05630d1f6ebab18b2324d6b14", "symbol": "W", "name": "Wrapped", "decimals": 256}]}`

	violations := Violations(v.Validate(parse(t, raw)))
	if len(violations) == 0 {
		t.Fatalf("expected violations")
	}
	if violations[0].InstancePath != "/tokens/0/decimals" {
		t.Fatalf("unexpected path: %+v", violations)
	}
}

func TestValidatorIsReusable(t *testing.T) {
	v := newValidator(t)
	for i := 0; i < 3; i++ {
		if err := v.Validate(parse(t, `{}`)); err == nil {
			t.Fatalf("expected error on run %d", i)
		}
		if err := v.Validate(parse(t, validList)); err != nil {
			t.Fatalf("expected valid on run %d: %v", i, err)
		}
	}
}

func TestNewTokenListValidatorFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	custom := `{"$schema": "http://json-schema.org/draft-07/schema#", "type": "object", "required": ["tokens"]}`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	v, err := NewTokenListValidator(path)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	if err := v.Validate(parse(t, `{"tokens": []}`)); err != nil {
		t.Fatalf("expected valid under custom schema: %v", err)
	}

	if _, err := NewTokenListValidator(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing schema file")
	}
}
