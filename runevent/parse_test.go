package runevent

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_ValidEvents(t *testing.T) {
	ev, err := Parse([]byte(`["input",{"node":{"id":"n1"},"inputArguments":{"schema":{}}},"tok1"]`))
	if err != nil {
		t.Fatalf("valid input event rejected: %v", err)
	}
	in, ok := ev.(InputEvent)
	if !ok || in.Node.ID != "n1" || in.Next != "tok1" {
		t.Fatalf("unexpected input event: %+v", ev)
	}
	if _, ok := in.InputArguments["schema"]; !ok {
		t.Errorf("inputArguments not preserved: %+v", in.InputArguments)
	}

	ev, err = Parse([]byte(`["output",{"node":{"id":"n2"},"configuration":{"schema":{}},"outputs":{"text":"hi"}},"tok2"]`))
	if err != nil {
		t.Fatalf("valid output event rejected: %v", err)
	}
	out, ok := ev.(OutputEvent)
	if !ok || out.Node.ID != "n2" || out.Next != "tok2" || out.Outputs["text"] != "hi" {
		t.Fatalf("unexpected output event: %+v", ev)
	}
	if out.Configuration == nil {
		t.Error("configuration not preserved")
	}

	ev, err = Parse([]byte(`["error","something broke"]`))
	if err != nil {
		t.Fatalf("valid error event rejected: %v", err)
	}
	if errEv := ev.(ErrorEvent); errEv.Message != "something broke" {
		t.Fatalf("unexpected error event: %+v", errEv)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`broken-json-continues`))
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "Failed to parse event") {
		t.Errorf("message should carry the contract prefix, got %q", err.Error())
	}
}

func TestParse_StructuralInvalid(t *testing.T) {
	for _, record := range []string{`{"not":"an array"}`, `"just a string"`, `42`, `["input"]`, `[]`} {
		_, err := Parse([]byte(record))
		if !errors.Is(err, ErrStructuralInvalid) {
			t.Errorf("record %s: expected ErrStructuralInvalid, got %v", record, err)
		}
	}

	_, err := Parse([]byte(`["input"]`))
	if err.Error() != "Invalid event format: expected array with at least 2 elements" {
		t.Errorf("unexpected structural message: %q", err.Error())
	}
}

func TestParse_UnknownEventType(t *testing.T) {
	_, err := Parse([]byte(`["progress",{"node":{"id":"n1"}}]`))
	if !errors.Is(err, ErrUnknownEventType) {
		t.Fatalf("expected ErrUnknownEventType, got %v", err)
	}
	if err.Error() != "Invalid event type: progress" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	// Non-string discriminants are unknown types, not parse failures.
	_, err = Parse([]byte(`[1,2]`))
	if !errors.Is(err, ErrUnknownEventType) {
		t.Fatalf("expected ErrUnknownEventType for numeric tag, got %v", err)
	}
}

func TestParse_StrictFieldValidation(t *testing.T) {
	// Missing inputArguments.
	_, err := Parse([]byte(`["input",{"node":{"id":"n1"}},"tok"]`))
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
	if !strings.Contains(err.Error(), "inputArguments") {
		t.Errorf("message should name the missing field, got %q", err.Error())
	}

	// Missing node id.
	_, err = Parse([]byte(`["output",{"outputs":{}},"tok"]`))
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
	if !strings.Contains(err.Error(), "node.id") {
		t.Errorf("message should name the missing field, got %q", err.Error())
	}
}

func TestParse_ShapeOnlyPolicy(t *testing.T) {
	// The same shape-valid but field-poor records pass under the lenient policy.
	ev, err := Parse([]byte(`["input",{"node":{"id":"n1"}},"tok"]`), WithShapeOnly())
	if err != nil {
		t.Fatalf("shape-only policy rejected shape-valid input: %v", err)
	}
	if in := ev.(InputEvent); in.Next != "tok" {
		t.Fatalf("unexpected event: %+v", in)
	}

	ev, err = Parse([]byte(`["output",{},"tok"]`), WithShapeOnly())
	if err != nil {
		t.Fatalf("shape-only policy rejected shape-valid output: %v", err)
	}
	if out := ev.(OutputEvent); out.Node.ID != "" {
		t.Fatalf("unexpected event: %+v", out)
	}
}

func TestParse_MissingNextTokenDefaultsEmpty(t *testing.T) {
	ev, err := Parse([]byte(`["output",{"node":{"id":"n1"},"outputs":{}}]`))
	if err != nil {
		t.Fatalf("two-element output tuple rejected: %v", err)
	}
	if out := ev.(OutputEvent); out.Next != "" {
		t.Fatalf("expected empty continuation token, got %q", out.Next)
	}
}
