package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorMessage(t *testing.T) {
	err := &OpError{
		Op:   "datamodel.load",
		Kind: KindNotFound,
		Path: "model.yaml",
		Err:  errors.New("no such file"),
	}

	msg := err.Error()
	for _, want := range []string{"datamodel.load", "not_found", "model.yaml", "no such file"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	inner := &OpError{Op: "csvtable.read", Kind: KindInvalidSchema, Err: errors.New("boom")}
	wrapped := fmt.Errorf("summarize: %w", inner)

	if !IsKind(wrapped, KindInvalidSchema) {
		t.Fatalf("expected kind to survive wrapping")
	}
	if IsKind(wrapped, KindNotFound) {
		t.Fatalf("unexpected kind match")
	}
	if IsKind(errors.New("plain"), KindExecution) {
		t.Fatalf("plain errors must not match")
	}
}
