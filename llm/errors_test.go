package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	base := errors.New("boom")

	transient := NewTransientError(base)
	if !IsTransient(transient) || IsFatal(transient) {
		t.Errorf("transient error misclassified: transient=%v fatal=%v",
			IsTransient(transient), IsFatal(transient))
	}

	fatal := NewFatalError(base)
	if !IsFatal(fatal) || IsTransient(fatal) {
		t.Errorf("fatal error misclassified: transient=%v fatal=%v",
			IsTransient(fatal), IsFatal(fatal))
	}

	plain := errors.New("unclassified")
	if IsTransient(plain) || IsFatal(plain) {
		t.Error("plain error should carry no classification")
	}
}

func TestErrorClassificationSurvivesWrapping(t *testing.T) {
	base := errors.New("status 503")
	wrapped := fmt.Errorf("all attempts failed: %w", NewTransientError(base))

	if !IsTransient(wrapped) {
		t.Error("classification lost through wrapping")
	}
	if !errors.Is(wrapped, base) {
		t.Error("underlying error lost through classification")
	}
}
