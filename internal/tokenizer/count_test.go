package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/promptpack/promptpack/internal/tokenizer"
)

// wordCounter is a deterministic Counter used to exercise CountBytes without
// loading a real encoding.
type wordCounter struct{}

func (wordCounter) Name() string { return "words" }

func (wordCounter) CountString(input string) (int, error) {
	return len(strings.Fields(input)), nil
}

// TestCountBytes verifies counting behavior for text, empty, and binary input.
func TestCountBytes(testingHandle *testing.T) {
	counter := wordCounter{}

	textResult, textError := tokenizer.CountBytes(counter, []byte("alpha beta gamma"))
	if textError != nil {
		testingHandle.Fatalf("CountBytes error: %v", textError)
	}
	if !textResult.Counted || textResult.Tokens != 3 {
		testingHandle.Errorf("expected 3 counted tokens, got %+v", textResult)
	}

	emptyResult, emptyError := tokenizer.CountBytes(counter, nil)
	if emptyError != nil {
		testingHandle.Fatalf("CountBytes error for empty input: %v", emptyError)
	}
	if !emptyResult.Counted || emptyResult.Tokens != 0 {
		testingHandle.Errorf("expected zero counted tokens for empty input, got %+v", emptyResult)
	}

	binaryResult, binaryError := tokenizer.CountBytes(counter, []byte{0x00, 0x01})
	if binaryError != nil {
		testingHandle.Fatalf("CountBytes error for binary input: %v", binaryError)
	}
	if binaryResult.Counted {
		testingHandle.Errorf("binary content must never be counted, got %+v", binaryResult)
	}
}

// TestCountBytesNilCounter verifies the nil-counter guard.
func TestCountBytesNilCounter(testingHandle *testing.T) {
	if _, countError := tokenizer.CountBytes(nil, []byte("x")); countError == nil {
		testingHandle.Errorf("expected an error for a nil counter")
	}
}
