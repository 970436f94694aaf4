package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation = errors.New("theme: validation failed")
	ErrUpstream   = errors.New("theme: upstream generation failed")
	ErrParse      = errors.New("theme: parse failed")
	ErrGeneration = errors.New("theme: generation failed")
)

// ValidationError reports missing or malformed request input.
type ValidationError struct {
	Fields map[string]string
	Cause  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ErrValidation.Error()
	}
	if len(e.Fields) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", ErrValidation.Error(), e.Cause)
		}
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, key := range sortedKeys(e.Fields) {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ValidationError) Unwrap() error        { return e.Cause }

// UpstreamGenerationError covers LLM call failures, non-text answers and
// answers without an extractable JSON object.
type UpstreamGenerationError struct {
	Reason string
	Cause  error
}

func (e *UpstreamGenerationError) Error() string {
	if e == nil {
		return ErrUpstream.Error()
	}
	return withCause(ErrUpstream, e.Reason, e.Cause)
}

func (e *UpstreamGenerationError) Is(target error) bool { return target == ErrUpstream }
func (e *UpstreamGenerationError) Unwrap() error        { return e.Cause }

// ParseSource names the input a ParseError came from.
type ParseSource string

const (
	SourceLLM  ParseSource = "llm"
	SourceHTML ParseSource = "html"
)

// ParseError reports LLM JSON that could not be decoded or HTML that could not be parsed.
type ParseError struct {
	Source ParseSource
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ErrParse.Error()
	}
	reason := e.Reason
	if e.Source != "" {
		reason = fmt.Sprintf("%s: %s", e.Source, reason)
	}
	return withCause(ErrParse, reason, e.Cause)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
func (e *ParseError) Unwrap() error        { return e.Cause }

// GenerationError reports a violated assembler invariant.
type GenerationError struct {
	Reason string
	Cause  error
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ErrGeneration.Error()
	}
	return withCause(ErrGeneration, e.Reason, e.Cause)
}

func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }
func (e *GenerationError) Unwrap() error        { return e.Cause }

// Upstream is shorthand for building an UpstreamGenerationError.
func Upstream(reason string, cause error) error {
	return &UpstreamGenerationError{Reason: reason, Cause: cause}
}

// Parse is shorthand for building a ParseError.
func Parse(source ParseSource, reason string, cause error) error {
	return &ParseError{Source: source, Reason: reason, Cause: cause}
}

// Generation is shorthand for building a GenerationError.
func Generation(reason string, cause error) error {
	return &GenerationError{Reason: reason, Cause: cause}
}

func withCause(sentinel error, reason string, cause error) string {
	msg := sentinel.Error()
	if reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, reason)
	}
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return msg
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
