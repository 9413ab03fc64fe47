package model

import "fmt"

// ConfigError reports an invalid option combination on the caller's side.
// It is raised before any parsing happens.
type ConfigError struct {
	Option  string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Option, e.Message)
}

// NewConfigError creates a new config error
func NewConfigError(option, message string) *ConfigError {
	return &ConfigError{Option: option, Message: message}
}

// StructuralError reports a structurally invalid document: the mandatory
// rDE/DE wrapper is absent. Missing individual fields never produce this;
// they degrade to empty values downstream.
type StructuralError struct {
	Element string
	Message string
	Cause   error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid XML structure [%s]: %s (%v)", e.Element, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid XML structure [%s]: %s", e.Element, e.Message)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// NewStructuralError creates a new structural error
func NewStructuralError(element, message string, cause error) *StructuralError {
	return &StructuralError{Element: element, Message: message, Cause: cause}
}

// RenderError reports a failure of the PDF backend. Collaborator failures
// that only degrade the output (QR, logo) are never surfaced as errors.
type RenderError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed [%s]: %s (%v)", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed [%s]: %s", e.Stage, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error
func NewRenderError(stage, message string, cause error) *RenderError {
	return &RenderError{Stage: stage, Message: message, Cause: cause}
}
