package server

import "github.com/maxdominios/go-kude/internal/model"

// GenerateRequest is the JSON envelope accepted by the generation and
// extraction endpoints. Raw XML bodies are accepted too; the envelope is
// only needed to pass issuer overrides.
type GenerateRequest struct {
	XML    string                `json:"xml" binding:"required"`
	Emisor *model.EmisorOverride `json:"emisor,omitempty"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}
