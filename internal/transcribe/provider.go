// Package transcribe sends a scanned financial document to an external
// model and returns its raw delimited-text transcription. The rest of
// the system treats this as an opaque capability: it either gets usable
// raw text back or an explicit failure.
package transcribe

import (
	"context"
	"errors"
)

// Kind selects the transcription prompt for a document.
type Kind int

const (
	// KindBankStatement is a bank statement or passbook.
	KindBankStatement Kind = iota
	// KindCapitalGains is a capital-gains report (CAMS or broker).
	KindCapitalGains
)

// Document is one file to transcribe.
type Document struct {
	Filename string
	Data     []byte
	Kind     Kind
}

// ErrEmptyTranscription is returned when the model produced no text at
// all. The caller aborts the document; there is nothing to reconcile.
var ErrEmptyTranscription = errors.New("transcribe: model returned an empty response")

// Provider converts a document into raw delimited text.
type Provider interface {
	Transcribe(ctx context.Context, doc Document) (string, error)
}
