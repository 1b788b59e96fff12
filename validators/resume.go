package validators

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrTitleEmpty   = errors.New("resume title is required")
	ErrTitleTooLong = errors.New("resume title is too long")

	ErrDataMissing   = errors.New("resume data is required")
	ErrDataNotObject = errors.New("resume data must be a JSON object")
	ErrDataTooLarge  = errors.New("resume data is too large")
)

func TitleValidator(t string) error {
	if strings.TrimSpace(t) == "" {
		return ErrTitleEmpty
	}

	if len(t) > 255 {
		return ErrTitleTooLong
	}

	return nil
}

// ResumeDataValidator checks that raw is a structured JSON document
// (object or array, scalars and null are rejected) and that its
// compacted encoding stays within maxChars. It returns the compacted
// form so the measured bytes are exactly what gets stored.
func ResumeDataValidator(raw json.RawMessage, maxChars int) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrDataMissing
	}

	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, ErrDataNotObject
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, ErrDataNotObject
	}

	if buf.Len() > maxChars {
		return nil, ErrDataTooLarge
	}

	return buf.Bytes(), nil
}
