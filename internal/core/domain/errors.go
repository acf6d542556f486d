package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")

	// ErrTemporary marks transient provider or store failures. Callers may
	// retry within their own budget; the answer ladder treats it as a
	// routing signal, never as a terminal condition.
	ErrTemporary = errors.New("temporary failure")

	// ErrEmbeddingUnavailable is a startup-time condition: the embedding
	// model could not initialize, so no request can proceed. It is the one
	// error allowed to be fatal.
	ErrEmbeddingUnavailable = errors.New("embedding model unavailable")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
