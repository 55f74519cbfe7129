package content

import (
	"context"
	"errors"
	"net"
)

var (
	ErrUnknownBackend     = errors.New("unknown backend")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendTimeout     = errors.New("backend timed out")
	ErrBackendError       = errors.New("backend error")
	ErrTemplateRender     = errors.New("template render failed")
	ErrGenerationFailed   = errors.New("generation failed")
	ErrInvalidContentKind = errors.New("invalid content kind")
	ErrEmptyTopic         = errors.New("topic is required")
)

// ClassifyBackendError maps an arbitrary backend failure onto one of
// ErrBackendTimeout, ErrBackendUnavailable or ErrBackendError. Errors that
// already carry one of those sentinels are returned unchanged.
func ClassifyBackendError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBackendTimeout),
		errors.Is(err, ErrBackendUnavailable),
		errors.Is(err, ErrBackendError):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrBackendTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Join(ErrBackendTimeout, err)
	}
	return errors.Join(ErrBackendError, err)
}

// Reason returns a short machine-readable label for a classified backend error.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBackendTimeout):
		return "timeout"
	case errors.Is(err, ErrBackendUnavailable):
		return "unavailable"
	case errors.Is(err, ErrUnknownBackend):
		return "unknown_backend"
	default:
		return "error"
	}
}
