package source

import "errors"

// Sentinel kinds for adapter failures. All of them read as "absent"
// to the reconciler; they differ only for logging and metrics.
var (
	// ErrUnavailable covers network, timeout, and parse failures.
	ErrUnavailable = errors.New("source unavailable")

	// ErrNoData means the source answered but had nothing for the subject.
	ErrNoData = errors.New("no data for subject")

	// ErrDisabled means the adapter self-disabled (missing credential).
	ErrDisabled = errors.New("source disabled")
)

// IsAbsent reports whether err is any of the absence kinds.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrNoData) || errors.Is(err, ErrDisabled)
}
