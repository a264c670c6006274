// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/restdoc/oaserrors"

// CountSources returns how many of the given input sources are set.
func CountSources(sources ...bool) int {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	return n
}

// RequireSingleSource returns a *oaserrors.ConfigError for option unless
// exactly one source is set. noneMsg and manyMsg describe the two failures.
func RequireSingleSource(option, noneMsg, manyMsg string, sources ...bool) error {
	switch n := CountSources(sources...); {
	case n == 0:
		return &oaserrors.ConfigError{Option: option, Message: noneMsg}
	case n > 1:
		return &oaserrors.ConfigError{Option: option, Value: n, Message: manyMsg}
	default:
		return nil
	}
}
