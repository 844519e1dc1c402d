// Package d2derr defines the sentinel error kinds shared across loaders and
// solvers. Solver outcomes like exhaustion are not errors — only malformed
// input and misuse of the API are.
package d2derr

import "errors"

// Sentinel kinds. Wrap with fmt.Errorf("...: %w", Kind) so callers can
// match with errors.Is while still getting a specific message.
var (
	// InputFormatError covers unsupported file extensions and malformed records.
	InputFormatError = errors.New("input format error")

	// InvalidParameter covers out-of-range CLI/config parameters, e.g.
	// Shorted_Bumps_Number < 1 or > N.
	InvalidParameter = errors.New("invalid parameter")

	// MissingReference covers a route row naming a bump absent from the bump map.
	MissingReference = errors.New("missing reference")
)
