package causalgraph

import (
	"fmt"
	"regexp"
	"strconv"
)

// Lagged node identifiers follow a small grammar over a base variable name:
//
//	"X"             the variable at the current time step (lag 0)
//	"X lag(n=2)"    the variable two steps in the past (lag -2)
//	"X future(n=2)" the variable two steps in the future (lag +2)
//
// Base names are word characters only; n is a positive integer literal. At
// most one suffix is allowed.
var lagPattern = regexp.MustCompile(`^(\w+)(?: (lag|future)\(n=(\d+)\))?$`)

// VariableNameAndLag decodes a node identifier into its base variable name
// and time lag. Identifiers with no lag suffix decode to lag 0. Malformed
// identifiers fail with a validation error.
func VariableNameAndLag(identifier string) (string, int, error) {
	m := lagPattern.FindStringSubmatch(identifier)
	if m == nil {
		return "", 0, NewValidationError("identifier", fmt.Errorf("cannot parse %q as a lagged variable name", identifier))
	}
	if m[2] == "" {
		return m[1], 0, nil
	}
	k, err := strconv.Atoi(m[3])
	if err != nil {
		return "", 0, NewValidationError("identifier", fmt.Errorf("lag out of range in %q: %w", identifier, err))
	}
	if m[2] == "lag" {
		return m[1], -k, nil
	}
	return m[1], k, nil
}

// NameWithLag encodes the base variable name of identifier together with the
// given lag. Any existing lag suffix on identifier is stripped first, so the
// result always carries exactly one lag annotation: none for lag 0,
// "future(n=k)" for positive lags and "lag(n=k)" for negative ones.
//
// NameWithLag is the inverse of VariableNameAndLag: encoding a decoded
// (name, lag) pair yields the original identifier.
func NameWithLag(identifier string, lag int) (string, error) {
	name, _, err := VariableNameAndLag(identifier)
	if err != nil {
		return "", err
	}
	switch {
	case lag > 0:
		return fmt.Sprintf("%s future(n=%d)", name, lag), nil
	case lag < 0:
		return fmt.Sprintf("%s lag(n=%d)", name, -lag), nil
	default:
		return name, nil
	}
}
