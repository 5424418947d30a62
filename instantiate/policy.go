package instantiate

import (
	"strings"

	"github.com/teranos/bindgen/errors"
)

// Policy decides how many instantiations are tried per generic
// occurrence of a function.
type Policy int

const (
	// FirstMatch tries only the first instantiation of the occurrence's
	// class. A rejected candidate is reported and nothing else is tried.
	FirstMatch Policy = iota
	// AllMatches applies every instantiation that succeeds.
	AllMatches
	// FirstSuccess applies the first instantiation that succeeds and
	// stops. Rejected candidates are reported and the next one is tried.
	FirstSuccess
)

func (p Policy) String() string {
	switch p {
	case AllMatches:
		return "all_matches"
	case FirstSuccess:
		return "first_success"
	default:
		return "first_match"
	}
}

// ParsePolicy parses the configuration spelling of a policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first_match":
		return FirstMatch, nil
	case "first_success":
		return FirstSuccess, nil
	case "all_matches":
		return AllMatches, nil
	default:
		return FirstMatch, errors.WithHint(
			errors.NewInvalidInputError("unknown instantiation policy %q", s),
			"use first_match, first_success or all_matches")
	}
}
