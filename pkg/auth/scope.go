package auth

import (
	"verigate/pkg/apierror"
	"verigate/pkg/logging"
)

// Requirement names the permission actions that may satisfy a call, with OR
// semantics: the requirement is met when the token carries at least one of
// them. An empty requirement is always satisfied.
type Requirement []string

// RequireAny builds a requirement satisfied by any one of the given actions.
func RequireAny(actions ...string) Requirement {
	return Requirement(actions)
}

// SatisfiedBy reports whether the available action set meets the
// requirement.
func (r Requirement) SatisfiedBy(available []string) bool {
	if len(r) == 0 {
		return true
	}
	for _, required := range r {
		for _, action := range available {
			if action == required {
				return true
			}
		}
	}
	return false
}

// checkActions is the shared scope verdict used by the manager. It is purely
// local; no network access happens here.
func checkActions(required Requirement, available []string) error {
	if len(required) == 0 {
		return nil
	}
	if required.SatisfiedBy(available) {
		logging.Debug("Auth", "Actions check passed (required=%v)", []string(required))
		return nil
	}
	logging.Warn("Auth", "Actions check failed. Required: %v. Available: %v", []string(required), available)
	return apierror.InsufficientScope(required, available)
}
