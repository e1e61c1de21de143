package migrate

import "fmt"

// ApplyError reports that a forward migration step failed. The run aborts at
// the failing version; everything applied before it stays recorded in the
// ledger. Re-running without investigation risks double-applying side effects
// of the failed step, so this is surfaced to the operator rather than retried.
type ApplyError struct {
	Version string
	Err     error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply migration %s: %v", e.Version, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// ConfigurationError reports a registry problem that no retry can fix:
// a duplicate version at construction, or a rollback target whose definition
// is no longer registered (the revert logic is unknown).
type ConfigurationError struct {
	Version string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("migration %s: %s", e.Version, e.Reason)
}
