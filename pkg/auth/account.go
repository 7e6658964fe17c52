package auth

import (
	"errors"
	"fmt"
)

var (
	ErrAccountDisabled    = errors.New("auth: account disabled")
	ErrAccountExpired     = errors.New("auth: account expired")
	ErrCredentialsExpired = errors.New("auth: credentials expired")
	ErrAccountLocked      = errors.New("auth: account locked")
	// ErrUnknownSubject is returned when a token names no existing user.
	ErrUnknownSubject     = errors.New("auth: unknown subject")
)

// Account is the credential state of a user as the token check sees it.
type Account struct {
	Subject               string
	Enabled               bool
	AccountNonExpired     bool
	CredentialsNonExpired bool
	AccountNonLocked      bool
}

// CheckAccount reports the first failing credential flag in the order
// enabled, account expiry, credential expiry, lock.
func CheckAccount(a Account) error {
	switch {
	case !a.Enabled:
		return fmt.Errorf("%w: %s", ErrAccountDisabled, a.Subject)
	case !a.AccountNonExpired:
		return fmt.Errorf("%w: %s", ErrAccountExpired, a.Subject)
	case !a.CredentialsNonExpired:
		return fmt.Errorf("%w: %s", ErrCredentialsExpired, a.Subject)
	case !a.AccountNonLocked:
		return fmt.Errorf("%w: %s", ErrAccountLocked, a.Subject)
	}
	return nil
}

// Kind names the error class for logs and metrics labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, ErrTokenInvalid):
		return "invalid"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrAccountDisabled):
		return "disabled"
	case errors.Is(err, ErrAccountExpired):
		return "account_expired"
	case errors.Is(err, ErrCredentialsExpired):
		return "credentials_expired"
	case errors.Is(err, ErrAccountLocked):
		return "locked"
	case errors.Is(err, ErrUnknownSubject):
		return "unknown_subject"
	default:
		return "unknown"
	}
}
