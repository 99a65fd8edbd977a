package errors

import "github.com/mwantia/ossfm/data"

// NotExist reports a missing object for the given key.
func NotExist(err error, key string) error {
	if err == nil {
		return newError(data.ErrNotExist, "object '%s'", key)
	}
	return newError(joinSentinel(data.ErrNotExist, err), "object '%s'", key)
}

// NetworkOrAuth reports a connectivity or credential failure against the named store.
func NetworkOrAuth(err error, store string) error {
	return newError(joinSentinel(data.ErrNetworkOrAuth, err), "store '%s'", store)
}

// Unsupported reports an operation that the namespace cannot express as a plan.
func Unsupported(err error, op, key string) error {
	if err == nil {
		return newError(data.ErrUnsupported, "%s '%s'", op, key)
	}
	return newError(joinSentinel(data.ErrUnsupported, err), "%s '%s'", op, key)
}

// Invalid reports a malformed argument.
func Invalid(reason string, value string) error {
	return newError(data.ErrInvalid, "%s '%s'", reason, value)
}

// ConfigMissing reports an absent or incomplete store configuration.
func ConfigMissing(reason string) error {
	return newError(data.ErrConfigMissing, "%s", reason)
}

func joinSentinel(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &chained{sentinel: sentinel, cause: cause}
}

// chained keeps both the taxonomy sentinel and the vendor cause reachable.
type chained struct {
	sentinel error
	cause    error
}

func (c *chained) Error() string {
	return c.sentinel.Error() + ": " + c.cause.Error()
}

func (c *chained) Unwrap() []error {
	return []error{c.sentinel, c.cause}
}
