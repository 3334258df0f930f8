// Package securestorage routes key/value preferences between a session-scoped
// backend and a persistent one. Keys that look sensitive never reach the
// persistent backend, and their structured values are stripped of payment
// and identity fields before they are stored.
package securestorage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultPrefix namespaces every key written by this application.
const DefaultPrefix = "portfolio_"

var sensitiveTerms = []string{
	"payment", "stripe", "paypal", "card", "cvv", "billing", "personal", "email", "phone",
}

var sensitiveFields = []string{
	"cardNumber", "cvv", "cvc", "expiryDate", "billingAddress", "password", "ssn", "paymentMethod",
}

// ErrEmptyKey is reported for operations on an empty key.
var ErrEmptyKey = errors.New("storage key is empty")

// Backend is a flat string store, such as a browser's sessionStorage or localStorage.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
}

// Result reports the outcome of a storage operation. Failures are already
// logged; callers inspect it only when they care.
type Result struct {
	Err error
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// SetOptions adjusts how SetItem stores a value.
type SetOptions struct {
	// SessionOnly keeps a non-sensitive value out of the persistent backend.
	SessionOnly bool
	// AllowSensitive skips sanitization. Sensitive keys still go to the session backend.
	AllowSensitive bool
}

// Storage is one application-scoped storage wrapper. Construct it once and
// hand it to the components that need it.
type Storage struct {
	prefix     string
	session    Backend
	persistent Backend
}

// New creates a Storage over the given backends.
func New(session, persistent Backend, prefix string) *Storage {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Storage{prefix: prefix, session: session, persistent: persistent}
}

// IsSensitive reports whether key names payment, contact or personal data.
// The match is a case-insensitive substring test.
func IsSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, term := range sensitiveTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// SanitizeData returns a shallow copy of an object value without the known
// sensitive fields. Anything that is not an object is returned unchanged.
func SanitizeData(value any) any {
	obj, ok := value.(map[string]any)
	if !ok {
		return value
	}
	clean := make(map[string]any, len(obj))
	for k, v := range obj {
		clean[k] = v
	}
	for _, f := range sensitiveFields {
		delete(clean, f)
	}
	return clean
}

func (s *Storage) backendFor(key string, sessionOnly bool) Backend {
	if sessionOnly || IsSensitive(key) {
		return s.session
	}
	return s.persistent
}

// SetItem stores value under key. Strings are stored verbatim and all other
// values as JSON.
func (s *Storage) SetItem(key string, value any, opts SetOptions) Result {
	if key == "" {
		return s.fail("set", key, ErrEmptyKey)
	}
	if IsSensitive(key) && !opts.AllowSensitive {
		value = SanitizeData(value)
	}

	var encoded string
	switch v := value.(type) {
	case string:
		encoded = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return s.fail("set", key, fmt.Errorf("encode value: %w", err))
		}
		encoded = string(b)
	}

	if err := s.backendFor(key, opts.SessionOnly).Set(s.prefix+key, encoded); err != nil {
		return s.fail("set", key, err)
	}
	return Result{}
}

// GetItem reads key. The stored text is decoded as JSON when possible and
// returned raw otherwise. A missing key yields nil and a successful Result.
func (s *Storage) GetItem(key string, fromSession bool) (any, Result) {
	if key == "" {
		return nil, s.fail("get", key, ErrEmptyKey)
	}
	raw, ok, err := s.backendFor(key, fromSession).Get(s.prefix + key)
	if err != nil {
		return nil, s.fail("get", key, err)
	}
	if !ok {
		return nil, Result{}
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw, Result{}
	}
	return decoded, Result{}
}

// RemoveItem deletes key from both backends.
func (s *Storage) RemoveItem(key string) Result {
	if key == "" {
		return s.fail("remove", key, ErrEmptyKey)
	}
	errs := errors.Join(
		s.session.Remove(s.prefix+key),
		s.persistent.Remove(s.prefix+key),
	)
	if errs != nil {
		return s.fail("remove", key, errs)
	}
	return Result{}
}

// ClearAll removes every key carrying this storage's prefix from both
// backends. Keys outside the prefix are left alone.
func (s *Storage) ClearAll() Result {
	var errs []error
	for _, b := range []Backend{s.session, s.persistent} {
		keys, err := b.Keys()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, k := range keys {
			if !strings.HasPrefix(k, s.prefix) {
				continue
			}
			if err := b.Remove(k); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return s.fail("clear", "", err)
	}
	return Result{}
}

func (s *Storage) fail(op, key string, err error) Result {
	log.Warn().Err(err).Str("op", op).Str("key", key).Msg("Secure storage operation failed")
	return Result{Err: fmt.Errorf("%s %q: %w", op, key, err)}
}
