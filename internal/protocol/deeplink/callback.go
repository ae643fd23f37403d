package deeplink

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"solwallet/internal/domain"
)

// ErrMissingParams is returned when a callback lacks provider or requestId
// after normalization.
var ErrMissingParams = errors.New("callback missing provider or requestId")

// NormalizeCallbackURL repairs the known malformed provider URL quirks before
// standard query parsing. New provider quirks belong here, not in the
// callback handlers.
//
// Known quirks (both observed from Solflare):
//   - errorCode appended with a second "?" instead of "&"
//   - the whole parameter block duplicated after a space
func NormalizeCallbackURL(raw string) string {
	raw = strings.Replace(raw, "?errorCode=", "&errorCode=", 1)
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

// ParseCallback normalizes and parses an inbound callback URL. It fails if
// the URL does not parse or lacks the provider or requestId parameters.
func ParseCallback(raw string) (domain.CallbackParams, error) {
	u, err := url.Parse(NormalizeCallbackURL(raw))
	if err != nil {
		return domain.CallbackParams{}, errors.Wrap(err, "parse callback url")
	}

	q := u.Query()
	provider := q.Get("provider")
	requestID := q.Get("requestId")
	if provider == "" || requestID == "" {
		return domain.CallbackParams{}, ErrMissingParams
	}
	id, err := strconv.ParseUint(requestID, 10, 64)
	if err != nil {
		return domain.CallbackParams{}, errors.Wrap(err, "parse requestId")
	}

	values := make(map[string]string, len(q))
	for k := range q {
		values[k] = q.Get(k)
	}
	return domain.CallbackParams{
		Provider:  domain.Provider(provider),
		RequestID: id,
		Values:    values,
	}, nil
}
