// ABOUTME: Unverified bearer token decoding for client-side expiry checks
// ABOUTME: Fails closed: any malformed token is reported as expired

package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when the payload carries no exp claim.
var ErrNoExpiry = errors.New("token has no exp claim")

// parser only decodes segments; it never verifies signatures.
var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Expiry returns the exp claim of a token without verifying its signature.
// Only the payload segment is decoded; the header and signature are ignored.
func Expiry(raw string) (time.Time, error) {
	exp, err := expSeconds(raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, int64(exp*float64(time.Second))), nil
}

// expSeconds decodes the exp claim as seconds since the epoch, keeping any
// fractional part.
func expSeconds(raw string) (float64, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed token: %d segments", len(parts))
	}

	payload, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid payload encoding: %w", err)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return 0, fmt.Errorf("invalid payload format: %w", err)
	}

	// GetExpirationTime rejects non-numeric values but truncates to seconds.
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return 0, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp == nil {
		return 0, ErrNoExpiry
	}

	switch v := claims["exp"].(type) {
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	}
	return 0, fmt.Errorf("invalid exp claim: %T", claims["exp"])
}

// IsExpired reports whether the token is expired at the current time.
// This is a UX check only; the backend remains the authority.
func IsExpired(raw string) bool {
	return IsExpiredAt(raw, time.Now())
}

// IsExpiredAt reports whether the token is expired at now. A token is
// expired once now in milliseconds reaches exp*1000, and always when it
// cannot be decoded.
func IsExpiredAt(raw string, now time.Time) bool {
	exp, err := expSeconds(raw)
	if err != nil {
		return true
	}
	return float64(now.UnixMilli()) >= exp*1000
}
