package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable clock for
// deterministic tests. The refresh lifetime is fixed at seven times the
// access lifetime.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        tokenLifetime,
		refreshTokenLifetime: 7 * tokenLifetime,
		timeFunc:             timeFunc,
		clockSkew:            2 * time.Minute,
	}
}
