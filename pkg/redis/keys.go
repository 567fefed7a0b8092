package redis

import "fmt"

// Redis key patterns for the application
// Following the pattern: entity:id or entity:id:attribute

var keyPrefix = "dexboard"

// InitKeys sets the namespace prepended to every key
func InitKeys(prefix string) {
	if prefix != "" {
		keyPrefix = prefix
	}
}

// RevokedTokenKey marks a token id (jti) as revoked until its natural expiry
func RevokedTokenKey(tokenID string) string {
	return fmt.Sprintf("%s:token_revoked:%s", keyPrefix, tokenID)
}

// RateLimitKey counts requests of identifier within the current window of scope
func RateLimitKey(identifier, scope string) string {
	return fmt.Sprintf("%s:rate_limit:%s:%s", keyPrefix, scope, identifier)
}
