package cache

import "strings"

const (
	GlobalKeyPrefix = "hangulquiz"

	levelTestService = "leveltest"
	sessionObject    = "session"
)

// GenerateCacheKey builds a colon separated key under GlobalKeyPrefix.
// Extra paramsKey values are joined by "_" into a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	parts := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(paramsKey) > 0 {
		parts = append(parts, strings.Join(paramsKey, "_"))
	}
	return strings.Join(parts, ":")
}

// SessionKey is the key under which a level test session is stored.
func SessionKey(id string) string {
	return GenerateCacheKey(levelTestService, sessionObject, id)
}
