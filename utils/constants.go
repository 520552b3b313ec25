package utils

import "time"

// AuthCachePrefix is the prefix used for Redis identity cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for identity cache entries.
const AuthCacheTTL = 10 * time.Minute

// PropertyLockPrefix namespaces the per-property booking locks.
const PropertyLockPrefix = "lock:property:"
