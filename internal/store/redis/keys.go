package redis

const (
	// KeyPrefixProbe is the prefix for cached probe outcomes.
	KeyPrefixProbe = "catalog:probe:"
)

// ProbeKey returns the redis key for a cached probe outcome.
// The canonical URL is already a stable identifier, so it is used verbatim.
func ProbeKey(url string) string {
	return KeyPrefixProbe + url
}
