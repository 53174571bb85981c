package env

import "os"

// Get reads an environment variable, falling back when unset or blank.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
