package probe

import (
	"os"
	"strings"
)

// Env is read-only access to environment variables
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the real process environment
type OSEnv struct{}

// Lookup returns the value of key and whether it is set
func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is a fixed environment, used to simulate sessions
type MapEnv map[string]string

// Lookup returns the value of key and whether it is set
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// getenv returns the value of key, treating set-but-empty as unset
func getenv(env Env, key string) string {
	v, ok := env.Lookup(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// baseName returns the final segment of a Unix or Windows path
func baseName(path string) string {
	path = strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	return path
}

// trimExe strips a trailing ".exe" in any letter case
func trimExe(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name[:len(name)-4]
	}
	return name
}
