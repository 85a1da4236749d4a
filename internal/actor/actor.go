// Package actor resolves the identity used for claims and audit trails.
// Resolution tries, in order: the FN_ACTOR environment variable, the git
// user email, the git user name, the operating-system user name, and
// finally the literal "unknown". It never fails.
package actor

import (
	"os"
	"os/exec"
	"os/user"
	"strings"
)

// EnvVar is the explicit override checked first.
const EnvVar = "FN_ACTOR"

// Fallback is returned when nothing else resolves.
const Fallback = "unknown"

// Resolve returns the actor identity string.
func Resolve() string {
	if v := os.Getenv(EnvVar); v != "" {
		return v
	}
	if email := gitConfig("user.email"); email != "" {
		return email
	}
	if name := gitConfig("user.name"); name != "" {
		return name
	}
	if u := osUser(); u != "" {
		return u
	}
	return Fallback
}

func gitConfig(key string) string {
	out, err := exec.Command("git", "config", key).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func osUser() string {
	if v := os.Getenv("USER"); v != "" {
		return v
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return ""
}
