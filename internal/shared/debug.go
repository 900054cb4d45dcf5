package shared

import (
	"fmt"
	"os"
	"strings"
)

// DebugEnv enables debug output without the --debug flag
const DebugEnv = "ALIAS_RESOLVER_DEBUG"

// DebugPrint prints debug messages when debug mode is enabled
func DebugPrint(debug bool, format string, args ...interface{}) {
	if debug {
		fmt.Printf("🐛 DEBUG: "+format+"\n", args...)
	}
}

// IsDebugMode checks if debug mode is enabled via environment variable
func IsDebugMode() bool {
	switch strings.ToLower(os.Getenv(DebugEnv)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
