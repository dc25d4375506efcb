package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookupEnv returns the trimmed value of key; blank values count as unset.
func lookupEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func GetEnvString(key, defaultValue string) string {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error parsing %s: %v, will use default value", key, err)
		return defaultValue
	}
	return intValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error parsing %s: %v, will use default value", key, err)
		return defaultValue
	}
	return boolValue
}

// GetEnvDuration reads a Go duration string such as "15s" or "500ms".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("Error parsing %s: %v, will use default value", key, err)
		return defaultValue
	}
	return d
}
