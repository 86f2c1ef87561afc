package config

import (
	"sync"
	"time"
)

var (
	sessionMu sync.RWMutex
	// jwtSecret signs the anonymous session cookie
	jwtSecret = []byte(GetEnvOrDefault("JWT_SECRET", "arcos-playa-development-secret"))
	// sessionCookieName defaults to "arcos_session"
	sessionCookieName = GetEnvOrDefault("SESSION_COOKIE_NAME", "arcos_session")
)

// SessionLifetime bounds how long a visitor's session, panel and photos live.
var SessionLifetime = parseEnvDuration("SESSION_LIFETIME", 2*time.Hour)

// GetJWTSecret returns the current JWT secret in a thread-safe manner
func GetJWTSecret() []byte {
	sessionMu.RLock()
	defer sessionMu.RUnlock()
	return jwtSecret
}

// SetJWTSecret temporarily changes the JWT secret and returns a function to restore it
// This is primarily used for testing
func SetJWTSecret(secret []byte) func() {
	sessionMu.Lock()
	previous := jwtSecret
	jwtSecret = secret
	sessionMu.Unlock()

	return func() {
		sessionMu.Lock()
		jwtSecret = previous
		sessionMu.Unlock()
	}
}

// GetSessionCookieName returns the configured session cookie name
func GetSessionCookieName() string {
	sessionMu.RLock()
	defer sessionMu.RUnlock()
	return sessionCookieName
}

// SetSessionCookieName temporarily changes the session cookie name and returns a function to restore it
func SetSessionCookieName(name string) func() {
	sessionMu.Lock()
	previous := sessionCookieName
	sessionCookieName = name
	sessionMu.Unlock()

	return func() {
		sessionMu.Lock()
		sessionCookieName = previous
		sessionMu.Unlock()
	}
}

// SessionCookieSecure marks the session cookie Secure; disable only for plain-http development.
var SessionCookieSecure = GetEnvOrDefault("SESSION_COOKIE_SECURE", "true") == "true"
