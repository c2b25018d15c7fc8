package config

import (
	"strconv"
	"time"
)

const (
	jwtSecretEnvVar         = "JWT_SECRET_KEY"
	jwtAlgorithmEnvVar      = "JWT_ALGORITHM"
	accessTokenTTLEnvVar    = "ACCESS_TOKEN_TTL"
	refreshTokenTTLEnvVar   = "REFRESH_TOKEN_TTL"
	rotationThresholdEnvVar = "TOKEN_ROTATION_THRESHOLD"
	maxSessionsEnvVar       = "MAX_SESSIONS_PER_USER"
)

type SecurityConfig interface {
	// GetJWTSecret returns the symmetric signing key. An empty value is a
	// startup-time fatal condition, checked in cmd/server.
	GetJWTSecret() string
	GetJWTAlgorithm() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetRotationThreshold() time.Duration
	GetMaxSessionsPerUser() int
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetJWTSecret() string {
	return GetEnv(jwtSecretEnvVar, "")
}

func (Security) GetJWTAlgorithm() string {
	return GetEnv(jwtAlgorithmEnvVar, "HS256")
}

func (Security) GetAccessTokenTTL() time.Duration {
	return durationFromEnv(accessTokenTTLEnvVar, 3600)
}

func (Security) GetRefreshTokenTTL() time.Duration {
	return durationFromEnv(refreshTokenTTLEnvVar, 604800)
}

func (Security) GetRotationThreshold() time.Duration {
	return durationFromEnv(rotationThresholdEnvVar, 300)
}

func (Security) GetMaxSessionsPerUser() int {
	value := GetEnv(maxSessionsEnvVar, "3")
	max, err := strconv.Atoi(value)
	if err != nil || max < 1 {
		return 3
	}
	return max
}

// durationFromEnv reads an environment variable holding a number of seconds.
func durationFromEnv(envVar string, defaultSeconds int) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return time.Duration(defaultSeconds) * time.Second
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return time.Duration(defaultSeconds) * time.Second
	}
	return time.Duration(seconds) * time.Second
}
