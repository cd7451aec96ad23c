package auth

import "time"

// Config controls JWT signing and validation of registry events.
// Secret: shared HS key; Alg currently supports HS256.
type Config struct {
	Secret    string
	Alg       string
	Issuer    string
	TTL       time.Duration
	ClockSkew time.Duration
}

// Defaults fills zero values.
func (c *Config) Defaults() {
	if c.Alg == "" {
		c.Alg = "HS256"
	}
	if c.Issuer == "" {
		c.Issuer = "statusgen"
	}
	if c.TTL <= 0 {
		c.TTL = 24 * time.Hour
	}
	if c.ClockSkew < 0 {
		c.ClockSkew = 0
	}
}
