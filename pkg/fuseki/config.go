// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"fmt"
	"strconv"
)

// Default connection settings of a stock Fuseki server.
const (
	DefaultHost = "localhost"
	DefaultPort = 3030
)

// Config identifies a Fuseki server and the credentials used to talk to it.
type Config struct {
	Host string
	// Port is omitted from the base URI when zero.
	Port    int
	Secured bool
	// User and Password enable HTTP Basic authentication only when both are set.
	User     string
	Password string
}

// DefaultConfig returns the settings of a local, unsecured Fuseki instance.
func DefaultConfig() Config {
	return Config{Host: DefaultHost, Port: DefaultPort}
}

// HasAuth reports whether basic authentication is configured.
func (c Config) HasAuth() bool {
	return c.User != "" && c.Password != ""
}

// BaseURI returns "scheme://host[:port]/".
func (c Config) BaseURI() string {
	scheme := "http"
	if c.Secured {
		scheme = "https"
	}
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	if c.Port != 0 {
		host += ":" + strconv.Itoa(c.Port)
	}
	return scheme + "://" + host + "/"
}

// String describes the configuration without the password.
func (c Config) String() string {
	port := "none"
	if c.Port != 0 {
		port = strconv.Itoa(c.Port)
	}
	user := "none"
	if c.User != "" {
		user = c.User
	}
	return fmt.Sprintf("fuseki(host=%q, port=%s, secured=%t, user=%s)", c.Host, port, c.Secured, user)
}
