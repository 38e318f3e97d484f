package server

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/acme/autocert"
)

type (
	// Challenge token and key used to get a TLS certificate using the ACME HTTP-01 challenge.
	Challenge struct {
		Token string
		Key   string
	}
)

const (
	// acmeHeader is the path of the endpoint to serve the challenge at.
	acmeHeader = "/.well-known/acme-challenge/"
)

// isFor determines if a path is a request for the challenge.
func (c Challenge) isFor(path string) bool {
	return len(c.Token) > 0 &&
		strings.HasPrefix(path, acmeHeader) &&
		path[len(acmeHeader):] == c.Token
}

// handle writes the challenge to the response.
// Writes the concatenation of the token, a period, and the key.
// The url of the request is not validated.
func (c Challenge) handle(w http.ResponseWriter) error {
	if _, err := w.Write([]byte(c.Token + "." + c.Key)); err != nil {
		return fmt.Errorf("writing acme token: %w", err)
	}
	return nil
}

// certManager creates a manager to automatically get certificates for the autocert hosts.
// Nil is returned if no hosts are configured.
func (cfg Config) certManager() *autocert.Manager {
	if len(cfg.AutocertHosts) == 0 {
		return nil
	}
	m := autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(cfg.AutocertHosts...),
	}
	if len(cfg.AutocertDir) != 0 {
		m.Cache = autocert.DirCache(cfg.AutocertDir)
	}
	return &m
}
