// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateID creates a random identifier for a new device record
func GenerateID() string {
	return uuid.NewString()
}

// Principal returns the authenticated user for the request, or "" if none.
// A verified TLS client certificate wins; otherwise the trusted header set by
// the front end is used when one is configured.
func Principal(r *http.Request, header, realm string) string {
	if r.TLS != nil && len(r.TLS.VerifiedChains) > 0 && len(r.TLS.VerifiedChains[0]) > 0 {
		cert := r.TLS.VerifiedChains[0][0]
		for _, addr := range cert.EmailAddresses {
			if user, ok := userInRealm(addr, realm); ok {
				return user
			}
		}
	}

	if header == "" {
		return ""
	}
	value := strings.TrimSpace(r.Header.Get(header))
	if value == "" {
		return ""
	}
	if user, ok := userInRealm(value, realm); ok {
		return user
	}
	if strings.Contains(value, "@") {
		// principal from a foreign realm
		return ""
	}
	return value
}

func userInRealm(addr, realm string) (string, bool) {
	if realm == "" {
		return "", false
	}
	user, ok := strings.CutSuffix(strings.ToLower(addr), "@"+strings.ToLower(realm))
	if !ok || user == "" {
		return "", false
	}
	return user, true
}

// AuthLink builds the link shown next to the login state. Unauthenticated
// users are sent to the secure port, where the front end asks for a ticket.
func AuthLink(r *http.Request, user string, securePort int) string {
	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.RequestURI()
	}
	if user != "" {
		return "https://" + requestHost(r) + uri
	}
	return LoginLink(r, uri, securePort)
}

// LoginLink points at target on the secure port. target must be a path a
// browser can GET.
func LoginLink(r *http.Request, target string, securePort int) string {
	host := requestHost(r)
	if securePort == 0 || securePort == 443 {
		return "https://" + host + target
	}
	return "https://" + host + ":" + strconv.Itoa(securePort) + target
}

func requestHost(r *http.Request) string {
	if h, _, err := net.SplitHostPort(r.Host); err == nil {
		return h
	}
	return r.Host
}
