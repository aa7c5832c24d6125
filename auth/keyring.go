// Package auth keeps per-host bearer tokens for protected stream hosts in the system keyring.
package auth

import (
	"errors"
	"net/url"
	"strings"

	"github.com/steadyplay/steadyplay/constant"
	"github.com/zalando/go-keyring"
)

const service = constant.Steadyplay

// ErrNotFound is returned when no token is stored for a host.
var ErrNotFound = keyring.ErrNotFound

// Host normalizes a host name or URL into the keyring user name.
func Host(target string) string {
	if strings.Contains(target, "://") {
		if u, err := url.Parse(target); err == nil {
			target = u.Host
		}
	}
	return strings.ToLower(strings.TrimSpace(target))
}

// SetToken stores the token for host.
func SetToken(host, token string) error {
	if h := Host(host); h != "" {
		return keyring.Set(service, h, token)
	}
	return errors.New("empty host")
}

// GetToken returns the token stored for host.
func GetToken(host string) (string, error) {
	return keyring.Get(service, Host(host))
}

// DeleteToken removes the token stored for host.
func DeleteToken(host string) error {
	return keyring.Delete(service, Host(host))
}

// HeadersFor returns the Authorization header for locator, if a token is stored for its host.
func HeadersFor(locator string) map[string]string {
	token, err := GetToken(locator)
	if err != nil || token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}
