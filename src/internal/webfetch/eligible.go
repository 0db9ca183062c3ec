package webfetch

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrRestricted marks browser-internal pages whose metadata cannot be read.
var ErrRestricted = errors.New("restricted page")

// ErrUnsupported marks URLs that are neither restricted nor fetchable.
var ErrUnsupported = errors.New("unsupported url")

var restrictedSchemes = []string{"chrome", "edge", "about", "moz-extension", "chrome-extension", "comet"}

// Eligible reports whether metadata can be read from raw. Browser-internal
// schemes and unparseable URLs yield ErrRestricted; other non-http(s)
// schemes yield ErrUnsupported.
func Eligible(raw string) error {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("%w: %q", ErrRestricted, raw)
	}
	scheme := strings.ToLower(u.Scheme)
	for _, s := range restrictedSchemes {
		if scheme == s {
			return fmt.Errorf("%w: %s: pages are not readable", ErrRestricted, scheme)
		}
	}
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("%w: %s", ErrUnsupported, scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrUnsupported, raw)
	}
	return nil
}

// hostOf returns the lower-cased host without a leading "www.".
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
