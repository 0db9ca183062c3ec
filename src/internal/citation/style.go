// Package citation renders canonical records as citation strings.
package citation

import (
	"errors"
	"fmt"
	"strings"
)

// Style identifies a bibliographic style.
type Style string

const (
	ABNT      Style = "ABNT"
	APA       Style = "APA"
	MLA       Style = "MLA"
	Chicago   Style = "Chicago"
	Vancouver Style = "Vancouver"
	IEEE      Style = "IEEE"
)

// Styles lists every supported style in display order.
var Styles = []Style{ABNT, APA, MLA, Chicago, Vancouver, IEEE}

// ErrUnknownStyle is returned by ParseStyle for names outside Styles.
var ErrUnknownStyle = errors.New("unknown citation style")

// ParseStyle resolves a style name case-insensitively.
func ParseStyle(s string) (Style, error) {
	s = strings.TrimSpace(s)
	for _, st := range Styles {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// Names returns the style names, for flag help text.
func Names() []string {
	out := make([]string, len(Styles))
	for i, s := range Styles {
		out[i] = string(s)
	}
	return out
}
