//go:build windows

package paths

import "strings"

// toSlash converts backslash separators so the portable core sees a single
// separator form. UNC prefixes ("\\host\share") become "//host/share"
// before root-name parsing.
func toSlash(p string) string { return strings.ReplaceAll(p, `\`, "/") }

// fromSlash is the identity; Windows filesystem APIs accept forward
// slashes.
func fromSlash(p string) string { return p }

// driveRootName returns the "C:"-style root name, if present.
func driveRootName(p string) string {
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		return p[:2]
	}
	return ""
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
