//go:build !windows

package paths

// toSlash is the identity on POSIX systems, where the backslash is an
// ordinary filename character, not a separator.
func toSlash(p string) string { return p }

// fromSlash is the identity on POSIX systems.
func fromSlash(p string) string { return p }

// driveRootName reports no drive-style root on POSIX systems.
func driveRootName(string) string { return "" }
