package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
)

// Normalizer canonicalizes arbitrary path strings into the portable form
// described in the package documentation.
type Normalizer struct {
	workdir Workdir
}

// NewNormalizer creates a normalizer resolving relative paths against
// workdir. A nil workdir selects OSWorkdir.
func NewNormalizer(workdir Workdir) *Normalizer {
	if workdir == nil {
		workdir = OSWorkdir()
	}
	return &Normalizer{workdir: workdir}
}

// Normalize canonicalizes path. With resolveSymlinks, the longest existing
// prefix is resolved through the filesystem and any non-existent suffix is
// normalized lexically; without it, normalization is purely lexical and
// never touches the filesystem.
//
// Post-conditions for every output: absolute-or-rooted, slash-separated,
// no . or .. segments, idempotent, case-preserving. A trailing slash is
// present only when the final segment of the input was a dot-form.
func (n *Normalizer) Normalize(path string, resolveSymlinks bool) (string, error) {
	rawWorkdir, err := n.workdir.Current()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	// The working directory has its symlinks resolved on every platform so
	// that results are consistent across systems.
	canonWorkdir, err := weaklyCanonical(toSlash(rawWorkdir))
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	workdir := parse(canonWorkdir)

	abs := parse(toSlash(path))
	if !abs.isAbsolute() {
		abs = workdir.join(abs)
	}

	var norm parsedPath
	if resolveSymlinks {
		resolved, err := weaklyCanonical(abs.String())
		if err != nil {
			return "", err
		}
		norm = parse(resolved).normalize()
		// Canonicalization drops the trailing slash these three inputs
		// imply; put it back.
		if path == "." || path == "./" || path == "../" {
			norm.dirSuffix = true
		}
	} else {
		norm = abs.normalize()
	}

	// Roots matching the working directory's root are not portable
	// information; drop them. UNC-style roots are exempt because "/" does
	// not refer to the root of a UNC share.
	if !isUNCRootName(norm.rootName) && norm.rootName == workdir.rootName {
		norm.rootName = ""
	}

	return norm.stripEscaping().String(), nil
}

// weaklyCanonical resolves symlinks in the longest existing prefix of a
// rooted slash-separated path and appends the remaining segments
// lexically. Non-existence is not an error; any other filesystem fault is.
func weaklyCanonical(path string) (string, error) {
	p := path
	var suffix []string
	for {
		resolved, err := filepath.EvalSymlinks(fromSlash(p))
		if err == nil {
			p = toSlash(resolved)
			break
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			return "", err
		}
		parent, base := splitLast(p)
		if parent == p {
			// Nothing on this root exists; the whole path stays lexical.
			break
		}
		if base != "" {
			suffix = append(suffix, base)
		}
		p = parent
	}
	pp := parse(p)
	for i := len(suffix) - 1; i >= 0; i-- {
		pp.segments = append(pp.segments, suffix[i])
	}
	pp.dirSuffix = false
	return pp.normalize().String(), nil
}

// splitLast removes the final segment while keeping the root intact.
// filepath.Dir is unsuitable here: it would fold a UNC-style "//host" root
// into "/host".
func splitLast(p string) (parent, base string) {
	pp := parse(p)
	if len(pp.segments) == 0 {
		return p, ""
	}
	base = pp.segments[len(pp.segments)-1]
	pp.segments = pp.segments[:len(pp.segments)-1]
	pp.dirSuffix = false
	return pp.String(), base
}

// IsPrefix reports whether prefix is an ancestor of, or equal to, path.
// Both arguments must already be canonical (see mustParseCanonical);
// violating that is a programming error, not a recoverable failure.
//
// A prefix naming a directory by a trailing dot-form is treated as the
// directory itself, and a path is considered contained in itself.
func IsPrefix(prefix, path string) bool {
	pre := mustParseCanonical("prefix", prefix)
	pt := mustParseCanonical("path", path)
	_, ok := relativeTo(pre, pt)
	return ok
}

// StripPrefixIfPresent returns the remainder of path relative to prefix
// when IsPrefix holds, and path unchanged otherwise. The remainder for a
// path equal to its prefix is ".".
func StripPrefixIfPresent(prefix, path string) string {
	pre := mustParseCanonical("prefix", prefix)
	pt := mustParseCanonical("path", path)
	rel, ok := relativeTo(pre, pt)
	if !ok {
		return path
	}
	return rel
}

// relativeTo computes the lexical remainder of path relative to prefix.
// Containment holds iff the remainder is non-empty and does not begin with
// a .. segment; with canonical inputs that reduces to a segment-wise
// prefix match under an identical root.
func relativeTo(prefix, path parsedPath) (string, bool) {
	if prefix.rootName != path.rootName || prefix.rooted != path.rooted {
		return "", false
	}
	if len(prefix.segments) > len(path.segments) {
		return "", false
	}
	for i, seg := range prefix.segments {
		if path.segments[i] != seg {
			return "", false
		}
	}
	rest := path.segments[len(prefix.segments):]
	if len(rest) == 0 {
		return ".", true
	}
	out := strings.Join(rest, "/")
	if path.dirSuffix {
		out += "/"
	}
	return out, true
}

// mustParseCanonical panics unless p is in the canonical form produced by
// Normalize: rooted, slash-separated, free of . and .. segments, no
// redundant separators.
func mustParseCanonical(arg, p string) parsedPath {
	pp := parse(p)
	if !pp.isAbsolute() {
		panic(fmt.Sprintf("paths: %s %q is not rooted", arg, p))
	}
	for _, seg := range pp.segments {
		if seg == "." || seg == ".." {
			panic(fmt.Sprintf("paths: %s %q contains a %s segment", arg, p, seg))
		}
	}
	if pp.String() != p {
		panic(fmt.Sprintf("paths: %s %q is not canonical", arg, p))
	}
	return pp
}
