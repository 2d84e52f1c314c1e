package paths

import "strings"

// parsedPath is the portable internal form of a path: a root name (empty on
// plain POSIX roots, "//host" for UNC-style roots, "C:" for drive roots on
// Windows), a root-directory flag, and the raw segments. dirSuffix records
// that the final segment of the original spelling was a dot-form (".", ".."
// or a trailing separator); it renders as a trailing slash.
type parsedPath struct {
	rootName  string
	rooted    bool
	segments  []string
	dirSuffix bool
}

// parse splits an already slash-separated path. It collapses repeated
// separators but does not touch . or .. segments.
func parse(p string) parsedPath {
	var pp parsedPath
	if drive := driveRootName(p); drive != "" {
		pp.rootName = drive
		p = p[len(drive):]
	} else if strings.HasPrefix(p, "//") && (len(p) == 2 || p[2] != '/') {
		// Exactly two leading slashes introduce a UNC-style root name;
		// three or more collapse to an ordinary root.
		if end := strings.IndexByte(p[2:], '/'); end >= 0 {
			pp.rootName = p[:2+end]
			p = p[2+end:]
		} else {
			pp.rootName = p
			p = ""
		}
	}
	if strings.HasPrefix(p, "/") {
		pp.rooted = true
	}
	trailingSep := strings.HasSuffix(p, "/") && p != "/"
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			pp.segments = append(pp.segments, seg)
		}
	}
	if n := len(pp.segments); n > 0 {
		last := pp.segments[n-1]
		pp.dirSuffix = trailingSep || last == "." || last == ".."
	}
	return pp
}

// isAbsolute reports whether the path needs no working-directory prefix.
func (pp parsedPath) isAbsolute() bool {
	return pp.rooted || pp.rootName != ""
}

// join appends rel's segments to base. rel must not be absolute.
func (base parsedPath) join(rel parsedPath) parsedPath {
	out := base
	out.segments = make([]string, 0, len(base.segments)+len(rel.segments))
	out.segments = append(out.segments, base.segments...)
	out.segments = append(out.segments, rel.segments...)
	if len(rel.segments) > 0 {
		out.dirSuffix = rel.dirSuffix
	} else {
		// An empty relative path leaves the base untouched; this is how an
		// empty input becomes the working directory.
		out.dirSuffix = base.dirSuffix
	}
	return out
}

// normalize collapses . segments and resolves .. against preceding
// segments. Leading .. runs on a rooted path are kept; stripEscaping
// removes them as a separate, mandatory step.
func (pp parsedPath) normalize() parsedPath {
	out := make([]string, 0, len(pp.segments))
	for _, seg := range pp.segments {
		switch seg {
		case ".":
		case "..":
			if n := len(out); n > 0 && out[n-1] != ".." {
				out = out[:n-1]
			} else {
				out = append(out, "..")
			}
		default:
			out = append(out, seg)
		}
	}
	pp.segments = out
	return pp
}

// stripEscaping removes the leading run of .. segments that would escape
// above the root. Lexical normalization alone cannot remove them; this is
// a required post-condition of Normalize, not best-effort.
func (pp parsedPath) stripEscaping() parsedPath {
	i := 0
	for i < len(pp.segments) && pp.segments[i] == ".." {
		i++
	}
	pp.segments = pp.segments[i:]
	return pp
}

// String renders the path with forward slashes. The degenerate dot-form at
// the root ("/.") collapses to "/".
func (pp parsedPath) String() string {
	var b strings.Builder
	b.WriteString(pp.rootName)
	if pp.rooted {
		b.WriteByte('/')
	}
	b.WriteString(strings.Join(pp.segments, "/"))
	if pp.dirSuffix && len(pp.segments) > 0 {
		b.WriteByte('/')
	}
	return b.String()
}

// isUNCRootName reproduces the original root-name heuristic literally,
// boundary conditions included. Do not "fix" the length comparisons without
// a test demonstrating a concrete misclassification.
func isUNCRootName(rootName string) bool {
	if !(len(rootName) == 2 || (len(rootName) > 2 && rootName[2] != rootName[1])) {
		return false
	}
	return rootName[0] == '/' && rootName[1] == '/'
}
