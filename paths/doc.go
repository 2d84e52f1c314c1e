// Package paths implements portable path canonicalization and prefix
// containment for the source-resolution layer.
//
// Normalize maps every lexically-equivalent spelling of a path to one
// canonical representative: absolute-or-rooted, forward-slash separated,
// free of . and .. segments, and idempotent. The canonical form doubles as
// the compiler's source unit name space and as the input to the prefix
// guard, so the algorithm is reproduced exactly rather than delegated to
// platform cleaning functions.
//
// # Canonical Form
//
//	/project/contracts/A.sol    regular file under a POSIX root
//	/project/contracts/         directory named by a trailing dot-form
//	//host/share/Token.sol      UNC-style root, root name preserved
//	C:/project/A.sol            drive root differing from the working dir's
//
// A trailing slash appears only when the final segment of the input was a
// dot-form (".", ".." or a trailing separator). Roots equal to the working
// directory's root are replaced by a bare "/" so names stay portable across
// machines that differ only in drive letter; UNC-style roots are exempt.
//
// # Prefix Containment
//
// IsPrefix and StripPrefixIfPresent operate on canonical paths only and
// decide ancestry lexically. A path is contained in itself. Feeding
// non-canonical input is a programming error and panics.
//
// # Working Directory
//
// Relative inputs resolve against an injected Workdir provider rather than
// process-global state. OSWorkdir reports the real working directory;
// FixedWorkdir pins it for deterministic tests. The provider's value is
// itself canonicalized with symlinks resolved on every platform.
package paths
