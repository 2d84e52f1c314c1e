package vfs

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	sourcevfs "github.com/solium-lang/source-vfs"
	resolveerrors "github.com/solium-lang/source-vfs/errors"
	"github.com/solium-lang/source-vfs/paths"
)

// FileReader resolves source unit names to file content within an
// allow-list sandbox. See the package documentation for the configuration
// lifecycle and the concurrency contract.
type FileReader struct {
	norm               *paths.Normalizer
	cache              *SourceCache
	basePath           string
	includePaths       []string
	allowedDirectories []string
}

// Option configures a FileReader at construction.
type Option func(*FileReader)

// WithWorkdir injects the working-directory provider used for path
// normalization. The default is paths.OSWorkdir.
func WithWorkdir(w paths.Workdir) Option {
	return func(fr *FileReader) {
		fr.norm = paths.NewNormalizer(w)
	}
}

// New creates a FileReader with an empty base path, no include paths and
// an empty allow-list. In that configuration source unit names equal
// normalized absolute paths and reads are confined to the working
// directory.
func New(opts ...Option) *FileReader {
	fr := &FileReader{
		norm:  paths.NewNormalizer(nil),
		cache: NewSourceCache(),
	}
	for _, opt := range opts {
		opt(fr)
	}
	return fr
}

// NewFileReader creates a FileReader for one compilation job. basePath may
// be empty; includePaths require a non-empty basePath; allowedDirectories
// must not contain empty entries.
func NewFileReader(basePath string, includePaths, allowedDirectories []string, opts ...Option) (*FileReader, error) {
	fr := New(opts...)
	if err := fr.SetBasePath(basePath); err != nil {
		return nil, err
	}
	for _, includePath := range includePaths {
		if err := fr.AddIncludePath(includePath); err != nil {
			return nil, err
		}
	}
	for _, dir := range allowedDirectories {
		if err := fr.AllowDirectory(dir); err != nil {
			return nil, err
		}
	}
	return fr, nil
}

// SetBasePath sets the primary virtual root. An empty path means "no
// scoping": source unit names equal normalized absolute paths. Clearing
// the base path while include paths are configured violates the
// configuration invariant.
func (fr *FileReader) SetBasePath(path string) error {
	if path == "" {
		if len(fr.includePaths) > 0 {
			return fmt.Errorf("vfs: cannot clear base path while %d include paths are configured", len(fr.includePaths))
		}
		fr.basePath = ""
		return nil
	}
	normalized, err := fr.norm.Normalize(path, false)
	if err != nil {
		return fmt.Errorf("vfs: base path: %w", err)
	}
	fr.basePath = normalized
	return nil
}

// AddIncludePath appends an additional root, consulted after the base path
// in configured order. Requires a non-empty base path.
func (fr *FileReader) AddIncludePath(path string) error {
	if fr.basePath == "" {
		return fmt.Errorf("vfs: include paths require a base path")
	}
	if path == "" {
		return fmt.Errorf("vfs: empty include path")
	}
	normalized, err := fr.norm.Normalize(path, false)
	if err != nil {
		return fmt.Errorf("vfs: include path: %w", err)
	}
	fr.includePaths = append(fr.includePaths, normalized)
	return nil
}

// AllowDirectory grants read access under dir, independent of the base and
// include paths. The entry is normalized at check time, with symlinks
// resolved, not at configuration time.
func (fr *FileReader) AllowDirectory(dir string) error {
	if dir == "" {
		return fmt.Errorf("vfs: empty allowed directory")
	}
	for _, existing := range fr.allowedDirectories {
		if existing == dir {
			return nil
		}
	}
	fr.allowedDirectories = append(fr.allowedDirectories, dir)
	return nil
}

// BasePath returns the normalized base path, or "" when unset.
func (fr *FileReader) BasePath() string {
	return fr.basePath
}

// IncludePaths returns the normalized include paths in configured order.
func (fr *FileReader) IncludePaths() []string {
	out := make([]string, len(fr.includePaths))
	copy(out, fr.includePaths)
	return out
}

// AllowedDirectories returns the configured allow-list entries as given.
func (fr *FileReader) AllowedDirectories() []string {
	out := make([]string, len(fr.allowedDirectories))
	copy(out, fr.allowedDirectories)
	return out
}

// SetSource derives a source unit name for path and inserts content
// directly into the cache, bypassing resolution and the allow-list.
func (fr *FileReader) SetSource(path, content string) error {
	name, err := fr.ToSourceUnitName(path)
	if err != nil {
		return err
	}
	fr.cache.Insert(name, content)
	return nil
}

// SetStdin caches content under the reserved stdin source unit name.
func (fr *FileReader) SetStdin(content string) {
	fr.cache.Insert(sourcevfs.StdinSourceName, content)
}

// SetSources replaces the entire cache.
func (fr *FileReader) SetSources(sources map[string]string) {
	fr.cache.Replace(sources)
}

// Sources returns a copy of the current cache content.
func (fr *FileReader) Sources() map[string]string {
	return fr.cache.Snapshot()
}

// Source retrieves the content cached under a source unit name.
func (fr *FileReader) Source(name string) (string, bool) {
	return fr.cache.Get(name)
}

// ToSourceUnitName maps a filesystem path to the portable name the rest of
// the compiler refers to the file by: the remainder after stripping the
// first configured root that contains it, or the normalized absolute path
// when no root matches.
func (fr *FileReader) ToSourceUnitName(path string) (string, error) {
	prefixes, err := fr.namerPrefixes()
	if err != nil {
		return "", err
	}
	normalized, err := fr.norm.Normalize(path, false)
	if err != nil {
		return "", err
	}
	for _, prefix := range prefixes {
		if paths.IsPrefix(prefix, normalized) {
			// Multiple prefixes can match; the first one wins.
			return paths.StripPrefixIfPresent(prefix, normalized), nil
		}
	}
	return normalized, nil
}

func (fr *FileReader) namerPrefixes() ([]string, error) {
	base := fr.basePath
	if base == "" {
		normalized, err := fr.norm.Normalize(".", false)
		if err != nil {
			return nil, err
		}
		base = normalized
	}
	return append([]string{base}, fr.includePaths...), nil
}

// ReadFile is the read callback served to the compiler's import resolver.
// kind must equal sourcevfs.KindReadFile. On success the content is cached
// under the original, unstripped sourceUnitName. Every failure, including
// an invariant violation surfacing as a panic, converts to a failure
// Result; nothing escapes this boundary as a fault.
func (fr *FileReader) ReadFile(kind, sourceUnitName string) (result sourcevfs.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = sourcevfs.Fail(fmt.Sprintf("Unhandled failure in read callback: %v", r))
		}
	}()

	if kind != sourcevfs.KindReadFile {
		return fr.fail(resolveerrors.Protocol(kind))
	}

	strippedName := strings.TrimPrefix(sourceUnitName, "file://")

	target, exists, err := fr.resolveTarget(strippedName)
	if err != nil {
		return fr.fail(resolveerrors.IO(strippedName, err))
	}

	allowed, err := fr.isAllowed(target)
	if err != nil {
		return fr.fail(resolveerrors.IO(target, err))
	}
	if !allowed {
		return fr.fail(resolveerrors.AccessDenied(target))
	}

	if !exists {
		return fr.fail(resolveerrors.NotFound(target))
	}

	info, err := os.Stat(target)
	if err != nil {
		return fr.fail(resolveerrors.FromOS(target, err))
	}
	if !info.Mode().IsRegular() {
		return fr.fail(resolveerrors.InvalidFile(target))
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return fr.fail(resolveerrors.FromOS(target, err))
	}

	content := string(data)
	fr.cache.Insert(sourceUnitName, content)
	Logger().Debug("source unit read",
		zap.String("name", sourceUnitName),
		zap.String("target", target),
		zap.Int("bytes", len(content)))
	return sourcevfs.Ok(content)
}

// resolveTarget walks the candidate roots in order and returns the first
// canonical candidate whose filesystem entry exists. When none exists, the
// candidate from the last root is returned so that a not-found error still
// names a deterministic path.
func (fr *FileReader) resolveTarget(strippedName string) (target string, exists bool, err error) {
	prefixes := append([]string{fr.basePath}, fr.includePaths...)
	for _, prefix := range prefixes {
		candidate, err := fr.norm.Normalize(joinCandidate(prefix, strippedName), true)
		if err != nil {
			return "", false, err
		}
		target = candidate
		if _, statErr := os.Stat(target); statErr == nil {
			return target, true, nil
		}
	}
	return target, false, nil
}

// joinCandidate appends a source unit name to a root the way the namer
// strips it: a rooted name does not replace the prefix, it nests under it.
func joinCandidate(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if strings.HasSuffix(prefix, "/") {
		return prefix + name
	}
	return prefix + "/" + name
}

// isAllowed checks the resolved target against the effective allow-list:
// the configured allowed directories, the base path (or the working
// directory when no base path is set) and the include paths, each
// normalized with symlinks resolved.
func (fr *FileReader) isAllowed(target string) (bool, error) {
	allowList := make([]string, 0, len(fr.allowedDirectories)+1+len(fr.includePaths))
	allowList = append(allowList, fr.allowedDirectories...)
	if fr.basePath == "" {
		allowList = append(allowList, ".")
	} else {
		allowList = append(allowList, fr.basePath)
	}
	allowList = append(allowList, fr.includePaths...)

	for _, dir := range allowList {
		normalized, err := fr.norm.Normalize(dir, true)
		if err != nil {
			return false, err
		}
		if paths.IsPrefix(normalized, target) {
			return true, nil
		}
	}
	Logger().Debug("target outside allowed directories", zap.String("target", target))
	return false, nil
}

func (fr *FileReader) fail(resErr *resolveerrors.Error) sourcevfs.Result {
	Logger().Debug("read callback failed",
		zap.String("kind", string(resErr.Kind)),
		zap.String("path", resErr.Path),
		zap.Error(resErr))
	return sourcevfs.Fail(resErr.Message())
}
