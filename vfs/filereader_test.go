package vfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	sourcevfs "github.com/solium-lang/source-vfs"
	"github.com/solium-lang/source-vfs/paths"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func newReader(t *testing.T, basePath string, includePaths, allowedDirectories []string, opts ...Option) *FileReader {
	t.Helper()
	reader, err := NewFileReader(basePath, includePaths, allowedDirectories, opts...)
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	return reader
}

func TestReadFile_UnderBasePath(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "contracts", "A.sol"), "contract A {}\n")

	reader := newReader(t, base, nil, nil)
	res := reader.ReadFile(sourcevfs.KindReadFile, "contracts/A.sol")
	if !res.Success {
		t.Fatalf("ReadFile failed: %s", res.Value)
	}
	if res.Value != "contract A {}\n" {
		t.Errorf("ReadFile content = %q", res.Value)
	}

	cached, ok := reader.Source("contracts/A.sol")
	if !ok || cached != "contract A {}\n" {
		t.Errorf("Source(%q) = %q, %v", "contracts/A.sol", cached, ok)
	}
}

func TestReadFile_IncludePathFallback(t *testing.T) {
	base := t.TempDir()
	libs := t.TempDir()
	writeFile(t, filepath.Join(libs, "Token.sol"), "library Token {}\n")

	reader := newReader(t, base, []string{libs}, nil)
	res := reader.ReadFile(sourcevfs.KindReadFile, "Token.sol")
	if !res.Success {
		t.Fatalf("ReadFile failed: %s", res.Value)
	}
	if res.Value != "library Token {}\n" {
		t.Errorf("ReadFile content = %q", res.Value)
	}
}

func TestReadFile_BasePathShadowsIncludePaths(t *testing.T) {
	base := t.TempDir()
	libs := t.TempDir()
	writeFile(t, filepath.Join(base, "Token.sol"), "from base\n")
	writeFile(t, filepath.Join(libs, "Token.sol"), "from libs\n")

	reader := newReader(t, base, []string{libs}, nil)
	res := reader.ReadFile(sourcevfs.KindReadFile, "Token.sol")
	if !res.Success {
		t.Fatalf("ReadFile failed: %s", res.Value)
	}
	if res.Value != "from base\n" {
		t.Errorf("ReadFile content = %q, want the base path candidate", res.Value)
	}
}

func TestReadFile_RejectsUnknownCallbackKind(t *testing.T) {
	reader := newReader(t, t.TempDir(), nil, nil)
	res := reader.ReadFile("bytecode", "whatever")
	if res.Success {
		t.Fatal("expected failure for an unknown callback kind")
	}
	want := "ReadFile callback used as callback kind bytecode"
	if res.Value != want {
		t.Errorf("diagnostic = %q, want %q", res.Value, want)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	reader := newReader(t, t.TempDir(), nil, nil)
	res := reader.ReadFile(sourcevfs.KindReadFile, "missing.sol")
	if res.Success {
		t.Fatal("expected failure for a missing file")
	}
	if res.Value != "File not found." {
		t.Errorf("diagnostic = %q", res.Value)
	}
}

func TestReadFile_RejectsDirectoryTarget(t *testing.T) {
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, "sub"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	reader := newReader(t, base, nil, nil)
	res := reader.ReadFile(sourcevfs.KindReadFile, "sub")
	if res.Success {
		t.Fatal("expected failure for a directory target")
	}
	if res.Value != "Not a valid file." {
		t.Errorf("diagnostic = %q", res.Value)
	}
}

func TestReadFile_DeniesTraversalOutsideSandbox(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "A.sol"), "ok\n")
	reader := newReader(t, base, nil, nil)

	names := []string{
		"..",
		"../x",
		"./../x",
		"a/../../x",
		strings.Repeat("../", 40) + "etc/passwd",
		"file://" + strings.Repeat("../", 40) + "etc/passwd",
	}
	for _, name := range names {
		res := reader.ReadFile(sourcevfs.KindReadFile, name)
		if res.Success {
			t.Errorf("ReadFile(%q) succeeded, expected sandbox denial", name)
			continue
		}
		if res.Value != "File outside of allowed directories." {
			t.Errorf("ReadFile(%q) diagnostic = %q", name, res.Value)
		}
	}
}

func TestReadFile_DeniesSymlinkEscape(t *testing.T) {
	base := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret.txt"), "secret\n")
	if err := os.Symlink(outside, filepath.Join(base, "vendor")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	reader := newReader(t, base, nil, nil)
	res := reader.ReadFile(sourcevfs.KindReadFile, "vendor/secret.txt")
	if res.Success {
		t.Fatal("expected denial: the symlink target is outside the sandbox")
	}
	if res.Value != "File outside of allowed directories." {
		t.Errorf("diagnostic = %q", res.Value)
	}
}

func TestReadFile_AllowedDirectoryGrantsAccess(t *testing.T) {
	workdir := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "lib.sol"), "library L {}\n")

	denied := New(WithWorkdir(paths.FixedWorkdir(workdir)))
	res := denied.ReadFile(sourcevfs.KindReadFile, filepath.Join(outside, "lib.sol"))
	if res.Success {
		t.Fatal("expected denial without an allow-list entry")
	}
	if res.Value != "File outside of allowed directories." {
		t.Errorf("diagnostic = %q", res.Value)
	}

	granted := New(WithWorkdir(paths.FixedWorkdir(workdir)))
	if err := granted.AllowDirectory(outside); err != nil {
		t.Fatalf("AllowDirectory failed: %v", err)
	}
	res = granted.ReadFile(sourcevfs.KindReadFile, filepath.Join(outside, "lib.sol"))
	if !res.Success {
		t.Fatalf("ReadFile failed: %s", res.Value)
	}
	if res.Value != "library L {}\n" {
		t.Errorf("ReadFile content = %q", res.Value)
	}
}

func TestReadFile_DeniesForeignRootName(t *testing.T) {
	reader := New(WithWorkdir(paths.FixedWorkdir(t.TempDir())))
	res := reader.ReadFile(sourcevfs.KindReadFile, "//attacker/share/x.sol")
	if res.Success {
		t.Fatal("expected denial for a foreign root name")
	}
	if res.Value != "File outside of allowed directories." {
		t.Errorf("diagnostic = %q", res.Value)
	}
}

func TestReadFile_FileURLPrefixStrippedForLookupOnly(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "contracts", "A.sol"), "contract A {}\n")

	reader := newReader(t, base, nil, nil)
	res := reader.ReadFile(sourcevfs.KindReadFile, "file://contracts/A.sol")
	if !res.Success {
		t.Fatalf("ReadFile failed: %s", res.Value)
	}

	// The cache key keeps the scheme prefix the caller used.
	if _, ok := reader.Source("file://contracts/A.sol"); !ok {
		t.Error("content not cached under the original name")
	}
	if _, ok := reader.Source("contracts/A.sol"); ok {
		t.Error("content unexpectedly cached under the stripped name")
	}
}

func TestReadFile_EmptyNameResolvesToBaseDirectory(t *testing.T) {
	reader := newReader(t, t.TempDir(), nil, nil)
	res := reader.ReadFile(sourcevfs.KindReadFile, "")
	if res.Success {
		t.Fatal("expected failure for an empty source unit name")
	}
	if res.Value != "Not a valid file." {
		t.Errorf("diagnostic = %q", res.Value)
	}
}

func TestConfigurationInvariants(t *testing.T) {
	t.Run("include path requires base path", func(t *testing.T) {
		reader := New()
		if err := reader.AddIncludePath("/libs"); err == nil {
			t.Error("expected error adding an include path without a base path")
		}
		if _, err := NewFileReader("", []string{"/libs"}, nil); err == nil {
			t.Error("expected NewFileReader to reject include paths without a base path")
		}
	})

	t.Run("clearing base path with include paths", func(t *testing.T) {
		reader := newReader(t, "/project", []string{"/libs"}, nil,
			WithWorkdir(paths.FixedWorkdir("/fixture/work")))
		if err := reader.SetBasePath(""); err == nil {
			t.Error("expected error clearing the base path while include paths exist")
		}
	})

	t.Run("empty entries rejected", func(t *testing.T) {
		reader := New()
		if err := reader.AllowDirectory(""); err == nil {
			t.Error("expected error for an empty allowed directory")
		}
		if err := reader.SetBasePath("/p"); err != nil {
			t.Fatalf("SetBasePath failed: %v", err)
		}
		if err := reader.AddIncludePath(""); err == nil {
			t.Error("expected error for an empty include path")
		}
	})

	t.Run("duplicate allowed directories collapse", func(t *testing.T) {
		reader := New()
		if err := reader.AllowDirectory("/a"); err != nil {
			t.Fatalf("AllowDirectory failed: %v", err)
		}
		if err := reader.AllowDirectory("/a"); err != nil {
			t.Fatalf("AllowDirectory failed: %v", err)
		}
		if got := reader.AllowedDirectories(); len(got) != 1 {
			t.Errorf("AllowedDirectories() = %v, want one entry", got)
		}
	})
}

func TestToSourceUnitName(t *testing.T) {
	reader := newReader(t, "/project", []string{"/libs"}, nil,
		WithWorkdir(paths.FixedWorkdir("/fixture/work")))

	tests := []struct {
		path string
		want string
	}{
		{"/project/contracts/A.sol", "contracts/A.sol"},
		{"/libs/Token.sol", "Token.sol"},
		{"/elsewhere/B.sol", "/elsewhere/B.sol"},
		{"/project", "."},
		// A relative path is resolved against the working directory,
		// which is outside both roots here.
		{"contracts/C.sol", "/fixture/work/contracts/C.sol"},
	}

	for _, tt := range tests {
		got, err := reader.ToSourceUnitName(tt.path)
		if err != nil {
			t.Fatalf("ToSourceUnitName(%q) failed: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("ToSourceUnitName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestToSourceUnitName_EmptyBaseUsesWorkingDirectory(t *testing.T) {
	reader := New(WithWorkdir(paths.FixedWorkdir("/fixture/work")))

	got, err := reader.ToSourceUnitName("/fixture/work/x.sol")
	if err != nil {
		t.Fatalf("ToSourceUnitName failed: %v", err)
	}
	if got != "x.sol" {
		t.Errorf("ToSourceUnitName = %q, want %q", got, "x.sol")
	}

	got, err = reader.ToSourceUnitName("/other/y.sol")
	if err != nil {
		t.Fatalf("ToSourceUnitName failed: %v", err)
	}
	if got != "/other/y.sol" {
		t.Errorf("ToSourceUnitName = %q, want %q", got, "/other/y.sol")
	}
}

func TestSetSource(t *testing.T) {
	reader := newReader(t, "/project", nil, nil,
		WithWorkdir(paths.FixedWorkdir("/fixture/work")))

	if err := reader.SetSource("/project/contracts/A.sol", "pragma solidity;\n"); err != nil {
		t.Fatalf("SetSource failed: %v", err)
	}
	got, ok := reader.Source("contracts/A.sol")
	if !ok || got != "pragma solidity;\n" {
		t.Errorf("Source(%q) = %q, %v", "contracts/A.sol", got, ok)
	}
}

func TestSetStdin(t *testing.T) {
	reader := New(WithWorkdir(paths.FixedWorkdir("/fixture/work")))
	reader.SetStdin("contract FromStdin {}\n")

	got, ok := reader.Source(sourcevfs.StdinSourceName)
	if !ok || got != "contract FromStdin {}\n" {
		t.Errorf("Source(%q) = %q, %v", sourcevfs.StdinSourceName, got, ok)
	}
}

func TestSetSources_ReplacesCache(t *testing.T) {
	reader := New(WithWorkdir(paths.FixedWorkdir("/fixture/work")))
	reader.SetStdin("old\n")

	reader.SetSources(map[string]string{"a.sol": "contract A {}\n"})

	if _, ok := reader.Source(sourcevfs.StdinSourceName); ok {
		t.Error("previous cache entry survived SetSources")
	}
	sources := reader.Sources()
	if len(sources) != 1 || sources["a.sol"] != "contract A {}\n" {
		t.Errorf("Sources() = %v", sources)
	}
}
