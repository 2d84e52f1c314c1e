// Package vfs implements the resolution service of the source-resolution
// layer: it resolves source unit names against configured roots, enforces
// the directory allow-list, performs bounded reads and maintains the
// name-to-content source cache.
//
// # Quick Start
//
//	reader, err := vfs.NewFileReader("/project", []string{"/libs"}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := reader.ReadFile(sourcevfs.KindReadFile, "contracts/A.sol")
//
// # Configuration Lifecycle
//
// A FileReader is constructed once per compilation job. SetBasePath,
// AddIncludePath and AllowDirectory belong to the setup phase and must
// complete before the first ReadFile call; interleaving them with reads is
// undefined behavior by contract. Invariants: an empty base path excludes
// include paths, and no allow-list entry may be empty.
//
// # Thread Safety
//
// FileReader is NOT thread-safe and performs no internal locking. One
// instance is driven by one compilation job on one goroutine; distinct
// jobs own distinct instances.
package vfs
