// Package sourcevfs provides the sandboxed source-resolution layer of the
// solium compiler front end.
//
// It turns caller-supplied filesystem paths into a canonical, portable
// identifier space (source unit names), restricts actual file reads to an
// explicit allow-list of directories, and serves file contents to the
// compiler's import resolver through a narrow callback contract.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	sourcevfs/       Root package with the read-callback contract
//	├── paths/       Portable path canonicalization and prefix containment
//	├── errors/      Structured error taxonomy for the resolution boundary
//	├── vfs/         Resolution service: roots, allow-list, source cache
//	└── layout/      Storage-layout report for compiled contracts
//
// # Quick Start
//
// Configure a file reader and resolve an import:
//
//	reader, err := vfs.NewFileReader("/project", []string{"/libs"}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := reader.ReadFile(sourcevfs.KindReadFile, "contracts/A.sol")
//	if !result.Success {
//	    fmt.Println("unresolved import:", result.Value)
//	}
//
// # Security Model
//
// Every read request is canonicalized through paths.Normalize and accepted
// only if the resolved target is contained, under lexical prefix
// containment, in at least one allow-list entry. Directory traversal,
// symlink, UNC-path, and separator-normalization tricks cannot move a read
// outside the permitted set. No failure of any kind propagates past the
// ReadFile boundary as a fault; every failure converts to a Result value.
//
// # Thread Safety
//
// A FileReader is driven by a single compilation job on one goroutine and
// performs no internal locking. Distinct jobs must own distinct instances;
// with that, running many jobs concurrently is safe.
package sourcevfs
