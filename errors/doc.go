// Package errors provides the structured error taxonomy of the
// source-resolution boundary.
//
// Errors are categorized by Kind. Exactly five kinds exist, and every
// fault that can occur during resolution maps to one of them:
//
//	KindProtocol      wrong capability tag; a caller contract violation
//	KindAccessDenied  resolved path outside every allow-list entry
//	KindNotFound      resolved path does not exist
//	KindInvalidFile   path exists but is not a regular file
//	KindIO            any other OS-level fault during resolution or reading
//
// Use the convenience constructors:
//
//	err := errors.AccessDenied("/etc/passwd")
//	err := errors.IO("/project/A.sol", osErr)
//
// FromOS is the single translation point for underlying filesystem faults;
// no raw OS error crosses the resolution boundary unconverted.
//
// All errors implement the standard error interface and support
// errors.Is/As. Message returns the stable human-readable diagnostic that
// callers see in a failed read result; callers branch on success/failure
// only, never on the message text.
package errors
