package sourcevfs

// KindReadFile is the capability tag for the file-read callback. It is the
// only kind the resolution service recognizes; any other value is a caller
// contract violation.
const KindReadFile = "source"

// StdinSourceName is the reserved source unit name under which stdin
// content is cached.
const StdinSourceName = "<stdin>"

// Result is the uniform outcome of a read callback. On success Value holds
// the file content; on failure it holds a human-readable diagnostic.
// Callers branch on Success only, never on the diagnostic text.
type Result struct {
	Success bool
	Value   string
}

// Ok wraps file content in a successful Result.
func Ok(content string) Result {
	return Result{Success: true, Value: content}
}

// Fail wraps a diagnostic message in a failed Result.
func Fail(message string) Result {
	return Result{Success: false, Value: message}
}

// ReadCallback is the contract between the resolution service and the
// compiler's import resolver. kind must equal KindReadFile.
type ReadCallback func(kind, sourceUnitName string) Result
