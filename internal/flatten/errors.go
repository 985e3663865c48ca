package flatten

import "fmt"

// Kind classifies a flatten failure for the ingest audit table.
type Kind string

const (
	KindUnsupportedFormat Kind = "unsupported_format"
	KindReadError         Kind = "read_error"
	KindDecodeError       Kind = "decode_error"
	KindParseError        Kind = "parse_error"
	KindZipNoCSV          Kind = "zip_no_csv"
)

// Error wraps a per-file failure with its audit classification.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorType returns the audit error classification for err, or "error"
// when the failure did not originate in this package.
func ErrorType(err error) string {
	if fe, ok := err.(*Error); ok {
		return string(fe.Kind)
	}
	return "error"
}

func failure(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}
