// Package status implements a tagged success/error value for the sstable
// writer, analogous to RocksDB's Status class.
//
// Reference: RocksDB v10.7.5 include/rocksdb/status.h
package status

import "fmt"

// Kind identifies the category of a Status.
type Kind int

const (
	// OK is the distinguished success kind. A Status with Kind OK is nil-like:
	// use Status.Ok() rather than comparing Kind directly.
	OK Kind = iota
	NotFound
	Corruption
	NotSupported
	InvalidArgument
	IOError
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case OK:
		return "OK"
	case NotFound:
		return "NotFound"
	case Corruption:
		return "Corruption"
	case NotSupported:
		return "NotSupported"
	case InvalidArgument:
		return "InvalidArgument"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Status is a tagged success/error value with an optional attached message.
// It implements the error interface, so it composes with errors.Is/errors.As
// and ordinary Go error-handling idioms.
type Status struct {
	kind Kind
	msg  string
}

// OKStatus is the distinguished success value.
var OKStatus = Status{kind: OK}

// New constructs a Status of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) Status {
	return Status{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NotFound status.
func NotFoundf(format string, args ...any) Status { return New(NotFound, format, args...) }

// Corruptionf builds a Corruption status.
func Corruptionf(format string, args ...any) Status { return New(Corruption, format, args...) }

// NotSupportedf builds a NotSupported status.
func NotSupportedf(format string, args ...any) Status { return New(NotSupported, format, args...) }

// InvalidArgumentf builds an InvalidArgument status.
func InvalidArgumentf(format string, args ...any) Status {
	return New(InvalidArgument, format, args...)
}

// IOErrorf builds an IOError status, typically wrapping a file-sink error.
func IOErrorf(format string, args ...any) Status { return New(IOError, format, args...) }

// FromError wraps a plain error as an IOError status. Returns OKStatus if err is nil.
func FromError(err error) Status {
	if err == nil {
		return OKStatus
	}
	return Status{kind: IOError, msg: err.Error()}
}

// Kind returns the status kind.
func (s Status) Kind() Kind { return s.kind }

// Ok reports whether the status represents success.
func (s Status) Ok() bool { return s.kind == OK }

// Error implements the error interface.
func (s Status) Error() string {
	if s.Ok() {
		return "OK"
	}
	if s.msg == "" {
		return s.kind.String()
	}
	return s.kind.String() + ": " + s.msg
}

// AsError returns nil when the status is OK, else the status itself as an error.
// Use this at API boundaries that want an idiomatic `error` return value.
func (s Status) AsError() error {
	if s.Ok() {
		return nil
	}
	return s
}
