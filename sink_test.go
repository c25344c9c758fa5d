package sstable

import "bytes"

// memSink is an in-memory vfs.WritableFile backed by a bytes.Buffer,
// standing in for a real file in tests.
type memSink struct {
	buf    bytes.Buffer
	closed bool
}

func newMemSink() *memSink {
	return &memSink{}
}

func (s *memSink) Append(data []byte) error {
	_, err := s.buf.Write(data)
	return err
}

func (s *memSink) Sync() error {
	return nil
}

func (s *memSink) Size() (int64, error) {
	return int64(s.buf.Len()), nil
}

func (s *memSink) Close() error {
	s.closed = true
	return nil
}

// failingSink fails every Append after allowCount successful ones, to
// exercise sticky-status propagation.
type failingSink struct {
	allowCount int
	calls      int
}

func (s *failingSink) Append(data []byte) error {
	s.calls++
	if s.calls > s.allowCount {
		return errStub
	}
	return nil
}

func (s *failingSink) Sync() error          { return nil }
func (s *failingSink) Size() (int64, error) { return 0, nil }
func (s *failingSink) Close() error         { return nil }

type stubError string

func (e stubError) Error() string { return string(e) }

const errStub = stubError("sink: simulated write failure")
