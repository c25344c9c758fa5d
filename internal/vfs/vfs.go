// Package vfs provides the append-only file-sink abstraction the
// sstable writer needs. It is a writer-only subset of a full virtual
// filesystem: callers append bytes and flush; nothing here supports
// reading an SST file back.
//
// Reference: RocksDB v10.7.5 include/rocksdb/file_system.h
package vfs

import "os"

// FS creates writable files. Default is the real OS filesystem; tests
// substitute a bytes.Buffer-backed WritableFile directly and never need
// an FS at all.
type FS interface {
	// Create creates a new writable file, truncating it if it exists.
	Create(name string) (WritableFile, error)
}

// WritableFile is an append-only byte sink with an explicit flush and a
// running size, matching spec's "append-only byte sink with flush"
// treatment of the filesystem as an external collaborator.
type WritableFile interface {
	// Append writes data to the end of the file.
	Append(data []byte) error

	// Sync flushes buffered data to stable storage.
	Sync() error

	// Size returns the current file size.
	Size() (int64, error)

	// Close closes the file.
	Close() error
}

// osFS implements FS using the OS filesystem.
type osFS struct{}

// Default returns the default OS filesystem.
func Default() FS {
	return osFS{}
}

func (osFS) Create(name string) (WritableFile, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &osWritableFile{f: f}, nil
}

// osWritableFile wraps os.File to implement WritableFile.
type osWritableFile struct {
	f *os.File
}

func (wf *osWritableFile) Append(data []byte) error {
	_, err := wf.f.Write(data)
	return err
}

func (wf *osWritableFile) Sync() error {
	return wf.f.Sync()
}

func (wf *osWritableFile) Size() (int64, error) {
	info, err := wf.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (wf *osWritableFile) Close() error {
	return wf.f.Close()
}
