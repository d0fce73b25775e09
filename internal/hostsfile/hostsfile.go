// Package hostsfile reads and writes the operating system hosts file.
package hostsfile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Path returns the hosts file location for goos.
func Path(goos string) string {
	if goos == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = `C:\Windows`
		}
		return filepath.Join(root, "System32", "drivers", "etc", "hosts")
	}
	return "/etc/hosts"
}

// File is a hosts file at a fixed path. It is overwritten whole on every
// write, with no locking and no backup.
type File struct {
	Path string
}

// System returns the hosts file of the running OS, or override when set.
func System(override string) *File {
	if override != "" {
		return &File{Path: override}
	}
	return &File{Path: Path(runtime.GOOS)}
}

// Read returns the current content of the file.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading hosts file: %w", err)
	}
	return string(data), nil
}

// Write replaces the content of the file.
func (f *File) Write(content string) error {
	if err := os.WriteFile(f.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing hosts file %s: %w", f.Path, err)
	}
	return nil
}

// Writable reports whether the file can be opened for writing, without
// truncating or modifying it.
func (f *File) Writable() bool {
	fh, err := os.OpenFile(f.Path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return false
	}
	fh.Close()
	return true
}
