//go:build !windows

package gettext

import (
	"errors"
	"fmt"
	"math"
	"os"
	"syscall"
)

var errNotMappable = errors.New("not mappable")

// mapFile maps a non-empty regular file read-only.
func mapFile(f *os.File) ([]byte, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	switch size := fi.Size(); {
	case !fi.Mode().IsRegular(), size == 0:
		return nil, errNotMappable
	case size > math.MaxInt:
		return nil, fmt.Errorf("catalog %s is too large", fi.Name())
	default:
		return syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_PRIVATE)
	}
}

func unmapFile(data []byte) error {
	return syscall.Munmap(data)
}
