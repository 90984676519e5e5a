package gettext

import (
	"io"
	"os"
)

// catalogBytes holds the contents of a catalog file. Regular files are
// mapped into memory where the platform allows it; anything else is read
// into a buffer. Close must be called once the data is no longer used.
type catalogBytes struct {
	data  []byte
	unmap func([]byte) error
}

func (c *catalogBytes) mapped() bool {
	return c.unmap != nil
}

// Close releases the mapping. It is safe to call more than once.
func (c *catalogBytes) Close() error {
	if c.unmap == nil {
		return nil
	}
	unmap := c.unmap
	c.unmap = nil
	return unmap(c.data)
}

func openMapping(f *os.File) (*catalogBytes, error) {
	if data, err := mapFile(f); err == nil {
		return &catalogBytes{data: data, unmap: unmapFile}, nil
	}
	// mapFile never consumes input, so the file can still be read from
	// the start.
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &catalogBytes{data: data}, nil
}
