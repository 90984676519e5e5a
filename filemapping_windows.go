package gettext

import (
	"errors"
	"os"
)

func mapFile(f *os.File) ([]byte, error) {
	return nil, errors.New("file mapping is not supported on windows")
}

func unmapFile(data []byte) error {
	return nil
}
