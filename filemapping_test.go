package gettext

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestOpenMappingRegularFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("catalogs are read, not mapped, on windows")
	}
	file, err := os.Open("testdata/test.po")
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	expected, err := os.ReadFile("testdata/test.po")
	if err != nil {
		t.Fatal(err)
	}

	c, err := openMapping(file)
	if err != nil {
		t.Fatal(err)
	}
	if !c.mapped() {
		t.Fatal("catalog was not mapped")
	}
	if !bytes.Equal(c.data, expected) {
		t.Errorf("unexpected catalog data: %q", c.data)
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if c.mapped() {
		t.Fatal("catalog still mapped after Close")
	}
	// A second Close does not unmap again.
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenMappingEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.po")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	c, err := openMapping(file)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.mapped() || len(c.data) != 0 {
		t.Errorf("unexpected catalog for an empty file: mapped=%v data=%q", c.mapped(), c.data)
	}
}

func TestOpenMappingPipe(t *testing.T) {
	// A pipe cannot be mapped, its content is read instead.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	const content = "msgid \"a\"\nmsgstr \"b\"\n"
	go func() {
		if _, err := w.Write([]byte(content)); err != nil {
			t.Error(err)
		}
		if err := w.Close(); err != nil {
			t.Error(err)
		}
	}()

	c, err := openMapping(r)
	if err != nil {
		t.Fatal(err)
	}
	if c.mapped() {
		t.Fatal("pipe content was mapped")
	}
	if string(c.data) != content {
		t.Errorf("unexpected data: %q", c.data)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}
