package gettext

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// buildMO encodes msgs, a list of (msgid, msgstr) pairs, as a mo file.
func buildMO(order binary.ByteOrder, msgs [][2]string) []byte {
	n := uint32(len(msgs))
	h := header{
		Magic:          le_magic,
		NumStrings:     n,
		OrigTabOffset:  28,
		TransTabOffset: 28 + 8*n,
	}
	dataOffset := 28 + 16*n

	var strs bytes.Buffer
	origTab := make([]uint32, 0, 2*n)
	transTab := make([]uint32, 0, 2*n)
	for _, msg := range msgs {
		origTab = append(origTab, uint32(len(msg[0])), dataOffset+uint32(strs.Len()))
		strs.WriteString(msg[0])
		strs.WriteByte(0)
	}
	for _, msg := range msgs {
		transTab = append(transTab, uint32(len(msg[1])), dataOffset+uint32(strs.Len()))
		strs.WriteString(msg[1])
		strs.WriteByte(0)
	}

	var buf bytes.Buffer
	binary.Write(&buf, order, &h)
	binary.Write(&buf, order, origTab)
	binary.Write(&buf, order, transTab)
	buf.Write(strs.Bytes())
	return buf.Bytes()
}

var moMessages = [][2]string{
	{"", "Project-Id-Version: mo test\nContent-Type: text/plain; charset=UTF-8\nPlural-Forms: nplurals=3; plural=n==1 ? 0 : n==2 ? 1 : 2;\nX-Comment: first line\n  second line\n"},
	{"apple\x00apples", "Apfel\x00zwei Äpfel\x00Äpfel"},
	{"greeting", "Hallo"},
	{"knot\x04bow", "Schleife"},
}

func TestParseMO(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		data := buildMO(order, moMessages)
		if !isMO(data) {
			t.Fatalf("%v: magic not recognised", order)
		}
		f, err := parseMO(data)
		if err != nil {
			t.Fatalf("%v: %v", order, err)
		}
		assertDeepEqual(t, map[string]string{
			"project-id-version": "mo test",
			"content-type":       "text/plain; charset=UTF-8",
			"plural-forms":       "nplurals=3; plural=n==1 ? 0 : n==2 ? 1 : 2;",
			"x-comment":          "first line\nsecond line",
		}, f.Header)
		assertDeepEqual(t, []string{"Apfel", "zwei Äpfel", "Äpfel"}, f.Entries["apple"].Translations)
		assert_equal(t, "apples", f.Entries["apple"].PluralID)
		assert_equal(t, "Hallo", f.Entries["greeting"].Translation(0))
		assert_equal(t, "Schleife", f.Entries["knot\x04bow"].Translation(0))
	}
}

func TestParseMOErrors(t *testing.T) {
	good := buildMO(binary.LittleEndian, moMessages)

	_, err := parseMO(good[:10])
	if err == nil {
		t.Error("short data parsed")
	}

	_, err = parseMO([]byte("msgid \"a\"\nmsgstr \"b\"\nmsgid \"c\"\n"))
	if !errors.Is(err, ErrNotMO) {
		t.Errorf("expected ErrNotMO, got %v", err)
	}

	badVersion := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(badVersion[4:], 2<<16)
	if _, err := parseMO(badVersion); err == nil {
		t.Error("unsupported version parsed")
	}

	badTable := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(badTable[12:], uint32(len(good)))
	if _, err := parseMO(badTable); err == nil {
		t.Error("out of bounds table parsed")
	}

	badString := append([]byte(nil), good...)
	// Length of the first original string.
	binary.LittleEndian.PutUint32(badString[28:], uint32(len(good)))
	if _, err := parseMO(badString); err == nil {
		t.Error("out of bounds string parsed")
	}
}

func TestLoadMO(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruit.mo")
	if err := os.WriteFile(path, buildMO(binary.BigEndian, moMessages), 0644); err != nil {
		t.Fatal(err)
	}

	trans := NewTranslations(WithLocale("de"), WithTextDomain("fruit"))
	if _, err := trans.LoadFile(path, "de"); err != nil {
		t.Fatal(err)
	}
	assertDeepEqual(t, []string{"fruit"}, trans.Domains("de"))
	assert_equal(t, "Hallo", trans.Gettext("greeting"))
	assert_equal(t, "Schleife", trans.PGettext("knot", "bow"))
	assert_equal(t, "Apfel", trans.NGettext("apple", "apples", 1))
	assert_equal(t, "zwei Äpfel", trans.NGettext("apple", "apples", 2))
	assert_equal(t, "Äpfel", trans.NGettext("apple", "apples", 3))
}
