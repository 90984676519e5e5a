package gettext

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/DanielBaulig/go-gettext/po"
)

const le_magic = 0x950412de
const be_magic = 0xde120495

// ErrNotMO is returned for data that does not start with a mo file magic
// number.
var ErrNotMO = errors.New("not a mo file")

type header struct {
	Magic          uint32
	Version        uint32
	NumStrings     uint32
	OrigTabOffset  uint32
	TransTabOffset uint32
	HashTabSize    uint32
	HashTabOffset  uint32
}

func (header header) get_major_version() uint32 {
	return header.Version >> 16
}

func (header header) get_minor_version() uint32 {
	return header.Version & 0xffff
}

func isMO(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	magic := binary.LittleEndian.Uint32(data)
	return magic == le_magic || magic == be_magic
}

// moReader walks the string tables of a mo file.
type moReader struct {
	data  []byte
	order binary.ByteOrder

	numStrings int
	origTab    []byte
	transTab   []byte
}

func (r *moReader) str(table []byte, idx int) []byte {
	strLen := r.order.Uint32(table[8*idx:])
	strOffset := r.order.Uint32(table[8*idx+4:])
	return r.data[strOffset : strOffset+strLen]
}

func validateStringTable(data []byte, table []byte, numStrings int, order binary.ByteOrder) error {
	for i := 0; i < numStrings; i++ {
		strLen := order.Uint32(table[8*i:])
		strOffset := order.Uint32(table[8*i+4:])
		if uint64(strLen)+uint64(strOffset) > uint64(len(data)) {
			return fmt.Errorf("string %d data (len=%x, offset=%x) is out of bounds", i, strLen, strOffset)
		}
	}
	return nil
}

func stringTable(data []byte, offset, numStrings uint32) ([]byte, error) {
	end := uint64(offset) + 8*uint64(numStrings)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("string table out of bounds")
	}
	return data[offset:end], nil
}

// parseMO decodes a compiled catalog into the same shape the PO parser
// produces. The hash table is not needed since every string is copied out.
func parseMO(data []byte) (*po.File, error) {
	var header header
	headerSize := binary.Size(&header)
	if len(data) < headerSize {
		return nil, fmt.Errorf("message catalogue is too short")
	}

	var order binary.ByteOrder = binary.LittleEndian
	switch magic := order.Uint32(data); magic {
	case le_magic:
		// nothing
	case be_magic:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: wrong magic %#x", ErrNotMO, magic)
	}
	if err := binary.Read(bytes.NewReader(data[:headerSize]), order, &header); err != nil {
		return nil, err
	}
	if header.get_major_version() != 0 && header.get_major_version() != 1 {
		return nil, fmt.Errorf("unsupported version: %d.%d", header.get_major_version(), header.get_minor_version())
	}

	origTab, err := stringTable(data, header.OrigTabOffset, header.NumStrings)
	if err != nil {
		return nil, fmt.Errorf("original %v", err)
	}
	transTab, err := stringTable(data, header.TransTabOffset, header.NumStrings)
	if err != nil {
		return nil, fmt.Errorf("translated %v", err)
	}
	r := &moReader{
		data:       data,
		order:      order,
		numStrings: int(header.NumStrings),
		origTab:    origTab,
		transTab:   transTab,
	}
	if err := validateStringTable(data, origTab, r.numStrings, order); err != nil {
		return nil, err
	}
	if err := validateStringTable(data, transTab, r.numStrings, order); err != nil {
		return nil, err
	}

	f := &po.File{
		Header:  make(map[string]string),
		Entries: make(map[string]po.Entry, r.numStrings),
	}
	for i := 0; i < r.numStrings; i++ {
		// msgid and msgid_plural, and the plural forms of msgstr,
		// are separated by NUL bytes.
		ids := strings.Split(string(r.str(r.origTab, i)), "\x00")
		strs := strings.Split(string(r.str(r.transTab, i)), "\x00")
		if ids[0] == "" {
			readInfo(f.Header, strs[0])
			continue
		}
		entry := po.Entry{Translations: strs}
		if len(ids) > 1 {
			entry.PluralID, entry.HasPlural = ids[1], true
		}
		f.Entries[ids[0]] = entry
	}
	return f, nil
}

// readInfo parses the header stored as the translation of the empty msgid.
// Lines without a colon continue the previous field.
func readInfo(info map[string]string, text string) {
	lastk := ""
	for _, line := range strings.Split(text, "\n") {
		item := strings.TrimSpace(line)
		if len(item) == 0 {
			continue
		}
		if k, v, ok := strings.Cut(item, ":"); ok {
			k = strings.ToLower(strings.TrimSpace(k))
			info[k] = strings.TrimSpace(v)
			lastk = k
		} else if len(lastk) != 0 {
			info[lastk] += "\n" + item
		}
	}
}
