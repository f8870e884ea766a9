package packable

import (
	"fmt"

	"github.com/quickwritereader/xpacket/access"
	"github.com/quickwritereader/xpacket/schema"
	"github.com/quickwritereader/xpacket/utils"
)

// PackMapSorted is a string map written with its keys sorted, so equal maps
// always produce equal bytes. Layout: a uint8 entry count, then per entry a
// uint8 key length, the key, a uint8 value length and the value.
type PackMapSorted map[string]string

const maxMapItem = 255

func (p PackMapSorted) ValueSize() int {
	size := 1
	for k, v := range p {
		size += 2 + len(k) + len(v)
	}
	return size
}

// Write assumes Validate passed; oversized entries are truncated by the
// uint8 length bytes.
func (p PackMapSorted) Write(buf []byte, pos int) int {
	pos = access.WriteUint8(buf, pos, uint8(len(p)))
	for _, k := range utils.SortKeys(p) {
		v := p[k]
		pos = access.WriteUint8(buf, pos, uint8(len(k)))
		pos = access.WriteBytes(buf, pos, []byte(k))
		pos = access.WriteUint8(buf, pos, uint8(len(v)))
		pos = access.WriteBytes(buf, pos, []byte(v))
	}
	return pos
}

// Validate reports entries that do not fit the uint8 length bytes.
func (p PackMapSorted) Validate() error {
	if len(p) > maxMapItem {
		return fmt.Errorf("%w: %d entries", ErrFrameTooLarge, len(p))
	}
	for k, v := range p {
		if len(k) > maxMapItem || len(v) > maxMapItem {
			return fmt.Errorf("%w: entry %q", ErrFrameTooLarge, k)
		}
	}
	return nil
}

func (p *PackMapSorted) Read(buf []byte, pos int) (int, error) {
	count, err := readLen(buf, pos)
	if err != nil {
		return pos, err
	}
	pos++
	m := make(PackMapSorted, count)
	for i := 0; i < count; i++ {
		var k, v string
		if k, pos, err = readShortString(buf, pos); err != nil {
			return pos, fmt.Errorf("entry %d key: %w", i, err)
		}
		if v, pos, err = readShortString(buf, pos); err != nil {
			return pos, fmt.Errorf("entry %d value: %w", i, err)
		}
		m[k] = v
	}
	*p = m
	return pos, nil
}

func readLen(buf []byte, pos int) (int, error) {
	if err := need(buf, pos, 1); err != nil {
		return 0, err
	}
	return int(buf[pos]), nil
}

func readShortString(buf []byte, pos int) (string, int, error) {
	n, err := readLen(buf, pos)
	if err != nil {
		return "", pos, err
	}
	pos++
	if err := need(buf, pos, n); err != nil {
		return "", pos, err
	}
	return string(buf[pos : pos+n]), pos + n, nil
}

// Map returns hooks for a PackMapSorted field that reject oversized maps
// before writing.
func Map() schema.Hooks {
	h := Of[PackMapSorted]()
	encode := h.Encode
	h.Encode = func(dst []byte, value any) (int, error) {
		if m, ok := value.(PackMapSorted); ok {
			if err := m.Validate(); err != nil {
				return 0, err
			}
		}
		return encode(dst, value)
	}
	return h
}
