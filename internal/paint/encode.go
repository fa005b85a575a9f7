package paint

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

var magic = [4]byte{'w', 'd', 'l', '1'}

// ErrCorrupt is returned by Decode for input that is not an encoded list.
var ErrCorrupt = errors.New("paint: corrupt display list")

// AppendEncode appends the binary encoding of l to dst. Every field is
// written in a fixed order and width so equal lists encode identically.
func (l *List) AppendEncode(dst []byte) []byte {
	dst = append(dst, magic[:]...)
	dst = binary.AppendUvarint(dst, uint64(len(l.items)))
	for i := range l.items {
		dst = appendItem(dst, &l.items[i])
	}
	return dst
}

// Encode returns the encoding of l in a fresh slice.
func (l *List) Encode() []byte {
	return l.AppendEncode(make([]byte, 0, 16+len(l.items)*64))
}

// Digest returns the xxhash of l's encoding.
func (l *List) Digest() uint64 {
	buf := getBytes()
	defer putBytes(buf)
	*buf = l.AppendEncode((*buf)[:0])
	return xxhash.Sum64(*buf)
}

func appendItem(dst []byte, it *Item) []byte {
	dst = append(dst, byte(it.Op))
	dst = binary.LittleEndian.AppendUint64(dst, it.Node)
	dst = appendFloats(dst, it.Rect.X, it.Rect.Y, it.Rect.Width, it.Rect.Height)
	dst = append(dst, it.Color[:]...)
	dst = appendFloats(dst, it.Width, it.FontSize)
	dst = binary.AppendUvarint(dst, uint64(len(it.Text)))
	dst = append(dst, it.Text...)
	return appendFloats(dst, it.Offset.X, it.Offset.Y, it.Extent.Width, it.Extent.Height)
}

func appendFloats(dst []byte, fs ...float64) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(f))
	}
	return dst
}

// Decode parses an encoding produced by Encode.
func Decode(data []byte) (*List, error) {
	d := decoder{data: data}
	if len(data) < len(magic) || [4]byte(data[:4]) != magic {
		return nil, errors.Wrap(ErrCorrupt, "bad header")
	}
	d.pos = len(magic)
	n := d.uvarint()
	if d.err != nil || n > uint64(len(data)) {
		return nil, errors.Wrapf(ErrCorrupt, "bad item count")
	}
	l := &List{items: make([]Item, 0, n)}
	for i := uint64(0); i < n; i++ {
		var it Item
		it.Op = Op(d.byte())
		it.Node = d.uint64()
		it.Rect.X, it.Rect.Y, it.Rect.Width, it.Rect.Height = d.float(), d.float(), d.float(), d.float()
		for j := range it.Color {
			it.Color[j] = d.byte()
		}
		it.Width, it.FontSize = d.float(), d.float()
		it.Text = d.string()
		it.Offset.X, it.Offset.Y = d.float(), d.float()
		it.Extent.Width, it.Extent.Height = d.float(), d.float()
		if d.err != nil {
			return nil, errors.Wrapf(d.err, "item %d", i)
		}
		l.items = append(l.items, it)
	}
	if d.pos != len(data) {
		return nil, errors.Wrapf(ErrCorrupt, "%d trailing bytes", len(data)-d.pos)
	}
	return l, nil
}

type decoder struct {
	data []byte
	pos  int
	err  error
}

func (d *decoder) need(n int) bool {
	if d.err != nil {
		return false
	}
	if len(d.data)-d.pos < n {
		d.err = errors.Wrap(ErrCorrupt, "short input")
		return false
	}
	return true
}

func (d *decoder) byte() byte {
	if !d.need(1) {
		return 0
	}
	b := d.data[d.pos]
	d.pos++
	return b
}

func (d *decoder) uint64() uint64 {
	if !d.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(d.data[d.pos:])
	d.pos += 8
	return v
}

func (d *decoder) float() float64 {
	return math.Float64frombits(d.uint64())
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.data[d.pos:])
	if n <= 0 {
		d.err = errors.Wrap(ErrCorrupt, "bad varint")
		return 0
	}
	d.pos += n
	return v
}

func (d *decoder) string() string {
	n := d.uvarint()
	if n > uint64(len(d.data)) || !d.need(int(n)) {
		return ""
	}
	s := string(d.data[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s
}
