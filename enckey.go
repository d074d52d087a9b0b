package hiertab

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Key format: g1 g2 ... gN l1 l2 ... lN len1 len2 ... lenN-1 N
//
// Groups are fixed 8-byte big-endian words with the sign bit flipped, so
// bytes.Compare over encoded keys orders them exactly like CompareGroups,
// with labels only breaking ties. Labels use the tuple layout: raw bytes,
// then reverse uvarint lengths of all but the last one, then the count.
const groupSignBit = uint64(1) << 63

func encodeKey(buf []byte, k Key) []byte {
	for _, g := range k.groups {
		buf = appendFixedUint64(buf, uint64(g)^groupSignBit)
	}
	if len(k.labels) == 0 {
		return appendRuvarint(buf, 0)
	}
	var tb tupleEncoder
	for _, l := range k.labels {
		tb.begin(buf)
		buf = append(buf, l...)
	}
	return tb.finalize(buf)
}

// keyString returns the encoded key as a comparable value, for maps.
func keyString(k Key) string {
	return string(encodeKey(nil, k))
}

func decodeKey(raw []byte) (Key, error) {
	c, rest, err := decodeRuvarint(raw)
	if err != nil {
		return Key{}, err
	}
	if c == 0 {
		if len(rest) != 0 {
			return Key{}, dataErrf(raw, 0, nil, "invalid key: %d trailing bytes in a zero-level key", len(rest))
		}
		return Key{}, nil
	}
	if uint64(c)*8 > uint64(len(rest)) {
		return Key{}, dataErrf(raw, 0, nil, "invalid key: %d levels do not fit into %d bytes", c, len(rest))
	}

	lens := make([]uint32, c)
	for i := int(c) - 2; i >= 0; i-- {
		lens[i], rest, err = decodeRuvarint(rest)
		if err != nil {
			return Key{}, err
		}
	}

	d := keyReader{raw: raw, rest: rest}
	groups := make([]int64, c)
	for i := range groups {
		v, err := d.group()
		if err != nil {
			return Key{}, dataErrf(raw, d.off(), err, "invalid key: group %d", i)
		}
		groups[i] = v
	}

	var explicitLen uint64
	for i := uint32(0); i < c-1; i++ {
		explicitLen += uint64(lens[i])
	}
	if explicitLen > uint64(len(d.rest)) {
		return Key{}, dataErrf(raw, d.off(), nil, "invalid key: sum of explicit label lens %d is greater than label data len %d", explicitLen, len(d.rest))
	}
	lens[c-1] = uint32(uint64(len(d.rest)) - explicitLen)

	labels := make([]string, c)
	for i := range labels {
		b, err := d.take(int(lens[i]))
		if err != nil {
			return Key{}, err
		}
		labels[i] = string(b)
	}
	return Key{groups, labels}, nil
}

// keyReader consumes the group words and label bytes of an encoded key once
// the trailing lengths have been stripped off.
type keyReader struct {
	raw  []byte
	rest []byte
	pos  int
}

func (d *keyReader) off() int {
	return d.pos
}

func (d *keyReader) take(n int) ([]byte, error) {
	if len(d.rest) < n {
		return nil, dataErrf(d.raw, d.off(), nil, "not enough data: %d bytes remaining, %d wanted", len(d.rest), n)
	}
	v := d.rest[:n]
	d.rest = d.rest[n:]
	d.pos += n
	return v, nil
}

func (d *keyReader) group() (int64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b) ^ groupSignBit), nil
}

type tupleEncoder struct {
	startOffPlus1 int
	lens          []int
}

func (tb *tupleEncoder) count() int {
	return len(tb.lens) + 1
}

func (tb *tupleEncoder) begin(buf []byte) {
	off := tb.startOffPlus1
	if off < 0 {
		panic("tupleEncoder finalized")
	} else if off != 0 {
		itemLen := len(buf) + 1 - off
		tb.lens = append(tb.lens, itemLen)
	}
	tb.startOffPlus1 = len(buf) + 1
}

func (tb *tupleEncoder) finalize(buf []byte) []byte {
	for _, v := range tb.lens {
		buf = appendRuvarint(buf, uint32(v))
	}
	buf = appendRuvarint(buf, uint32(tb.count()))
	tb.startOffPlus1 = -1
	return buf
}

// Reverse Uvarint is just byte-reversed Uvarint, for right-to-left reading
func appendRuvarint(buf []byte, v uint32) []byte {
	var vb [binary.MaxVarintLen32]byte
	vn := binary.PutUvarint(vb[:], uint64(v))
	for i := vn - 1; i >= 0; i-- {
		buf = append(buf, vb[i])
	}
	return buf
}

func decodeRuvarint(buf []byte) (uint32, []byte, error) {
	var vb [binary.MaxVarintLen32]byte
	n := len(buf)
	if n == 0 {
		return 0, nil, dataErrf(buf, 0, nil, "invalid key: missing ruvarint")
	}
	c := binary.MaxVarintLen32
	if n < c {
		c = n
	}
	for i := 0; i < c; i++ {
		vb[i] = buf[n-i-1]
	}
	v, vn := binary.Uvarint(vb[:c])
	if vn <= 0 || v > 1<<32-1 {
		return 0, nil, dataErrf(buf, n-c, nil, "invalid ruvarint")
	}
	return uint32(v), buf[:n-vn], nil
}

func hexstr(b []byte) string {
	if b == nil {
		return "<nil>"
	}
	if len(b) == 0 {
		return "<empty>"
	}
	return hex.EncodeToString(b)
}

func mustDecodeKey(raw []byte) Key {
	k, err := decodeKey(raw)
	if err != nil {
		panic(fmt.Errorf("internal error: stored key %s: %w", hexstr(raw), err))
	}
	return k
}
