package hiertab

import (
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint digests the table's keys and values. Two tables with equal
// fingerprints hold the same keys in the same order and the same values,
// as far as MsgPack can tell. Missing and nil cells digest differently.
func (t *Table) Fingerprint() (uint64, error) {
	h := xxhash.New()
	buf := keyBytesPool.Get().([]byte)
	defer func() { releaseKeyBytes(buf) }()

	writeIndex := func(tag byte, idx Index) {
		buf = append(buf[:0], tag)
		buf = appendFixedUint64(buf, uint64(idx.levels))
		buf = appendFixedUint64(buf, uint64(idx.Len()))
		h.Write(buf)
		for _, k := range idx.keys {
			buf = encodeKey(buf[:0], k)
			buf = appendFixedUint64(buf, uint64(len(buf)))
			h.Write(buf)
		}
	}
	writeIndex('r', t.rows)
	writeIndex('c', t.cols)

	for _, c := range t.columns {
		buf = encodeKey(append(buf[:0], 'C'), c.identity)
		h.Write(buf)
		for _, it := range c.cells.items {
			buf = appendFixedUint64(append(buf[:0], 'k'), uint64(len(it.key)))
			buf = append(buf, it.key...)
			switch {
			case it.value == nil:
				buf = append(buf, 'n')
			case it.value == Missing:
				buf = append(buf, 'm')
			default:
				var err error
				buf = append(buf, 'v')
				buf, err = encodeValue(buf, reflect.ValueOf(it.value))
				if err != nil {
					return 0, err
				}
			}
			h.Write(buf)
		}
	}
	return h.Sum64(), nil
}
