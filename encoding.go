package hiertab

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// CopyMode controls how cell values are copied when columns are cloned
// during a merge.
type CopyMode int

const (
	// CopyShallow shares values between the input and output tables, except
	// for values implementing Cloner.
	CopyShallow CopyMode = iota

	// CopyDeep additionally round-trips every non-scalar value through
	// MsgPack into a fresh value of the same type. Only exported struct fields
	// survive the round trip.
	CopyDeep
)

func (m CopyMode) String() string {
	switch m {
	case CopyShallow:
		return "shallow"
	case CopyDeep:
		return "deep"
	default:
		return fmt.Sprintf("invalid copy mode %d", int(m))
	}
}

// Cloner is implemented by cell values that know how to copy themselves.
// It takes precedence over CopyMode.
type Cloner interface {
	CloneValue() any
}

func copyValue(v any, mode CopyMode) (any, error) {
	if v == nil || v == Missing {
		return v, nil
	}
	if c, ok := v.(Cloner); ok {
		return c.CloneValue(), nil
	}
	if mode != CopyDeep {
		return v, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return v, nil
	}

	buf, err := encodeValue(nil, rv)
	if err != nil {
		return nil, err
	}
	ptr := reflect.New(rv.Type())
	if err := decodeValue(buf, ptr); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

func encodeValue(buf []byte, val reflect.Value) ([]byte, error) {
	bb := bytesBuilder{buf}
	enc := msgpack.GetEncoder()
	enc.ResetDict(&bb, nil)
	enc.SetSortMapKeys(true)
	err := enc.EncodeValue(val)
	msgpack.PutEncoder(enc)
	if err != nil {
		return buf, fmt.Errorf("failed to encode %v using MsgPack: %w", val.Type(), err)
	}
	return bb.Buf, nil
}

func decodeValue(buf []byte, ptrVal reflect.Value) error {
	var r bytes.Reader
	r.Reset(buf)
	dec := msgpack.GetDecoder()
	dec.ResetDict(&r, nil)
	dec.UseLooseInterfaceDecoding(true)
	err := dec.DecodeValue(ptrVal)
	dec.UseLooseInterfaceDecoding(false)
	msgpack.PutDecoder(dec)
	if err != nil {
		return dataErrf(buf, 0, err, "failed to decode msgpack into %v", ptrVal.Type())
	}
	return nil
}
