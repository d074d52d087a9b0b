package hiertab

import "sync"

var keyBytesPool = &sync.Pool{
	New: func() any {
		return make([]byte, 0, 256)
	},
}

func releaseKeyBytes(b []byte) {
	keyBytesPool.Put(b[:0])
}

// pooledKey encodes k into a pooled buffer; release it with releaseKeyBytes.
func pooledKey(k Key) []byte {
	return encodeKey(keyBytesPool.Get().([]byte), k)
}
