package common

// WipeByteArray overwrites buf with zeros. Use it to clear password buffers
// as soon as they are no longer needed.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
