package wire

import (
	"fmt"
	"strings"
)

// maxPointerHops bounds the number of compression-pointer indirections
// followed while decoding a single name, guarding against pointer cycles
// (RFC 1035 Section 4.1.4).
const maxPointerHops = 32

// maxLabelLen is the largest a single DNS label may be (RFC 1035 Section 3.1).
const maxLabelLen = 63

// isPointer reports whether a label-length byte introduces a compression
// pointer (its two high bits are both set).
func isPointer(b byte) bool {
	return b&0xC0 == 0xC0
}

// DecodeName decodes a (possibly compressed) domain name from buf starting
// at the buffer's current cursor, lower-casing labels and joining them with
// dots. Compression pointers are followed but never advance the shared
// cursor past the first jump; pointer chains are capped at maxPointerHops
// and fail with ErrInvalidInput on cycles or excessive indirection.
func DecodeName(buf *Buffer) (string, error) {
	var labels []string
	pos := buf.Pos()
	jumped := false
	hops := 0

	for {
		lenByte, err := buf.Get(pos)
		if err != nil {
			return "", err
		}

		if isPointer(lenByte) {
			hops++
			if hops > maxPointerHops {
				return "", fmt.Errorf("%w: too many DNS compression pointer indirections", ErrInvalidInput)
			}
			b2, err := buf.Get(pos + 1)
			if err != nil {
				return "", err
			}
			if !jumped {
				if err := buf.Seek(pos + 2); err != nil {
					return "", err
				}
				jumped = true
			}
			offset := (int(lenByte&0x3F) << 8) | int(b2)
			if offset >= buf.Cap() {
				return "", fmt.Errorf("%w: DNS compression pointer out of bounds", ErrInvalidInput)
			}
			pos = offset
			continue
		}

		pos++
		if lenByte == 0 {
			break
		}

		label, err := buf.GetRange(pos, int(lenByte))
		if err != nil {
			return "", err
		}
		labels = append(labels, strings.ToLower(string(label)))
		pos += int(lenByte)
	}

	if !jumped {
		if err := buf.Seek(pos); err != nil {
			return "", err
		}
	}

	return strings.Join(labels, "."), nil
}

// EncodeName writes a dotted domain name to buf in wire format without
// compression (length-prefixed labels terminated by a zero-length label).
// It fails with ErrInvalidInput if any label exceeds maxLabelLen bytes.
func EncodeName(buf *Buffer, name string) error {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return buf.WriteU8(0)
	}
	for _, label := range strings.Split(name, ".") {
		if len(label) > maxLabelLen {
			return fmt.Errorf("%w: DNS label %q exceeds %d bytes", ErrInvalidInput, label, maxLabelLen)
		}
		if err := buf.WriteU8(byte(len(label))); err != nil {
			return err
		}
		for i := 0; i < len(label); i++ {
			if err := buf.WriteU8(label[i]); err != nil {
				return err
			}
		}
	}
	return buf.WriteU8(0)
}
