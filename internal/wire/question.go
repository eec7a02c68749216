package wire

// RecordType enumerates the DNS record types this system understands on
// the wire. Unrecognised numeric types decode as TypeUnknown and carry
// their raw value in Record.RawType.
type RecordType uint16

const (
	TypeUnknown RecordType = 0
	TypeA       RecordType = 1
	TypeNS      RecordType = 2
	TypeCNAME   RecordType = 5
	TypeMX      RecordType = 15
	TypeAAAA    RecordType = 28
	TypeHTTPS   RecordType = 65
)

func recordTypeFromNum(n uint16) RecordType {
	switch n {
	case 1, 2, 5, 15, 28, 65:
		return RecordType(n)
	default:
		return TypeUnknown
	}
}

// Question is a single entry in a DNS message's question section. Class is
// always IN (1) on the wire and is not modeled as a field: it is ignored
// on read and hardcoded on write.
type Question struct {
	Name string
	Type RecordType
}

// Write serializes the question (uncompressed name, type, class IN).
func (q Question) Write(buf *Buffer) error {
	if err := EncodeName(buf, q.Name); err != nil {
		return err
	}
	if err := buf.WriteU16(uint16(q.Type)); err != nil {
		return err
	}
	return buf.WriteU16(1)
}

// ReadQuestion decodes a question entry, following name compression. The
// class field is read off the wire and discarded.
func ReadQuestion(buf *Buffer) (Question, error) {
	name, err := DecodeName(buf)
	if err != nil {
		return Question{}, err
	}
	rawType, err := buf.ReadU16()
	if err != nil {
		return Question{}, err
	}
	if _, err := buf.ReadU16(); err != nil {
		return Question{}, err
	}
	return Question{Name: name, Type: recordTypeFromNum(rawType)}, nil
}
