package wire

import (
	"fmt"
	"net/netip"
)

// Record is a single resource record, modeled as a tagged variant over
// Type. Exactly one of the type-specific fields is meaningful for a given
// Type; callers switch on Type rather than on which field is set. Class is
// always IN (1) on the wire and is not modeled as a field: it is ignored
// on read and hardcoded on write.
type Record struct {
	Name string
	Type RecordType
	TTL  uint32

	// Addr holds the address for TypeA and TypeAAAA records.
	Addr netip.Addr
	// Target holds the referenced name for TypeNS and TypeCNAME records.
	Target string
	// Preference and Exchange hold the TypeMX fields.
	Preference uint16
	Exchange   string
	// RawType holds the original numeric type for a record Type normalises
	// to TypeUnknown. RDLen holds the RDATA length for TypeUnknown and
	// TypeHTTPS records, whose RDATA is opaque and skipped rather than
	// stored.
	RawType uint16
	RDLen   uint16
}

// Write serializes the record using a two-pass RDATA length: it writes a
// placeholder RDLENGTH, encodes RDATA, then back-patches the real length
// via SetU16.
func (r Record) Write(buf *Buffer) error {
	if err := EncodeName(buf, r.Name); err != nil {
		return err
	}
	rawType := r.RawType
	if r.Type != TypeUnknown {
		rawType = uint16(r.Type)
	}
	if err := buf.WriteU16(rawType); err != nil {
		return err
	}
	if err := buf.WriteU16(1); err != nil {
		return err
	}
	if err := buf.WriteU32(r.TTL); err != nil {
		return err
	}

	lenPos := buf.Pos()
	if err := buf.WriteU16(0); err != nil {
		return err
	}
	rdataStart := buf.Pos()

	var err error
	switch r.Type {
	case TypeA:
		err = r.writeA(buf)
	case TypeAAAA:
		err = r.writeAAAA(buf)
	case TypeNS, TypeCNAME:
		err = EncodeName(buf, r.Target)
	case TypeMX:
		err = r.writeMX(buf)
	default:
		// UNKNOWN and HTTPS records carry no reproducible RDATA; emit a
		// zero-length RDATA and note it rather than guessing at a payload.
	}
	if err != nil {
		return err
	}

	rdLen := buf.Pos() - rdataStart
	return buf.SetU16(lenPos, uint16(rdLen))
}

func (r Record) writeA(buf *Buffer) error {
	if !r.Addr.Is4() {
		return fmt.Errorf("%w: A record address is not IPv4", ErrInvalidInput)
	}
	for _, b := range r.Addr.As4() {
		if err := buf.WriteU8(b); err != nil {
			return err
		}
	}
	return nil
}

func (r Record) writeAAAA(buf *Buffer) error {
	if !r.Addr.Is6() {
		return fmt.Errorf("%w: AAAA record address is not IPv6", ErrInvalidInput)
	}
	for _, b := range r.Addr.As16() {
		if err := buf.WriteU8(b); err != nil {
			return err
		}
	}
	return nil
}

func (r Record) writeMX(buf *Buffer) error {
	if err := buf.WriteU16(r.Preference); err != nil {
		return err
	}
	return EncodeName(buf, r.Exchange)
}

// ReadRecord decodes a single resource record, dispatching on its type.
func ReadRecord(buf *Buffer) (Record, error) {
	name, err := DecodeName(buf)
	if err != nil {
		return Record{}, err
	}
	rawType, err := buf.ReadU16()
	if err != nil {
		return Record{}, err
	}
	if _, err := buf.ReadU16(); err != nil {
		return Record{}, err
	}
	ttl, err := buf.ReadU32()
	if err != nil {
		return Record{}, err
	}
	rdLen, err := buf.ReadU16()
	if err != nil {
		return Record{}, err
	}

	r := Record{Name: name, Type: recordTypeFromNum(rawType), TTL: ttl}
	if r.Type == TypeUnknown {
		r.RawType = rawType
	}

	switch r.Type {
	case TypeA:
		raw, err := buf.GetRange(buf.Pos(), int(rdLen))
		if err != nil {
			return Record{}, err
		}
		if len(raw) != 4 {
			return Record{}, fmt.Errorf("%w: A record RDATA length %d, want 4", ErrInvalidInput, len(raw))
		}
		r.Addr = netip.AddrFrom4([4]byte(raw))
		if err := buf.Step(int(rdLen)); err != nil {
			return Record{}, err
		}
	case TypeAAAA:
		raw, err := buf.GetRange(buf.Pos(), int(rdLen))
		if err != nil {
			return Record{}, err
		}
		if len(raw) != 16 {
			return Record{}, fmt.Errorf("%w: AAAA record RDATA length %d, want 16", ErrInvalidInput, len(raw))
		}
		r.Addr = netip.AddrFrom16([16]byte(raw))
		if err := buf.Step(int(rdLen)); err != nil {
			return Record{}, err
		}
	case TypeNS, TypeCNAME:
		target, err := DecodeName(buf)
		if err != nil {
			return Record{}, err
		}
		r.Target = target
	case TypeMX:
		pref, err := buf.ReadU16()
		if err != nil {
			return Record{}, err
		}
		exch, err := DecodeName(buf)
		if err != nil {
			return Record{}, err
		}
		r.Preference = pref
		r.Exchange = exch
	default:
		// UNKNOWN and HTTPS RDATA is opaque; skip over it rather than
		// retaining bytes we have no variant to interpret.
		r.RDLen = rdLen
		if err := buf.Step(int(rdLen)); err != nil {
			return Record{}, err
		}
	}

	return r, nil
}
