package wire

// Packet is a complete DNS message: header plus the four record sections.
type Packet struct {
	Header      Header
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additional  []Record
}

// Write serializes the packet into buf. The header's section counts are
// reconciled to the actual slice lengths before encoding, so callers never
// need to keep them in sync by hand.
func (p Packet) Write(buf *Buffer) error {
	h := p.Header
	h.Questions = uint16(len(p.Questions))
	h.Answers = uint16(len(p.Answers))
	h.AuthoritativeCount = uint16(len(p.Authorities))
	h.ResourceCount = uint16(len(p.Additional))

	if err := h.Write(buf); err != nil {
		return err
	}
	for _, q := range p.Questions {
		if err := q.Write(buf); err != nil {
			return err
		}
	}
	for _, r := range p.Answers {
		if err := r.Write(buf); err != nil {
			return err
		}
	}
	for _, r := range p.Authorities {
		if err := r.Write(buf); err != nil {
			return err
		}
	}
	for _, r := range p.Additional {
		if err := r.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// ReadPacket decodes a complete DNS message from buf. It fails the whole
// packet on any section's decode error rather than returning a partial
// result.
func ReadPacket(buf *Buffer) (Packet, error) {
	h, err := ReadHeader(buf)
	if err != nil {
		return Packet{}, err
	}

	p := Packet{Header: h}

	p.Questions = make([]Question, 0, h.Questions)
	for i := uint16(0); i < h.Questions; i++ {
		q, err := ReadQuestion(buf)
		if err != nil {
			return Packet{}, err
		}
		p.Questions = append(p.Questions, q)
	}

	p.Answers, err = readRecords(buf, h.Answers)
	if err != nil {
		return Packet{}, err
	}
	p.Authorities, err = readRecords(buf, h.AuthoritativeCount)
	if err != nil {
		return Packet{}, err
	}
	p.Additional, err = readRecords(buf, h.ResourceCount)
	if err != nil {
		return Packet{}, err
	}

	return p, nil
}

func readRecords(buf *Buffer, count uint16) ([]Record, error) {
	out := make([]Record, 0, count)
	for i := uint16(0); i < count; i++ {
		r, err := ReadRecord(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
