package wire

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketRoundTrip(t *testing.T) {
	p := Packet{
		Header: Header{ID: 0xBEEF, RecursionDesired: true, Opcode: 0},
		Questions: []Question{
			{Name: "example.com", Type: TypeA},
		},
		Answers: []Record{
			{Name: "example.com", Type: TypeA, TTL: 3600, Addr: netip.MustParseAddr("93.184.216.34")},
		},
	}

	buf := NewBuffer(DefaultBufferSize)
	require.NoError(t, p.Write(buf))

	buf2 := NewBufferFromBytes(buf.Bytes())
	got, err := ReadPacket(buf2)
	require.NoError(t, err)

	assert.Equal(t, p.Header.ID, got.Header.ID)
	assert.Equal(t, p.Questions, got.Questions)
	assert.Equal(t, p.Answers, got.Answers)
	assert.Equal(t, uint16(1), got.Header.Questions)
	assert.Equal(t, uint16(1), got.Header.Answers)
}

func TestPacketWriteReconcilesCounts(t *testing.T) {
	p := Packet{
		Header:    Header{ID: 1, Questions: 99, Answers: 99},
		Questions: []Question{{Name: "a.com", Type: TypeA}},
	}

	buf := NewBuffer(DefaultBufferSize)
	require.NoError(t, p.Write(buf))

	buf2 := NewBufferFromBytes(buf.Bytes())
	got, err := ReadPacket(buf2)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), got.Header.Questions)
	assert.Equal(t, uint16(0), got.Header.Answers)
}

// TestBlockReplyByteShape pins down the exact 12-byte header this system
// must produce for a literal NXDOMAIN block reply to a recursion-desired
// query with id 0x1234: flags high byte 0x81, low byte 0x83, counts
// 1,0,0,0.
func TestBlockReplyByteShape(t *testing.T) {
	req := Header{ID: 0x1234, RecursionDesired: true, Opcode: 0}

	reply := req
	reply.Response = true
	reply.ResultCode = NXDomain
	reply.RecursionAvailable = reply.RecursionDesired

	buf := NewBuffer(HeaderSize)
	require.NoError(t, reply.Write(buf))
	out := buf.Bytes()

	require.Len(t, out, HeaderSize)
	assert.Equal(t, []byte{0x12, 0x34}, out[0:2], "transaction id")
	assert.Equal(t, byte(0x81), out[2], "flags high byte")
	assert.Equal(t, byte(0x83), out[3], "flags low byte")
}

func TestPacketFailsAsWholeOnMalformedSection(t *testing.T) {
	buf := NewBuffer(HeaderSize)
	h := Header{Questions: 1}
	require.NoError(t, h.Write(buf))
	// No question bytes follow; ReadPacket must fail rather than return
	// a partially populated packet.
	buf2 := NewBufferFromBytes(buf.Bytes())
	_, err := ReadPacket(buf2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
