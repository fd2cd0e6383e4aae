package hll

import (
	"encoding/base64"
	"encoding/binary"
	"strings"
)

// envelopeMagic tags every serialized Estimator.
var envelopeMagic = [4]byte{'H', 'L', 'L', '1'}

const envelopeHeaderSize = 10

const (
	envelopeModeDense  byte = 0
	envelopeModeSparse byte = 1
)

// ToBytes serializes e into the normative Envelope format:
// magic | b | mode | payload_len (big-endian) | payload.
func (e *Estimator) ToBytes() []byte {
	var payload []byte
	var modeByte byte

	switch e.mode {
	case modeDense:
		modeByte = envelopeModeDense
		payload, _ = e.dense.serialize() // dense slots are always in [0,63]; cannot fail.
	case modeSparse:
		modeByte = envelopeModeSparse
		payload, _ = e.sparse.serialize(e.precision) // indices/rhos are always in range; cannot fail.
	}

	out := make([]byte, envelopeHeaderSize+len(payload))
	copy(out[0:4], envelopeMagic[:])
	out[4] = byte(e.precision.b)
	out[5] = modeByte
	binary.BigEndian.PutUint32(out[6:10], uint32(len(payload)))
	copy(out[10:], payload)

	return out
}

// FromBytes deserializes the Envelope format produced by ToBytes. It
// validates the magic, precision, mode, and declared length eagerly and
// never returns a partially constructed Estimator.
func FromBytes(data []byte) (*Estimator, error) {
	if len(data) < envelopeHeaderSize {
		return nil, errorf(ErrMalformed, "envelope shorter than header (%d bytes)", len(data))
	}

	if string(data[0:4]) != string(envelopeMagic[:]) {
		return nil, errorf(ErrMalformed, "bad magic %q", data[0:4])
	}

	b := int(data[4])
	modeByte := data[5]
	payloadLen := binary.BigEndian.Uint32(data[6:10])

	c, err := lookupPrecision(b)
	if err != nil {
		return nil, err
	}

	if modeByte != envelopeModeDense && modeByte != envelopeModeSparse {
		return nil, errorf(ErrInvalidMode, "got %d", modeByte)
	}

	if uint32(len(data)-envelopeHeaderSize) != payloadLen {
		return nil, errorf(ErrMalformed, "declared payload length %d does not match actual %d", payloadLen, len(data)-envelopeHeaderSize)
	}

	payload := data[envelopeHeaderSize:]

	e := &Estimator{precision: c}

	switch modeByte {
	case envelopeModeDense:
		if expected := divideBy8RoundUp(6 * c.m); int(payloadLen) != expected {
			return nil, errorf(ErrMalformed, "dense payload length %d, want %d", payloadLen, expected)
		}
		e.mode = modeDense
		e.dense, err = deserializeDense(payload, c)
	case envelopeModeSparse:
		// The last byte may hold up to 7 bits of padding, always fewer than
		// one entry, so n is the largest entry count that fits and the
		// payload must be exactly the bytes those n entries occupy.
		entryBits := b + 6
		n := (int(payloadLen) * 8) / entryBits
		if divideBy8RoundUp(n*entryBits) != int(payloadLen) {
			return nil, errorf(ErrMalformed, "sparse payload length %d is not a whole number of %d-bit entries", payloadLen, entryBits)
		}
		e.mode = modeSparse
		e.sparse, err = deserializeSparse(payload, n, c)
	}

	if err != nil {
		return nil, err
	}

	return e, nil
}

// ToBase64 encodes the Envelope bytes with the standard Base64 alphabet,
// padded, with no embedded newlines.
func (e *Estimator) ToBase64() string {
	return base64.StdEncoding.EncodeToString(e.ToBytes())
}

// FromBase64 decodes s, tolerating any whitespace the caller may have
// inserted, and parses the result as an Envelope.
func FromBase64(s string) (*Estimator, error) {
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, s)

	data, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return nil, errorf(ErrMalformed, "invalid base64: %s", err)
	}

	return FromBytes(data)
}
