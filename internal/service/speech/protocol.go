package speech

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
)

// The synthesis endpoint speaks a binary WebSocket protocol: a 4-byte
// header, an optional 4-byte sequence number, then a length-prefixed
// payload.

const protocolVersion = 0b0001

type messageType uint8

const (
	fullClientRequest       messageType = 0b0001
	fullServerResponse      messageType = 0b1001
	audioOnlyServerResponse messageType = 0b1011
	errorMessage            messageType = 0b1111
)

type messageFlags uint8

const (
	noSequenceNumber       messageFlags = 0b0000
	positiveSequenceNumber messageFlags = 0b0001
	lastPacketNoSequence   messageFlags = 0b0010
	negativeSequenceNumber messageFlags = 0b0011
)

type serializationMethod uint8

const (
	noSerialization   serializationMethod = 0b0000
	jsonSerialization serializationMethod = 0b0001
)

type compressionMethod uint8

const (
	noCompression   compressionMethod = 0b0000
	gzipCompression compressionMethod = 0b0001
)

type header struct {
	MessageType         messageType
	MessageFlags        messageFlags
	SerializationMethod serializationMethod
	CompressionMethod   compressionMethod
}

type message struct {
	Header   header
	Sequence int32
	Payload  []byte
}

// isLastPacket reports whether the server marked this frame final.
func (m *message) isLastPacket() bool {
	flags := m.Header.MessageFlags & 0b0011
	return flags == lastPacketNoSequence || flags == negativeSequenceNumber || m.Sequence < 0
}

func encodeHeader(h header) []byte {
	return []byte{
		protocolVersion<<4 | 0b0001, // header size: one 4-byte unit
		uint8(h.MessageType)<<4 | uint8(h.MessageFlags),
		uint8(h.SerializationMethod)<<4 | uint8(h.CompressionMethod),
		0x00,
	}
}

func decodeHeader(data []byte) (header, error) {
	if len(data) < 4 {
		return header{}, fmt.Errorf("header too short: got %d bytes, need 4", len(data))
	}
	if version := data[0] >> 4; version != protocolVersion {
		return header{}, fmt.Errorf("unsupported protocol version: %d", version)
	}
	return header{
		MessageType:         messageType(data[1] >> 4),
		MessageFlags:        messageFlags(data[1] & 0x0F),
		SerializationMethod: serializationMethod(data[2] >> 4),
		CompressionMethod:   compressionMethod(data[2] & 0x0F),
	}, nil
}

// encodeRequest frames a JSON payload as a full client request.
func encodeRequest(payload []byte) []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(encodeHeader(header{
		MessageType:         fullClientRequest,
		MessageFlags:        noSequenceNumber,
		SerializationMethod: jsonSerialization,
		CompressionMethod:   noCompression,
	}))

	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(payload)))
	buf.Write(size)
	buf.Write(payload)
	return buf.Bytes()
}

// decodeMessage parses one server frame.
func decodeMessage(data []byte) (*message, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(data[4:])
	msg := &message{Header: h}

	switch h.MessageFlags & 0b0011 {
	case positiveSequenceNumber, negativeSequenceNumber:
		var seq int32
		if err := binary.Read(r, binary.BigEndian, &seq); err != nil {
			return nil, fmt.Errorf("failed to read sequence number: %w", err)
		}
		msg.Sequence = seq
	}

	var size uint32
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, fmt.Errorf("failed to read payload size: %w", err)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	msg.Payload = payload
	return msg, nil
}

// decompressPayload inflates gzip payloads; others pass through.
func decompressPayload(payload []byte, method compressionMethod) ([]byte, error) {
	if method != gzipCompression {
		return payload, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip payload: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
