package i3

import (
	"encoding/binary"
	"fmt"
)

// The i3 IPC wire format: every message is "i3-ipc", a little-endian uint32
// payload length, a little-endian uint32 message type, then a JSON payload.
const magic = "i3-ipc"

const headerLen = len(magic) + 8

// Message types used by this client.
const (
	TypeRunCommand    uint32 = 0
	TypeGetWorkspaces uint32 = 1
	TypeGetTree       uint32 = 4
)

// CommandResult is one entry of a RUN_COMMAND reply.
type CommandResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Workspace is one entry of a GET_WORKSPACES reply.
type Workspace struct {
	Num     int    `json:"num"`
	Name    string `json:"name"`
	Focused bool   `json:"focused"`
	Visible bool   `json:"visible"`
	Urgent  bool   `json:"urgent"`
	Output  string `json:"output"`
}

// encodeMessage frames a payload for the socket.
func encodeMessage(msgType uint32, payload []byte) []byte {
	buf := make([]byte, headerLen+len(payload))
	copy(buf, magic)
	binary.LittleEndian.PutUint32(buf[len(magic):], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[len(magic)+4:], msgType)
	copy(buf[headerLen:], payload)
	return buf
}

// decodeHeader validates a reply header and extracts its type and length.
func decodeHeader(header []byte) (msgType, payloadLen uint32, err error) {
	if len(header) != headerLen {
		return 0, 0, fmt.Errorf("short reply header: %d bytes", len(header))
	}
	if string(header[:len(magic)]) != magic {
		return 0, 0, fmt.Errorf("bad magic %q in reply header", header[:len(magic)])
	}
	payloadLen = binary.LittleEndian.Uint32(header[len(magic):])
	msgType = binary.LittleEndian.Uint32(header[len(magic)+4:])
	return msgType, payloadLen, nil
}
