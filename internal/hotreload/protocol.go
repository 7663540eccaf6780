// Package hotreload implements the dev-server side of the hot-reload
// protocol: a WebSocket broadcaster that pushes compile/reload events to
// every connected client, plus the client-visible error overlay state
// machine.
package hotreload

import "encoding/json"

// ProtocolVersion is sent in every Welcome message; clients may
// disconnect if they don't support it.
const ProtocolVersion = 1

// ServerMessage is anything the server sends to a client. Exactly one
// of the typed payload fields is populated, matching the variant named
// by Type.
type ServerMessage struct {
	Type string `json:"type"`

	// welcome
	ProtocolVersion int    `json:"protocol_version,omitempty"`
	ServerID        string `json:"server_id,omitempty"`

	// hot_reload
	ChangedFiles      []string `json:"changed_files,omitempty"`
	ChangedComponents []string `json:"changed_components,omitempty"`
	CompileTimeMs     int64    `json:"compile_time_ms,omitempty"`

	// full_reload / goodbye
	Reason string `json:"reason,omitempty"`

	// compile_error
	File   string            `json:"file,omitempty"`
	Errors []CompileErrorInfo `json:"errors,omitempty"`

	// state_snapshot
	SnapshotID string `json:"snapshot_id,omitempty"`
	Data       string `json:"data,omitempty"`

	// ping
	Timestamp int64 `json:"timestamp,omitempty"`
}

// CompileErrorInfo describes a single compiler diagnostic.
type CompileErrorInfo struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
}

func WelcomeMessage(serverID string) ServerMessage {
	return ServerMessage{Type: "welcome", ProtocolVersion: ProtocolVersion, ServerID: serverID}
}

func HotReloadMessage(changedFiles, changedComponents []string, compileTimeMs int64) ServerMessage {
	return ServerMessage{
		Type:              "hot_reload",
		ChangedFiles:      changedFiles,
		ChangedComponents: changedComponents,
		CompileTimeMs:     compileTimeMs,
	}
}

func FullReloadMessage(reason string) ServerMessage {
	return ServerMessage{Type: "full_reload", Reason: reason}
}

func CompileErrorMessage(file string, errors []CompileErrorInfo) ServerMessage {
	return ServerMessage{Type: "compile_error", File: file, Errors: errors}
}

func CompileSuccessMessage() ServerMessage {
	return ServerMessage{Type: "compile_success"}
}

func StateSnapshotMessage(snapshotID string, data string) ServerMessage {
	return ServerMessage{Type: "state_snapshot", SnapshotID: snapshotID, Data: data}
}

func PingMessage(timestamp int64) ServerMessage {
	return ServerMessage{Type: "ping", Timestamp: timestamp}
}

func GoodbyeMessage(reason string) ServerMessage {
	return ServerMessage{Type: "goodbye", Reason: reason}
}

// ClientMessage is anything a client sends to the server.
type ClientMessage struct {
	Type string `json:"type"`

	// ready
	ClientID     string   `json:"client_id,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`

	// restore_state
	SnapshotID string `json:"snapshot_id,omitempty"`

	// hot_reload_ack
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`

	// pong
	Timestamp int64 `json:"timestamp,omitempty"`

	// client_error
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// DecodeClientMessage parses a raw client frame.
func DecodeClientMessage(raw []byte) (ClientMessage, error) {
	var msg ClientMessage
	err := json.Unmarshal(raw, &msg)
	return msg, err
}

// Encode serializes a server message for sending over the wire.
func (m ServerMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}
