// Package api defines the splitcollect.v1 RPC surface: request and response
// messages, procedure names, Connect handler constructors and clients.
//
// Messages are plain Go structs carried as JSON over the Connect protocol.
package api

import (
	"encoding/json"
	"fmt"
)

// CodecName is the Connect codec name; clients send Content-Type application/json.
const CodecName = "json"

// Codec marshals messages with encoding/json. It replaces Connect's default
// protobuf-only JSON codec so that plain structs can be used as messages.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}
