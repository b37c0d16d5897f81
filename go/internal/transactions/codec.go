package transactions

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// JSONCodec serializes connect messages as plain JSON so the service needs no
// generated protobuf types. It takes the "json" name, replacing protojson.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

// Name implements connect.Codec
func (JSONCodec) Name() string {
	return "json"
}

// Marshal implements connect.Codec
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return b, nil
}

// Unmarshal implements connect.Codec
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}
