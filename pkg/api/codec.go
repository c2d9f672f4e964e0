package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName makes requests travel as "application/json".
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Codec returns the codec shared by calckit handlers and clients. Messages
// are plain Go structs, so the default protobuf codecs cannot encode them.
func Codec() connect.Codec {
	return jsonCodec{}
}

// WithCodec is the option every handler and client must carry.
func WithCodec() connect.Option {
	return connect.WithCodec(Codec())
}
