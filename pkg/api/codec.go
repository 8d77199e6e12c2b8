// Package api defines the Connect wire contract of the tipsplit services:
// procedure names, request/response messages and typed clients.
//
// Messages are plain Go structs serialized with the JSON codec below, so
// browsers can call the services with the Connect protocol and
// Content-Type: application/json.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec serializes messages as JSON. It registers under the name "json",
// replacing Connect's protojson codec for these handlers and clients.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// WithCodec returns the option every handler and client in this module uses.
func WithCodec() connect.Option {
	return connect.WithCodec(Codec{})
}
