package sqlite

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// encodeFields serializes document fields as a protojson Struct.
// structpb rejects values that have no JSON representation, so invalid
// documents never reach the table.
func encodeFields(fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return "", fmt.Errorf("invalid document fields: %w", err)
	}
	b, err := protojson.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("failed to encode fields: %w", err)
	}
	return string(b), nil
}

// decodeFields is the inverse of encodeFields. Numbers come back as float64.
func decodeFields(raw string) (map[string]any, error) {
	var st structpb.Struct
	if err := protojson.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}
	return st.AsMap(), nil
}
