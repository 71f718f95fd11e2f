package pricing

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStruct converts a JSON-tagged value into a Struct.
// Struct numbers are doubles; int64 fields on the wire carry the `,string` option
// so amounts and kilometres travel as decimal strings and stay exact.
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return structpb.NewStruct(fields)
}

// fromStruct decodes a Struct into a JSON-tagged value.
func fromStruct(s *structpb.Struct, v interface{}) error {
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return json.Unmarshal(raw, v)
}

// decodeRequest is fromStruct for server input; malformed payloads are the caller's fault.
func decodeRequest(in *structpb.Struct, v interface{}) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	if err := fromStruct(in, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	return nil
}

// encodeReply is toStruct for server output.
func encodeReply(v interface{}) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode reply")
	}
	return out, nil
}
