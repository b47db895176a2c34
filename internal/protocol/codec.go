package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty envelope type")
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %q: nil payload", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

type binaryEnvelope[T any] struct {
	T string `msgpack:"t"`
	P T      `msgpack:"p"`
}

// EncodeBinary is Encode for clients that asked for msgpack frames.
func EncodeBinary(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty envelope type")
	}
	b, err := msgpack.Marshal(&binaryEnvelope[any]{T: t, P: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", t, err)
	}
	return b, nil
}

func DecodeBinary[T any](b []byte) (string, T, error) {
	var env binaryEnvelope[T]
	if err := msgpack.Unmarshal(b, &env); err != nil {
		return "", env.P, fmt.Errorf("decode binary: %w", err)
	}
	return env.T, env.P, nil
}

// MarshalPretty is indented JSON for files meant to be read by people.
func MarshalPretty(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
