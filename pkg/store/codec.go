package store

import "encoding/json"

// Codec converts list elements to and from bytes.
type Codec[T any] interface {
	Encode(T) ([]byte, error)
	// Decode converts bytes back to an element. It must not retain data after
	// returning.
	Decode(data []byte) (T, error)
}

// StringCodec stores strings as their bytes.
type StringCodec struct{}

func (StringCodec) Encode(s string) ([]byte, error)    { return []byte(s), nil }
func (StringCodec) Decode(data []byte) (string, error) { return string(data), nil }

// JSONCodec stores elements as JSON.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(v T) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec[T]) Decode(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
