package list

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type marshalError struct {
	index int
	cause error
}

func (err *marshalError) Error() string {
	return fmt.Sprintf("element %d: %s", err.index, err.cause)
}

func (err *marshalError) Unwrap() error { return err.cause }

// MarshalJSON encodes the list as a JSON array.
func (l List[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	index := 0
	for it := l.Iterator(); it.HasElem(); it.Next() {
		if index > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := json.Marshal(it.Elem())
		if err != nil {
			return nil, &marshalError{index, err}
		}
		buf.Write(elemBytes)
		index++
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON array into a newly built list. A JSON null
// decodes to the empty list.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	var elems []T
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	*l = FromSlice(elems)
	return nil
}

// MarshalYAML encodes the list as a YAML sequence.
func (l List[T]) MarshalYAML() (any, error) {
	return l.Slice(), nil
}

// UnmarshalYAML decodes a YAML sequence into a newly built list.
func (l *List[T]) UnmarshalYAML(value *yaml.Node) error {
	var elems []T
	if err := value.Decode(&elems); err != nil {
		return err
	}
	*l = FromSlice(elems)
	return nil
}
