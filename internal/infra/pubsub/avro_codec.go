package pubsub

import (
	"fmt"
	"reflect"

	"github.com/hamba/avro/v2"
)

// AvroCodec encodes one message type with the static schema it declares.
type AvroCodec struct {
	schema    avro.Schema
	valueType reflect.Type
}

func NewAvroCodec(prototype Message) (*AvroCodec, error) {
	provider, ok := prototype.(SchemaProvider)
	if !ok {
		return nil, fmt.Errorf("message %T does not declare an avro schema", prototype)
	}

	schema, err := avro.Parse(provider.AvroSchema())
	if err != nil {
		return nil, fmt.Errorf("parsing avro schema for %T: %w", prototype, err)
	}

	valueType := reflect.TypeOf(prototype)
	if valueType.Kind() == reflect.Ptr {
		valueType = valueType.Elem()
	}

	return &AvroCodec{
		schema:    schema,
		valueType: valueType,
	}, nil
}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	data, err := avro.Marshal(c.schema, value)
	if err != nil {
		return nil, fmt.Errorf("marshaling to avro: %w", err)
	}

	return data, nil
}

func (c *AvroCodec) Decode(data []byte) (any, error) {
	instance := reflect.New(c.valueType).Interface()
	if err := avro.Unmarshal(c.schema, data, instance); err != nil {
		return nil, fmt.Errorf("unmarshaling from avro: %w", err)
	}

	return instance, nil
}
