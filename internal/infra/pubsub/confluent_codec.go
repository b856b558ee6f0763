package pubsub

import (
	"context"
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"posbridge-server/internal/infra/cache"

	"github.com/hamba/avro/v2"
	"github.com/riferrei/srclient"
)

const (
	_confluentMagicByte  = 0x0
	_confluentHeaderSize = 5
	_writerSchemaTTL     = 10 * time.Minute
)

// SchemaRegistry is the part of the Confluent registry client the codec needs.
type SchemaRegistry interface {
	GetLatestSchema(subject string) (*srclient.Schema, error)
	CreateSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
	GetSchema(schemaID int) (*srclient.Schema, error)
}

// ConfluentAvroCodec writes the Confluent wire format: a zero magic byte, the
// big endian schema id, then the avro body. The message schema is registered
// under "<topic>-value" the first time it is needed.
type ConfluentAvroCodec struct {
	subject   string
	registry  SchemaRegistry
	schema    avro.Schema
	valueType reflect.Type
	writers   cache.Cache

	once     sync.Once
	schemaID int
	err      error
}

func NewConfluentAvroCodec(topic Topic, prototype Message, registry SchemaRegistry) (*ConfluentAvroCodec, error) {
	local, err := NewAvroCodec(prototype)
	if err != nil {
		return nil, err
	}

	writers, err := cache.New(&cache.CacheConfig{
		MaxCost:     1 << 20,
		NumCounters: 1e4,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating writer schema cache: %w", err)
	}

	return &ConfluentAvroCodec{
		subject:   string(topic) + "-value",
		registry:  registry,
		schema:    local.schema,
		valueType: local.valueType,
		writers:   writers,
	}, nil
}

func (c *ConfluentAvroCodec) Encode(value any) ([]byte, error) {
	id, err := c.registeredID()
	if err != nil {
		return nil, err
	}

	body, err := avro.Marshal(c.schema, value)
	if err != nil {
		return nil, fmt.Errorf("marshaling to avro: %w", err)
	}

	data := make([]byte, _confluentHeaderSize, _confluentHeaderSize+len(body))
	data[0] = _confluentMagicByte
	binary.BigEndian.PutUint32(data[1:], uint32(id))
	return append(data, body...), nil
}

// Decode reads with the schema the producer wrote with, which may be an
// older version of the local one.
func (c *ConfluentAvroCodec) Decode(data []byte) (any, error) {
	if len(data) < _confluentHeaderSize || data[0] != _confluentMagicByte {
		return nil, fmt.Errorf("message is not in confluent wire format")
	}

	writer, err := c.writerSchema(int(binary.BigEndian.Uint32(data[1:_confluentHeaderSize])))
	if err != nil {
		return nil, err
	}

	instance := reflect.New(c.valueType).Interface()
	if err := avro.Unmarshal(writer, data[_confluentHeaderSize:], instance); err != nil {
		return nil, fmt.Errorf("unmarshaling from avro: %w", err)
	}
	return instance, nil
}

func (c *ConfluentAvroCodec) registeredID() (int, error) {
	c.once.Do(func() {
		latest, err := c.registry.GetLatestSchema(c.subject)
		if err == nil && latest != nil && latest.Schema() == c.schema.String() {
			c.schemaID = latest.ID()
			return
		}

		created, err := c.registry.CreateSchema(c.subject, c.schema.String(), srclient.Avro)
		if err != nil {
			c.err = fmt.Errorf("registering schema for %s: %w", c.subject, err)
			return
		}
		c.schemaID = created.ID()
	})

	return c.schemaID, c.err
}

func (c *ConfluentAvroCodec) writerSchema(id int) (avro.Schema, error) {
	value, err := c.writers.GetOrSet(context.Background(), strconv.Itoa(id), _writerSchemaTTL, func() (any, error) {
		registered, err := c.registry.GetSchema(id)
		if err != nil {
			return nil, fmt.Errorf("fetching schema %d: %w", id, err)
		}
		return avro.Parse(registered.Schema())
	})
	if err != nil {
		return nil, err
	}
	return value.(avro.Schema), nil
}
