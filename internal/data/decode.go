package data

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/aoideee/crud-api/internal/store"
)

// Decode converts a loosely typed payload (a decoded JSON body, a form, a
// stored document or a seed entry) into a record. Values are cast to the
// field types where possible, so "2012" is accepted for an int field; a value
// that cannot be cast is an error, and so is a number with a fractional part
// bound for an int field. Unknown keys are dropped.
func Decode[R any](src map[string]any) (R, error) {
	var rec R
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       rejectFractionalInts,
		Result:           &rec,
	})
	if err != nil {
		return rec, err
	}
	if err := dec.Decode(src); err != nil {
		return rec, err
	}
	return rec, nil
}

// rejectFractionalInts stops a float such as 2006.7 from being truncated into
// an int field. Form values arrive as strings and already fail to parse, so
// JSON and form bodies are treated alike.
func rejectFractionalInts(from, to reflect.Type, v any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return v, nil
	}
	var f float64
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f = reflect.ValueOf(v).Float()
	default:
		return v, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("cannot cast %v to an integer", v)
	}
	return v, nil
}

// encode turns a record into a store document, omitting absent fields.
func encode[R any](rec R) (store.Document, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var doc store.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
