package mustache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ToValue converts host data into the engine's value model.
//
// Handled directly: nil, Value, bool, string, all integer and float
// kinds (rendered in decimal form; the value model has no numeric
// variant), json.Number, func(string) string (wrapped as a Lambda),
// []interface{}, []Value, map[string]interface{} and map[string]Value.
// Anything else is pushed through a JSON round-trip, so any
// json-serializable struct or map works too; unserializable input
// yields a ConversionError.
func ToValue(data interface{}) (Value, error) {
	switch v := data.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return Text(v), nil
	case int:
		return Text(strconv.FormatInt(int64(v), 10)), nil
	case int8:
		return Text(strconv.FormatInt(int64(v), 10)), nil
	case int16:
		return Text(strconv.FormatInt(int64(v), 10)), nil
	case int32:
		return Text(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return Text(strconv.FormatInt(v, 10)), nil
	case uint:
		return Text(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return Text(strconv.FormatUint(uint64(v), 10)), nil
	case uint16:
		return Text(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return Text(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return Text(strconv.FormatUint(v, 10)), nil
	case float32:
		return Text(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		return Text(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case json.Number:
		return Text(v.String()), nil
	case func(string) string:
		return NewLambda(v), nil
	case *Lambda:
		return v, nil
	case []interface{}:
		seq := make(Sequence, len(v))
		for i, item := range v {
			converted, err := ToValue(item)
			if err != nil {
				return nil, err
			}
			seq[i] = converted
		}
		return seq, nil
	case []Value:
		return Sequence(v), nil
	case map[string]Value:
		return Mapping(v), nil
	case map[string]interface{}:
		mapping := make(Mapping, len(v))
		for key, item := range v {
			converted, err := ToValue(item)
			if err != nil {
				return nil, err
			}
			mapping[key] = converted
		}
		return mapping, nil
	default:
		return valueFromRoundTrip(data)
	}
}

// valueFromRoundTrip converts arbitrary serializable data through
// encoding/json.
func valueFromRoundTrip(data interface{}) (Value, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, NewConversionError(data, fmt.Sprintf("not json-serializable: %v", err))
	}
	value, err := ValueFromJSON(encoded)
	if err != nil {
		return nil, NewConversionError(data, err.Error())
	}
	return value, nil
}

// ValueFromJSON decodes JSON into a Value. Comments and trailing
// commas are tolerated (JSONC), matching how configuration data is
// commonly written.
func ValueFromJSON(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var decoded interface{}
	if err := decoder.Decode(&decoded); err != nil {
		return nil, NewConversionError(nil, fmt.Sprintf("invalid JSON: %v", err))
	}
	return ToValue(decoded)
}

// ValueFromYAML decodes a YAML document into a Value.
func ValueFromYAML(data []byte) (Value, error) {
	var decoded interface{}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, NewConversionError(nil, fmt.Sprintf("invalid YAML: %v", err))
	}
	return yamlToValue(decoded)
}

// yamlToValue walks the shapes yaml.v3 produces: string-keyed maps,
// []interface{} and native scalars (ints and floats rather than
// json.Number).
func yamlToValue(data interface{}) (Value, error) {
	switch v := data.(type) {
	case map[string]interface{}:
		mapping := make(Mapping, len(v))
		for key, item := range v {
			converted, err := yamlToValue(item)
			if err != nil {
				return nil, err
			}
			mapping[key] = converted
		}
		return mapping, nil
	case []interface{}:
		seq := make(Sequence, len(v))
		for i, item := range v {
			converted, err := yamlToValue(item)
			if err != nil {
				return nil, err
			}
			seq[i] = converted
		}
		return seq, nil
	default:
		return ToValue(v)
	}
}
