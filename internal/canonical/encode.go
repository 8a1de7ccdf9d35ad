package canonical

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
)

// TagName is the struct tag holding a field's canonical key.
const TagName = "pki"

var ErrUnsupportedType = errors.New("unsupported type")

var decimalType = reflect.TypeOf(decimal.Decimal{})

// Encode builds the canonical tree for v.
//
// Only exported fields carrying a `pki:"key"` tag are emitted, in declaration
// order. Untagged embedded structs are flattened into their parent. Empty
// strings, zero numbers, false booleans, nil pointers and empty slices are
// absent. List elements are always emitted. A non-nil pointer is always
// present, so *bool and *int can carry explicit false and zero.
// decimal.Decimal values become prices.
func Encode(v interface{}) (Value, error) {
	return encodeValue(reflect.ValueOf(v), false)
}

// Marshal encodes v and renders it.
func Marshal(v interface{}) (string, error) {
	val, err := Encode(v)
	if err != nil {
		return "", err
	}
	return val.String(), nil
}

func encodeValue(rv reflect.Value, explicit bool) (Value, error) {
	if !rv.IsValid() {
		return Absent(), nil
	}
	if rv.Type() == decimalType {
		return Price(rv.Interface().(decimal.Decimal)), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Absent(), nil
		}
		return encodeValue(rv.Elem(), true)

	case reflect.String:
		if rv.Len() == 0 && !explicit {
			return Absent(), nil
		}
		return Scalar(rv.String()), nil

	case reflect.Bool:
		if !rv.Bool() && !explicit {
			return Absent(), nil
		}
		return Scalar(strconv.FormatBool(rv.Bool())), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() == 0 && !explicit {
			return Absent(), nil
		}
		return Scalar(strconv.FormatInt(rv.Int(), 10)), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() == 0 && !explicit {
			return Absent(), nil
		}
		return Scalar(strconv.FormatUint(rv.Uint(), 10)), nil

	case reflect.Struct:
		fields, err := encodeFields(rv)
		if err != nil {
			return Value{}, err
		}
		return Object(fields...), nil

	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return Absent(), nil
		}
		items := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := encodeValue(rv.Index(i), true)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return List(items...), nil
	}

	return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
}

func encodeFields(rv reflect.Value) ([]Field, error) {
	t := rv.Type()
	var fields []Field

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		key, tagged := sf.Tag.Lookup(TagName)
		if key == "-" {
			continue
		}
		fv := rv.Field(i)

		if sf.Anonymous && !tagged {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct && fv.Type() != decimalType {
				inner, err := encodeFields(fv)
				if err != nil {
					return nil, err
				}
				fields = append(fields, inner...)
				continue
			}
		}

		if !sf.IsExported() || !tagged {
			continue
		}

		val, err := encodeValue(fv, false)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Name, err)
		}
		fields = append(fields, Field{Key: key, Value: val})
	}

	return fields, nil
}
