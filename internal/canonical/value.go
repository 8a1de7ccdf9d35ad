// Package canonical renders request parameters into the bracketed key=value
// form that iyzico signs with the legacy IYZWS scheme.
//
// A request is first turned into a tree of Values (see Encode) and then
// rendered by a single recursive function. Field order is significant and
// always follows the order in which fields were declared.
package canonical

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindScalar
	KindPrice
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindPrice:
		return "price"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a node of the canonical tree.
type Value struct {
	kind   Kind
	text   string
	price  decimal.Decimal
	fields []Field
	items  []Value
}

// Field is a named member of an object.
type Field struct {
	Key   string
	Value Value
}

// Absent returns a value that is omitted from the output.
func Absent() Value { return Value{} }

// Scalar returns a value rendered verbatim.
func Scalar(s string) Value { return Value{kind: KindScalar, text: s} }

// Price returns a monetary value rendered with FormatPrice.
func Price(d decimal.Decimal) Value { return Value{kind: KindPrice, price: d} }

// Object returns a bracketed group of fields.
func Object(fields ...Field) Value { return Value{kind: KindObject, fields: fields} }

// List returns a bracketed, ", " separated sequence.
func List(items ...Value) Value { return Value{kind: KindList, items: items} }

// NewField pairs a key with a value.
func NewField(key string, v Value) Field { return Field{Key: key, Value: v} }

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v contributes nothing to its parent. Lists with
// no present elements count as absent.
func (v Value) IsAbsent() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindList:
		for _, item := range v.items {
			if !item.IsAbsent() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v. Objects and lists are wrapped in brackets.
func (v Value) String() string {
	return render(v)
}

// Flat renders v without the outer brackets of an object. It is the form
// used by the locale/conversationId envelope shared by every request.
func (v Value) Flat() string {
	if v.kind == KindObject {
		return renderFields(v.fields)
	}
	return render(v)
}

func render(v Value) string {
	switch v.kind {
	case KindScalar:
		return v.text
	case KindPrice:
		return FormatPrice(v.price)
	case KindObject:
		return "[" + renderFields(v.fields) + "]"
	case KindList:
		parts := make([]string, 0, len(v.items))
		for _, item := range v.items {
			if item.IsAbsent() {
				continue
			}
			parts = append(parts, render(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

func renderFields(fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		if f.Value.IsAbsent() {
			continue
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(render(f.Value))
		b.WriteByte(',')
	}
	return trimSeparators(b.String())
}

// trimSeparators strips surrounding whitespace and at most one leading and
// one trailing comma.
func trimSeparators(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ",")
	s = strings.TrimSuffix(s, ",")
	return s
}
