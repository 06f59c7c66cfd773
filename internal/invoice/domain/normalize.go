package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FinalizeForPersistence returns the payload to hand to the store: the date
// normalized and every empty numeric placeholder resolved to 0. A record
// without items gets one zero-valued item. The input is left untouched so the
// edit buffer and the payload can diverge.
func FinalizeForPersistence(r Record) Record {
	out := r
	out.InvoiceDate = NormalizeDate(r.InvoiceDate)
	if len(r.Items) == 0 {
		out.Items = []LineItem{BlankLineItem()}
		return out
	}
	out.Items = make([]LineItem, len(r.Items))
	for i, item := range r.Items {
		for _, n := range item.numerics() {
			*n = Number(n.OrZero())
		}
		out.Items[i] = item
	}
	return out
}

// ToDocument converts the record to its persisted document shape. The id is
// never part of the body.
func (r Record) ToDocument() map[string]any {
	doc := make(map[string]any, len(headerFields)+1)
	for _, f := range headerFields {
		doc[f.Key] = r.FieldValue(f.Key)
	}
	items := make([]any, 0, len(r.Items))
	for _, item := range r.Items {
		m := make(map[string]any, len(lineItemFields))
		for _, f := range lineItemFields {
			if f.Numeric {
				m[f.Key] = item.numeric(f.Key).OrZero()
				continue
			}
			m[f.Key] = *item.text(f.Key)
		}
		items = append(items, m)
	}
	doc["items"] = items
	return doc
}

// FromStored builds a record from a loosely typed stored document. It never
// fails: missing fields take their defaults, unknown keys are dropped, and a
// document without line items gets one blank item.
func FromStored(raw map[string]any) Record {
	var r Record
	for _, f := range headerFields {
		r.SetField(f.Key, stringValue(raw[f.Key]))
	}

	list, _ := raw["items"].([]any)
	if list == nil {
		if maps, ok := raw["items"].([]map[string]any); ok {
			for _, m := range maps {
				list = append(list, m)
			}
		}
	}
	for _, entry := range list {
		r.Items = append(r.Items, lineItemFromStored(entry))
	}
	if len(r.Items) == 0 {
		r.Items = []LineItem{BlankLineItem()}
	}
	return r
}

func lineItemFromStored(entry any) LineItem {
	m, ok := entry.(map[string]any)
	if !ok {
		return BlankLineItem()
	}
	var li LineItem
	for _, f := range lineItemFields {
		v, present := m[f.Key]
		if f.Numeric {
			if !present {
				*li.numeric(f.Key) = Number(0)
				continue
			}
			*li.numeric(f.Key) = numericValue(v)
			continue
		}
		*li.text(f.Key) = stringValue(v)
	}
	return li
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return dateOf(t)
	case *time.Time:
		if t == nil {
			return ""
		}
		return dateOf(*t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func numericValue(v any) Numeric {
	switch t := v.(type) {
	case nil:
		return Empty()
	case Numeric:
		return t
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil || math.IsInf(f, 0) {
			return Empty()
		}
		return Number(f)
	case string:
		return CoerceNumeric(strings.TrimSpace(t))
	default:
		return Empty()
	}
}
