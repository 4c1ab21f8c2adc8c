package documents

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/procurelab/matchbook/pkg/errors"
)

// Raw is an arbitrary mapping of extracted fields, as produced by the
// extraction collaborator or read from a record file. Keys follow the
// extraction schema: id, vendor, total, items.
type Raw map[string]any

// Normalize validates and coerces a raw mapping into a Document.
//
// Missing optional fields take their defaults: empty strings for id and
// vendor, 0 for numeric fields, and an empty item list. A present value
// that cannot be coerced to its field's type is a *errors.SchemaError
// naming the field. An empty or nil mapping is itself a schema violation:
// there is no record to normalize.
func Normalize(raw Raw) (Document, error) {
	if len(raw) == 0 {
		return Document{}, errors.NewSchemaError("document", raw, "record is empty or missing")
	}

	var doc Document
	var err error

	if doc.ID, err = stringField(raw, "id"); err != nil {
		return Document{}, err
	}
	if doc.Vendor, err = stringField(raw, "vendor"); err != nil {
		return Document{}, err
	}
	if doc.Total, err = amountField(raw, "total"); err != nil {
		return Document{}, err
	}
	if doc.Total < 0 {
		return Document{}, errors.NewSchemaError("total", raw["total"], "must not be negative")
	}
	if doc.Items, err = itemsField(raw); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// stringField reads an optional string field. Numeric scalars are rendered
// to their decimal string because extraction sometimes emits bare numbers
// for document identifiers.
func stringField(raw Raw, key string) (string, error) {
	value, ok := raw[key]
	if !ok || value == nil {
		return "", nil
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	default:
		return "", errors.NewSchemaError(key, value, "cannot be represented as a string")
	}
}

// amountField reads an optional numeric field, defaulting to 0 when absent.
func amountField(raw Raw, key string) (float64, error) {
	value, ok := raw[key]
	if !ok || value == nil {
		return 0, nil
	}

	f, ok := toFloat(value)
	if !ok {
		return 0, errors.NewSchemaError(key, value, "cannot be parsed as a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.NewSchemaError(key, value, "must be a finite number")
	}
	return f, nil
}

// itemsField reads the optional items sequence.
func itemsField(raw Raw) ([]LineItem, error) {
	value, ok := raw["items"]
	if !ok || value == nil {
		return []LineItem{}, nil
	}

	list, ok := value.([]any)
	if !ok {
		return nil, errors.NewSchemaError("items", value, "must be a sequence of line items")
	}

	items := make([]LineItem, 0, len(list))
	for i, element := range list {
		item, err := normalizeItem(i, element)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// normalizeItem coerces one element of the items sequence.
func normalizeItem(index int, element any) (LineItem, error) {
	mapping, ok := toMapping(element)
	if !ok {
		field := fmt.Sprintf("items[%d]", index)
		return LineItem{}, errors.NewSchemaError(field, element, "must be a mapping")
	}

	var item LineItem
	var err error

	if item.Description, err = stringField(mapping, "description"); err != nil {
		return LineItem{}, prefixItemField(index, err)
	}
	if item.Quantity, err = quantityField(mapping); err != nil {
		return LineItem{}, prefixItemField(index, err)
	}
	if item.UnitPrice, err = amountField(mapping, "unit_price"); err != nil {
		return LineItem{}, prefixItemField(index, err)
	}
	if item.LineTotal, err = amountField(mapping, "line_total"); err != nil {
		return LineItem{}, prefixItemField(index, err)
	}

	return item, nil
}

// quantityField reads the optional quantity field as a whole number.
func quantityField(mapping Raw) (int, error) {
	value, ok := mapping["quantity"]
	if !ok || value == nil {
		return 0, nil
	}

	f, ok := toFloat(value)
	if !ok {
		return 0, errors.NewSchemaError("quantity", value, "cannot be parsed as an integer")
	}
	if f != math.Trunc(f) || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.NewSchemaError("quantity", value, "must be a whole number")
	}
	if f < 0 {
		return 0, errors.NewSchemaError("quantity", value, "must not be negative")
	}
	return int(f), nil
}

// prefixItemField rewrites a schema error's field to include the item index,
// so callers see items[2].quantity rather than a bare quantity.
func prefixItemField(index int, err error) error {
	var schemaErr *errors.SchemaError
	if stderrors.As(err, &schemaErr) {
		return errors.NewSchemaError(
			fmt.Sprintf("items[%d].%s", index, schemaErr.Field),
			schemaErr.Value,
			schemaErr.Message,
		)
	}
	return err
}

// toFloat coerces the scalar types produced by the JSON and YAML decoders,
// plus numeric strings, into a float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toMapping coerces a decoded mapping value into Raw. The JSON decoder
// produces map[string]any; so does goccy yaml for string-keyed mappings.
func toMapping(value any) (Raw, bool) {
	switch v := value.(type) {
	case Raw:
		return v, true
	case map[string]any:
		return Raw(v), true
	case map[any]any:
		mapping := make(Raw, len(v))
		for key, val := range v {
			s, ok := key.(string)
			if !ok {
				return nil, false
			}
			mapping[s] = val
		}
		return mapping, true
	default:
		return nil, false
	}
}
