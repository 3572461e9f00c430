// Package mapstructure binds matched blocks onto destination values. Each
// bound block that carries a property contributes one value, which is
// decoded into the destination with go-viper/mapstructure.
package mapstructure

import (
	"strings"

	"github.com/fwojciec/blocksearch"
	"github.com/go-viper/mapstructure/v2"
)

// TagName is the struct tag consulted when decoding, e.g. `field:"title"`.
const TagName = "field"

// listSuffix marks a property path whose values are collected into a list.
const listSuffix = "[]"

// Values returns the property values of a bound match as a nested map.
// Dotted paths create nested maps and a "[]" suffix appends to a list.
func Values(match *blocksearch.Block) (map[string]any, error) {
	if !match.IsBound() {
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "block is not bound")
	}

	values := make(map[string]any)
	var err error
	match.Walk(func(b *blocksearch.Block) bool {
		if err != nil {
			return false
		}
		if b.Property == nil {
			return true
		}
		if !b.IsBound() {
			err = blocksearch.Errorf(blocksearch.EINVALID, "block %q is not bound", b.Tag)
			return false
		}
		err = set(values, b.Property.Path, Value(b))
		return true
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// Value returns the raw value a bound block contributes: the property's
// attribute when one is named, otherwise the element's text with
// whitespace collapsed.
func Value(b *blocksearch.Block) string {
	if b.Element == nil {
		return ""
	}
	if b.Property != nil && b.Property.Attr != "" {
		v, _ := b.Element.Attr(b.Property.Attr)
		return v
	}
	return strings.Join(strings.Fields(b.Element.TextContent()), " ")
}

// set stores v at path inside values.
func set(values map[string]any, path string, v string) error {
	segments := strings.Split(path, ".")
	last := len(segments) - 1

	m := values
	for i, seg := range segments {
		if seg == "" || seg == listSuffix {
			return blocksearch.Errorf(blocksearch.EINVALID, "invalid property path %q", path)
		}
		if i < last {
			switch next := m[seg].(type) {
			case nil:
				child := make(map[string]any)
				m[seg] = child
				m = child
			case map[string]any:
				m = next
			default:
				return blocksearch.Errorf(blocksearch.EINVALID, "property path %q conflicts with value at %q", path, seg)
			}
			continue
		}

		if name, ok := strings.CutSuffix(seg, listSuffix); ok {
			switch cur := m[name].(type) {
			case nil:
				m[name] = []any{v}
			case []any:
				m[name] = append(cur, v)
			default:
				return blocksearch.Errorf(blocksearch.EINVALID, "property path %q conflicts with value at %q", path, name)
			}
			return nil
		}
		if _, isMap := m[seg].(map[string]any); isMap {
			return blocksearch.Errorf(blocksearch.EINVALID, "property path %q conflicts with value at %q", path, seg)
		}
		m[seg] = v
	}
	return nil
}

// Decode binds the property values of match into dst, which must be a
// pointer to a struct or map. Values are decoded weakly, so text such as
// "42" fills numeric fields.
func Decode(match *blocksearch.Block, dst any) error {
	values, err := Values(match)
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          TagName,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return blocksearch.Errorf(blocksearch.EINVALID, "invalid destination: %v", err)
	}
	if err := dec.Decode(values); err != nil {
		return blocksearch.Errorf(blocksearch.EINVALID, "failed to bind match: %v", err)
	}
	return nil
}
