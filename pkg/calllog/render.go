package calllog

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unsafe"
)

// maxRenderDepth — глубина вложенных карт, после которой выводится {...}.
const maxRenderDepth = 16

// renderFields — человекочитаемое представление карты: {id: 7, name: "x"}.
// Ключи сортируются, чтобы одинаковые данные давали одинаковую строку.
// Карта, уже встреченная выше по вложенности, выводится как {...}.
func renderFields(m any) string {
	return renderMap(reflect.ValueOf(m), nil)
}

func renderMap(rv reflect.Value, path []unsafe.Pointer) string {
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Len() == 0 {
		return "{}"
	}
	ptr := rv.UnsafePointer()
	if len(path) >= maxRenderDepth || slices.Contains(path, ptr) {
		return "{...}"
	}
	path = append(path, ptr)

	type pair struct{ k, v string }
	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, pair{
			k: fmt.Sprint(iter.Key().Interface()),
			v: renderValue(iter.Value().Interface(), path),
		})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	var b strings.Builder
	b.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.k)
		b.WriteString(": ")
		b.WriteString(p.v)
	}
	b.WriteByte('}')
	return b.String()
}

func renderValue(v any, path []unsafe.Pointer) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case error:
		return strconv.Quote(errorText(x))
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map {
		return renderMap(rv, path)
	}
	return fmt.Sprint(v)
}

// errorText — err.Error() без риска паники (например, nil-указатель в интерфейсе error).
func errorText(err error) (s string) {
	if err == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("%T", err)
		}
	}()
	return err.Error()
}
