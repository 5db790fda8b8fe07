package calllog

import (
	"fmt"
	"reflect"
)

// Method — явная метка вызывающего метода. Обычная строка во второй позиции
// меткой не считается: она игнорируется, как и любой нераспознанный аргумент.
type Method string

// Fields — отладочные данные, которые дописываются в конец сообщения.
type Fields map[string]any

// roles — результат разбора аргументов: какой аргумент какую роль играет.
type roles struct {
	text      string
	hasText   bool
	err       error
	method    Method
	hasMethod bool
	// fields — любая карта (Fields, map[string]any, map[K]V); nil если данных нет.
	fields any

	// unclassified — позиции (с единицы) аргументов, для которых роль не нашлась.
	unclassified []int
}

// maxArgs — сколько позиционных аргументов участвует в разборе.
const maxArgs = 3

// classify — разбор аргументов по форме значения, а не по позиции.
// Нераспознанные аргументы не ошибка: для них роль остаётся пустой.
func classify(args []any) roles {
	var r roles

	a1, a2, a3 := argAt(args, 0), argAt(args, 1), argAt(args, 2)
	for i := maxArgs; i < len(args); i++ {
		r.unclassified = append(r.unclassified, i+1)
	}
	if len(args) == 0 {
		return r
	}

	switch v := a1.(type) {
	case error:
		r.err = v
		if isMap(a2) {
			r.fields = a2
		} else if a2 != nil {
			r.unclassified = append(r.unclassified, 2)
		}
	case Method:
		r.unclassified = append(r.unclassified, 1)
	default:
		switch {
		case isText(a1):
			r.text, r.hasText = textOf(a1), true
			switch v2 := a2.(type) {
			case nil:
			case error:
				r.err = v2
			case Method:
				r.method, r.hasMethod = v2, true
			default:
				if isMap(a2) {
					r.fields = a2
				} else {
					r.unclassified = append(r.unclassified, 2)
				}
			}
		case isCode(a1):
			r.text, r.hasText = fmt.Sprint(a1), true
		default:
			r.unclassified = append(r.unclassified, 1)
		}
	}

	switch {
	case a3 == nil:
	case r.fields == nil && isMap(a3):
		r.fields = a3
	default:
		// вторая карта или не карта
		r.unclassified = append(r.unclassified, 3)
	}
	return r
}

func argAt(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func isText(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(Method); ok {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.String
}

func textOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return reflect.ValueOf(v).String()
}

func isCode(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// isMap — «картоподобное» значение. nil-карта тоже карта: рендерится как {}.
func isMap(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Map
}
