package handlers

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// validator реализуется формами из пакета models.
type validator interface {
	Validate() error
}

// decodeForm заполняет поля формы по тэгу `form` и вызывает Validate.
// Поддерживаются поля string и int64; нечисловое значение оставляет int64 нулевым,
// такие случаи отсекает Validate формы.
func decodeForm(r *http.Request, dst validator) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("ошибка разбора формы: %w", err)
	}

	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("form")
		if name == "" {
			continue
		}

		raw := r.Form.Get(name)
		switch field.Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(raw)
		case reflect.Int64:
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				continue
			}
			v.Field(i).SetInt(n)
		default:
			return fmt.Errorf("неподдерживаемый тип поля формы %s: %s", field.Name, field.Type)
		}
	}

	return dst.Validate()
}
