package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var errInvalidTarget = errors.New("binding target must be a non-nil pointer to a struct")

func mapForm(ptr any, form map[string][]string) error {
	return mapByTag(ptr, form, "form", nil)
}

// mapByTag fills the struct behind ptr from form, matching fields by the
// given tag (falling back to the field name). normalize, when set, is
// applied to the lookup key.
func mapByTag(ptr any, form map[string][]string, tag string, normalize func(string) string) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errInvalidTarget
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return errInvalidTarget
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)
		if !value.CanSet() {
			continue
		}
		if field.Anonymous && value.Kind() == reflect.Struct {
			if err := mapByTag(value.Addr().Interface(), form, tag, normalize); err != nil {
				return err
			}
			continue
		}

		name := field.Tag.Get(tag)
		// Strip tag options like ",omitempty".
		if idx := strings.IndexByte(name, ','); idx != -1 {
			name = name[:idx]
		}
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if normalize != nil {
			name = normalize(name)
		}

		vals, ok := form[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setField(value, vals); err != nil {
			return fmt.Errorf("bind field %q: %w", field.Name, err)
		}
	}

	return nil
}

func setField(value reflect.Value, vals []string) error {
	if value.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(value.Type(), len(vals), len(vals))
		for i, s := range vals {
			if err := setScalar(slice.Index(i), s); err != nil {
				return err
			}
		}
		value.Set(slice)
		return nil
	}
	return setScalar(value, vals[0])
}

func setScalar(value reflect.Value, s string) error {
	switch value.Kind() {
	case reflect.String:
		value.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		value.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(s)
			if err != nil {
				return err
			}
			value.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		value.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		value.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		value.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", value.Type())
	}
	return nil
}
