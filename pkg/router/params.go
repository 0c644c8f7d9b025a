package router

import (
	"encoding"
	"reflect"
	"strconv"

	"github.com/AndreasArvidsson/jRouter/internal/errors"
)

// paramTag names the struct tag binding a field to a route parameter.
const paramTag = "param"

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// Decode copies the match's parameters into the struct target points to.
// See DecodeParams.
//
//	var p struct {
//	    ID     int    `param:"id"`
//	    PostID uint64 `param:"postId"`
//	}
//	err := m.Decode(&p)
func (m *MatchResult) Decode(target any) error {
	if m == nil {
		return nil
	}
	return DecodeParams(m.Params, target)
}

// DecodeParams copies params into the fields of the struct target points to.
//
// A field takes part when it carries a `param:"name"` tag. Tagged fields
// whose parameter is absent keep their value, so a struct can be decoded
// against routes that capture different subsets. Supported field types are
// strings, integers, floats, bools, pointers to those, and anything
// implementing encoding.TextUnmarshaler. A value that does not fit its
// field fails with E203 naming the parameter.
func DecodeParams(params map[string]string, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return errors.New("E203").WithDetailf("decode target must be a non-nil struct pointer, got %T", target)
	}
	v = v.Elem()

	for _, field := range reflect.VisibleFields(v.Type()) {
		name, ok := field.Tag.Lookup(paramTag)
		if !ok || name == "" || !field.IsExported() {
			continue
		}
		raw, ok := params[name]
		if !ok {
			continue
		}
		// Fields promoted through a nil embedded pointer are skipped.
		dst, err := v.FieldByIndexErr(field.Index)
		if err != nil {
			continue
		}
		if err := assign(dst, raw); err != nil {
			return errors.New("E203").
				WithDetailf("parameter %q = %q into %s field %s", name, raw, field.Type, field.Name).
				Wrap(err)
		}
	}
	return nil
}

func assign(dst reflect.Value, raw string) error {
	if dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		if dst.Type().Implements(textUnmarshalerType) {
			return dst.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
		}
		return assign(dst.Elem(), raw)
	}
	if dst.CanAddr() && dst.Addr().Type().Implements(textUnmarshalerType) {
		return dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	default:
		return errors.Newf(errors.CategoryLoad, "unsupported field kind %s", dst.Kind())
	}
	return nil
}
