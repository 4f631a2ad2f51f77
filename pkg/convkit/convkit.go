// Package convkit converts textual configuration input into typed values.
package convkit

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/keyisfocus/listarray/pkg/errorkit"
)

const (
	ErrParse           errorkit.Error = "ErrParse"
	ErrUnsupportedType errorkit.Error = "ErrUnsupportedType"
)

func Parse[T any, Raw encoded](raw Raw, opts ...Option) (T, error) {
	rv, err := parse(reflect.TypeOf((*T)(nil)).Elem(), string(raw), toOptions(opts))
	if err != nil {
		return *new(T), err
	}
	return rv.Interface().(T), nil
}

func ParseReflect[Raw encoded](typ reflect.Type, raw Raw, opts ...Option) (reflect.Value, error) {
	return parse(typ, string(raw), toOptions(opts))
}

type encoded interface{ ~string | []byte }

type Option interface{ configure(*Options) }

type Options struct {
	// Separator is used to split list values.
	// When empty, lists are expected in JSON array format, or as a comma separated list.
	Separator string
	// TimeLayout is the layout used to parse time.Time values.
	TimeLayout string
	// ParseFunc is used to Parse the input data. It follows the signature of the json.Unmarshal function.
	ParseFunc func(data []byte, ptr any) error
}

func (o Options) configure(options *Options) {
	if o.Separator != "" {
		options.Separator = o.Separator
	}
	if o.TimeLayout != "" {
		options.TimeLayout = o.TimeLayout
	}
	if o.ParseFunc != nil {
		options.ParseFunc = o.ParseFunc
	}
}

func toOptions(opts []Option) Options {
	var options Options
	for _, opt := range opts {
		opt.configure(&options)
	}
	return options
}

// ParseWith parses the raw input with a custom function instead of the built in type conversions.
func ParseWith[T any](parser func(string) (T, error)) Option {
	return Options{ParseFunc: func(data []byte, ptr any) error {
		v, err := parser(string(data))
		if err != nil {
			return err
		}
		out, ok := ptr.(*T)
		if !ok {
			return ErrUnsupportedType.F("%T is not a *%T", ptr, v)
		}
		*out = v
		return nil
	}}
}

var (
	typeTime     = reflect.TypeOf(time.Time{})
	typeDuration = reflect.TypeOf(time.Duration(0))
)

const defaultSeparator = ","

func parse(typ reflect.Type, val string, opts Options) (reflect.Value, error) {
	if opts.ParseFunc != nil {
		var ptr = reflect.New(typ)
		if err := opts.ParseFunc([]byte(val), ptr.Interface()); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
	switch typ {
	case typeDuration:
		d, err := time.ParseDuration(val)
		if err != nil {
			return reflect.Value{}, ErrParse.Wrap(err)
		}
		return reflect.ValueOf(d), nil
	case typeTime:
		if opts.TimeLayout == "" {
			return reflect.Value{}, ErrParse.F("missing TimeLayout option for %s", typ.String())
		}
		date, err := time.Parse(opts.TimeLayout, val)
		if err != nil {
			return reflect.Value{}, ErrParse.Wrap(err)
		}
		return reflect.ValueOf(date), nil
	}
	switch typ.Kind() {
	case reflect.String:
		return reflect.ValueOf(val).Convert(typ), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		num, err := strconv.ParseUint(val, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, ErrParse.Wrap(err)
		}
		return reflect.ValueOf(num).Convert(typ), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		num, err := strconv.ParseInt(val, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, ErrParse.Wrap(err)
		}
		return reflect.ValueOf(num).Convert(typ), nil

	case reflect.Float32, reflect.Float64:
		num, err := strconv.ParseFloat(val, typ.Bits())
		if err != nil {
			return reflect.Value{}, ErrParse.Wrap(err)
		}
		return reflect.ValueOf(num).Convert(typ), nil

	case reflect.Bool:
		bl, err := strconv.ParseBool(val)
		if err != nil {
			return reflect.Value{}, ErrParse.Wrap(err)
		}
		return reflect.ValueOf(bl).Convert(typ), nil

	case reflect.Slice:
		if opts.Separator == "" && strings.HasPrefix(strings.TrimSpace(val), "[") && json.Valid([]byte(val)) {
			return parseJSON(typ, val)
		}
		sep := opts.Separator
		if sep == "" {
			sep = defaultSeparator
		}
		rv := reflect.MakeSlice(typ, 0, 0)
		for _, elem := range split(val, sep) {
			re, err := parse(typ.Elem(), strings.TrimSpace(elem), opts)
			if err != nil {
				return reflect.Value{}, err
			}
			rv = reflect.Append(rv, re)
		}
		return rv, nil

	case reflect.Map:
		return parseJSON(typ, val)

	case reflect.Pointer:
		rv, err := parse(typ.Elem(), val, opts)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(typ.Elem())
		ptr.Elem().Set(rv)
		return ptr, nil

	default:
		return reflect.Value{}, ErrUnsupportedType.F("unknown type: %s", typ.String())
	}
}

func parseJSON(typ reflect.Type, val string) (reflect.Value, error) {
	ptr := reflect.New(typ)
	if err := json.Unmarshal([]byte(val), ptr.Interface()); err != nil {
		return reflect.Value{}, ErrParse.Wrap(err)
	}
	return ptr.Elem(), nil
}

// split cuts the input at each separator, except at the ones escaped with a backslash.
func split(s string, sep string) []string {
	if s == "" {
		return nil
	}
	var (
		out []string
		cur strings.Builder
	)
	for 0 < len(s) {
		switch {
		case strings.HasPrefix(s, `\`+sep):
			cur.WriteString(sep)
			s = s[len(sep)+1:]
		case strings.HasPrefix(s, sep):
			out = append(out, cur.String())
			cur.Reset()
			s = s[len(sep):]
		default:
			cur.WriteByte(s[0])
			s = s[1:]
		}
	}
	return append(out, cur.String())
}
