// Package env loads configuration from environment variables into typed values.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/keyisfocus/listarray/pkg/convkit"
	"github.com/keyisfocus/listarray/pkg/errorkit"
)

const (
	ErrLoadInvalidData errorkit.Error = "ErrLoadInvalidData"
	ErrMissingEnvVar   errorkit.Error = "ErrMissingEnvVar"
	ErrInvalidValue    errorkit.Error = "ErrInvalidValue"
)

// Lookup reads and parses an environment variable.
// The key can list alternative names separated by commas, the first present one is used.
func Lookup[T any](key string, opts ...LookupOption) (T, bool, error) {
	var conf lookupEnvOptions
	for _, opt := range opts {
		opt.configure(&conf)
	}
	raw, ok, err := lookupRaw(key, conf)
	if err != nil || !ok {
		return *new(T), false, err
	}
	val, err := convkit.Parse[T](raw, conf.convkitOptions()...)
	if err != nil {
		return *new(T), false, ErrInvalidValue.Wrap(err)
	}
	return val, true, nil
}

type LookupOption interface{ configure(*lookupEnvOptions) }

type funcLookupOption func(*lookupEnvOptions)

func (fn funcLookupOption) configure(options *lookupEnvOptions) { fn(options) }

// Load fills the exported fields of the struct tagged with `env:"KEY"`.
// Nested struct fields are visited recursively.
//
// Supported tags next to env:
//
//	default:"value"     fallback when the variable is not set
//	required:"true"     the variable must be present, or have a default
//	separator:";"       separator of slice values, "," by default
//	enum:"a;b;c;"       the accepted raw values
func Load[T any](ptr *T) error {
	if ptr == nil {
		return ErrLoadInvalidData.F("nil value received")
	}
	return ReflectLoad(reflect.ValueOf(ptr))
}

// ReflectLoad is the reflect.Value based form of Load.
// It expects a non nil pointer to a struct.
func ReflectLoad(ptr reflect.Value) error {
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return ErrLoadInvalidData.F("non-nil pointer was expected, got: %s", ptr.Kind().String())
	}
	rv := ptr.Elem()
	if rv.Kind() != reflect.Struct {
		return ErrLoadInvalidData.F("non-struct type received: %s", rv.Type().String())
	}
	return loadVisitStruct(rv)
}

func loadVisitStruct(rStruct reflect.Value) error {
	for i, numField := 0, rStruct.NumField(); i < numField; i++ {
		rStructField := rStruct.Type().Field(i)
		if !rStructField.IsExported() {
			continue
		}

		field := rStruct.Field(i)

		osEnvKey, ok := rStructField.Tag.Lookup(envTagKey)
		if !ok {
			if field.Kind() == reflect.Struct {
				if err := loadVisitStruct(field); err != nil {
					return err
				}
			}
			continue
		}

		opts, err := getLookupEnvOptions(rStructField.Tag)
		if err != nil {
			return errParsingEnvValue(rStructField, err)
		}

		val, ok, err := lookupEnv(field.Type(), osEnvKey, opts)
		if err != nil {
			return errParsingEnvValue(rStructField, err)
		}
		if !ok {
			continue
		}
		field.Set(val)
	}
	return nil
}

const envTagKey = "env"

// LookupFieldEnvNames returns the environment variable names of a struct field.
func LookupFieldEnvNames(sf reflect.StructField) ([]string, bool) {
	tag, ok := sf.Tag.Lookup(envTagKey)
	if !ok {
		return nil, false
	}
	var names []string
	for _, name := range strings.Split(tag, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, 0 < len(names)
}

var (
	tagsForDefaultValue = []string{"env-default", "default"}
	tagsForRequired     = []string{"env-required", "required"}
	tagsForSeparator    = []string{"env-separator", "separator"}
	tagsForEnum         = []string{"env-enum", "enum"}
)

func lookupTag(tag reflect.StructTag, keys []string) (string, bool) {
	for _, key := range keys {
		if value, ok := tag.Lookup(key); ok {
			return value, true
		}
	}
	return "", false
}

func getLookupEnvOptions(tag reflect.StructTag) (lookupEnvOptions, error) {
	var opts lookupEnvOptions
	if value, ok := lookupTag(tag, tagsForDefaultValue); ok {
		opts.DefaultValue = &value
	}
	if value, ok := lookupTag(tag, tagsForRequired); ok {
		isRequired, err := strconv.ParseBool(value)
		if err != nil {
			return opts, err
		}
		opts.IsRequired = isRequired
	}
	if value, ok := lookupTag(tag, tagsForSeparator); ok {
		opts.Separator = &value
	}
	if value, ok := lookupTag(tag, tagsForEnum); ok {
		for _, v := range strings.Split(value, ";") {
			if v != "" {
				opts.Enum = append(opts.Enum, v)
			}
		}
	}
	return opts, nil
}

type lookupEnvOptions struct {
	DefaultValue *string
	Separator    *string
	IsRequired   bool
	Enum         []string
	Convert      []convkit.Option
}

func (opts lookupEnvOptions) convkitOptions() []convkit.Option {
	var conv convkit.Options
	if opts.Separator != nil {
		conv.Separator = *opts.Separator
	}
	return append([]convkit.Option{conv}, opts.Convert...)
}

// lookupEnv looks up the value of the first present key from a comma separated key list.
func lookupEnv(typ reflect.Type, key string, opts lookupEnvOptions) (reflect.Value, bool, error) {
	val, ok, err := lookupRaw(key, opts)
	if err != nil || !ok {
		return reflect.Value{}, false, err
	}
	rv, err := convkit.ParseReflect(typ, val, opts.convkitOptions()...)
	if err != nil {
		return reflect.Value{}, false, ErrInvalidValue.Wrap(err)
	}
	return rv, true, nil
}

func lookupRaw(key string, opts lookupEnvOptions) (string, bool, error) {
	var (
		val string
		ok  bool
	)
	for _, k := range strings.Split(key, ",") {
		if val, ok = os.LookupEnv(strings.TrimSpace(k)); ok {
			break
		}
	}
	if !ok && opts.DefaultValue != nil {
		ok = true
		val = *opts.DefaultValue
	}
	if !ok {
		var err error
		if opts.IsRequired {
			err = ErrMissingEnvVar.F("missing environment variable: %s", key)
		}
		return "", false, err
	}
	if 0 < len(opts.Enum) && !contains(opts.Enum, val) {
		return "", false, ErrInvalidValue.F("%s=%q is not one of %v", key, val, opts.Enum)
	}
	return val, true, nil
}

func contains(vs []string, v string) bool {
	for _, o := range vs {
		if o == v {
			return true
		}
	}
	return false
}

func errParsingEnvValue(structField reflect.StructField, err error) error {
	return fmt.Errorf("error parsing the value for %s: %w", structField.Name, err)
}

type ParserFunc[T any] func(envValue string) (T, error)

// ParseWith replaces the built in type conversion of Lookup with a custom parser.
func ParseWith[T any](parser ParserFunc[T]) LookupOption {
	return funcLookupOption(func(options *lookupEnvOptions) {
		options.Convert = append(options.Convert, convkit.ParseWith[T](parser))
	})
}
