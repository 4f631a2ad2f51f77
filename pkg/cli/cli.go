package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/keyisfocus/listarray/pkg/convkit"
	"github.com/keyisfocus/listarray/pkg/env"
	"github.com/keyisfocus/listarray/pkg/errorkit"
	"github.com/keyisfocus/listarray/pkg/logger"
)

const (
	// ExitCodeOK : Success
	ExitCodeOK = 0
	// ExitCodeError : General Error
	ExitCodeError = 1
	// ExitCodeBadRequest : Misuse of shell builtins or invalid command-line usage, often equated with a bad request.
	ExitCodeBadRequest = 2
)

const (
	ErrFlagMissing    errorkit.Error = "ErrFlagMissing"
	ErrFlagParseIssue errorkit.Error = "ErrFlagParseIssue"
	ErrFlagInvalid    errorkit.Error = "ErrFlagInvalid"

	ErrArgMissing      errorkit.Error = "ErrArgMissing"
	ErrArgParseIssue   errorkit.Error = "ErrArgParseIssue"
	ErrArgIndexInvalid errorkit.Error = "ErrArgIndexInvalid"

	ErrInvalidDefaultValue errorkit.Error = "ErrInvalidDefaultValue"
)

///////////////////////////////////////////////////////////////////////////////////////////////////

type Handler interface {
	ServeCLI(w Response, r *Request)
}

type Request struct {
	Args []string
	Body io.Reader

	ctx context.Context
}

type Response interface {
	ExitCode(n int)
	io.Writer
}

type ErrorWriter interface {
	Stderr() io.Writer
}

func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of the request with its context changed to ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	r2 := *r
	r2.ctx = ctx
	return &r2
}

type HandlerFunc func(w Response, r *Request)

func (fn HandlerFunc) ServeCLI(w Response, r *Request) {
	fn(w, r)
}

///////////////////////////////////////////////////////////////////////////////////////////////////

// ServeCLI configures a struct handler from the environment, the flags and the arguments of the request,
// then serves the request with it.
//
// Struct fields are configured through tags:
//
//	flag:"name,n"      the flag names of the field
//	arg:"0"            the index of the positional argument
//	env:"ENV_KEY"      the environment variable used before the flags are parsed
//	default:"value"    the value used in the absence of input
//	required:"true"    makes the input mandatory
//	enum:"a;b;c;"      the accepted values
//	desc:"text"        description for the help usage
func ServeCLI(h Handler, w Response, r *Request) {
	if h == nil {
		panic("nil cli.Handler")
	}
	if w == nil {
		panic("nil cli.Response")
	}
	if r == nil {
		panic("nil *cli.Request")
	}
	handler, err := ConfigureHandler(h, r)
	if err != nil {
		var exitCode = ExitCodeBadRequest
		if isHelp(err) {
			exitCode = ExitCodeOK
		}
		w.ExitCode(exitCode)

		var o io.Writer = w
		if !isHelp(err) {
			o = errOut(w)
		}
		printfln(o, toHelp(h, err))
		return
	}
	defer func() {
		if v := recover(); v != nil {
			if _, ok := v.(stop); !ok {
				panic(v)
			}
		}
	}()
	handler.ServeCLI(w, r)
}

type stop struct{}

// Stop interrupts the handler execution.
// The exit code set before calling Stop is kept.
func Stop() { panic(stop{}) }

func HandleError(w Response, r *Request, err error) {
	if err == nil {
		return
	}
	logger.Debug(r.Context(), "command failed", logger.ErrField(err))
	w.ExitCode(ExitCodeError)
	fmt.Fprintf(errOut(w), "%s\n", err.Error())
}

func Main(ctx context.Context, h Handler) {
	var args []string
	if 1 < len(os.Args) {
		args = os.Args[1:]
	}
	if logger.Default.Out == nil { // avoid logging into STDOUT as a CLI app
		logger.Default.Out = os.Stderr
	}
	var w stdResponse
	r := &Request{
		ctx:  ctx,
		Args: args,
		Body: os.Stdin,
	}
	ServeCLI(h, &w, r)
	os.Exit(w.Code)
}

func ConfigureHandler[H Handler](h H, r *Request) (H, error) {
	sm, ok, err := structMetaFor(h)
	if err != nil {
		var zero H
		return zero, err
	}
	if !ok {
		return h, nil
	}
	return configure[H](h, sm, r)
}

func configure[H Handler](h H, meta structMeta, r *Request) (H, error) {
	ptr := reflect.New(reflect.TypeOf(h))
	ptr.Elem().Set(reflect.ValueOf(h))
	val := ptr.Elem()
	for val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	if err := env.ReflectLoad(val.Addr()); err != nil {
		return h, err
	}

	var flagSet = flag.NewFlagSet("", flag.ContinueOnError)
	flagSet.Usage = func() {}
	flagSet.SetOutput(io.Discard)

	var callbacks []func() error
	for _, f := range meta.Flags {
		callbacks = append(callbacks, f.mapToFlagSet(flagSet, val))
	}

	if err := flagSet.Parse(r.Args); err != nil {
		if isHelp(err) {
			return h, err
		}
		return h, ErrFlagParseIssue.Wrap(err)
	}

	r.Args = flagSet.Args()

	for _, cb := range callbacks {
		if err := cb(); err != nil {
			return h, err
		}
	}

	for _, a := range meta.Args {
		var raw string
		ok := a.Index < len(r.Args)
		if ok {
			raw = r.Args[a.Index]
		}
		if err := a.Setter(val, raw, ok); err != nil {
			return h, err
		}
	}
	r.Args = r.Args[min(len(meta.Args), len(r.Args)):]

	return ptr.Elem().Interface().(H), nil
}

func execName() string {
	if ep, err := os.Executable(); err == nil {
		return filepath.Base(ep)
	}
	if 0 < len(os.Args) {
		return os.Args[0]
	}
	return ""
}

func printfln(w io.Writer, msg ...string) {
	_, _ = w.Write([]byte(strings.Join(msg, lineSeparator) + lineSeparator))
}

var lineSeparator = func() string {
	switch runtime.GOOS {
	case "windows":
		return "\r\n"
	default:
		return "\n"
	}
}()

func errOut(w Response) io.Writer {
	if rwe, ok := w.(ErrorWriter); ok {
		if o := rwe.Stderr(); o != nil {
			return o
		}
	}
	return w
}

type stdResponse struct {
	Code int
}

func (rr *stdResponse) ExitCode(n int)                    { rr.Code = n }
func (rr *stdResponse) Stdout() io.Writer                 { return os.Stdout }
func (rr *stdResponse) Stderr() io.Writer                 { return os.Stderr }
func (rr *stdResponse) Write(p []byte) (n int, err error) { return rr.Stdout().Write(p) }

///////////////////////////////////////////////////////////////////////////////////////////////////

type ResponseRecorder struct {
	Code int
	Out  bytes.Buffer
	Err  bytes.Buffer
}

func (rr *ResponseRecorder) ExitCode(n int)                    { rr.Code = n }
func (rr *ResponseRecorder) Stdout() io.Writer                 { return &rr.Out }
func (rr *ResponseRecorder) Stderr() io.Writer                 { return &rr.Err }
func (rr *ResponseRecorder) Write(p []byte) (n int, err error) { return rr.Stdout().Write(p) }

///////////////////////////////////////////////////////////////////////////////////////////////////

type structMeta struct {
	Flags []structFlag
	Args  []structArg
}

func structMetaFor(h Handler) (structMeta, bool, error) {
	v := reflect.ValueOf(h)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return structMeta{}, false, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return structMeta{}, false, nil
	}

	var (
		T = v.Type()
		m = structMeta{}
	)
	for i := 0; i < T.NumField(); i++ {
		sf := T.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		sFlag, ok, err := scanForFlag(sf)
		if err != nil {
			return structMeta{}, false, err
		}
		if ok {
			m.Flags = append(m.Flags, sFlag)
		}

		sArg, ok, err := scanForArg(sf)
		if err != nil {
			return structMeta{}, false, err
		}
		if ok {
			m.Args = append(m.Args, sArg)
		}
	}

	m.Args = sortArgs(m.Args)
	for i, a := range m.Args {
		if a.Index != i {
			return structMeta{}, false, ErrArgIndexInvalid.F("%s field is an arg, and it was expected to be at index %d but it has the index of %d", a.Name, i, a.Index)
		}
	}

	return m, true, nil
}

func sortArgs(args []structArg) []structArg {
	for i := 1; i < len(args); i++ {
		for j := i; 0 < j && args[j].Index < args[j-1].Index; j-- {
			args[j], args[j-1] = args[j-1], args[j]
		}
	}
	return args
}

type fieldMeta struct {
	StructField reflect.StructField

	Default    string
	HasDefault bool
	DefVal     reflect.Value

	Desc     string
	Required bool
	Enum     []string
}

func scanFieldMeta(sf reflect.StructField) (fieldMeta, error) {
	fm := fieldMeta{StructField: sf}
	if def, ok := sf.Tag.Lookup("default"); ok {
		val, err := convkit.ParseReflect(sf.Type, def)
		if err != nil {
			return fm, ErrInvalidDefaultValue.F("%s field got %q as default value, but it is not interpretable as %s", sf.Name, def, sf.Type.String())
		}
		fm.Default, fm.HasDefault, fm.DefVal = def, true, val
	}
	fm.Desc, _ = getDescription(sf)
	if req, ok := sf.Tag.Lookup("required"); ok && !fm.HasDefault {
		isRequired, err := strconv.ParseBool(req)
		if err != nil {
			return fm, err
		}
		fm.Required = isRequired
	}
	if raw, ok := sf.Tag.Lookup("enum"); ok {
		for _, v := range strings.Split(raw, ";") {
			if v != "" {
				fm.Enum = append(fm.Enum, v)
			}
		}
	}
	return fm, nil
}

var structDescriptionTags = []string{"desc", "description"}

func getDescription(sf reflect.StructField) (string, bool) {
	for _, tag := range structDescriptionTags {
		if v, ok := sf.Tag.Lookup(tag); ok {
			return v, true
		}
	}
	return "", false
}

func (fm fieldMeta) setZeroInput(field reflect.Value, missingErr error) error {
	if !field.IsZero() {
		return nil
	}
	if fm.HasDefault {
		field.Set(fm.DefVal)
		return nil
	}
	if fm.Required {
		return missingErr
	}
	return nil
}

func (fm fieldMeta) checkEnum(name, raw string) error {
	if len(fm.Enum) == 0 {
		return nil
	}
	for _, e := range fm.Enum {
		if e == raw {
			return nil
		}
	}
	var accepted []string
	for _, e := range fm.Enum {
		accepted = append(accepted, " - "+e)
	}
	return ErrFlagInvalid.F("%s got the value of %s which is not part of the acceptable values\n\naccepted values:\n%s",
		name, raw, strings.Join(accepted, lineSeparator))
}

type structFlag struct {
	fieldMeta
	Names []string
}

func scanForFlag(sf reflect.StructField) (structFlag, bool, error) {
	flag, ok := sf.Tag.Lookup("flag")
	if !ok {
		return structFlag{}, false, nil
	}
	fm, err := scanFieldMeta(sf)
	if err != nil {
		return structFlag{}, true, err
	}
	return structFlag{fieldMeta: fm, Names: splitFlag(flag)}, true, nil
}

func splitFlag(flag string) []string {
	var names []string
	for _, name := range strings.Split(flag, ",") {
		name = strings.TrimLeft(strings.TrimSpace(name), "-")
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (sf structFlag) Setter(Struct reflect.Value, value flagValue) error {
	name := strings.Join(sf.Names, "/")
	field := Struct.FieldByIndex(sf.StructField.Index)
	if !value.IsSet {
		return sf.setZeroInput(field, ErrFlagMissing.F("%s flag is required", name))
	}
	rval, err := convkit.ParseReflect(field.Type(), value.Raw)
	if err != nil {
		return ErrFlagParseIssue.F("%s (%s) encountered a parsing error with the value of: %q", name, field.Type().String(), value.Raw)
	}
	if err := sf.checkEnum(name, value.Raw); err != nil {
		return err
	}
	field.Set(rval)
	return nil
}

func (sf structFlag) mapToFlagSet(fs *flag.FlagSet, Struct reflect.Value) func() error {
	var v = flagValue{Type: sf.StructField.Type}
	for _, n := range sf.Names {
		fs.Var(&v, n, sf.Desc)
	}
	return func() error { return sf.Setter(Struct, v) }
}

type flagValue struct {
	Raw   string
	IsSet bool
	Type  reflect.Type
}

func (v *flagValue) String() string { return v.Raw }

func (v *flagValue) IsBoolFlag() bool { return v.Type != nil && v.Type.Kind() == reflect.Bool }

func (v *flagValue) Set(raw string) error {
	v.Raw = raw
	v.IsSet = true
	return nil
}

type structArg struct {
	fieldMeta
	Index int
	Name  string
}

func scanForArg(sf reflect.StructField) (structArg, bool, error) {
	argIndex, ok := sf.Tag.Lookup("arg")
	if !ok {
		return structArg{}, false, nil
	}
	index, err := strconv.Atoi(argIndex)
	if err != nil {
		return structArg{}, true, ErrArgIndexInvalid.F("invalid arg index for %s field: %q", sf.Name, argIndex)
	}
	fm, err := scanFieldMeta(sf)
	if err != nil {
		return structArg{}, true, err
	}
	return structArg{fieldMeta: fm, Name: sf.Name, Index: index}, true, nil
}

func (sa structArg) Setter(Struct reflect.Value, raw string, ok bool) error {
	field := Struct.FieldByIndex(sa.StructField.Index)
	if !ok {
		return sa.setZeroInput(field, ErrArgMissing.F("%s argument is not provided", sa.Name))
	}
	rval, err := convkit.ParseReflect(field.Type(), raw)
	if err != nil {
		return ErrArgParseIssue.F("argument at index %d is not a %s type, and encountered a parsing error on %q: %s", sa.Index, field.Type().String(), raw, err.Error())
	}
	if err := sa.checkEnum(sa.Name, raw); err != nil {
		return err
	}
	field.Set(rval)
	return nil
}

func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
