package logger

import (
	"errors"

	"github.com/keyisfocus/listarray/pkg/errorkit"
)

type LoggingDetail interface{ addTo(logEntry) }

func Field(key string, value any) LoggingDetail {
	return field{Key: key, Value: value}
}

type field struct {
	Key   string
	Value any
}

func (f field) addTo(e logEntry) {
	e[f.Key] = toFieldValue(f.Value)
}

type Fields map[string]any

func (fields Fields) addTo(e logEntry) {
	for k, v := range fields {
		Field(k, v).addTo(e)
	}
}

// ErrField logs the error message.
// When the error is built from an errorkit.Error, its constant value is logged as the error code.
func ErrField(err error) LoggingDetail {
	if err == nil {
		return nullLoggingDetail{}
	}
	details := Fields{
		"message": err.Error(),
	}
	if code := errorkit.Error(""); errors.As(err, &code) {
		details["code"] = string(code)
	}
	return Field("error", details)
}

func toFieldValue(val any) any {
	switch val := val.(type) {
	case field, Fields, logEntry:
		le := logEntry{}
		val.(LoggingDetail).addTo(le)
		return map[string]any(le)
	case []LoggingDetail:
		le := logEntry{}
		for _, v := range val {
			v.addTo(le)
		}
		return map[string]any(le)
	default:
		return val
	}
}

type logEntry map[string]any

func (ld logEntry) addTo(entry logEntry) { entry.Merge(ld) }

func (ld logEntry) Merge(oth logEntry) logEntry {
	for k, v := range oth {
		ld[k] = v
	}
	return ld
}

type nullLoggingDetail struct{}

func (nullLoggingDetail) addTo(logEntry) {}
