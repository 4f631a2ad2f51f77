package logger

import (
	"bytes"
)

type testingTB interface {
	Helper()
	Cleanup(func())
}

// Stub the logger.Default and return the buffer where the logging output will be recorded.
// The optional configuration functions can alter the stubbed logger.
// Stub will restore the logger.Default after the test.
func Stub(tb testingTB, cfgs ...func(l *Logger)) *bytes.Buffer {
	tb.Helper()
	var (
		ogOut   = Default.Out
		ogLevel = Default.Level
		ogSep   = Default.Separator
		ogMKey  = Default.MessageKey
		ogLKey  = Default.LevelKey
		ogTKey  = Default.TimestampKey
		ogMF    = Default.MarshalFunc
	)
	tb.Cleanup(func() {
		Default.Out = ogOut
		Default.Level = ogLevel
		Default.Separator = ogSep
		Default.MessageKey = ogMKey
		Default.LevelKey = ogLKey
		Default.TimestampKey = ogTKey
		Default.MarshalFunc = ogMF
	})
	buf := &bytes.Buffer{}
	Default.Out = buf
	for _, cfg := range cfgs {
		cfg(&Default)
	}
	return buf
}
