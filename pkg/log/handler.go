package log

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// appendFields writes slog-style key/value pairs onto a zerolog event.
// A leading error (odd field count) is logged under "error" together with its
// stack trace and, when the error implements zerolog.LogObjectMarshaler,
// its structured detail.
func appendFields(e *zerolog.Event, fields []any) *zerolog.Event {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			e = appendError(e, err)
			fields = fields[1:]
		}
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, ok := fields[i+1].(error); ok {
			e = e.AnErr(key, err)
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	return e
}

func appendError(e *zerolog.Event, err error) *zerolog.Event {
	e = e.Err(err)
	if stacktrace := extractStacktrace(err); stacktrace != "" {
		e = e.Str(StacktraceKey, stacktrace)
	}
	var detail zerolog.LogObjectMarshaler
	if errors.As(err, &detail) {
		e = e.Object("error.detail", detail)
	}
	return e
}

// contextFields converts key/value pairs for zerolog.Context.Fields.
func contextFields(fields []any) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		out[key] = fields[i+1]
	}
	return out
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
