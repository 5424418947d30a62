package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	colorTime      = "\x1b[38;5;108m" // muted cyan-green
	colorComponent = "\x1b[38;5;208m" // warm orange
	colorMessage   = "\x1b[38;5;223m" // soft cream
	colorKey       = "\x1b[38;5;109m" // soft blue
	colorNumber    = "\x1b[38;5;175m" // muted purple
	colorWarn      = "\x1b[38;5;214m"
	colorWarnBg    = "\x1b[48;5;58m"
	colorError     = "\x1b[38;5;167m"
	colorErrorBg   = "\x1b[48;5;88m"
)

// leadingFields are printed first, in this order, when present.
var leadingFields = []string{FieldLibrary, FieldStep, FieldMethod, FieldFunction, FieldInstantiation}

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  instantiate  Applied instantiation  library=qtcore step=instantiate_templates"
//
// Fields attached through With land in the embedded map encoder.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{MapObjectEncoder: enc.copyFields()}
}

func (enc *minimalEncoder) copyFields() *zapcore.MapObjectEncoder {
	m := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		m.Fields[k] = v
	}
	return m
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(colorTime)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown for WARN and above
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	} else if ent.Level == zapcore.DebugLevel {
		final.AppendString("  debug")
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent)
		final.AppendString(ent.LoggerName)
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorMessage)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	m := enc.copyFields()
	for _, f := range fields {
		f.AddTo(m)
	}
	if rendered := renderFields(m.Fields); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorWarnBg + colorWarn + "WARN" + colorReset
	default:
		return colorBold + colorErrorBg + colorError + level.CapitalString() + colorReset
	}
}

// renderFields renders every field as key=value. Nothing is dropped:
// values zap cannot flatten are printed with %v.
func renderFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := leadingRank(keys[i]), leadingRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, colorKey+k+colorReset+"="+formatValue(fields[k]))
	}
	return strings.Join(parts, " ")
}

func leadingRank(key string) int {
	for i, k := range leadingFields {
		if k == key {
			return i
		}
	}
	return len(leadingFields)
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return colorNumber + fmt.Sprint(x) + colorReset
	default:
		return fmt.Sprintf("%v", x)
	}
}
