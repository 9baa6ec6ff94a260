//go:build rp2040 || rp2350

package fmtx

import (
	"io"
	"unicode/utf8"

	"fmradio-go/x/strconvx"
)

// DefaultOutput is used by Printf on MCU builds.
// Set this from the platform bootstrap (e.g. a UART writer).
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

func Printf(format string, a ...any) (int, error) {
	return Fprintf(DefaultOutput, format, a...)
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	var b builder
	b.format(format, a...)
	return w.Write(b.buf)
}

// --- tiny formatter ---
// Verbs: %s %q %d %x %X %v %t %%. Width applies to all verbs, a leading 0
// pads with zeros, precision truncates %s. No other flags.

type builder struct{ buf []byte }

func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) pad(s string, width int, zero bool) {
	c := byte(' ')
	if zero {
		c = '0'
	}
	for n := width - utf8.RuneCountInString(s); n > 0; n-- {
		b.buf = append(b.buf, c)
	}
	b.str(s)
}

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.buf = append(b.buf, c)
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b.buf = append(b.buf, '%')
			continue
		}

		zero := i < len(format) && format[i] == '0'
		width, prec := 0, -1
		i = parseNum(format, i, &width)
		if i < len(format) && format[i] == '.' {
			prec = 0
			i = parseNum(format, i+1, &prec)
		}
		if i >= len(format) {
			return
		}
		verb := format[i]
		if ai >= len(args) {
			b.str("%!" + string(verb) + "(MISSING)")
			continue
		}
		arg := args[ai]
		ai++

		var s string
		switch verb {
		case 'd':
			s = formatInt(arg, 10)
		case 'x':
			s = formatInt(arg, 16)
		case 'X':
			s = upper(formatInt(arg, 16))
		case 't':
			v, _ := arg.(bool)
			s = boolText(v)
		case 's', 'v':
			s = text(arg)
			if prec >= 0 && prec < len(s) {
				s = s[:prec]
			}
		case 'q':
			s = quote(text(arg))
		default:
			s = "%!" + string(verb)
		}
		b.pad(s, width, zero && verb != 's' && verb != 'q')
	}
}

// text renders v the way %v would for the types the firmware logs.
func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return boolText(x)
	case error:
		return x.Error()
	case interface{ String() string }:
		return x.String()
	case nil:
		return "<nil>"
	}
	if s := formatInt(v, 10); s != "" {
		return s
	}
	return "<unk>"
}

func formatInt(v any, base int) string {
	switch x := v.(type) {
	case int:
		return strconvx.FormatInt(int64(x), base)
	case int8:
		return strconvx.FormatInt(int64(x), base)
	case int16:
		return strconvx.FormatInt(int64(x), base)
	case int32:
		return strconvx.FormatInt(int64(x), base)
	case int64:
		return strconvx.FormatInt(x, base)
	case uint:
		return strconvx.FormatUint(uint64(x), base)
	case uint8:
		return strconvx.FormatUint(uint64(x), base)
	case uint16:
		return strconvx.FormatUint(uint64(x), base)
	case uint32:
		return strconvx.FormatUint(uint64(x), base)
	case uint64:
		return strconvx.FormatUint(x, base)
	case uintptr:
		return strconvx.FormatUint(uint64(x), base)
	}
	return ""
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'f' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func parseNum(s string, i int, out *int) int {
	n, start := 0, i
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i > start {
		*out = n
	}
	return i
}

// quote escapes backslash, double quote and the common control characters.
func quote(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"':
			out = append(out, '\\', c)
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '"'))
}
