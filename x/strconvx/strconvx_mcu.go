//go:build rp2040 || rp2350

package strconvx

// Integer conversions with strconv's signatures, without pulling strconv's
// float tables into the firmware image. Bases 2..36; anything else is 10.

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func FormatInt(i int64, base int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-i), base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	var buf [64]byte
	i := len(buf)
	for b := uint64(base); ; {
		i--
		buf[i] = digits[u%b]
		u /= b
		if u == 0 {
			break
		}
	}
	return string(buf[i:])
}

type numError struct{ msg string }

func (e numError) Error() string { return "strconvx.Atoi: " + e.msg }

var (
	errSyntax = numError{"invalid syntax"}
	errRange  = numError{"value out of range"}
)

// Atoi parses an optionally signed decimal int.
func Atoi(s string) (int, error) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return 0, errSyntax
	}
	const limit = uint64(^uint(0)>>1) + 1 // |min int|
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errSyntax
		}
		v = v*10 + uint64(c-'0')
		if v > limit {
			return 0, errRange
		}
	}
	if neg {
		return int(-int64(v)), nil
	}
	if v == limit {
		return 0, errRange
	}
	return int(v), nil
}
