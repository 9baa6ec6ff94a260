package strconvx

import "testing"

func TestItoaAtoi(t *testing.T) {
	for _, v := range []int{0, 1, -1, 4, 95500, -99999} {
		got, err := Atoi(Itoa(v))
		if err != nil || got != v {
			t.Fatalf("Atoi(Itoa(%d)) = %d, %v", v, got, err)
		}
	}
}

func TestAtoiRejects(t *testing.T) {
	for _, s := range []string{"", "-", "x", "1a", "0x10", " 1", "99999999999999999999"} {
		if _, err := Atoi(s); err == nil {
			t.Fatalf("Atoi(%q) expected error", s)
		}
	}
}

func TestFormatBases(t *testing.T) {
	type C struct {
		u    uint64
		base int
		want string
	}
	for _, c := range []C{
		{0, 10, "0"},
		{5, 2, "101"},
		{0x5804, 16, "5804"},
		{101, 10, "101"},
		{35, 36, "z"},
	} {
		if got := FormatUint(c.u, c.base); got != c.want {
			t.Fatalf("FormatUint(%d,%d) = %q, want %q", c.u, c.base, got, c.want)
		}
	}
	if got := FormatInt(-15, 10); got != "-15" {
		t.Fatalf("FormatInt(-15,10) = %q, want -15", got)
	}
}
