package common

import (
	"testing"
)

func TestParseCoin(t *testing.T) {
	cases := []struct {
		input  string
		expect uint64
		err    bool
	}{
		{"100uv", 100, false},
		{"12kuv", 12000, false},
		{"3muv", 3000000, false},
		{"2vlt", 2 * VLT, false},
		{" 5VLT ", 5 * VLT, false},
		{"", 0, true},
		{"12", 0, true},
		{"vlt", 0, true},
		{"1.5vlt", 0, true},
	}
	for _, c := range cases {
		got, err := ParseCoin(c.input)
		if c.err {
			if err == nil {
				t.Errorf("ParseCoin(%q) expect error, got %v", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCoin(%q) unexpected error %v", c.input, err)
			continue
		}
		if got != c.expect {
			t.Errorf("ParseCoin(%q) = %v, want %v", c.input, got, c.expect)
		}
	}
}

func TestAddressRoundTrip(t *testing.T) {
	a := HexToAddress("0x1234abcd")
	b := HexToAddress(a.Hex())
	if a != b {
		t.Errorf("address hex round trip mismatch: %v %v", a.Hex(), b.Hex())
	}
	if !(Address{}).IsZero() {
		t.Error("zero address should be zero")
	}
	if PoolAddress.IsZero() {
		t.Error("pool address should not be zero")
	}
}

func TestByteConvert(t *testing.T) {
	if ByteToUInt64(UInt64ToByte(982451653)) != 982451653 {
		t.Error("uint64 byte round trip failed")
	}
	if ByteToInt64(Int64ToByte(-12345)) != -12345 {
		t.Error("int64 byte round trip failed")
	}
}
