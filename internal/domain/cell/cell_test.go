package cell

import "testing"

func TestKeyFormat(t *testing.T) {
	c := Cell{I: 12, J: -7}
	if c.Key() != "12,-7" {
		t.Errorf("Expected key '12,-7', got %s", c.Key())
	}

	origin := Cell{I: 0, J: 0}
	if origin.Key() != "0,0" {
		t.Errorf("Expected key '0,0', got %s", origin.Key())
	}
}

func TestParseKeyRoundTrip(t *testing.T) {
	cells := []Cell{
		{I: 0, J: 0},
		{I: 369894, J: -1220628},
		{I: -1, J: 1},
	}
	for _, want := range cells {
		got, err := ParseKey(want.Key())
		if err != nil {
			t.Errorf("ParseKey(%s) failed: %v", want.Key(), err)
			continue
		}
		if got != want {
			t.Errorf("Expected %v after round trip, got %v", want, got)
		}
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	bad := []string{"", "12", "a,b", "1,", ",2", "1,2,3", "1, 2"}
	for _, key := range bad {
		if _, err := ParseKey(key); err == nil {
			t.Errorf("Expected error for key %q, got none", key)
		}
	}
}
