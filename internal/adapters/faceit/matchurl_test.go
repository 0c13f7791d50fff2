package faceit

import (
	"errors"
	"testing"
)

const sampleID = "1-8f2c6a3e-1b2d-4c5e-9f70-0a1b2c3d4e5f"

func TestParseMatchID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{sampleID, sampleID},
		{"  " + sampleID + "\n", sampleID},
		{"8f2c6a3e-1b2d-4c5e-9f70-0a1b2c3d4e5f", "8f2c6a3e-1b2d-4c5e-9f70-0a1b2c3d4e5f"},
		{"https://www.faceit.com/en/ow2/room/" + sampleID, sampleID},
		{"https://www.faceit.com/en/ow2/room/" + sampleID + "/scoreboard", sampleID},
		{"https://www.faceit.com/en/ow2/room/" + sampleID + "/", sampleID},
		{"https://www.faceit.com/en/ow2/room/" + sampleID + "?tab=stats", sampleID},
		{"faceit.com/es/ow2/room/" + sampleID, sampleID},
	}
	for _, tc := range cases {
		got, err := ParseMatchID(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestParseMatchIDRejectsGarbage(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"not a url",
		"https://www.faceit.com/en/ow2/room/",
		"https://www.faceit.com/en/players/someone",
		"https://www.faceit.com/en/ow2/room/1-xyz",
		"%zz",
	} {
		if _, err := ParseMatchID(in); !errors.Is(err, ErrInvalidMatchURL) {
			t.Fatalf("%q: expected ErrInvalidMatchURL, got %v", in, err)
		}
	}
}
