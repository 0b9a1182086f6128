package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClock(t *testing.T) {
	cases := map[string]string{
		"09:00": "09:00",
		"09:07": "09:00",
		"09:15": "09:15",
		"09:37": "09:30",
		"23:59": "23:45",
		"00:01": "00:00",
		"7:05":  "07:00",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeClock(in), "NormalizeClock(%q)", in)
	}
}

func TestNormalizeClock_Idempotent(t *testing.T) {
	for _, in := range []string{"09:37", "14:00", "23:59", "00:00"} {
		once := NormalizeClock(in)
		assert.Equal(t, once, NormalizeClock(once), "normalizing %q twice", in)
	}
}

func TestNormalizeClock_Malformed(t *testing.T) {
	assert.Equal(t, "00:00", NormalizeClock("garbage"))
	assert.Equal(t, "00:00", NormalizeClock(""))
	assert.Equal(t, "00:00", NormalizeClock("25:10"))
}
