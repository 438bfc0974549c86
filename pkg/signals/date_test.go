package signals_test

import (
	"safesurf/pkg/signals"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2023, 9, 18, 13, 48, 21, 0, time.UTC)

	tests := []struct {
		name  string
		raw   string
		known bool
		want  time.Time
	}{
		{name: "rfc1123", raw: "Mon, 18 Sep 2023 13:48:21 GMT", known: true, want: want},
		{name: "rfc1123 numeric zone", raw: "Mon, 18 Sep 2023 15:48:21 +0200", known: true, want: want},
		{name: "rfc3339", raw: "2023-09-18T13:48:21Z", known: true, want: want},
		{name: "iso without zone", raw: "2023-09-18T13:48:21", known: true, want: want},
		{name: "python datetime", raw: "2023-09-18 13:48:21", known: true, want: want},
		{name: "date only", raw: "2023-09-18", known: true, want: time.Date(2023, 9, 18, 0, 0, 0, 0, time.UTC)},
		{name: "surrounding space", raw: "  2023-09-18  ", known: true, want: time.Date(2023, 9, 18, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", raw: "[datetime.datetime(2023, 9, 18)]", known: false},
		{name: "empty", raw: "", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := signals.ParseDate(tt.raw)
			require.Equal(t, tt.known, d.Known)
			if tt.known {
				require.True(t, tt.want.Equal(d.Time), "got %s", d.Time)
				require.Equal(t, tt.want.Format(time.DateOnly), d.String())

				return
			}
			require.True(t, d.Time.IsZero())
		})
	}
}

func TestParseDate_UnknownKeepsRaw(t *testing.T) {
	d := signals.ParseDate("sometime last year")
	require.False(t, d.Known)
	require.Equal(t, "sometime last year", d.String())

	require.Equal(t, "unknown", signals.ParseDate("").String())
}
