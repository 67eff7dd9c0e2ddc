package feed

import (
	"testing"
	"time"

	"chika/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeTime(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "Just now"},
		{"59 seconds", 59 * time.Second, "Just now"},
		{"60 seconds", 60 * time.Second, "1 minute ago"},
		{"61 seconds", 61 * time.Second, "1 minute ago"},
		{"119 seconds", 119 * time.Second, "1 minute ago"},
		{"2 minutes", 2 * time.Minute, "2 minutes ago"},
		{"59 minutes", 59 * time.Minute, "59 minutes ago"},
		{"60 minutes", 60 * time.Minute, "1 hour ago"},
		{"2 hours", 2 * time.Hour, "2 hours ago"},
		{"23 hours 59 minutes", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"1 day", day, "1 day ago"},
		{"6 days", 6 * day, "6 days ago"},
		{"7 days", 7 * day, "1 week ago"},
		{"13 days", 13 * day, "1 week ago"},
		{"34 days", 34 * day, "4 weeks ago"},
		{"35 days", 35 * day, "1 month ago"},
		{"59 days", 59 * day, "1 month ago"},
		{"60 days", 60 * day, "2 months ago"},
		{"359 days", 359 * day, "11 months ago"},
		{"360 days falls through to the date", 360 * day, "Jun 20, 2024"},
		{"365 days", 365 * day, "1 year ago"},
		{"729 days", 729 * day, "1 year ago"},
		{"730 days", 730 * day, refNow.Add(-730 * day).Format(AbsoluteDateLayout)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(ago(tt.elapsed), refNow))
		})
	}
}

func TestRelativeTime_FutureIsJustNow(t *testing.T) {
	for _, ahead := range []time.Duration{time.Millisecond, time.Minute, 48 * time.Hour, 10 * 365 * 24 * time.Hour} {
		future := refNow.Add(ahead)
		assert.Equal(t, "Just now", RelativeTime(&future, refNow), ahead.String())
	}
}

func TestRelativeTime_Unknown(t *testing.T) {
	assert.Equal(t, "Unknown", RelativeTime(nil, refNow))
	var zero time.Time
	assert.Equal(t, "Unknown", RelativeTime(&zero, refNow))
}

func TestNormalizer_DoesNotMutateInput(t *testing.T) {
	n := Normalizer{Now: func() time.Time { return refNow }}
	in := []*models.Post{
		{ID: "a", CreatedAt: ago(90 * time.Second)},
		nil,
		{ID: "b"},
	}

	out := n.Posts(in)

	require.Len(t, out, 2)
	assert.Equal(t, "1 minute ago", out[0].RelativeTime)
	assert.Equal(t, "Unknown", out[1].RelativeTime)
	assert.Empty(t, in[0].RelativeTime)
	assert.NotSame(t, in[0], out[0])
}

func TestNormalizer_Comments(t *testing.T) {
	n := Normalizer{Now: func() time.Time { return refNow }}
	out := n.Comments([]*models.Comment{{ID: "c", CreatedAt: ago(3 * time.Hour)}})
	require.Len(t, out, 1)
	assert.Equal(t, "3 hours ago", out[0].RelativeTime)
}
