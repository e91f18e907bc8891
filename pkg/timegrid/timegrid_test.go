package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "no leading zero", input: "9:05", want: 545},
		{name: "missing minutes", input: "09", wantErr: true},
		{name: "extra field", input: "09:30:00", wantErr: true},
		{name: "hours out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "ten past", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00", Format(0))
	assert.Equal(t, "09:05", Format(545))
	assert.Equal(t, "23:59", Format(1439))
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "08:15", "13:00", "23:45"} {
		m, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, Format(m))
	}
}

func TestOverlaps(t *testing.T) {
	// Полуоткрытая семантика: граничащие интервалы не пересекаются
	assert.False(t, Overlaps(600, 660, 660, 720), "ends exactly where other starts")
	assert.False(t, Overlaps(660, 720, 600, 660), "starts exactly where other ends")

	assert.True(t, Overlaps(600, 660, 630, 690), "partial overlap")
	assert.True(t, Overlaps(600, 720, 630, 660), "containment")
	assert.True(t, Overlaps(630, 660, 600, 720), "contained")
	assert.True(t, Overlaps(600, 660, 600, 660), "identical")

	assert.False(t, Overlaps(600, 660, 720, 780), "disjoint")
}

func TestOverlapsAny(t *testing.T) {
	busy := []Interval{{Start: 600, End: 660}, {Start: 780, End: 840}}

	assert.True(t, OverlapsAny(630, 690, busy))
	assert.False(t, OverlapsAny(660, 780, busy), "gap between busy intervals")
	assert.False(t, OverlapsAny(0, 60, nil))
}
