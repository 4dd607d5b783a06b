package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowRule(t *testing.T) {
	tests := []struct {
		in      string
		want    RowRule
		wantErr bool
	}{
		{"", RowAuto, false},
		{"auto", RowAuto, false},
		{"spawn", RowAuto, false},
		{"Midpoint", RowMidpoint, false},
		{" top ", RowTop, false},
		{"7", RowFixed(7), false},
		{"-1", RowRule{}, true},
		{"bottom", RowRule{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRowRule(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowRuleResolve(t *testing.T) {
	assert.Equal(t, 19, RowMidpoint.Resolve(40))
	assert.Equal(t, 19, RowAuto.Resolve(40))
	assert.Equal(t, 0, RowTop.Resolve(40))
	assert.Equal(t, 12, RowFixed(12).Resolve(40))
	assert.Equal(t, "midpoint", RowMidpoint.String())
	assert.Equal(t, "12", RowFixed(12).String())
}
