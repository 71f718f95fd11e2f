package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		code      string
		wantCode  string
		wantScale int
		wantMinor int64
	}{
		{"EUR", "EUR", 2, 100},
		{"usd", "USD", 2, 100},
		{" JPY ", "JPY", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			cur, err := ParseCurrency(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, cur.Code())
			assert.Equal(t, tt.wantScale, cur.Scale())
			assert.Equal(t, tt.wantMinor, cur.MinorPerMajor())
			assert.False(t, cur.IsZero())
		})
	}

	t.Run("unknown code", func(t *testing.T) {
		_, err := ParseCurrency("XYZQ")
		assert.ErrorIs(t, err, ErrInvalidCurrency)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := ParseCurrency("")
		assert.ErrorIs(t, err, ErrInvalidCurrency)
	})
}

func TestNewPercent(t *testing.T) {
	t.Run("whole number", func(t *testing.T) {
		p, err := NewPercent("20")
		require.NoError(t, err)
		assert.Equal(t, "20", p.String())
	})

	t.Run("fraction", func(t *testing.T) {
		p, err := NewPercent("12.5")
		require.NoError(t, err)
		assert.Equal(t, "12.5", p.String())
	})

	t.Run("four decimals accepted", func(t *testing.T) {
		p, err := NewPercent("0.0001")
		require.NoError(t, err)
		assert.Equal(t, "0.0001", p.String())
	})

	t.Run("five decimals rejected", func(t *testing.T) {
		_, err := NewPercent("1.23456")
		assert.ErrorIs(t, err, ErrInvalidPercent)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := NewPercent("twenty")
		assert.ErrorIs(t, err, ErrInvalidPercent)
	})

	t.Run("zero value", func(t *testing.T) {
		var p Percent
		assert.True(t, p.IsZero())
		assert.Equal(t, "0", p.String())
		got, err := p.Of(3000)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got)
	})
}

func TestPercent_Of(t *testing.T) {
	tests := []struct {
		name   string
		pct    string
		amount int64
		want   int64
	}{
		{"twenty percent of 3000", "20", 3000, 600},
		{"ten percent of 21000", "10", 21000, 2100},
		{"half rounds up", "10", 5, 1},
		{"below half rounds down", "10", 4, 0},
		{"fractional percent", "12.5", 15, 2},
		{"hundred percent", "100", 4321, 4321},
		{"zero amount", "50", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPercent(tt.pct)
			require.NoError(t, err)
			got, err := p.Of(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercent_Compare(t *testing.T) {
	assert.True(t, PercentOf(20).GreaterThan(PercentOf(10)))
	assert.False(t, PercentOf(10).GreaterThan(PercentOf(10)))
	assert.True(t, PercentOf(10).Equals(PercentOf(10)))

	neg, err := NewPercent("-5")
	require.NoError(t, err)
	assert.True(t, neg.IsNegative())
}

func TestPercent_JSON(t *testing.T) {
	type holder struct {
		Pct  Percent  `json:"pct"`
		Opt  *Percent `json:"opt,omitempty"`
		None *Percent `json:"none,omitempty"`
	}

	opt := PercentOf(5)
	data, err := json.Marshal(holder{Pct: PercentOf(20), Opt: &opt})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pct":"20","opt":"5"}`, string(data))

	var decoded holder
	require.NoError(t, json.Unmarshal([]byte(`{"pct":"12.5","opt":"7"}`), &decoded))
	assert.Equal(t, "12.5", decoded.Pct.String())
	require.NotNil(t, decoded.Opt)
	assert.True(t, decoded.Opt.Equals(PercentOf(7)))
	assert.Nil(t, decoded.None)

	assert.Error(t, json.Unmarshal([]byte(`{"pct":"abc"}`), &decoded))
}

func TestCeilToMultiple(t *testing.T) {
	for _, tt := range []struct{ amount, step, want int64 }{
		{7000, 500, 7000},
		{7001, 500, 7500},
		{7001, 1, 7001},
		{0, 500, 0},
	} {
		got, err := ceilToMultiple(tt.amount, tt.step)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ceilToMultiple(math.MaxInt64-1, 500)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}
