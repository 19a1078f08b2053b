package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncsvc "github.com/avolkov/marketsync/internal/service/sync"
)

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "more than ten sentinel", raw: ">10", want: 100},
		{name: "last unit held in reserve", raw: "1", want: 0},
		{name: "plain number", raw: "7", want: 7},
		{name: "zero", raw: "0", want: 0},
		{name: "ten", raw: "10", want: 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := syncsvc.NormalizeQuantity(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeQuantityMalformed(t *testing.T) {
	for _, raw := range []string{"", "many", ">5", "1.5"} {
		_, err := syncsvc.NormalizeQuantity(raw)
		require.Error(t, err, "raw %q", raw)

		var parseErr *syncsvc.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "quantity", parseErr.Field)
		assert.Equal(t, raw, parseErr.Value)
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "5990.00 руб.", want: "5990"},
		{raw: "3400.00", want: "3400"},
		{raw: "1 250.00 руб.", want: "1250"},
		{raw: "100", want: "100"},
	}
	for _, tc := range tests {
		got, err := syncsvc.NormalizePrice(tc.raw)
		require.NoError(t, err, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got)
	}
}

func TestNormalizePriceMalformed(t *testing.T) {
	for _, raw := range []string{"", "руб.", ".50"} {
		_, err := syncsvc.NormalizePrice(raw)
		require.Error(t, err, "raw %q", raw)

		var parseErr *syncsvc.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "price", parseErr.Field)
	}
}
