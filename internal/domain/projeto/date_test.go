package projeto_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	out, ok := projeto.FormatDate("25/12/2020")
	require.True(t, ok)
	require.Equal(t, "12/25/2020", out)

	_, ok = projeto.FormatDate("")
	require.False(t, ok)
}

func TestFormatDate_PreservesComponents(t *testing.T) {
	for day := 1; day <= 28; day += 3 {
		for month := 1; month <= 12; month++ {
			raw := fmt.Sprintf("%02d/%02d/%04d", day, month, 1999+month)
			out, ok := projeto.FormatDate(raw)
			require.True(t, ok)
			require.Equal(t, fmt.Sprintf("%02d/%02d/%04d", month, day, 1999+month), out)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := projeto.ParseDate("25/12/2020")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2020, time.December, 25, 0, 0, 0, 0, time.UTC), *got)
	require.Equal(t, "25/12/2020", projeto.FormatDisplayDate(got))
}

func TestParseDate_AgreesWithFormatDate(t *testing.T) {
	for _, raw := range []string{"01/02/2021", "25/12/2020", "29/02/2024", "31/12/1999"} {
		got, err := projeto.ParseDate(raw)
		require.NoError(t, err)
		monthFirst, ok := projeto.FormatDate(raw)
		require.True(t, ok)
		require.Equal(t, monthFirst, got.Format("01/02/2006"))
		require.Equal(t, time.UTC, got.Location())
	}
}

func TestParseDate_Blank(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		got, err := projeto.ParseDate(raw)
		require.NoError(t, err)
		require.Nil(t, got)
	}
	require.Equal(t, "", projeto.FormatDisplayDate(nil))
}

func TestParseDate_Malformed(t *testing.T) {
	cases := []string{
		"2020-12-25",
		"25/12/20",
		"25-12-2020",
		"25/12/2020 ",
		"aa/12/2020",
		"25/1x/2020",
		"25/12/20x0",
		"31/02/2021",
		"00/01/2021",
		"15/13/2021",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			got, err := projeto.ParseDate(raw)
			require.ErrorIs(t, err, projeto.ErrMalformedDate)
			require.Nil(t, got)
		})
	}
}

func TestParseDate_LeapDay(t *testing.T) {
	got, err := projeto.ParseDate("29/02/2024")
	require.NoError(t, err)
	require.Equal(t, time.February, got.Month())

	_, err = projeto.ParseDate("29/02/2023")
	require.ErrorIs(t, err, projeto.ErrMalformedDate)
}
