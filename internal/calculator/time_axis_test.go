package calculator

import (
	"errors"
	"testing"

	"meanrevert/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeAxis(t *testing.T) {
	t.Run("five points over five years", func(t *testing.T) {
		axis, ticks, err := BuildTimeAxis("2015-01-01", "2020-01-01", 5)
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]float64{2015, 2016.25, 2017.5, 2018.75, 2020},
				axis,
				cmpopts.EquateApprox(0, 1e-9),
			),
		)
		require.Equal(t, []int{2015, 2016, 2017, 2018, 2019, 2020}, ticks)
	})

	t.Run("same year", func(t *testing.T) {
		_, _, err := BuildTimeAxis("2020-01-01", "2020-12-31", 10)
		require.True(t, errors.Is(err, domain.ErrInvalidDateRange))
		require.Contains(t, err.Error(), "(2020)")
	})

	t.Run("malformed date", func(t *testing.T) {
		_, _, err := BuildTimeAxis("2020/01/01", "2021-01-01", 10)
		require.True(t, errors.Is(err, domain.ErrInvalidDateRange))
	})

	t.Run("endpoints exact", func(t *testing.T) {
		axis, _, err := BuildTimeAxis("2010-06-01", "2023-02-01", 777)
		require.NoError(t, err)
		require.Len(t, axis, 777)
		require.Equal(t, 2010.0, axis[0])
		require.Equal(t, 2023.0, axis[776])
	})
}

func Test_linspace(t *testing.T) {
	t.Run("point counts", func(t *testing.T) {
		out, err := linspace(0, 1, 0)
		require.NoError(t, err)
		require.Empty(t, out)

		out, err = linspace(3, 5, 1)
		require.NoError(t, err)
		require.Equal(t, []float64{3}, out)

		out, err = linspace(0, 1, 3)
		require.NoError(t, err)
		require.Equal(t, []float64{0, 0.5, 1}, out)
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := linspace(0, 1, -1)
		require.Error(t, err)

		_, _, err = BuildTimeAxis("2015-01-01", "2020-01-01", -3)
		require.Error(t, err)
	})
}

func TestValidateDateRange(t *testing.T) {
	require.NoError(t, ValidateDateRange("2019-01-01", "2021-01-01"))
	require.True(t, errors.Is(ValidateDateRange("2021-01-01", "2021-03-01"), domain.ErrInvalidDateRange))
}
