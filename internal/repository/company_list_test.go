package repository

import (
	"strings"
	"testing"

	"meanrevert/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseCompanyList(t *testing.T) {
	t.Run("dedupes symbols, first wins", func(t *testing.T) {
		in := strings.Join([]string{
			"AAPL Apple Inc.",
			"MSFT   Microsoft   Corporation ",
			"",
			"AAPL Apple Again",
			"KO Coca-Cola",
		}, "\n")
		out, lines, err := ParseCompanyList(strings.NewReader(in))
		require.NoError(t, err)
		require.Equal(t, 4, lines)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]CompanyListing{
					{Symbol: "AAPL", Name: "Apple Inc."},
					{Symbol: "MSFT", Name: "Microsoft Corporation"},
					{Symbol: "KO", Name: "Coca-Cola"},
				},
				out,
			),
		)
	})

	t.Run("symbol only", func(t *testing.T) {
		out, _, err := ParseCompanyList(strings.NewReader("SPY\n"))
		require.NoError(t, err)
		require.Equal(t, []CompanyListing{{Symbol: "SPY"}}, out)
	})

	t.Run("empty", func(t *testing.T) {
		out, lines, err := ParseCompanyList(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, out)
		require.Zero(t, lines)
	})
}

func TestParsePortfolio(t *testing.T) {
	t.Run("name between symbol and weight", func(t *testing.T) {
		in := strings.Join([]string{
			"AAPL Apple Inc. 0.6",
			"BRK-B Berkshire   Hathaway Inc 0.4",
			"APPL Apple Inc. 0.9",
		}, "\n")
		out, err := ParsePortfolio(strings.NewReader(in))
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.PortfolioEntry{
					{Symbol: "AAPL", Name: "Apple Inc.", Weight: 0.6},
					{Symbol: "BRK-B", Name: "Berkshire Hathaway Inc", Weight: 0.4},
				},
				out,
			),
		)
	})

	t.Run("bad weight", func(t *testing.T) {
		_, err := ParsePortfolio(strings.NewReader("AAPL Apple lots"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "line 1")
	})

	t.Run("single token", func(t *testing.T) {
		_, err := ParsePortfolio(strings.NewReader("\nAAPL\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "line 2")
	})
}
