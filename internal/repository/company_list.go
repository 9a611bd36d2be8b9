package repository

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"meanrevert/internal/domain"
)

type CompanyListing struct {
	Symbol string
	Name   string
}

// ParseCompanyList reads "SYMBOL NAME..." lines. repeated symbols keep
// their first line, blank lines are skipped. also returns how many
// non-blank lines were read
func ParseCompanyList(r io.Reader) ([]CompanyListing, int, error) {
	scanner := bufio.NewScanner(r)
	visited := map[string]bool{}
	out := []CompanyListing{}
	lines := 0

	for scanner.Scan() {
		elements := strings.Fields(scanner.Text())
		if len(elements) == 0 {
			continue
		}
		lines++

		symbol := elements[0]
		if visited[symbol] {
			continue
		}
		visited[symbol] = true

		out = append(out, CompanyListing{
			Symbol: symbol,
			Name:   strings.Join(elements[1:], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read company list: %w", err)
	}

	return out, lines, nil
}

// ParsePortfolio reads "SYMBOL NAME... WEIGHT" lines. the name is every
// token between symbol and weight. a company name seen before is skipped
func ParsePortfolio(r io.Reader) ([]domain.PortfolioEntry, error) {
	scanner := bufio.NewScanner(r)
	visited := map[string]bool{}
	out := []domain.PortfolioEntry{}
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		elements := strings.Fields(scanner.Text())
		if len(elements) == 0 {
			continue
		}
		if len(elements) < 2 {
			return nil, fmt.Errorf("line %d: expected SYMBOL NAME WEIGHT, got %q", lineNumber, scanner.Text())
		}

		name := strings.Join(elements[1:len(elements)-1], " ")
		if visited[name] {
			continue
		}
		visited[name] = true

		weight, err := strconv.ParseFloat(elements[len(elements)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid weight %q: %w", lineNumber, elements[len(elements)-1], err)
		}

		out = append(out, domain.PortfolioEntry{
			Symbol: elements[0],
			Name:   name,
			Weight: weight,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read portfolio: %w", err)
	}

	return out, nil
}
