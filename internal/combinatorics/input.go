package combinatorics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrTruncatedInput is returned when fewer lines arrive than the test count announces.
var ErrTruncatedInput = errors.New("input ended before all test cases were read")

// Case is one query: N item types, K items to pick.
type Case struct {
	N int64
	K int64
}

// ReadCases parses the line format: a test count T, then N and K on separate
// lines for each case. Blank lines are skipped.
func ReadCases(r io.Reader) ([]Case, error) {
	scanner := bufio.NewScanner(r)
	next := func(what string) (int64, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			v, err := strconv.ParseInt(line, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("failed to parse %s: %w", what, err)
			}
			return v, nil
		}
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", what, err)
		}
		return 0, fmt.Errorf("%w: missing %s", ErrTruncatedInput, what)
	}

	count, err := next("test count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("test count cannot be negative: %d", count)
	}

	// count is untrusted; the hint is capped and append grows as lines arrive.
	cases := make([]Case, 0, min(count, 64))
	for i := int64(1); i <= count; i++ {
		n, err := next(fmt.Sprintf("N of case %d", i))
		if err != nil {
			return nil, err
		}
		k, err := next(fmt.Sprintf("K of case %d", i))
		if err != nil {
			return nil, err
		}
		cases = append(cases, Case{N: n, K: k})
	}
	return cases, nil
}

// Run reads cases from r and writes one multiset count per line to w.
func Run(r io.Reader, w io.Writer) error {
	cases, err := ReadCases(r)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, c := range cases {
		if _, err := fmt.Fprintln(bw, MultisetCount(c.N, c.K)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return bw.Flush()
}
