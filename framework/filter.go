package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter applies the filters the same way "go test -run" does: each pattern is split on
// slashes and every element is matched against the corresponding level of the test path.
// A test whose path is shorter than a -run pattern is allowed, so that parent tests run
// and get a chance to start the subtests that do match.
func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.anyMatch(id, true)) &&
		!r.MustNotMatch.anyMatch(id, false)
}

type RegexList struct {
	patterns []regexPath
}

type regexPath struct {
	source   string
	elements []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := regexPath{source: value}
	for _, element := range strings.Split(value, "/") {
		rx, err := regexp.Compile(element)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.elements = append(p.elements, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) anyMatch(id TestID, partialPathMatches bool) bool {
	for _, p := range r.patterns {
		if p.match(id.Path, partialPathMatches) {
			return true
		}
	}
	return false
}

func (p regexPath) match(path []string, partialPathMatches bool) bool {
	if len(path) < len(p.elements) && !partialPathMatches {
		return false
	}
	for i, rx := range p.elements {
		if i >= len(path) {
			break
		}
		if !rx.MatchString(path[i]) {
			return false
		}
	}
	return true
}

func PrintFilterDescription(output io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(output, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(output, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(output, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(output)
	}
}
