package core

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// negSlackPattern accepts only negative decimal slack values.
// Positive slack marks a non-violating path and is excluded.
var negSlackPattern = regexp.MustCompile(`^-\d+(\.\d+)?$`)

// indexPattern matches one underscore-delimited digit run in a point
// name, such as the bit index of a bus instance.
var indexPattern = regexp.MustCompile(`_\d+_`)

// NormalizePointName replaces every underscore-delimited digit run
// with the wildcard token, merging structurally identical instances
// into one group. Applied to fixpoint so adjacent index runs sharing
// an underscore collapse too; the substitution is a no-op on names
// already wildcarded. A digit-free token (enforced by
// contract.ValidatePatternToken) removes at least one digit per pass,
// so the pass count is bounded by the original name's length; the
// bound also stops the loop for any token that slips through.
func NormalizePointName(name, token string) string {
	limit := len(name)
	for i := 0; i < limit; i++ {
		next := indexPattern.ReplaceAllString(name, token)
		if next == name {
			return name
		}
		name = next
	}
	return name
}

// PatternGrouper streams a timing path report and groups violating
// paths by begin-point or end-point. It captures the latest
// "Beginpoint:" and "Endpoint:" names and commits the pair when a
// "Slack Time" line carries a negative slack; both captures are
// cleared on commit so a stale pair never leaks into the next path.
type PatternGrouper struct {
	pattern bool
	token   string
	byEnd   bool
	display schema.GroupDisplay

	begin string
	end   string

	order  []string
	groups map[string]*schema.PathGroup
}

// NewPatternGrouper builds a grouper from the validated configuration.
func NewPatternGrouper(cfg *contract.Config) *PatternGrouper {
	display := cfg.GroupDisplay
	return &PatternGrouper{
		pattern: cfg.Pattern,
		token:   cfg.PatternToken,
		byEnd:   display == schema.GroupDominated || display == schema.GroupEndOnly,
		display: display,
		groups:  make(map[string]*schema.PathGroup),
	}
}

// Feed consumes one report line.
func (g *PatternGrouper) Feed(line string) {
	switch {
	case strings.Contains(line, "Beginpoint:"):
		if tokens := strings.Fields(line); len(tokens) > 1 {
			g.begin = tokens[1]
		}
	case strings.Contains(line, "Endpoint:"):
		if tokens := strings.Fields(line); len(tokens) > 1 {
			g.end = tokens[1]
		}
	case strings.Contains(line, "Slack Time"):
		tokens := strings.Fields(line)
		if len(tokens) < 4 {
			return
		}
		g.commit(tokens[3])
	}
}

// commit records the captured pair when slackText is a negative
// decimal. Non-matching slack drops the path silently, without
// clearing the captures, matching the report structure where a path's
// points precede its slack line.
func (g *PatternGrouper) commit(slackText string) {
	if !negSlackPattern.MatchString(slackText) {
		return
	}
	slack, err := strconv.ParseFloat(slackText, 64)
	if err != nil {
		return
	}
	if g.begin == "" || g.end == "" {
		return
	}

	begin, end := g.begin, g.end
	if g.pattern {
		begin = NormalizePointName(begin, g.token)
		end = NormalizePointName(end, g.token)
	}

	key, sub := begin, end
	if g.byEnd {
		key, sub = end, begin
	}

	group, ok := g.groups[key]
	if !ok {
		group = &schema.PathGroup{Key: key}
		g.groups[key] = group
		g.order = append(g.order, key)
	}
	group.Add(slack)
	group.AddSub(sub, slack)

	g.begin = ""
	g.end = ""
}

// Finalize sorts the top-level groups by descending occurrence count,
// ties keeping discovery order. Sub-groups stay in discovery order.
func (g *PatternGrouper) Finalize() schema.GroupReport {
	groups := make([]*schema.PathGroup, 0, len(g.order))
	for _, key := range g.order {
		groups = append(groups, g.groups[key])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return schema.GroupReport{
		Display: g.display,
		Pattern: g.pattern,
		Token:   g.token,
		Groups:  groups,
	}
}

// GroupTimingPaths runs the pattern grouper over one timing report.
func GroupTimingPaths(reader contract.ReportReader, cfg *contract.Config, path string) (schema.GroupReport, error) {
	lines, err := reader.Lines(path)
	if err != nil {
		return schema.GroupReport{}, fmt.Errorf("read timing report: %w", err)
	}
	grouper := NewPatternGrouper(cfg)
	for _, line := range lines {
		grouper.Feed(line)
	}
	return grouper.Finalize(), nil
}
