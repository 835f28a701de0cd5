package schema

// PointStats accumulates the slack samples observed for one timing
// point name (begin or end, possibly pattern-normalized).
type PointStats struct {
	Count  int       `json:"count"`
	Slacks []float64 `json:"slacks"`
}

// Add records one slack sample.
func (p *PointStats) Add(slack float64) {
	p.Count++
	p.Slacks = append(p.Slacks, slack)
}

// MinSlack returns the numerically smallest observed slack.
func (p *PointStats) MinSlack() float64 {
	m := p.Slacks[0]
	for _, s := range p.Slacks[1:] {
		if s < m {
			m = s
		}
	}
	return m
}

// MaxSlack returns the numerically largest observed slack.
func (p *PointStats) MaxSlack() float64 {
	m := p.Slacks[0]
	for _, s := range p.Slacks[1:] {
		if s > m {
			m = s
		}
	}
	return m
}

// PathGroup is one top-level timing group keyed by a begin-point or
// end-point name. The paired points nest beneath it in discovery
// order. An explicit struct instead of nested maps keeps the field
// names and zero values obvious.
type PathGroup struct {
	Key string `json:"key"`
	PointStats
	SubOrder []string               `json:"-"`
	Subs     map[string]*PointStats `json:"subs,omitempty"`
}

// AddSub records one slack sample against a paired point.
func (g *PathGroup) AddSub(name string, slack float64) {
	if g.Subs == nil {
		g.Subs = make(map[string]*PointStats)
	}
	st, ok := g.Subs[name]
	if !ok {
		st = &PointStats{}
		g.Subs[name] = st
		g.SubOrder = append(g.SubOrder, name)
	}
	st.Add(slack)
}

// GroupReport is the finalized output of the pattern grouper:
// top-level groups sorted by descending occurrence count.
type GroupReport struct {
	Display GroupDisplay `json:"display"`
	Pattern bool         `json:"pattern"`
	Token   string       `json:"token"`
	Groups  []*PathGroup `json:"groups"`
}
