// Package aggregate groups classified shots by team, region and result and
// derives attempt distributions and eFG values from the counts.
package aggregate

import (
	"sort"

	"github.com/okian/shotzone/internal/domain/efg"
	"github.com/okian/shotzone/internal/domain/model"
)

// Key identifies one made/missed bucket for a team and region.
type Key struct {
	Team   string
	Region model.Region
	Made   bool
}

// Counts holds exact made/missed tallies keyed by (team, region, made).
type Counts struct {
	buckets map[Key]int
	totals  map[string]int
}

// RegionShare is the fraction of a team's attempts taken from one region.
type RegionShare struct {
	Region     model.Region
	Attempts   int
	Proportion float64
}

// TeamDistribution lists a team's attempt share for every region, in
// model.Regions order.
type TeamDistribution struct {
	Team   string
	Total  int
	Shares []RegionShare
}

// ZoneEFG is the eFG of one team in one region. EFG is NaN when the team took
// no shots from the region.
type ZoneEFG struct {
	Team     string
	Region   model.Region
	Made     int
	Attempts int
	EFG      float64
}

// Tally counts shots by (team, region, made).
func Tally(shots []model.ClassifiedShot) *Counts {
	c := &Counts{
		buckets: make(map[Key]int),
		totals:  make(map[string]int),
	}
	for _, s := range shots {
		c.buckets[Key{Team: s.Team, Region: s.Region, Made: s.Made}]++
		c.totals[s.Team]++
	}
	return c
}

// Get returns the count for a single bucket.
func (c *Counts) Get(k Key) int {
	return c.buckets[k]
}

// Makes returns the made shots for team in region.
func (c *Counts) Makes(team string, region model.Region) int {
	return c.buckets[Key{Team: team, Region: region, Made: true}]
}

// Attempts returns made plus missed shots for team in region.
func (c *Counts) Attempts(team string, region model.Region) int {
	return c.buckets[Key{Team: team, Region: region, Made: true}] +
		c.buckets[Key{Team: team, Region: region, Made: false}]
}

// Total returns every attempt by team.
func (c *Counts) Total(team string) int {
	return c.totals[team]
}

// Shots returns the number of shots counted across all teams.
func (c *Counts) Shots() int {
	n := 0
	for _, t := range c.totals {
		n += t
	}
	return n
}

// Teams returns the distinct teams in lexical order.
func (c *Counts) Teams() []string {
	teams := make([]string, 0, len(c.totals))
	for t := range c.totals {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}

// Distribution returns each team's attempt proportions per region. Regions a
// team never shot from are reported with a zero share.
func (c *Counts) Distribution() []TeamDistribution {
	teams := c.Teams()
	out := make([]TeamDistribution, 0, len(teams))
	for _, team := range teams {
		total := c.totals[team]
		d := TeamDistribution{
			Team:   team,
			Total:  total,
			Shares: make([]RegionShare, 0, len(model.Regions)),
		}
		for _, r := range model.Regions {
			att := c.Attempts(team, r)
			share := RegionShare{Region: r, Attempts: att}
			if total > 0 {
				share.Proportion = float64(att) / float64(total)
			}
			d.Shares = append(d.Shares, share)
		}
		out = append(out, d)
	}
	return out
}

// EFG returns one entry per team and region, teams in lexical order and
// regions in model.Regions order.
func (c *Counts) EFG() []ZoneEFG {
	teams := c.Teams()
	out := make([]ZoneEFG, 0, len(teams)*len(model.Regions))
	for _, team := range teams {
		for _, r := range model.Regions {
			made := c.Makes(team, r)
			att := c.Attempts(team, r)
			out = append(out, ZoneEFG{
				Team:     team,
				Region:   r,
				Made:     made,
				Attempts: att,
				EFG:      efg.ForZone(r, made, att),
			})
		}
	}
	return out
}
