package gamify

import "github.com/brightdesk/brightdesk/internal/domain"

// Curve maps cumulative XP to levels. Levels 1-9 cost 100 XP each,
// 10-49 cost 1,000 XP each, 50 and above cost 10,000 XP each, capped
// at maxLevel. Pure and stateless after construction.
type Curve struct {
	maxLevel   int
	thresholds []int64 // thresholds[l] = cumulative XP required to reach level l
}

// NewCurve precomputes cumulative thresholds up to maxLevel.
func NewCurve(maxLevel int) *Curve {
	if maxLevel < 1 {
		maxLevel = 1
	}
	c := &Curve{
		maxLevel:   maxLevel,
		thresholds: make([]int64, maxLevel+2),
	}
	for l := 2; l <= maxLevel+1; l++ {
		c.thresholds[l] = c.thresholds[l-1] + XPForLevel(l-1)
	}
	return c
}

// XPForLevel returns the XP cost to advance from level to level+1.
func XPForLevel(level int) int64 {
	switch {
	case level < 10:
		return 100
	case level < 50:
		return 1000
	default:
		return 10000
	}
}

// MaxLevel returns the curve's level cap.
func (c *Curve) MaxLevel() int { return c.maxLevel }

// Threshold returns the cumulative XP required to reach a level.
// Zero for level <= 1; levels above the cap clamp to the cap's
// next-level threshold.
func (c *Curve) Threshold(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > c.maxLevel+1 {
		level = c.maxLevel + 1
	}
	return c.thresholds[level]
}

// LevelForXP returns the largest level whose threshold the XP total
// meets, in [1, maxLevel]. Negative input maps to level 1.
func (c *Curve) LevelForXP(totalXP int64) int {
	level := 1
	for level < c.maxLevel && totalXP >= c.thresholds[level+1] {
		level++
	}
	return level
}

// Progress describes a position on the curve: level, XP past the
// current threshold, and the span to the next level. At the cap the
// bar reads full.
func (c *Curve) Progress(totalXP int64) domain.XPProgress {
	if totalXP < 0 {
		totalXP = 0
	}
	level := c.LevelForXP(totalXP)
	p := domain.XPProgress{
		Total:       totalXP,
		Level:       level,
		Progress:    totalXP - c.Threshold(level),
		XPNeeded:    c.Threshold(level+1) - c.Threshold(level),
		NextLevelAt: c.Threshold(level + 1),
	}
	if level >= c.maxLevel {
		p.Pct = 100
		return p
	}
	p.Pct = float64(p.Progress) / float64(p.XPNeeded) * 100
	return p
}
