package series

import "github.com/ukaji3/fluentout-go/pkg/fluentout/models"

// Group holds series sharing the same x and y quantity names.
type Group struct {
	X       models.Quantity
	Y       models.Quantity
	Members []models.Series
}

// Multi reports whether the group can be drawn as a combined plot.
func (g Group) Multi() bool {
	return len(g.Members) > 1
}

// GroupByQuantities partitions series by (x name, y name). Groups keep
// first-seen order and members keep insertion order.
func GroupByQuantities(list []models.Series) []Group {
	var groups []Group
	index := make(map[[2]string]int)
	for _, s := range list {
		x, y := s.Quantities()
		key := [2]string{x, y}
		if i, ok := index[key]; ok {
			groups[i].Members = append(groups[i].Members, s)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{X: s.X, Y: s.Y, Members: []models.Series{s}})
	}
	return groups
}

// HasMultiGroup reports whether any group has two or more members.
func HasMultiGroup(groups []Group) bool {
	for _, g := range groups {
		if g.Multi() {
			return true
		}
	}
	return false
}
