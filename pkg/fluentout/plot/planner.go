package plot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/prompt"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/series"
)

// Planner asks the operator how series should be plotted and builds the
// resulting specs.
type Planner struct {
	Decider  prompt.Decider
	Reporter prompt.Reporter
	// Precision is the number of significant digits of displayed ranges.
	Precision int
}

// NewPlanner creates a Planner. A nil reporter is allowed.
func NewPlanner(d prompt.Decider, r prompt.Reporter, precision int) *Planner {
	if r == nil {
		r = prompt.Silent
	}
	if precision <= 0 {
		precision = 6
	}
	return &Planner{Decider: d, Reporter: r, Precision: precision}
}

// titlePolicy captures the title decisions shared by a batch of plots.
type titlePolicy struct {
	include bool
	auto    bool
}

func (p *Planner) askTitlePolicy(kind, autoDesc string) (titlePolicy, error) {
	var tp titlePolicy
	var err error
	if tp.include, err = p.Decider.Confirm(fmt.Sprintf("Include title for %s plots?", kind)); err != nil || !tp.include {
		return tp, err
	}
	tp.auto, err = p.Decider.Confirm(fmt.Sprintf("Auto-assign %s as title?", autoDesc))
	return tp, err
}

// Individual plans one plot per series, group by group.
func (p *Planner) Individual(groups []series.Group) ([]models.PlotSpec, error) {
	create, err := p.Decider.Confirm("Create individual plots for all xy datasets?")
	if err != nil || !create {
		return nil, err
	}
	tp, err := p.askTitlePolicy("individual", "xy dataset name")
	if err != nil {
		return nil, err
	}
	match := false
	if series.HasMultiGroup(groups) {
		if match, err = p.Decider.Confirm("Match axis ranges between datasets with matching quantities?"); err != nil {
			return nil, err
		}
	}

	var specs []models.PlotSpec
	for _, g := range groups {
		p.Reporter.Printf("\nPlot configuration for plots with x quantity '%s' and y quantity '%s':\n", g.X.Name, g.Y.Name)

		var x, y models.Bounds
		useComputed := true
		if match {
			if x, y, err = p.groupBounds(g.Members, g.X.Description, g.Y.Description); err != nil {
				return nil, err
			}
		} else {
			q := fmt.Sprintf("Automatically use computed axis ranges for plots with x quantity '%s' and y quantity '%s'?", g.X.Name, g.Y.Name)
			if useComputed, err = p.Decider.Confirm(q); err != nil {
				return nil, err
			}
		}

		for _, s := range g.Members {
			if !match {
				if x, y, err = series.Ranges([]models.Series{s}); err != nil {
					return nil, err
				}
				x, y = Widen(x), Widen(y)
				if !useComputed {
					p.Reporter.Printf("Enter axis ranges for plot %s:\n", s.Label)
					if x, y, err = p.askBoundsPair(g.X.Description, g.Y.Description, x, y); err != nil {
						return nil, err
					}
				}
			}

			title, err := p.individualTitle(tp, s)
			if err != nil {
				return nil, err
			}
			spec, err := Individual(s, title, x, y)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

func (p *Planner) individualTitle(tp titlePolicy, s models.Series) (string, error) {
	switch {
	case !tp.include:
		return "", nil
	case tp.auto:
		return s.Label, nil
	}
	return p.Decider.AskText(fmt.Sprintf("\nEnter title of plot %s:", s.Label))
}

// Combined plans combined plots: one per group with several members on
// request, then ad hoc combinations chosen from all series.
func (p *Planner) Combined(groups []series.Group, all []models.Series) ([]models.PlotSpec, error) {
	if !series.HasMultiGroup(groups) {
		p.Reporter.Warnf("Not enough datasets to create combined plots.\n")
		return nil, nil
	}
	create, err := p.Decider.Confirm("Create combined plots with multiple xy datasets?")
	if err != nil || !create {
		return nil, err
	}
	tp, err := p.askTitlePolicy("combined", "'Comparison of...'")
	if err != nil {
		return nil, err
	}

	var specs []models.PlotSpec
	for _, g := range groups {
		if !g.Multi() {
			continue
		}
		p.Reporter.Printf("Datasets with x quantity '%s' and y quantity '%s':\n", g.X.Name, g.Y.Name)
		for _, s := range g.Members {
			p.Reporter.Printf("- %s\n", s.Label)
		}

		ok, err := p.Decider.Confirm("Create a combined plot with all of the above xy datasets?")
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		spec, err := p.combined(tp, g.Members, fmt.Sprintf("\nEnter title of plot with x quantity '%s' and y quantity '%s':", g.X.Name, g.Y.Name), "")
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	extra, err := p.adHoc(tp, all)
	if err != nil {
		return nil, err
	}
	return append(specs, extra...), nil
}

func (p *Planner) adHoc(tp titlePolicy, all []models.Series) ([]models.PlotSpec, error) {
	var specs []models.PlotSpec
	count := 0
	for {
		more, err := p.Decider.Confirm("Create other combinations of xy datasets?\nThe descriptions of all quantities must match in order to be plotted together.")
		if err != nil || !more {
			return specs, err
		}

		p.Reporter.Printf("\nAvailable xy datasets:\n")
		for i, s := range all {
			p.Reporter.Printf("- %d: %s\n", i+1, s.Label)
		}
		picked, err := p.Decider.AskSelection("Enter the numbers of xy datasets for plotting", len(all))
		if err != nil {
			return nil, err
		}

		var set []models.Series
		for _, i := range picked {
			if len(set) > 0 && !Compatible(set[0], all[i]) {
				p.Reporter.Warnf("Number '%d' does not match set quantities.\n", i+1)
				continue
			}
			set = append(set, all[i])
		}
		if len(set) < 2 {
			p.Reporter.Warnf("%v. Skipping creation of combined plot.\n\n", fmt.Errorf("%w: got %d", ErrTooFewSeries, len(set)))
			continue
		}

		count++
		spec, err := p.combined(tp, set, "\nEnter title of plot:", fmt.Sprintf("-set%d", count))
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
}

func (p *Planner) combined(tp titlePolicy, members []models.Series, titleQuestion, suffix string) (models.PlotSpec, error) {
	xDesc, yDesc := members[0].X.Description, members[0].Y.Description
	x, y, err := p.groupBounds(members, xDesc, yDesc)
	if err != nil {
		return models.PlotSpec{}, err
	}

	var title string
	switch {
	case tp.include && tp.auto:
		title = ComparisonTitle(yDesc)
	case tp.include:
		if title, err = p.Decider.AskText(titleQuestion); err != nil {
			return models.PlotSpec{}, err
		}
	}
	return Combined(members, CombinedName(title, yDesc)+suffix, title, x, y)
}

// groupBounds shows the computed ranges of members and lets the operator
// keep or replace them.
func (p *Planner) groupBounds(members []models.Series, xDesc, yDesc string) (x, y models.Bounds, err error) {
	if x, y, err = series.Ranges(members); err != nil {
		return
	}
	x, y = Widen(x), Widen(y)

	p.Reporter.Printf("Computed axis range boundaries of set:\n")
	p.Reporter.Printf("- xmin: %s\n- xmax: %s\n", p.format(x.Min), p.format(x.Max))
	p.Reporter.Printf("- ymin: %s\n- ymax: %s\n\n", p.format(y.Min), p.format(y.Max))

	keep, err := p.Decider.Confirm("Use computed ranges?")
	if err != nil || keep {
		return
	}
	return p.askBoundsPair(xDesc, yDesc, x, y)
}

func (p *Planner) askBoundsPair(xDesc, yDesc string, x, y models.Bounds) (models.Bounds, models.Bounds, error) {
	x, err := p.AskBounds(xDesc, x)
	if err != nil {
		return x, y, err
	}
	y, err = p.AskBounds(yDesc, y)
	return x, y, err
}

// AskBounds asks for a manual axis range, offering def as the default,
// until the minimum is strictly below the maximum.
func (p *Planner) AskBounds(desc string, def models.Bounds) (models.Bounds, error) {
	b := def
	for {
		var err error
		if b.Min, err = p.Decider.AskNumber(fmt.Sprintf("Enter minimum value of quantity '%s':", desc), b.Min); err != nil {
			return def, err
		}
		if b.Max, err = p.Decider.AskNumber(fmt.Sprintf("Enter maximum value of quantity '%s':", desc), b.Max); err != nil {
			return def, err
		}
		err = ValidateBounds(b)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrInvalidBounds) {
			return def, err
		}
		p.Reporter.Warnf("Invalid choice of values. Minimum '%g' must be smaller than maximum '%g'.\n", b.Min, b.Max)
	}
}

func (p *Planner) format(v float64) string {
	return strconv.FormatFloat(v, 'g', p.Precision, 64)
}
