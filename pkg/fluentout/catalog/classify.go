package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/prompt"
)

// kindOptions are offered for manual classification, in this order.
var kindOptions = []string{"none", "xdata", "ydata"}

var kindByOption = []models.Kind{
	models.KindExcluded,
	models.KindIndependent,
	models.KindDependent,
}

// Classifier drives reference reconciliation, manual classification and
// write-back for one catalog.
type Classifier struct {
	Catalog  *Catalog
	Store    Store
	Decider  prompt.Decider
	Reporter prompt.Reporter
	Logger   *slog.Logger

	ref *Reference
}

// NewClassifier creates a Classifier. Nil reporter and logger are allowed.
func NewClassifier(c *Catalog, store Store, d prompt.Decider, r prompt.Reporter, logger *slog.Logger) *Classifier {
	if r == nil {
		r = prompt.Silent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{Catalog: c, Store: store, Decider: d, Reporter: r, Logger: logger}
}

// Reference returns the loaded reference catalog, nil before LoadReference.
func (cl *Classifier) Reference() *Reference {
	return cl.ref
}

// Run loads the reference catalog, reconciles and classifies every quantity.
func (cl *Classifier) Run() error {
	if err := cl.LoadReference(); err != nil {
		return err
	}
	if err := cl.Reconcile(); err != nil {
		return err
	}
	return cl.ClassifyRemaining()
}

// LoadReference reads the reference store. A missing store is reported and
// treated as empty.
func (cl *Classifier) LoadReference() error {
	records, err := cl.Store.Load()
	if err != nil {
		if !errors.Is(err, ErrStoreNotFound) {
			return err
		}
		cl.Reporter.Warnf("Could not find or open reference file %s.\n", cl.Store.Location())
	}
	cl.ref = NewReference(records)
	cl.Logger.Debug("reference catalog loaded", "store", cl.Store.Location(), "records", cl.ref.Len())
	return nil
}

// Reconcile offers the reference settings of every matching quantity.
// Accepted references overwrite the quantity settings; declined ones leave
// the quantity unclassified.
func (cl *Classifier) Reconcile() error {
	for _, q := range cl.Catalog.Quantities() {
		ref, ok := cl.ref.Lookup(q.Name)
		if !ok {
			continue
		}

		cl.Reporter.Printf("\nFound references for quantity '%s':\n", q.Name)
		cl.Reporter.Printf("%s", Describe(ref, "- "))

		use, err := cl.Decider.Confirm(fmt.Sprintf("Use references for quantity '%s'?", q.Name))
		if err != nil {
			return err
		}
		if !use {
			continue
		}
		if err := cl.Catalog.Accept(ref); err != nil {
			return err
		}
		cl.Logger.Debug("reference accepted", "quantity", q.Name, "kind", ref.Kind)
	}
	return nil
}

// ClassifyRemaining asks for the settings of every unclassified quantity
// and offers to persist them.
func (cl *Classifier) ClassifyRemaining() error {
	for _, name := range cl.Catalog.Unclassified() {
		q, err := cl.ask(name)
		if err != nil {
			return err
		}
		if err := cl.Catalog.Classify(q); err != nil {
			return err
		}
		q, _ = cl.Catalog.Get(name)
		if err := cl.writeBack(q); err != nil {
			return err
		}
	}
	return nil
}

func (cl *Classifier) ask(name string) (models.Quantity, error) {
	q := models.Quantity{Name: name}

	i, err := cl.Decider.AskChoice(fmt.Sprintf("\nDefine type of quantity '%s'", name), kindOptions)
	if err != nil {
		return q, err
	}
	q.Kind = kindByOption[i]
	if q.Kind == models.KindExcluded {
		return q, nil
	}

	if q.Description, err = cl.Decider.AskText("\nEnter description of quantity:"); err != nil {
		return q, err
	}
	if q.Offset, err = cl.Decider.AskNumber(fmt.Sprintf("\nDefine global value offset for quantity '%s'.\nLeave blank for no offset.", name), 0.0); err != nil {
		return q, err
	}
	if q.Scale, err = cl.Decider.AskNumber(fmt.Sprintf("\nDefine global value scaling factor for quantity '%s'.\nLeave blank for no scaling.", name), 1.0); err != nil {
		return q, err
	}
	return q, nil
}

func (cl *Classifier) writeBack(q models.Quantity) error {
	ref, matched := cl.ref.Lookup(q.Name)
	if !matched {
		add, err := cl.Decider.Confirm(fmt.Sprintf("Add settings for new quantity '%s' to reference file '%s'?", q.Name, cl.Store.Location()))
		if err != nil || !add {
			return err
		}
		if err := cl.Store.Append(q); err != nil {
			return err
		}
		cl.Reporter.Successf("Added settings for new quantity '%s'.\n", q.Name)
		cl.Logger.Info("reference appended", "quantity", q.Name, "store", cl.Store.Location())
		return nil
	}

	if ref.SameSettings(q) {
		return nil
	}
	update, err := cl.Decider.Confirm(fmt.Sprintf("Update settings for existing quantity '%s' in reference file '%s'?", q.Name, cl.Store.Location()))
	if err != nil || !update {
		return err
	}
	if err := cl.Store.Update(q); err != nil {
		return err
	}
	cl.Reporter.Successf("Updated settings for existing quantity '%s'.\n", q.Name)
	cl.Logger.Info("reference updated", "quantity", q.Name, "store", cl.Store.Location())
	return nil
}

// Describe renders the settings of a quantity for the console.
func Describe(q models.Quantity, indent string) string {
	return fmt.Sprintf("%stype:           %s\n%sdescription:    %s\n%soffset:         %g\n%sscaling factor: %g\n",
		indent, q.Kind, indent, q.Description, indent, q.Offset, indent, q.Scale)
}
