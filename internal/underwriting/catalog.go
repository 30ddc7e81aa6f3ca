package underwriting

import (
	"errors"
	"fmt"

	"github.com/iwvelando/loan-underwriter/pkg/constants"
)

// ErrInvalidCategory signals a lookup outside the configured category set.
// Front ends present a closed choice list, so hitting this error is a
// programming contract violation rather than a user-input problem.
var ErrInvalidCategory = errors.New("invalid loan category")

// Category binds a loan category name to its immutable interest rate and
// maximum term. Fixed at process start, never mutated.
type Category struct {
	Name         string
	AnnualRate   float64
	MaxTermYears int
}

// Catalog is the read-only set of loan categories offered.
type Catalog struct {
	categories []Category
}

// NewCatalog validates the category invariants (rate >= 0, max term >= 1,
// unique non-empty names) and returns the catalog.
func NewCatalog(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, errors.New("catalog requires at least one loan category")
	}
	seen := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		if category.Name == "" {
			return nil, errors.New("loan category requires a name")
		}
		if _, dup := seen[category.Name]; dup {
			return nil, fmt.Errorf("duplicate loan category %q", category.Name)
		}
		seen[category.Name] = struct{}{}
		if category.AnnualRate < 0 {
			return nil, fmt.Errorf("loan category %q has negative interest rate %.2f", category.Name, category.AnnualRate)
		}
		if category.MaxTermYears < constants.MinTermYears {
			return nil, fmt.Errorf("loan category %q has maximum term %d below %d year",
				category.Name, category.MaxTermYears, constants.MinTermYears)
		}
	}
	return &Catalog{categories: append([]Category(nil), categories...)}, nil
}

// DefaultCatalog returns the standard loan offerings.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog([]Category{
		{Name: "Housing Loan", AnnualRate: 5.2, MaxTermYears: 25},
		{Name: "Auto Loan", AnnualRate: 7.5, MaxTermYears: 6},
		{Name: "Personal Loan", AnnualRate: 9.6, MaxTermYears: 10},
	})
	if err != nil {
		panic(fmt.Sprintf("default catalog invalid: %v", err))
	}
	return catalog
}

// Lookup resolves a category by name. It is total over the configured set
// and returns ErrInvalidCategory for anything else.
func (c *Catalog) Lookup(name string) (Category, error) {
	for _, category := range c.categories {
		if category.Name == name {
			return category, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
}

// Categories returns the configured categories in presentation order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}
