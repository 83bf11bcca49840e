package repository

import (
	"context"
	"fmt"
	"sort"

	"tagcrm/internal/docstore"
	"tagcrm/pkg/domain"
)

// LookupRepository reads the static code tables members and alerts refer to.
// Every read returns the whole list; failures degrade to empty.
type LookupRepository struct {
	base
}

// NewLookupRepository constructs a repository over store.
func NewLookupRepository(store *docstore.Store, opts ...Option) *LookupRepository {
	return &LookupRepository{base: newBase(store, opts)}
}

// AlertTypes reads alert-type.json.
func (r *LookupRepository) AlertTypes(ctx context.Context) []domain.AlertType {
	return loadList[domain.AlertType](ctx, r.base, domain.CollectionAlertTypes)
}

// Categories reads the member categories.
func (r *LookupRepository) Categories(ctx context.Context) []domain.Category {
	return loadList[domain.Category](ctx, r.base, domain.CollectionCategories)
}

// Classes reads the member classes.
func (r *LookupRepository) Classes(ctx context.Context) []domain.Class {
	return loadList[domain.Class](ctx, r.base, domain.CollectionClasses)
}

// PaymentMethods reads the accepted payment methods.
func (r *LookupRepository) PaymentMethods(ctx context.Context) []domain.PaymentMethod {
	return loadList[domain.PaymentMethod](ctx, r.base, domain.CollectionPaymentMethods)
}

// Regions reads the regions members trade in.
func (r *LookupRepository) Regions(ctx context.Context) []domain.Region {
	return loadList[domain.Region](ctx, r.base, domain.CollectionRegions)
}

// LegalStructures reads legal.json.
func (r *LookupRepository) LegalStructures(ctx context.Context) []domain.LegalStructure {
	return loadList[domain.LegalStructure](ctx, r.base, domain.CollectionLegal)
}

// Organisations reads the building organisations.
func (r *LookupRepository) Organisations(ctx context.Context) []domain.Organisation {
	return loadList[domain.Organisation](ctx, r.base, domain.CollectionOrganisations)
}

// EstimatingPackages reads estimating.json.
func (r *LookupRepository) EstimatingPackages(ctx context.Context) []domain.EstimatingPackage {
	return loadList[domain.EstimatingPackage](ctx, r.base, domain.CollectionEstimating)
}

// Staff reads the staff list used for relationship managers and note authors.
func (r *LookupRepository) Staff(ctx context.Context) []domain.StaffMember {
	return loadList[domain.StaffMember](ctx, r.base, domain.CollectionStaff)
}

// tables maps the command-line table names to their readers.
func (r *LookupRepository) tables() map[string]func(context.Context) any {
	return map[string]func(context.Context) any{
		"alert-types":         func(ctx context.Context) any { return r.AlertTypes(ctx) },
		"categories":          func(ctx context.Context) any { return r.Categories(ctx) },
		"classes":             func(ctx context.Context) any { return r.Classes(ctx) },
		"payment-methods":     func(ctx context.Context) any { return r.PaymentMethods(ctx) },
		"regions":             func(ctx context.Context) any { return r.Regions(ctx) },
		"legal-structures":    func(ctx context.Context) any { return r.LegalStructures(ctx) },
		"organisations":       func(ctx context.Context) any { return r.Organisations(ctx) },
		"estimating-packages": func(ctx context.Context) any { return r.EstimatingPackages(ctx) },
		"staff":               func(ctx context.Context) any { return r.Staff(ctx) },
	}
}

// Tables lists the names accepted by Table, sorted.
func (r *LookupRepository) Tables() []string {
	t := r.tables()
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table reads a lookup table by name.
func (r *LookupRepository) Table(ctx context.Context, name string) (any, error) {
	read, ok := r.tables()[name]
	if !ok {
		return nil, fmt.Errorf("unknown lookup table %q", name)
	}
	return read(ctx), nil
}
