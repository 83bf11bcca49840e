package repository

import (
	"context"
	"sort"
	"strconv"
	"time"

	"tagcrm/internal/docstore"
	"tagcrm/pkg/domain"
)

// ContactRepository serves contacts joined with their member's business name,
// together with the note, alert and template views the contact screens use.
type ContactRepository struct {
	base
}

// NewContactRepository constructs a repository over store.
func NewContactRepository(store *docstore.Store, opts ...Option) *ContactRepository {
	return &ContactRepository{base: newBase(store, opts)}
}

// GetAll returns every stored contact without business-name enrichment.
func (r *ContactRepository) GetAll(ctx context.Context) []domain.Contact {
	return loadList[domain.Contact](ctx, r.base, domain.CollectionContacts)
}

// LoadAll is GetAll with the load failure surfaced.
func (r *ContactRepository) LoadAll(ctx context.Context) ([]domain.Contact, error) {
	return loadAll[domain.Contact](ctx, r.base, domain.CollectionContacts)
}

// businessNames indexes member business names by the member id as text.
func businessNames(members []domain.Member) map[string]string {
	names := make(map[string]string, len(members))
	for _, m := range members {
		key := strconv.Itoa(m.ID)
		if _, dup := names[key]; dup {
			continue // first match wins
		}
		names[key] = m.BusinessName
	}
	return names
}

// resolveBusinessName returns the matched member's name as stored, even when
// blank. Only an unmatched or blank member id yields UnknownCompany.
func resolveBusinessName(names map[string]string, memberID string) string {
	if name, ok := names[memberID]; ok {
		return name
	}
	return domain.UnknownCompany
}

func (r *ContactRepository) joined(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := r.LoadAll(ctx)
	if err != nil {
		return contacts, err
	}
	names := businessNames(loadList[domain.Member](ctx, r.base, domain.CollectionMembers))
	for i := range contacts {
		contacts[i].BusinessName = resolveBusinessName(names, contacts[i].MemberID)
	}
	return contacts, nil
}

// Search returns all contacts matching raw, enriched and ordered by display
// name. A blank term matches every contact.
func (r *ContactRepository) Search(ctx context.Context, raw string) ([]domain.Contact, error) {
	contacts, err := r.joined(ctx)
	if err != nil {
		return []domain.Contact{}, err
	}
	term := domain.NewSearchTerm(raw)
	matched := contacts[:0]
	for _, c := range contacts {
		if term.MatchesAny(c.SearchFields()...) {
			matched = append(matched, c)
		}
	}
	sortByDisplayName(matched)
	return matched, nil
}

func sortByDisplayName(contacts []domain.Contact) {
	type keyed struct {
		key string
		c   domain.Contact
	}
	rows := make([]keyed, len(contacts))
	for i, c := range contacts {
		rows[i] = keyed{key: domain.Fold(c.DisplayName()), c: c}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].key < rows[j].key })
	for i := range rows {
		contacts[i] = rows[i].c
	}
}

// GetPaged filters contacts by raw, sorts them by display name and returns
// the requested page. TotalRecords counts the filtered set. Any failure
// yields an empty page echoing page and pageSize.
func (r *ContactRepository) GetPaged(ctx context.Context, page, pageSize int, raw string) domain.Page[domain.Contact] {
	start := time.Now()
	matched, err := r.Search(ctx, raw)
	r.observe(ctx, "contacts.get_paged", domain.CollectionContacts, start, err == nil)
	if err != nil {
		return domain.EmptyPage[domain.Contact](page, pageSize)
	}
	return domain.Page[domain.Contact]{
		Data:         domain.Paginate(matched, page, pageSize),
		TotalRecords: len(matched),
		CurrentPage:  page,
		PageSize:     pageSize,
	}
}

// GetByID returns the contact with id, enriched with its business name.
func (r *ContactRepository) GetByID(ctx context.Context, id int) (domain.Contact, bool) {
	for _, c := range r.GetAll(ctx) {
		if c.ID == id {
			names := businessNames(loadList[domain.Member](ctx, r.base, domain.CollectionMembers))
			c.BusinessName = resolveBusinessName(names, c.MemberID)
			return c, true
		}
	}
	return domain.Contact{}, false
}

// Put stores c, assigning the next id when c.ID <= 0. Updating an unknown id
// returns a NotFoundError. The derived business name is never persisted.
func (r *ContactRepository) Put(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	start := time.Now()
	c.BusinessName = ""
	err := put[domain.Contact](ctx, r.base, domain.CollectionContacts, &c)
	r.observe(ctx, "contacts.put", domain.CollectionContacts, start, err == nil)
	if err != nil {
		return domain.Contact{}, err
	}
	return c, nil
}

// Save is Put reporting only success. New contacts receive their id in c.
func (r *ContactRepository) Save(ctx context.Context, c *domain.Contact) bool {
	saved, err := r.Put(ctx, *c)
	if err != nil {
		return false
	}
	c.ID = saved.ID
	return true
}

// GetNotes returns the notes for contactID, newest first. Notes sharing a
// timestamp keep their stored order.
func (r *ContactRepository) GetNotes(ctx context.Context, contactID int) []domain.ContactNote {
	notes := filter(loadList[domain.ContactNote](ctx, r.base, domain.CollectionContactNotes), func(n domain.ContactNote) bool {
		return n.ContactID == contactID
	})
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp.After(notes[j].Timestamp.Time)
	})
	return notes
}

// GetAlerts returns the alerts raised against memberID.
func (r *ContactRepository) GetAlerts(ctx context.Context, memberID int) []domain.MemberAlert {
	return alertsFor(ctx, r.base, memberID)
}

// GetAlertTypes returns the alert type lookup table.
func (r *ContactRepository) GetAlertTypes(ctx context.Context) []domain.AlertType {
	return loadList[domain.AlertType](ctx, r.base, domain.CollectionAlertTypes)
}

// GetSmsTemplates returns the stored SMS templates.
func (r *ContactRepository) GetSmsTemplates(ctx context.Context) []domain.SmsTemplate {
	return loadList[domain.SmsTemplate](ctx, r.base, domain.CollectionSmsTemplates)
}

// GetEmailTemplates returns the stored email templates.
func (r *ContactRepository) GetEmailTemplates(ctx context.Context) []domain.EmailTemplate {
	return loadList[domain.EmailTemplate](ctx, r.base, domain.CollectionEmailTemplates)
}

func alertsFor(ctx context.Context, b base, memberID int) []domain.MemberAlert {
	return filter(loadList[domain.MemberAlert](ctx, b, domain.CollectionAlerts), func(a domain.MemberAlert) bool {
		return a.MemberID == memberID
	})
}

// filter keeps the items satisfying keep. The result is never nil.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
