package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"tagcrm/internal/docstore"
	"tagcrm/pkg/domain"
)

// MemberRepository serves member businesses in stored order.
type MemberRepository struct {
	base
}

// NewMemberRepository constructs a repository over store.
func NewMemberRepository(store *docstore.Store, opts ...Option) *MemberRepository {
	return &MemberRepository{base: newBase(store, opts)}
}

// GetAll returns every stored member.
func (r *MemberRepository) GetAll(ctx context.Context) []domain.Member {
	return loadList[domain.Member](ctx, r.base, domain.CollectionMembers)
}

// LoadAll is GetAll with the load failure surfaced.
func (r *MemberRepository) LoadAll(ctx context.Context) ([]domain.Member, error) {
	return loadAll[domain.Member](ctx, r.base, domain.CollectionMembers)
}

// GetByID returns the member with id.
func (r *MemberRepository) GetByID(ctx context.Context, id int) (domain.Member, bool) {
	for _, m := range r.GetAll(ctx) {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

// Search returns the members matching raw in stored order. The term is
// matched as typed, surrounding whitespace included; an empty term matches
// every member.
func (r *MemberRepository) Search(ctx context.Context, raw string) ([]domain.Member, error) {
	members, err := r.LoadAll(ctx)
	if err != nil {
		return []domain.Member{}, err
	}
	term := domain.NewUntrimmedSearchTerm(raw)
	return filter(members, func(m domain.Member) bool {
		return term.MatchesAny(m.SearchFields()...)
	}), nil
}

// GetPaged returns one page of the members matching raw and the filtered
// total. Failures yield no rows and a zero total.
func (r *MemberRepository) GetPaged(ctx context.Context, page, pageSize int, raw string) ([]domain.Member, int) {
	start := time.Now()
	matched, err := r.Search(ctx, raw)
	r.observe(ctx, "members.get_paged", domain.CollectionMembers, start, err == nil)
	if err != nil {
		return []domain.Member{}, 0
	}
	return domain.Paginate(matched, page, pageSize), len(matched)
}

// Put stores m, assigning max(id)+1 when m.ID <= 0 and otherwise replacing
// the record with the same id. The collection is written sorted by id.
// Updating an unknown id writes nothing and returns a NotFoundError.
func (r *MemberRepository) Put(ctx context.Context, m domain.Member) (domain.Member, error) {
	start := time.Now()
	err := put[domain.Member](ctx, r.base, domain.CollectionMembers, &m)
	r.observe(ctx, "members.put", domain.CollectionMembers, start, err == nil)
	if err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

// Save is Put reporting only success. New members receive their id in m.
// An update of an unknown id reports false.
func (r *MemberRepository) Save(ctx context.Context, m *domain.Member) bool {
	saved, err := r.Put(ctx, *m)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.log.Info("member update ignored; id not found", "id", m.ID)
		}
		return false
	}
	m.ID = saved.ID
	return true
}

// GetNotes returns the notes for memberID in stored order.
func (r *MemberRepository) GetNotes(ctx context.Context, memberID int) []domain.MemberNote {
	return filter(loadList[domain.MemberNote](ctx, r.base, domain.CollectionMemberNotes), func(n domain.MemberNote) bool {
		return n.MemberID == memberID
	})
}

// GetAlerts returns the alerts raised against memberID.
func (r *MemberRepository) GetAlerts(ctx context.Context, memberID int) []domain.MemberAlert {
	return alertsFor(ctx, r.base, memberID)
}

// GetContacts returns the contacts whose member reference is memberID, with
// their business name resolved.
func (r *MemberRepository) GetContacts(ctx context.Context, memberID int) []domain.Contact {
	key := strconv.Itoa(memberID)
	contacts := filter(loadList[domain.Contact](ctx, r.base, domain.CollectionContacts), func(c domain.Contact) bool {
		return c.MemberID == key
	})
	if len(contacts) == 0 {
		return contacts
	}
	names := businessNames(r.GetAll(ctx))
	for i := range contacts {
		contacts[i].BusinessName = resolveBusinessName(names, key)
	}
	sortByDisplayName(contacts)
	return contacts
}
