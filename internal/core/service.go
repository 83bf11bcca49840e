// Package core wires the repositories over one document store and offers the
// operations the command line exposes.
package core

import (
	"context"
	"fmt"

	"tagcrm/internal/docstore"
	"tagcrm/internal/export"
	"tagcrm/internal/repository"
	"tagcrm/pkg/domain"
)

type (
	// Logger is the structured logger the service and repositories share.
	Logger = repository.Logger
	// MetricsRecorder observes document and repository operations.
	MetricsRecorder = docstore.MetricsRecorder
)

// Service bundles the contact, member and lookup repositories.
type Service struct {
	store    *docstore.Store
	contacts *repository.ContactRepository
	members  *repository.MemberRepository
	lookups  *repository.LookupRepository
	logger   Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceConfig)

type serviceConfig struct {
	logger  Logger
	metrics MetricsRecorder
}

// WithLogger sets the logger handed to every repository.
func WithLogger(l Logger) ServiceOption {
	return func(c *serviceConfig) { c.logger = l }
}

// WithMetrics sets the recorder handed to every repository.
func WithMetrics(m MetricsRecorder) ServiceOption {
	return func(c *serviceConfig) { c.metrics = m }
}

// NewService constructs a service backed by the supplied store.
func NewService(store *docstore.Store, opts ...ServiceOption) *Service {
	var cfg serviceConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	repoOpts := []repository.Option{repository.WithLogger(cfg.logger), repository.WithMetrics(cfg.metrics)}
	svc := &Service{
		store:    store,
		contacts: repository.NewContactRepository(store, repoOpts...),
		members:  repository.NewMemberRepository(store, repoOpts...),
		lookups:  repository.NewLookupRepository(store, repoOpts...),
		logger:   cfg.logger,
	}
	if svc.logger == nil {
		svc.logger = repository.NopLogger{}
	}
	return svc
}

// NewInMemoryService creates a service over a fresh in-memory store.
func NewInMemoryService(opts ...ServiceOption) *Service {
	return NewService(docstore.NewMemory(), opts...)
}

// Store returns the underlying document store.
func (s *Service) Store() *docstore.Store { return s.store }

// Contacts returns the contact repository.
func (s *Service) Contacts() *repository.ContactRepository { return s.contacts }

// Members returns the member repository.
func (s *Service) Members() *repository.MemberRepository { return s.members }

// Lookups returns the lookup table repository.
func (s *Service) Lookups() *repository.LookupRepository { return s.lookups }

// Close releases the store.
func (s *Service) Close() error { return s.store.Close() }

// ExportContacts renders every contact matching term as a workbook, in
// display-name order.
func (s *Service) ExportContacts(ctx context.Context, term string) ([]byte, error) {
	rows, err := s.contacts.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("export contacts: %w", err)
	}
	s.logger.Info("exporting contacts", "rows", len(rows))
	return export.Contacts(rows)
}

// ExportMembers renders every member matching term as a workbook, in stored
// order.
func (s *Service) ExportMembers(ctx context.Context, term string) ([]byte, error) {
	rows, err := s.members.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("export members: %w", err)
	}
	s.logger.Info("exporting members", "rows", len(rows))
	return export.Members(rows)
}

// MemberSummary is a member with the contacts, notes and alerts attached to it.
type MemberSummary struct {
	Member   domain.Member        `json:"member"`
	Contacts []domain.Contact     `json:"contacts"`
	Notes    []domain.MemberNote  `json:"notes"`
	Alerts   []domain.MemberAlert `json:"alerts"`
}

// MemberSummary gathers the member with id and its related rows.
func (s *Service) MemberSummary(ctx context.Context, id int) (MemberSummary, error) {
	m, ok := s.members.GetByID(ctx, id)
	if !ok {
		return MemberSummary{}, repository.NotFoundError{Collection: domain.CollectionMembers, ID: id}
	}
	return MemberSummary{
		Member:   m,
		Contacts: s.members.GetContacts(ctx, id),
		Notes:    s.members.GetNotes(ctx, id),
		Alerts:   s.members.GetAlerts(ctx, id),
	}, nil
}
