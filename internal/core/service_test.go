package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagcrm/internal/config"
	"tagcrm/internal/docstore"
	"tagcrm/internal/repository"
	"tagcrm/pkg/domain"
)

type captureLogger struct{ calls []string }

func (c *captureLogger) Debug(msg string, _ ...any) { c.calls = append(c.calls, "d:"+msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.calls = append(c.calls, "i:"+msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.calls = append(c.calls, "w:"+msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.calls = append(c.calls, "e:"+msg) }

type countingMetrics struct{ n int }

func (c *countingMetrics) Observe(context.Context, string, string, string, time.Duration) { c.n++ }

func seedService(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{"Acme", "Bright"} {
		m := domain.Member{BusinessName: name}
		require.True(t, svc.Members().Save(ctx, &m))
	}
	c := domain.NewContact()
	c.FirstName, c.Surname, c.MemberID = "Jo", "Lee", "2"
	require.True(t, svc.Contacts().Save(ctx, &c))
}

func TestServiceOptionsReachRepositories(t *testing.T) {
	log := &captureLogger{}
	metrics := &countingMetrics{}
	svc := NewInMemoryService(WithLogger(log), WithMetrics(metrics))
	ctx := context.Background()

	svc.Members().GetPaged(ctx, 1, 10, "")
	assert.Contains(t, log.calls, "d:collection missing")
	assert.Equal(t, 1, metrics.n)
	assert.Equal(t, docstore.DriverMemory, svc.Store().Driver())
	assert.NoError(t, svc.Close())
}

func TestServiceWithoutOptions(t *testing.T) {
	svc := NewInMemoryService()
	assert.IsType(t, repository.NopLogger{}, svc.logger)
	assert.Empty(t, svc.Lookups().Staff(context.Background()))
}

func TestMemberSummary(t *testing.T) {
	svc := NewInMemoryService()
	seedService(t, svc)
	ctx := context.Background()

	sum, err := svc.MemberSummary(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bright", sum.Member.BusinessName)
	require.Len(t, sum.Contacts, 1)
	assert.Equal(t, "Bright", sum.Contacts[0].BusinessName)
	assert.NotNil(t, sum.Notes)
	assert.NotNil(t, sum.Alerts)

	_, err = svc.MemberSummary(ctx, 9)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExports(t *testing.T) {
	log := &captureLogger{}
	svc := NewInMemoryService(WithLogger(log))
	seedService(t, svc)
	ctx := context.Background()

	b, err := svc.ExportContacts(ctx, "jo")
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	b, err = svc.ExportMembers(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	assert.Contains(t, log.calls, "i:exporting contacts")
	assert.Contains(t, log.calls, "i:exporting members")

	require.NoError(t, svc.Store().Backend().Write(ctx, string(domain.CollectionMembers), []byte("{")))
	_, err = svc.ExportMembers(ctx, "")
	assert.ErrorIs(t, err, docstore.ErrCorrupt)
}

func TestOpenServiceFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := config.Config{Docstore: docstore.Config{Dir: dir}}
	log := &captureLogger{}
	svc, err := OpenService(context.Background(), cfg, WithLogger(log))
	require.NoError(t, err)
	assert.Equal(t, docstore.DriverFilesystem, svc.Store().Driver())
	assert.Contains(t, log.calls, "d:docstore opened")

	m := domain.Member{BusinessName: "Disk"}
	require.True(t, svc.Members().Save(context.Background(), &m))
	_, err = os.Stat(filepath.Join(dir, "members.json"))
	assert.NoError(t, err)
}

func TestOpenServiceUnknownDriver(t *testing.T) {
	_, err := OpenService(context.Background(), config.Config{Docstore: docstore.Config{Driver: "tape"}})
	assert.ErrorContains(t, err, "open tape docstore")
}
