package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tagcrm/internal/docstore"
	"tagcrm/pkg/domain"
)

type captureLogger struct{ calls []string }

func (c *captureLogger) Debug(msg string, _ ...any) { c.calls = append(c.calls, "d:"+msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.calls = append(c.calls, "i:"+msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.calls = append(c.calls, "w:"+msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.calls = append(c.calls, "e:"+msg) }

func seed(t *testing.T, store *docstore.Store, c domain.Collection, content string) {
	t.Helper()
	require.NoError(t, store.Backend().Write(context.Background(), string(c), []byte(content)))
}

func raw(t *testing.T, store *docstore.Store, c domain.Collection) string {
	t.Helper()
	b, err := store.Backend().Read(context.Background(), string(c))
	require.NoError(t, err)
	return string(b)
}

const membersFixture = `[
  {"Id": 1, "BusinessName": "Acme Builders", "Email": "info@acme.test", "Phone": "0400 111 222", "MemberId": "M-100"},
  {"Id": 3, "BusinessName": "Bright Homes", "Email": "hello@bright.test", "Phone": "0400 333 444", "MemberId": "M-300"},
  {"Id": 5, "BusinessName": "Coastal Constructions", "Email": "office@coastal.test", "Phone": "0400 555 666", "MemberId": "M-500"}
]`

const contactsFixture = `[
  {"id": 10, "firstName": "Zoe", "surname": "Young", "email": "zoe@acme.test", "memberId": "1"},
  {"id": 11, "preferredName": "Jojo", "firstName": "Jo", "surname": "Lee", "memberId": "3"},
  {"id": 12, "name": "Legacy Name", "memberId": ""},
  {"id": 13, "firstName": "amy", "surname": "Adams", "phone": "0499 000 000", "memberId": "99"},
  {"id": 14, "firstName": "Bob", "surname": "Brown", "memberId": "5", "email": "BOB@COASTAL.TEST"}
]`
