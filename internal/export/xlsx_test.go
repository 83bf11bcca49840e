package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tagcrm/pkg/domain"
)

func readSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestContactsWorkbook(t *testing.T) {
	data, err := Contacts([]domain.Contact{
		{ID: 11, PreferredName: "Jojo", FirstName: "Jo", Surname: "Lee", BusinessName: "Bright Homes", MemberID: "3", Active: true},
		{ID: 12, Name: "Legacy Name", BusinessName: domain.UnknownCompany, EmailSubscribed: true},
	})
	require.NoError(t, err)
	rows := readSheet(t, data, "Contacts")
	require.Len(t, rows, 3)
	assert.Equal(t, "Id", rows[0][0])
	assert.Equal(t, "Subscribed", rows[0][len(ContactColumns)-1])
	assert.Equal(t, []string{"11", "Jojo", "Bright Homes", "3"}, rows[1][:4])
	assert.Equal(t, "Yes", rows[1][7])
	assert.Equal(t, "Legacy Name", rows[2][1])
	assert.Equal(t, domain.UnknownCompany, rows[2][2])
	assert.Equal(t, "Yes", rows[2][8])
}

func TestMembersWorkbook(t *testing.T) {
	data, err := Members([]domain.Member{{ID: 3, MemberID: "M-300", BusinessName: "Bright Homes", Regions: []int{1, 4}}})
	require.NoError(t, err)
	rows := readSheet(t, data, "Members")
	require.Len(t, rows, 2)
	assert.Equal(t, "Business Name", rows[0][2])
	assert.Equal(t, "Bright Homes", rows[1][2])
	assert.Equal(t, "1, 4", rows[1][9])
	assert.Equal(t, "No", rows[1][11])
}

func TestEmptyWorkbookHasHeaderOnly(t *testing.T) {
	data, err := Members(nil)
	require.NoError(t, err)
	rows := readSheet(t, data, "Members")
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(MemberColumns))
}
