package members

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/asbbic/membership/internal/dto"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	seedMember(t, env, "Jane Doe", "jane@x.com")

	second, err := env.svc.Create(context.Background(), dto.CreateMemberInput{
		FullName: `John "Johnny" Roe`,
		Email:    "john@x.com",
		Phone:    "5550101",
	})
	require.NoError(t, err)

	out, err := env.svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one row per record")
	require.Equal(t, `"Member ID","Full Name","Email","Phone","ID Number","Activity","Birth Date","Birth Place","Status","Created At"`, lines[0])

	// Newest record first, every field quoted, internal quotes doubled.
	require.True(t, strings.HasPrefix(lines[1], `"`+second.MemberID+`"`))
	require.Contains(t, lines[1], `"John ""Johnny"" Roe"`)
	require.Contains(t, lines[2], `"Jane Doe"`)

	for _, line := range lines {
		fields := strings.Split(line, `","`)
		require.Len(t, fields, len(exportHeader))
	}
}

func TestExportCSVEmpty(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 1, "only the header when there are no records")
}

func TestExportXLSX(t *testing.T) {
	env := newTestEnv(t)
	created := seedMember(t, env, "Jane Doe", "jane@x.com")

	out, err := env.svc.ExportXLSX(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{xlsxSheetName}, f.GetSheetList())

	rows, err := f.GetRows(xlsxSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, exportHeader, rows[0])
	require.Equal(t, created.MemberID, rows[1][0])
	require.Equal(t, "Jane Doe", rows[1][1])
}
