package csvfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenStripsBOM(t *testing.T) {
	path := writeFile(t, "bom.csv", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Code\n2025-12-05,5930\n")...))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RequireColumns("Date", "Code"))

	record, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-05", record.Get("Date"))
	assert.Equal(t, "5930", record.Get("Code"))

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestOpenDecodesEUCKR(t *testing.T) {
	utf8Content := "Date,Stock,Code\n2025-12-05,삼성전자,5930\n"
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(utf8Content))
	require.NoError(t, err)

	r, err := Open(writeFile(t, "euckr.csv", encoded))
	require.NoError(t, err)
	defer r.Close()

	record, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "삼성전자", record.Get("Stock"))
	assert.Equal(t, "5930", record.Get("Code"))
}

func TestRequireColumnsReportsMissing(t *testing.T) {
	r, err := Open(writeFile(t, "partial.csv", []byte("Date,Code\n")))
	require.NoError(t, err)
	defer r.Close()

	err = r.RequireColumns("Date", "Code", "mentions", "popularity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mentions")
	assert.Contains(t, err.Error(), "popularity")
}

func TestGetUnknownColumnIsEmpty(t *testing.T) {
	r, err := Open(writeFile(t, "cols.csv", []byte("Date\n2025-12-05\n")))
	require.NoError(t, err)
	defer r.Close()

	record, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "", record.Get("Volume"))
}

func TestRaggedRowsTolerated(t *testing.T) {
	r, err := Open(writeFile(t, "ragged.csv", []byte("Date,Code,Volume\n2025-12-05,5930\n")))
	require.NoError(t, err)
	defer r.Close()

	record, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "5930", record.Get("Code"))
	assert.Equal(t, "", record.Get("Volume"))
}
