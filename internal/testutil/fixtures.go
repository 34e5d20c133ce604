package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// BaseCSV is a small base table keyed by file path with all QMOOD inputs.
const BaseCSV = `Name,ANA,DAM,DCC,CIS,DSC,lcc,MOA,MFA,NOP,NOH,WMC
src/Foo.java,1,0.5,2,3,1,1,0,0.5,1,0,4
src/Bar.java,0,1,1,2,1,0,1,0,0,1,2
src/Baz.java,2,0,0,1,1,2,2,1,2,0,6
`

// OverrideCSV overrides Foo's DCC and carries a class unknown to BaseCSV.
const OverrideCSV = `file,class,DCC,Extra
foo.java,com.acme.Foo,5,x
Qux.java,com.acme.Qux,9,y
`

// WriteFile writes content to name under a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // Test fixture path
	require.NoError(t, err)

	return string(data)
}
