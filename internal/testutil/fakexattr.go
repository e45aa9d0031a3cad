package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// A stand-in for the macOS xattr tool that stores each attribute in a sibling file named "<path>.<attribute>".
// Writes to a file are rejected when a sibling "<path>.readonly" file exists.
const fakeXattrScript = `#!/bin/sh
printf '%s\n' "$*" >> '@LOG@'
case "$1" in
-px)
	if [ ! -e "$3" ]; then echo "xattr: No such file: $3" >&2; exit 1; fi
	if [ ! -f "$3.$2" ]; then echo "xattr: $3: No such xattr: $2" >&2; exit 1; fi
	cat "$3.$2"
	;;
-wx)
	if [ -e "$4.readonly" ]; then echo "xattr: [Errno 1] Operation not permitted: '$4'" >&2; exit 1; fi
	printf '%s' "$3" > "$4.$2"
	;;
*)
	echo "xattr: unsupported option $1" >&2
	exit 2
	;;
esac
`

// A fake xattr program installed in a temporary directory
type FakeXattr struct {

	// The path to the fake program
	Program string

	// The file that every invocation's arguments are appended to
	logFile string
}

// Installs a fake xattr program into a temporary directory
func InstallFakeXattr(t testing.TB) *FakeXattr {
	t.Helper()

	dir := t.TempDir()
	fake := &FakeXattr{
		Program: filepath.Join(dir, "xattr"),
		logFile: filepath.Join(dir, "invocations.log"),
	}

	script := strings.ReplaceAll(fakeXattrScript, "@LOG@", fake.logFile)
	if err := os.WriteFile(fake.Program, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return fake
}

// Creates an empty target file in the specified directory
func CreateFile(t testing.TB, dir string, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// Sets the stored hex dump for an attribute of the specified file
func (f *FakeXattr) SetAttribute(t testing.TB, path string, name string, dump string) {
	t.Helper()
	if err := os.WriteFile(path+"."+name, []byte(dump), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Retrieves the stored hex dump for an attribute, returning false if it was never set
func (f *FakeXattr) Attribute(t testing.TB, path string, name string) (string, bool) {
	t.Helper()
	data, err := os.ReadFile(path + "." + name)
	if os.IsNotExist(err) {
		return "", false
	}
	if err != nil {
		t.Fatal(err)
	}
	return string(data), true
}

// Causes subsequent writes to the specified file to fail
func (f *FakeXattr) MakeReadOnly(t testing.TB, path string) {
	t.Helper()
	if err := os.WriteFile(path+".readonly", nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

// Returns the arguments of every invocation so far, one line per invocation
func (f *FakeXattr) Invocations(t testing.TB) []string {
	t.Helper()
	data, err := os.ReadFile(f.logFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
