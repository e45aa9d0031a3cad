package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/macoscontainers/clearbusy/internal/testutil"
	"github.com/macoscontainers/clearbusy/internal/xattr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyRecord() []byte {
	raw := make([]byte, 32)
	copy(raw, "TEXTttxt")
	raw[25] = 0x80
	return raw
}

func TestUsage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, args := range [][]string{nil, {"--help"}} {
		stderr := &bytes.Buffer{}
		assert.Equal(t, 0, run(args, stderr), "args %v", args)
		assert.Contains(t, stderr.String(), "clearbusy [--debug] file1 [file2 ...]", "args %v", args)
	}
}

func TestUnknownFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	stderr := &bytes.Buffer{}
	assert.Equal(t, 1, run([]string{"--bogus", "file"}, stderr))
	assert.Contains(t, stderr.String(), "Error:")
}

func TestRunClearsBusyFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	fake := testutil.InstallFakeXattr(t)
	file := testutil.CreateFile(t, t.TempDir(), "doc.txt")
	fake.SetAttribute(t, file, xattr.FinderInfo, hex.EncodeToString(busyRecord()))

	stderr := &bytes.Buffer{}
	require.Equal(t, 0, run([]string{"--xattr", fake.Program, file}, stderr))
	assert.Empty(t, stderr.String())

	want := busyRecord()
	want[25] = 0x00
	stored, ok := fake.Attribute(t, file, xattr.FinderInfo)
	require.True(t, ok)
	assert.Equal(t, hex.EncodeToString(want), stored)
}

func TestRunDebug(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLEARBUSY_LOG_NO_COLOR", "true")
	fake := testutil.InstallFakeXattr(t)
	file := testutil.CreateFile(t, t.TempDir(), "doc.txt")
	fake.SetAttribute(t, file, xattr.FinderInfo, hex.EncodeToString(busyRecord()))

	stderr := &bytes.Buffer{}
	require.Equal(t, 0, run([]string{"--debug", "--xattr", fake.Program, file}, stderr))
	assert.Contains(t, stderr.String(), "-px "+xattr.FinderInfo)
	assert.Contains(t, stderr.String(), "-wx "+xattr.FinderInfo)
	assert.Contains(t, stderr.String(), "cleared busy flag")
}

func TestRunBatchFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLEARBUSY_LOG_NO_COLOR", "true")
	fake := testutil.InstallFakeXattr(t)
	dir := t.TempDir()
	files := []string{
		testutil.CreateFile(t, dir, "one"),
		testutil.CreateFile(t, dir, "two"),
		testutil.CreateFile(t, dir, "three"),
	}
	fake.SetAttribute(t, files[0], xattr.FinderInfo, hex.EncodeToString(busyRecord()))
	fake.SetAttribute(t, files[1], xattr.FinderInfo, hex.EncodeToString(make([]byte, 33)))
	fake.SetAttribute(t, files[2], xattr.FinderInfo, hex.EncodeToString(busyRecord()))

	stderr := &bytes.Buffer{}
	assert.Equal(t, 1, run(append([]string{"--xattr", fake.Program}, files...), stderr))
	assert.Contains(t, stderr.String(), "file="+files[1])
	assert.Contains(t, stderr.String(), "length=33")

	want := busyRecord()
	want[25] = 0x00
	for _, file := range []string{files[0], files[2]} {
		stored, _ := fake.Attribute(t, file, xattr.FinderInfo)
		assert.Equal(t, hex.EncodeToString(want), stored, file)
	}
}

func TestRunAbsentAttributeIsNotAFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	fake := testutil.InstallFakeXattr(t)
	file := testutil.CreateFile(t, t.TempDir(), "plain.txt")

	stderr := &bytes.Buffer{}
	assert.Equal(t, 0, run([]string{"--xattr", fake.Program, file}, stderr))
	assert.Empty(t, stderr.String())
	assert.Len(t, fake.Invocations(t), 1)
}

func TestRunMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	fake := testutil.InstallFakeXattr(t)

	stderr := &bytes.Buffer{}
	assert.Equal(t, 1, run([]string{"--xattr", fake.Program, "/nonexistent/doc.txt"}, stderr))
	assert.Contains(t, stderr.String(), "/nonexistent/doc.txt")
	assert.Empty(t, fake.Invocations(t))
}
