package merger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"

	"github.com/ryabkov82/scimerge/internal/config"
	"github.com/ryabkov82/scimerge/internal/csvio"
	"github.com/ryabkov82/scimerge/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestMerger(t *testing.T) *StreamMerger {
	t.Helper()
	enc, err := csvio.Lookup(csvio.UTF8)
	require.NoError(t, err)
	sm := NewStreamMerger(nil)
	sm.Encoding = enc
	return sm
}

func mergeConfig(t *testing.T, inputDir, output string) *config.Config {
	t.Helper()
	cfg, err := config.Load("", func(c *config.Config) {
		c.InputDir = inputDir
		c.OutputPath = output
	})
	require.NoError(t, err)
	return cfg
}

func TestStreamSkipsEmptyFilesAndTagsRows(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "f1.csv", "x,y\n1,2\n3,4\n"),
		writeFile(t, dir, "f2.csv", ""),
		writeFile(t, dir, "f3.csv", "x , y\n5,6\n"),
	}

	sm := newTestMerger(t)
	require.NoError(t, sm.Scan(files))
	assert.Equal(t, []string{"x", "y"}, sm.Headers)
	assert.Equal(t, files[0], sm.HeaderSource)
	assert.Equal(t, []string{files[0], files[2]}, sm.Files)

	var buf bytes.Buffer
	require.NoError(t, sm.Stream(&buf))

	assert.Equal(t, "file_id,x,y\nf1.c,1,2\nf1.c,3,4\nf3.c,5,6\n", buf.String())
	assert.EqualValues(t, 3, sm.RowCounter)
}

func TestStreamHeaderOnlyFileContributesNothing(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "f1.csv", "x,y\n1,2\n"),
		writeFile(t, dir, "f2.csv", "x,y\n"),
	}

	sm := newTestMerger(t)
	require.NoError(t, sm.Scan(files))

	var buf bytes.Buffer
	require.NoError(t, sm.Stream(&buf))
	assert.Equal(t, "file_id,x,y\nf1.c,1,2\n", buf.String())
	assert.Len(t, sm.Files, 2)
}

func TestStreamProjectsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeFile(t, dir, "ragged.csv", "a,b,c\n1\n1,2,3,4\n\n,,\n")}

	sm := newTestMerger(t)
	sm.TagColumn = "src"
	require.NoError(t, sm.Scan(files))

	var buf bytes.Buffer
	require.NoError(t, sm.Stream(&buf))
	assert.Equal(t, "src,a,b,c\nragg,1,,\nragg,1,2,3\nragg,,,\n", buf.String())
}

func TestStreamAbortsOnHeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "f1.csv", "x,y\n1,2\n"),
		writeFile(t, dir, "f2.csv", "x,z\n3,4\n"),
		writeFile(t, dir, "f3.csv", "x,y\n5,6\n"),
	}

	sm := newTestMerger(t)
	require.NoError(t, sm.Scan(files))

	var buf bytes.Buffer
	err := sm.Stream(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHeaderMismatch)

	var mismatch *errors.HeaderMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, files[1], mismatch.Path)
	assert.Equal(t, files[0], mismatch.ReferencePath)
	assert.Equal(t, []string{"x", "y"}, mismatch.Expected)
	assert.Equal(t, []string{"x", "z"}, mismatch.Found)
	assert.Equal(t, 1, mismatch.Index)

	assert.Equal(t, "file_id,x,y\nf1.c,1,2\n", buf.String())
	assert.EqualValues(t, 1, sm.RowCounter)
}

func TestStreamDuplicateTrimmedNamesTakeLastColumn(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeFile(t, dir, "dup.csv", "a,a ,b\n1,2,3\n")}

	sm := newTestMerger(t)
	require.NoError(t, sm.Scan(files))

	var buf bytes.Buffer
	require.NoError(t, sm.Stream(&buf))
	assert.Equal(t, "file_id,a,a ,b\ndup.,2,2,3\n", buf.String())
}

func TestScanAllEmpty(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.csv", ""),
		writeFile(t, dir, "b.csv", "\n\n"),
	}

	sm := newTestMerger(t)
	err := sm.Scan(files)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInputSet)
}

func TestMergeFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeFile(t, in, "2024_q2.csv", "\ufeffpiid,vendor_name\nP2,Beta\n")
	writeFile(t, in, "2024_q1.csv", "\ufeffpiid,vendor_name\nP1,Acme\n")
	writeFile(t, in, "notes.txt", "ignored")
	out := filepath.Join(dir, "merged.csv")

	res, err := NewStreamMerger(nil).MergeFiles(mergeConfig(t, in, out))
	require.NoError(t, err)

	assert.Equal(t, 2, res.FileCount)
	assert.EqualValues(t, 2, res.RowCount)
	assert.Equal(t, filepath.Join(in, "2024_q1.csv"), res.HeaderSource)
	assert.Equal(t, []string{out}, res.OutputFiles)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\ufefffile_id,piid,vendor_name\n2024,P1,Acme\n2024,P2,Beta\n", string(data))
}

func TestMergeFilesRecursive(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeFile(t, in, "a1.csv", "x\n1\n")
	writeFile(t, in, filepath.Join("sub", "b1.csv"), "x\n2\n")
	out := filepath.Join(dir, "merged.csv")

	cfg := mergeConfig(t, in, out)
	cfg.Recursive = true

	res, err := NewStreamMerger(nil).MergeFiles(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.RowCount)
}

func TestMergeFilesNoMatchCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "merged.csv")

	_, err := NewStreamMerger(nil).MergeFiles(mergeConfig(t, dir, out))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoFilesMatched)
	assert.NoFileExists(t, out)
}

func TestMergeFilesAllEmptyCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeFile(t, in, "a.csv", "")
	out := filepath.Join(dir, "merged.csv")

	_, err := NewStreamMerger(nil).MergeFiles(mergeConfig(t, in, out))
	assert.ErrorIs(t, err, errors.ErrEmptyInputSet)
	assert.NoFileExists(t, out)
}

func TestMergeFilesMismatchRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeFile(t, in, "f1.csv", "x,y\n1,2\n")
	writeFile(t, in, "f2.csv", "x,z\n3,4\n")
	out := filepath.Join(dir, "merged.csv")

	_, err := NewStreamMerger(nil).MergeFiles(mergeConfig(t, in, out))
	assert.ErrorIs(t, err, errors.ErrHeaderMismatch)
	assert.NoFileExists(t, out)
}

func TestMergeFilesSkipsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "x\n1\n")
	out := writeFile(t, dir, "merged.csv", "file_id,x\na.cs,1\n")

	res, err := NewStreamMerger(nil).MergeFiles(mergeConfig(t, dir, out))
	require.NoError(t, err)
	assert.Equal(t, 1, res.FileCount)
	assert.EqualValues(t, 1, res.RowCount)
}

func TestMergeFilesInvalidUTF8RemovesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeFile(t, in, "f1.csv", "x,y\n\xff\xfe,caf\xe9\n")
	out := filepath.Join(dir, "merged.csv")

	cfg := mergeConfig(t, in, out)
	require.Equal(t, csvio.UTF8SIG, cfg.Encoding)

	_, err := NewStreamMerger(nil).MergeFiles(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, encoding.ErrInvalidUTF8)
	assert.Equal(t, errors.ExitFailure, errors.ExitCode(err))
	assert.NoFileExists(t, out)
}
