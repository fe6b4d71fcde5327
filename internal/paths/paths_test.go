package paths

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteCreatesParent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "out.bin")
	if err := AtomicWrite(p, []byte("hello")); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}
	got, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestAtomicWriteOverwrites(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.bin")
	if err := AtomicWrite(p, []byte("first run, longer content")); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWrite(p, []byte("second")); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(p)
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}
}

func TestAtomicWriteRemovesTempOnWriteError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "icon.png")
	// An empty directory in place of the temp file makes the write fail.
	if err := os.Mkdir(p+".tmp", DirPerm); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWrite(p, []byte("data")); err == nil {
		t.Fatal("expected error when the temp file cannot be written")
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp path left behind: %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("target created despite failed write: %v", err)
	}
}

func TestCopyFileVerbatim(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.ico")
	dst := filepath.Join(dir, "out", "icon.ico")
	data := []byte{0, 0, 1, 0, 0xff, 0xfe, '\n', '\r', 0}
	if err := os.WriteFile(src, data, FilePerm); err != nil {
		t.Fatal(err)
	}
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("copy = %v, want %v", got, data)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "icon.ico")
	if err := CopyFile(filepath.Join(dir, "nope.ico"), dst); err == nil {
		t.Fatal("expected error for missing source")
	}
	if Exists(dst) {
		t.Error("destination should not be created when the source is missing")
	}
}

func TestExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f.txt")
	os.WriteFile(f, []byte("x"), FilePerm)

	if !Exists(f) || !Exists(dir) {
		t.Error("Exists should be true for existing file and dir")
	}
	if Exists(filepath.Join(dir, "missing")) {
		t.Error("Exists should be false for missing path")
	}
	if !IsDir(dir) {
		t.Error("IsDir(dir) = false")
	}
	if IsDir(f) {
		t.Error("IsDir(file) = true")
	}
}

func TestDataDirUsesAPPDATA(t *testing.T) {
	t.Setenv("APPDATA", "/fake/appdata")
	got := DataDir()
	want := filepath.Join("/fake/appdata", AppDirName)
	if got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestDataDirFallsBackWithoutAPPDATA(t *testing.T) {
	t.Setenv("APPDATA", "")
	got := DataDir()

	// Either ~/.config/appicon or the temp dir fallback; both end with the app name.
	if filepath.Base(got) != AppDirName {
		t.Errorf("DataDir() = %q, expected base dir %q", got, AppDirName)
	}
}
