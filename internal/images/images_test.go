package images

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tagsight/internal/config"
)

func seedArtworkDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	return dir
}

func TestSupported(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"tag.png", true},
		{"tag.JPG", true},
		{"tag.jpeg", true},
		{"design.ai", true},
		{"proof.pdf", true},
		{"tag.webp", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noext", false},
	}
	for _, tc := range cases {
		if got := Supported(tc.name); got != tc.want {
			t.Errorf("Supported(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestListFiltersUnsupported(t *testing.T) {
	dir := seedArtworkDir(t, "AB1.png", "AB2.ai", "readme.txt", "thumbs.db")
	lib := New(config.Images{Dir: dir}, nil)
	names := lib.List()
	if len(names) != 2 {
		t.Fatalf("List = %v, want only artwork files", names)
	}
}

func TestListMissingDirectory(t *testing.T) {
	lib := New(config.Images{Dir: "/nonexistent/artwork"}, nil)
	if names := lib.List(); names != nil {
		t.Fatalf("List on missing dir = %v, want nil", names)
	}
}

func TestFindForTaskCode(t *testing.T) {
	dir := seedArtworkDir(t, "AB123.png", "AB123-back.png", "ab999.jpg", "CD1.png")
	lib := New(config.Images{Dir: dir}, nil)

	matches := lib.FindForTaskCode("AB123")
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want the two AB123 files", matches)
	}
	// Matching ignores case.
	if got := lib.FindForTaskCode("AB999"); len(got) != 1 {
		t.Fatalf("case-insensitive match = %v", got)
	}
	if got := lib.FindForTaskCode(""); got != nil {
		t.Fatalf("empty code must not match, got %v", got)
	}
	if got := lib.FindForTaskCode("ZZ"); got != nil {
		t.Fatalf("unmatched code = %v, want nil", got)
	}
}

func TestExistsAndRead(t *testing.T) {
	dir := seedArtworkDir(t, "AB1.png")
	lib := New(config.Images{Dir: dir}, nil)

	if !lib.Exists("AB1.png") {
		t.Error("seeded file must exist")
	}
	if lib.Exists("AB2.png") {
		t.Error("absent file must not exist")
	}
	if lib.Exists("notes.txt") {
		t.Error("unsupported extension must not exist")
	}

	data, err := lib.Read("AB1.png")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "x" {
		t.Errorf("Read = %q", data)
	}
	if _, err := lib.Read("notes.txt"); err == nil {
		t.Error("unsupported extension must not be readable")
	}

	unconfigured := New(config.Images{}, nil)
	if unconfigured.Exists("AB1.png") {
		t.Error("unconfigured library must report nothing")
	}
	if _, err := unconfigured.Read("AB1.png"); err == nil {
		t.Error("unconfigured library must refuse reads")
	}
}

func TestConvertVectorValidation(t *testing.T) {
	lib := New(config.Images{ConvertCommand: "magick"}, nil)
	if _, err := lib.ConvertVector(context.Background(), "/art/tag.png"); err == nil {
		t.Fatal("raster input must be rejected")
	}

	noConverter := New(config.Images{}, nil)
	if _, err := noConverter.ConvertVector(context.Background(), "/art/tag.ai"); err == nil {
		t.Fatal("missing converter must be an error")
	}
}

func TestConvertVectorRunsCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tag.ai")
	if err := os.WriteFile(src, []byte("vector"), 0o644); err != nil {
		t.Fatalf("seed source: %v", err)
	}
	// cp stands in for the converter: same argument shape, observable output.
	lib := New(config.Images{Dir: dir, ConvertCommand: "cp"}, nil)
	dst, err := lib.ConvertVector(context.Background(), src)
	if err != nil {
		t.Fatalf("ConvertVector: %v", err)
	}
	if dst != filepath.Join(dir, "tag.png") {
		t.Errorf("dst = %q", dst)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("converted file missing: %v", err)
	}
}
