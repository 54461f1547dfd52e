package service_test

import (
	"strings"
	"testing"

	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/internal/service"
)

func TestDetermineFileType(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "pdf"},
		{"Report.PDF", "pdf"},
		{"photo.jpg", "image"},
		{"photo.jpeg", "image"},
		{"logo.png", "image"},
		{"anim.gif", "image"},
		{"letter.doc", "document"},
		{"letter.docx", "document"},
		{"grades.xls", "spreadsheet"},
		{"grades.xlsx", "spreadsheet"},
		{"export.csv", "spreadsheet"},
		{"notes.txt", "text"},
		{"archive.zip", "other"},
		{"noextension", "other"},
	}

	for _, c := range cases {
		if got := service.DetermineFileType(c.filename); got != c.want {
			t.Errorf("DetermineFileType(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestGuessMimeType(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "application/pdf"},
		{"photo.jpg", "image/jpeg"},
		{"logo.png", "image/png"},
		{"data.bin", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, c := range cases {
		if got := service.GuessMimeType(c.filename); got != c.want {
			t.Errorf("GuessMimeType(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestBuildObjectKey(t *testing.T) {
	if got := service.BuildObjectKey(7, "report.pdf"); got != "schools/7/files/report.pdf" {
		t.Errorf("BuildObjectKey = %q", got)
	}

	// 路径分量被剥掉，只保留文件名
	if got := service.BuildObjectKey(7, "../../etc/passwd"); got != "schools/7/files/passwd" {
		t.Errorf("BuildObjectKey with path = %q", got)
	}
}

func TestAlternativeFileName(t *testing.T) {
	got := service.AlternativeFileName("report.pdf")

	if got == "report.pdf" {
		t.Error("expected a different name")
	}

	if !strings.HasPrefix(got, "report_") || !strings.HasSuffix(got, ".pdf") {
		t.Errorf("AlternativeFileName = %q, want report_<suffix>.pdf", got)
	}

	// 无扩展名时后缀直接附在末尾
	if got := service.AlternativeFileName("noextension"); !strings.HasPrefix(got, "noextension_") {
		t.Errorf("AlternativeFileName without extension = %q", got)
	}

	if a, b := service.AlternativeFileName("a.txt"), service.AlternativeFileName("a.txt"); a == b {
		t.Errorf("two alternatives collided: %q", a)
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{2048, "2.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}

	for _, c := range cases {
		if got := service.FormatFileSize(c.size); got != c.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", c.size, got, c.want)
		}
	}
}

func TestValidateUpload(t *testing.T) {
	cfg := &configs.UploadConfig{
		MaxSize:           configs.DefaultMaxUploadSize,
		AllowedExtensions: configs.DefaultAllowedExtensions,
	}

	if reasons := service.ValidateUpload(cfg, "report.pdf", 1024); len(reasons) != 0 {
		t.Errorf("expected valid upload, got %v", reasons)
	}

	if reasons := service.ValidateUpload(cfg, "malware.exe", 1024); len(reasons) != 1 {
		t.Errorf("expected extension rejection, got %v", reasons)
	}

	if reasons := service.ValidateUpload(cfg, "big.pdf", 11<<20); len(reasons) != 1 {
		t.Errorf("expected size rejection, got %v", reasons)
	}

	if reasons := service.ValidateUpload(cfg, "big.exe", 11<<20); len(reasons) != 2 {
		t.Errorf("expected both rejections, got %v", reasons)
	}
}
