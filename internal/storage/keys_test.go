package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestExportObjectKey(t *testing.T) {
	key := ExportObjectKey("s1", "abc")
	if key != "exports/s1/abc.pdf" {
		t.Fatalf("ExportObjectKey = %q", key)
	}
	if !IsValidExportObjectKey("s1", key) {
		t.Fatalf("expected %q to be valid", key)
	}
}

func TestIsValidExportObjectKeyRejects(t *testing.T) {
	cases := []struct {
		session, key string
	}{
		{"s1", ""},
		{"", "exports//abc.pdf"},
		{"s1", "exports/s2/abc.pdf"},
		{"s1", "exports/s1/../s2/abc.pdf"},
		{"s1", "exports/s1//abc.pdf"},
		{"s1", "exports/s1/abc.png"},
		{"s1", "exports/s1/" + strings.Repeat("a", 200) + ".pdf"},
		{"s1", "exports/s1/\xff.pdf"},
	}
	for _, tc := range cases {
		if IsValidExportObjectKey(tc.session, tc.key) {
			t.Fatalf("expected %q (session %q) to be rejected", tc.key, tc.session)
		}
	}
}

func TestContentDisposition(t *testing.T) {
	if got := ContentDisposition("CV.pdf"); got != "attachment; filename=CV.pdf" {
		t.Fatalf("ContentDisposition = %q", got)
	}
	if got := ContentDisposition("Ana Horvat.pdf"); got != `attachment; filename="Ana Horvat.pdf"` {
		t.Fatalf("ContentDisposition = %q", got)
	}
	if got := ContentDisposition("Željka.pdf"); !strings.HasPrefix(got, "attachment; filename*=utf-8''") {
		t.Fatalf("ContentDisposition = %q", got)
	}
}

func TestIsNoSuchKey(t *testing.T) {
	if !IsNoSuchKey(minio.ErrorResponse{Code: "NoSuchKey"}) {
		t.Fatal("expected NoSuchKey to match")
	}
	if IsNoSuchKey(errors.New("connection refused")) {
		t.Fatal("unexpected match")
	}
	if IsNoSuchKey(nil) {
		t.Fatal("nil must not match")
	}
}
