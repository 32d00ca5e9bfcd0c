package notify

import (
	"errors"
	"testing"

	"cvBuilder/internal/errcode"
	"cvBuilder/internal/photo"
)

func TestFixedWording(t *testing.T) {
	cases := []struct {
		n           Notification
		title, desc string
		variant     string
	}{
		{InvalidImage(), "Invalid Image", "Please upload an image (JPG, JPEG, PNG, JFIF, PJPEG, PJP, GIF, BMP, WEBP) under 2MB and at least 300x300px.", VariantDestructive},
		{NothingToLoad(), "No Saved CV", "No saved CV found in local storage.", VariantDefault},
		{PDFDownloaded(), "PDF Downloaded", "Your CV has been downloaded as a PDF.", VariantDefault},
		{ExportFailed(), "Export Failed", "Failed to export CV as PDF. Please try again.", VariantDestructive},
	}
	for _, tc := range cases {
		if tc.n.Title != tc.title || tc.n.Description != tc.desc || tc.n.Variant != tc.variant {
			t.Fatalf("unexpected notification %+v", tc.n)
		}
	}
	if Saved().Title != "CV Saved" || Loaded().Title != "CV Loaded" {
		t.Fatal("unexpected save/load titles")
	}
}

func TestForRejection(t *testing.T) {
	n := ForRejection(&photo.RejectionError{Reason: photo.ReasonTooSmall})
	if n.Description != InvalidImageDescription || n.Code != errcode.InvalidImage {
		t.Fatalf("unexpected %+v", n)
	}
	n = ForRejection(&photo.RejectionError{Reason: photo.ReasonMalicious})
	if n.Description == InvalidImageDescription {
		t.Fatal("malicious upload should get its own description")
	}
	n = ForRejection(errors.New("other"))
	if n.Kind != KindInvalidImage {
		t.Fatalf("unexpected kind %s", n.Kind)
	}
}

func TestChannel(t *testing.T) {
	if got := Channel("abc"); got != "session_notify:abc" {
		t.Fatalf("Channel = %q", got)
	}
}
