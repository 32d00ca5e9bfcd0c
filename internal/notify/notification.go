// Package notify delivers fire-and-forget user notifications to the editing session.
package notify

import (
	"errors"

	"cvBuilder/internal/errcode"
	"cvBuilder/internal/photo"
)

// Kind 标识通知的触发条件。
type Kind string

const (
	KindInvalidImage     Kind = "invalid_image"
	KindUploadSuperseded Kind = "upload_superseded"
	KindRateLimited      Kind = "rate_limited"
	KindSaved            Kind = "cv_saved"
	KindLoaded           Kind = "cv_loaded"
	KindNothingToLoad    Kind = "nothing_to_load"
	KindExportQueued     Kind = "export_queued"
	KindPDFDownloaded    Kind = "pdf_downloaded"
	KindExportFailed     Kind = "export_failed"
)

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification 是推送给前端的消息体，字段名与前端 toast 保持一致。
type Notification struct {
	Kind          Kind   `json:"kind"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Variant       string `json:"variant"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id,omitempty"`
	ExportID      uint   `json:"export_id,omitempty"`
}

// InvalidImageDescription enumerates the accepted formats and limits.
const InvalidImageDescription = "Please upload an image (JPG, JPEG, PNG, JFIF, PJPEG, PJP, GIF, BMP, WEBP) under 2MB and at least 300x300px."

func InvalidImage() Notification {
	return Notification{
		Kind:        KindInvalidImage,
		Title:       "Invalid Image",
		Description: InvalidImageDescription,
		Variant:     VariantDestructive,
		Code:        errcode.InvalidImage,
	}
}

func UploadSuperseded() Notification {
	return Notification{
		Kind:        KindUploadSuperseded,
		Title:       "Upload Replaced",
		Description: "A newer image was uploaded while this one was processing.",
		Variant:     VariantDefault,
		Code:        errcode.Superseded,
	}
}

func RateLimited() Notification {
	return Notification{
		Kind:        KindRateLimited,
		Title:       "Too Many Uploads",
		Description: "Please wait a while before uploading another image.",
		Variant:     VariantDestructive,
		Code:        errcode.RateLimited,
	}
}

func Saved() Notification {
	return Notification{
		Kind:        KindSaved,
		Title:       "CV Saved",
		Description: "Your CV has been saved to local storage.",
		Variant:     VariantDefault,
		Code:        errcode.OK,
	}
}

func Loaded() Notification {
	return Notification{
		Kind:        KindLoaded,
		Title:       "CV Loaded",
		Description: "Your CV has been loaded from local storage.",
		Variant:     VariantDefault,
		Code:        errcode.OK,
	}
}

func NothingToLoad() Notification {
	return Notification{
		Kind:        KindNothingToLoad,
		Title:       "No Saved CV",
		Description: "No saved CV found in local storage.",
		Variant:     VariantDefault,
		Code:        errcode.NothingToLoad,
	}
}

func ExportQueued(exportID uint) Notification {
	return Notification{
		Kind:     KindExportQueued,
		Title:    "Export Started",
		Variant:  VariantDefault,
		Code:     errcode.OK,
		ExportID: exportID,
	}
}

func PDFDownloaded() Notification {
	return Notification{
		Kind:        KindPDFDownloaded,
		Title:       "PDF Downloaded",
		Description: "Your CV has been downloaded as a PDF.",
		Variant:     VariantDefault,
		Code:        errcode.OK,
	}
}

func ExportFailed() Notification {
	return Notification{
		Kind:        KindExportFailed,
		Title:       "Export Failed",
		Description: "Failed to export CV as PDF. Please try again.",
		Variant:     VariantDestructive,
		Code:        errcode.SystemError,
	}
}

// ForRejection maps a photo rejection to its notification.
func ForRejection(err error) Notification {
	n := InvalidImage()
	var rej *photo.RejectionError
	if errors.As(err, &rej) && rej.Reason == photo.ReasonMalicious {
		n.Description = "The uploaded file was flagged by the virus scanner."
	}
	return n
}
