// Package photo turns an uploaded portrait into the fixed-size square image stored on the CV.
//
// The pipeline is validate → decode → crop → normalize. Only validation can reject an upload;
// detection and normalization problems degrade to a center crop or the original image.
package photo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrInvalidImage 是所有上传拒绝原因的根错误。
var ErrInvalidImage = errors.New("invalid image")

// Rejection reasons.
const (
	ReasonUnsupportedType = "unsupported_type"
	ReasonTooLarge        = "too_large"
	ReasonTooSmall        = "too_small"
	ReasonUndecodable     = "undecodable"
	ReasonMalicious       = "malicious"
)

// RejectionError 描述上传被拒绝的具体原因。
type RejectionError struct {
	Reason string
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return "invalid image: " + e.Reason
	}
	return fmt.Sprintf("invalid image: %s (%s)", e.Reason, e.Detail)
}

func (e *RejectionError) Unwrap() error { return ErrInvalidImage }

func reject(reason, format string, args ...any) error {
	return &RejectionError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// UploadedImage is the raw upload as received.
type UploadedImage struct {
	Data     []byte
	MIMEType string
	Size     int64
}

// DataURI encodes the upload unchanged.
func (u UploadedImage) DataURI() string {
	return dataURI(u.MIMEType, u.Data)
}

func (u UploadedImage) size() int64 {
	if n := int64(len(u.Data)); n > u.Size {
		return n
	}
	return u.Size
}

// DecodedImage is a pixel source with its dimensions.
type DecodedImage struct {
	Image  image.Image
	Width  int
	Height int
}

// FaceBox is a detected face in image coordinates.
type FaceBox struct {
	X, Y, Width, Height int
	Quality             float64
}

// CropRegion is a sub-rectangle of the decoded image, always inside its bounds.
type CropRegion struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Face   bool `json:"face"`
}

// Within reports whether the region lies inside a w×h image.
func (r CropRegion) Within(w, h int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Width > 0 && r.Height > 0 && r.X+r.Width <= w && r.Y+r.Height <= h
}

func (r CropRegion) rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// NormalizedImage is the square PNG data URI persisted as the profile image.
type NormalizedImage struct {
	DataURI      string     `json:"dataUri"`
	Side         int        `json:"side"`
	FaceDetected bool       `json:"faceDetected"`
	Region       CropRegion `json:"region"`
	Fallback     bool       `json:"fallback"`
}

func dataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI splits a base64 data URI into its media type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data uri without payload")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data uri is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data uri: %w", err)
	}
	return mimeType, data, nil
}
