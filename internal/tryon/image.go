// Package tryon generates hairstyle preview images: a client selfie plus a
// hairstyle reference photo go to Gemini, an edited selfie comes back.
package tryon

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

// Image is a decoded inline image.
type Image struct {
	MIMEType string
	Data     []byte
}

var dataURLPattern = regexp.MustCompile(`^data:(image/[\w+.-]+);base64,(.+)$`)

// ParseImage decodes a browser-supplied image string. Data URLs carry their
// own MIME type; bare base64 is assumed to be JPEG.
func ParseImage(value string) (Image, error) {
	if value == "" {
		return Image{}, fmt.Errorf("tryon: empty image")
	}

	mimeType := "image/jpeg"
	payload := value
	if m := dataURLPattern.FindStringSubmatch(value); m != nil {
		mimeType = m[1]
		payload = m[2]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("tryon: decode image: %w", err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("tryon: empty image")
	}
	return Image{MIMEType: mimeType, Data: data}, nil
}
