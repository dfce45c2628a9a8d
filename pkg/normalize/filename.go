// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package normalize

import (
	"regexp"
	"strings"
)

// AcceptedUploadTypes maps the content types accepted for processor document uploads
// to the file extension they are stored under.
var AcceptedUploadTypes = map[string]string{
	"image/jpeg":      "jpg",
	"application/pdf": "pdf",
	"image/png":       "png",
	"image/tiff":      "tiff",
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-.]`)

func acceptedExtension(ext string) bool {
	for _, v := range AcceptedUploadTypes {
		if v == ext {
			return true
		}
	}
	return false
}

// SanitizeFilename replaces unsafe characters with underscores and makes sure the
// name ends in an accepted extension, falling back to the one implied by contentType.
//
//   SanitizeFilename("weird name*.xyz", "application/pdf") // "weird_name_.pdf"
func SanitizeFilename(name, contentType string) string {
	if name == "" {
		return ""
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")

	var ext string
	if parts := strings.Split(name, "."); len(parts) > 1 {
		ext = strings.ToLower(parts[len(parts)-1])
		name = strings.Join(parts[:len(parts)-1], "_")
	}
	if !acceptedExtension(ext) {
		ext = AcceptedUploadTypes[contentType]
	}
	return name + "." + ext
}
