package utils

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// allowedExtensions is the allow-list for uploaded files. Anything else is
// rejected before a single byte reaches the object store.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
	".md":   true,
	".csv":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
	".webp": true,
	".mp4":  true,
	".mov":  true,
	".mp3":  true,
	".wav":  true,
	".zip":  true,
	".rar":  true,
	".7z":   true,
	".tar":  true,
	".gz":   true,
	".ai":   true,
	".psd":  true,
	".fig":  true,
	".sketch": true,
}

// blockedMIMEPrefixes rejects payloads whose sniffed content type is
// executable regardless of the claimed extension
var blockedMIMEPrefixes = []string{
	"application/x-executable",
	"application/x-elf",
	"application/x-mach-binary",
	"application/x-msdownload",
	"application/vnd.microsoft.portable-executable",
}

// ValidateTitle checks that a title is non-empty after trimming
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title required")
	}
	return nil
}

// ValidateURL checks that a value is a syntactically valid http(s) URL
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return NewValidationError("invalid url")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return NewValidationError("invalid url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return NewValidationError("invalid url")
	}
	if parsed.Host == "" {
		return NewValidationError("invalid url")
	}
	return nil
}

// ValidateFilePayload checks an uploaded file against the size limit and the
// extension/MIME allow-list
func ValidateFilePayload(filename string, payload []byte, maxSizeBytes int64) error {
	if len(payload) == 0 {
		return NewValidationError("file required")
	}
	if int64(len(payload)) > maxSizeBytes {
		return NewValidationError("file rejected")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return NewValidationError("file rejected")
	}

	detected := mimetype.Detect(payload)
	for _, prefix := range blockedMIMEPrefixes {
		if strings.HasPrefix(detected.String(), prefix) {
			return NewValidationError("file rejected")
		}
	}

	return nil
}

// DetectContentType returns the sniffed MIME type for a payload
func DetectContentType(payload []byte) string {
	return mimetype.Detect(payload).String()
}
