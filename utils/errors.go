package utils

import (
	"errors"
	"fmt"
)

// ValidationError indicates bad input that never reached a store
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// StorageError indicates a failed metadata store request
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps a metadata store failure
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// ObjectStoreError indicates a failed object store operation
// (upload, delete or signed URL generation)
type ObjectStoreError struct {
	Op  string
	Key string
	Err error
}

func (e *ObjectStoreError) Error() string {
	return fmt.Sprintf("object store error during %s for %q: %v", e.Op, e.Key, e.Err)
}

func (e *ObjectStoreError) Unwrap() error {
	return e.Err
}

// NewObjectStoreError wraps an object store failure
func NewObjectStoreError(op, key string, err error) error {
	return &ObjectStoreError{Op: op, Key: key, Err: err}
}

// RateLimitError indicates the caller exceeded its download quota
type RateLimitError struct {
	Key string
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

// NewRateLimitError creates a rate limit error for the given requester key
func NewRateLimitError(key string) error {
	return &RateLimitError{Key: key}
}

// PermissionError indicates the caller lacks rights for the operation
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// NewPermissionError creates a permission error with the given message
func NewPermissionError(message string) error {
	return &PermissionError{Message: message}
}

// DownloadError indicates a deliverable could not be resolved to a URL.
// It is the live signal that a file deliverable may be broken, distinct
// from the batch integrity scan.
type DownloadError struct {
	DeliverableID string
	Err           error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed for deliverable %s: %v", e.DeliverableID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// NewDownloadError wraps a failed deliverable download
func NewDownloadError(deliverableID string, err error) error {
	return &DownloadError{DeliverableID: deliverableID, Err: err}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsRateLimitError reports whether err is a RateLimitError
func IsRateLimitError(err error) bool {
	var target *RateLimitError
	return errors.As(err, &target)
}

// IsPermissionError reports whether err is a PermissionError
func IsPermissionError(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

// IsDownloadError reports whether err is a DownloadError
func IsDownloadError(err error) bool {
	var target *DownloadError
	return errors.As(err, &target)
}
