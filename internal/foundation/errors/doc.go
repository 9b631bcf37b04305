// Package errors provides the classified error primitives used across docsite.
//
// A ClassifiedError carries a category (navigation, content, config, ...), a
// severity and a structured context map, and records whether the site author
// is expected to fix it. Errors are built with a fluent builder:
//
//	err := errors.NavigationError("doc reference does not resolve").
//		WithContext("doc_id", id).
//		WithContext("sidebar", name).
//		Build()
//
// The CLI adapter turns a classified error into a user-facing message and a
// process exit code.
package errors
