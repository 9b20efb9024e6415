// Package errors provides the structured error type shared by the onion
// packages.
//
// AppError carries a machine-readable code, a human-readable message, a
// retryable flag, and optional details. Two AppErrors match under errors.Is
// when their codes match, so package-level sentinels such as
// pipeline.ErrMissingInput keep working after details are attached.
package errors
