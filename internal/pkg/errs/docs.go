// Package errs provides standardized error types for the delivery tracker.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For numeric or textual values outside their bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - AlreadyExistsError: For unique attribute conflicts (e.g. duplicate email)
//   - RetryableStoreFailureError: For rolled-back local transactions
//
// Access control failures are reported through the ErrUnauthenticated and
// ErrForbidden sentinels.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
