package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocNavError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(cause error) *DocNavError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "invalid configuration")
}

func ValidationFailed(field, reason string) *DocNavError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Sidebar specification errors

func SpecLoadFailed(path string, cause error) *DocNavError {
	return Wrap(cause, CategorySpec, SeverityFatal, "failed to load sidebar specification").
		WithContext("path", path)
}

func SpecInvalid(path string, violations int, cause error) *DocNavError {
	return Wrap(cause, CategorySpec, SeverityFatal, "sidebar specification is invalid").
		WithContext("path", path).
		WithContext("violations", violations)
}

// Output errors

func ExportFailed(target, path string, cause error) *DocNavError {
	return Wrap(cause, CategoryExport, SeverityFatal, "export failed").
		WithContext("target", target).
		WithContext("path", path)
}

func FileSystemError(operation string, cause error) *DocNavError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *DocNavError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
