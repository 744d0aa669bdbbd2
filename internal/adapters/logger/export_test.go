package logger

// FormatError exposes formatError for tests.
var FormatError = formatError
