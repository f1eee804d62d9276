package toolchain

import "errors"

var (
	ErrNetwork            = errors.New("network request failed")
	ErrParse              = errors.New("unexpected version index format")
	ErrVersionNotFound    = errors.New("version not found")
	ErrEntryNotFound      = errors.New("version entry not found")
	ErrPlatformNotFound   = errors.New("no download for platform")
	ErrNoValidVersion     = errors.New("no valid semantic version in index")
	ErrMalformedURL       = errors.New("malformed download url")
	ErrIO                 = errors.New("filesystem operation failed")
	ErrUnsupportedArchive = errors.New("unsupported archive format")
	ErrBinaryMissing      = errors.New("toolchain binary not found after extraction")
	ErrLocked             = errors.New("another install is in progress")
)
