package dataset

import "errors"

var (
	// ErrStoreUnavailable means the storage engine could not be opened or initialized
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrImportMalformed means the import bytes do not decode to an export document
	ErrImportMalformed = errors.New("malformed import document")

	// ErrTransactionAborted means an import failed midway and was rolled back
	ErrTransactionAborted = errors.New("import transaction aborted")
)
