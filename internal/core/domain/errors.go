package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrDataSource indicates a required source table is missing or
	// unreadable. Fatal at startup: no records can be produced.
	ErrDataSource = errors.New("data source unavailable")

	// ErrIndexBuild indicates index construction failed: the document set
	// was empty or embedding failed for the whole set. Fatal at startup.
	ErrIndexBuild = errors.New("index build failed")

	// ErrIndexEmpty indicates a build was attempted with no documents.
	ErrIndexEmpty = errors.New("no documents to index")

	// ErrRetrievalUnavailable indicates the query embedding or similarity
	// lookup failed. Per-query: the assistant degrades to an ungrounded
	// answer instead of failing the request.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// ErrToolUnavailable indicates the live league service could not be
	// reached. Per-query: the assistant proceeds without live data and
	// notes the limitation in the answer.
	ErrToolUnavailable = errors.New("league service unavailable")

	// ErrGenerationFailed indicates the language model backend failed after
	// retries. Fatal for that query only; history is left untouched.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrSnapshotIncompatible indicates a persisted index snapshot was built
	// with a different embedding model or dimensionality and must be rebuilt.
	ErrSnapshotIncompatible = errors.New("snapshot incompatible with embedding model")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
