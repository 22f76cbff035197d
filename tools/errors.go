package tools

import "errors"

var (
	// ErrDuplicateTool is returned when registering a tool whose name is taken.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrUnknownTool is returned when looking up a tool that is not registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrFetcherRequired is returned when a fetch tool is created without a fetcher.
	ErrFetcherRequired = errors.New("fetcher required")
)
