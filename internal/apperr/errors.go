package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyName    = errors.New("name is required")
	ErrEmptyEmoji   = errors.New("emoji is required")
	ErrEmptyContent = errors.New("content is required")
	ErrEmptyComment = errors.New("closure comment is required")
	ErrNoPrompt     = errors.New("no closure prompt is active")
	ErrNoSession    = errors.New("no session in progress")
	ErrNotArmed     = errors.New("discard has not been armed")
)
