package contract

import "fmt"

// RepositoryOpenError reports a path that could not be opened as a Git repository.
type RepositoryOpenError struct {
	Path string
	Err  error
}

func (e *RepositoryOpenError) Error() string {
	return fmt.Sprintf("cannot open repository %q: %v", e.Path, e.Err)
}

func (e *RepositoryOpenError) Unwrap() error { return e.Err }

// BranchNotFoundError reports a branch that exists neither locally nor on any remote.
type BranchNotFoundError struct {
	Path   string
	Branch string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %q not found locally or on any remote in %q", e.Branch, e.Path)
}
