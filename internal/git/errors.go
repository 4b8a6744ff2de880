package git

import "errors"

// Git backend errors.
var (
	// ErrNotGitRepo indicates the path is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrBackendUnavailable indicates the git executable could not be run
	// at all. Fatal for the current command only.
	ErrBackendUnavailable = errors.New("git backend unavailable")

	// ErrWorktreeNotFound indicates no registered worktree matches.
	ErrWorktreeNotFound = errors.New("worktree not found")

	// ErrBranchNotFound indicates the branch does not exist.
	ErrBranchNotFound = errors.New("branch not found")
)

// Error wraps a git command failure with enough context for direct
// operator action.
type Error struct {
	Op     string // operation that failed (e.g. "add worktree")
	Output string // combined stderr/stdout from git
	Err    error  // underlying error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
