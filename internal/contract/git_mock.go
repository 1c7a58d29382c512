package contract

import (
	"context"

	"github.com/huangsam/worklog/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient interface.
//
// Program it with the commits a branch should yield:
//
//	m.On("WalkBranch", mock.Anything, "/repo", "main").Return([]schema.CommitRef{...}, nil)
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// WalkBranch implements the GitClient interface by replaying the programmed commits.
func (m *MockGitClient) WalkBranch(ctx context.Context, repoPath string, branch string, fn CommitFunc) error {
	ret := m.Called(ctx, repoPath, branch)
	commits, _ := ret.Get(0).([]schema.CommitRef)
	for _, c := range commits {
		if err := fn(c); err != nil {
			return err
		}
	}
	return ret.Error(1)
}
