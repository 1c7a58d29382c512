package contract

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/huangsam/worklog/schema"
)

const remoteRefPrefix = "refs/remotes/"

// LocalGitClient implements the GitClient interface by reading repositories on
// disk with go-git. No git binary is required.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// WalkBranch implements the GitClient interface.
func (c *LocalGitClient) WalkBranch(ctx context.Context, repoPath string, branch string, fn CommitFunc) error {
	// Linked worktrees keep their refs in the common dir of the main repository.
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		return &RepositoryOpenError{Path: repoPath, Err: err}
	}

	ref, err := resolveBranch(repo, branch)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return &BranchNotFoundError{Path: repoPath, Branch: branch}
	} else if err != nil {
		return fmt.Errorf("cannot resolve branch %q in %q: %w", branch, repoPath, err)
	}

	iter, err := repo.Log(&git.LogOptions{
		From:  ref.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return fmt.Errorf("cannot read history of %q in %q: %w", branch, repoPath, err)
	}
	defer iter.Close()

	return iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(toCommitRef(commit))
	})
}

// resolveBranch looks the branch up as a local branch first and then as a remote one.
// Remote lookups accept "remote/branch" names as well as bare names, preferring origin
// and then the first remote in sorted order.
func resolveBranch(repo *git.Repository, branch string) (*plumbing.Reference, error) {
	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(branch),
		plumbing.ReferenceName(remoteRefPrefix + branch),
		plumbing.NewRemoteReferenceName("origin", branch),
	}
	for _, name := range candidates {
		ref, err := repo.Reference(name, true)
		if err == nil {
			return ref, nil
		}
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, err
		}
	}

	refs, err := repo.References()
	if err != nil {
		return nil, err
	}
	defer refs.Close()

	var matches []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if remoteBranchName(ref.Name()) == branch {
			matches = append(matches, ref.Name().String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, plumbing.ErrReferenceNotFound
	}

	sort.Strings(matches)
	return repo.Reference(plumbing.ReferenceName(matches[0]), true)
}

// remoteBranchName returns "branch" for "refs/remotes/<remote>/branch" and "" otherwise.
func remoteBranchName(name plumbing.ReferenceName) string {
	rest, ok := strings.CutPrefix(name.String(), remoteRefPrefix)
	if !ok {
		return ""
	}
	_, branch, ok := strings.Cut(rest, "/")
	if !ok {
		return ""
	}
	return branch
}

func toCommitRef(c *object.Commit) schema.CommitRef {
	return schema.CommitRef{
		Hash:        c.Hash.String(),
		AuthorName:  c.Author.Name,
		Time:        c.Committer.When.Unix(),
		Message:     c.Message,
		ParentCount: c.NumParents(),
	}
}
