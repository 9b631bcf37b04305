// Package gitmeta reads per-file commit metadata used for the "last updated"
// line of the article footer.
package gitmeta

import (
	stderrors "errors"
	"io"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// LastUpdate is the most recent commit touching a file.
type LastUpdate struct {
	Author string    `json:"author"`
	Time   time.Time `json:"time"`
	Commit string    `json:"commit"`
}

// Repo wraps an opened repository and caches lookups by path.
type Repo struct {
	repo  *git.Repository
	root  string
	cache map[string]*LastUpdate
}

// Open finds the repository containing path, walking up parent directories.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.GitError("no git repository found").
			WithCause(err).WithContext("path", path).Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.GitError("repository has no worktree").
			WithCause(err).WithContext("path", path).Build()
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		root = wt.Filesystem.Root()
	}
	return &Repo{repo: repo, root: root, cache: make(map[string]*LastUpdate)}, nil
}

// LastUpdate returns the last commit that touched file, or nil when the file
// is untracked or the repository has no commits yet.
func (r *Repo) LastUpdate(file string) (*LastUpdate, error) {
	rel, err := r.relative(file)
	if err != nil {
		return nil, err
	}
	if lu, ok := r.cache[rel]; ok {
		return lu, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		// An empty repository has no HEAD to walk from.
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			r.cache[rel] = nil
			return nil, nil
		}
		return nil, errors.WrapError(err, errors.CategoryGit, "git log failed").WithContext("path", rel).Build()
	}
	defer iter.Close()

	commit, err := iter.Next()
	if stderrors.Is(err, io.EOF) {
		r.cache[rel] = nil
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "git log failed").WithContext("path", rel).Build()
	}

	lu := &LastUpdate{
		Author: commit.Author.Name,
		Time:   commit.Author.When.UTC(),
		Commit: commit.Hash.String(),
	}
	r.cache[rel] = lu
	return lu, nil
}

func (r *Repo) relative(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryGit, "file outside repository").WithContext("path", file).Build()
	}
	return filepath.ToSlash(rel), nil
}
