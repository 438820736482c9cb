package repo

import (
	"fmt"

	"emperror.dev/errors"
)

// RepositorySummary is a repository as listed by GitHub for a user
type RepositorySummary struct {
	Name       string
	IsFork     bool
	OwnerLogin string
}

// BranchSummary is a branch as listed by GitHub for a repository
type BranchSummary struct {
	Name      string
	CommitSHA string
}

// BranchDetail is the outbound projection of a BranchSummary
type BranchDetail struct {
	Name      string
	CommitSHA string
}

// RepositoryDetail is a non-forked repository together with all of its branches
type RepositoryDetail struct {
	RepositoryName string
	OwnerLogin     string
	Branches       []BranchDetail
}

// NewBranchDetails projects branch summaries into branch details, one per
// summary, in the same order.
func NewBranchDetails(summaries []BranchSummary) []BranchDetail {
	details := make([]BranchDetail, len(summaries))
	for i, b := range summaries {
		details[i] = BranchDetail{
			Name:      b.Name,
			CommitSHA: b.CommitSHA,
		}
	}
	return details
}

// NewRepositoryDetail builds a RepositoryDetail for a non-forked repository
func NewRepositoryDetail(summary RepositorySummary, branches []BranchDetail) (RepositoryDetail, error) {
	if summary.IsFork {
		return RepositoryDetail{}, errors.Errorf("repository %s/%s is a fork", summary.OwnerLogin, summary.Name)
	}
	if branches == nil {
		branches = []BranchDetail{}
	}
	return RepositoryDetail{
		RepositoryName: summary.Name,
		OwnerLogin:     summary.OwnerLogin,
		Branches:       branches,
	}, nil
}

// NonForked returns the repositories that are not forks, preserving order
func NonForked(repositories []RepositorySummary) []RepositorySummary {
	result := make([]RepositorySummary, 0, len(repositories))
	for _, r := range repositories {
		if !r.IsFork {
			result = append(result, r)
		}
	}
	return result
}

// String returns string representation (for debugging)
func (r RepositoryDetail) String() string {
	return fmt.Sprintf("RepositoryDetail{name: %s, owner: %s, branches: %d}",
		r.RepositoryName, r.OwnerLogin, len(r.Branches))
}
