package service

import (
	"errors"

	"github.com/scribehire/scribehire/internal/model"
	"github.com/scribehire/scribehire/internal/repository"
	"gorm.io/gorm"
)

// resolveAttemptForOrg loads an attempt with its full ownership chain and
// verifies Attempt -> TestLink -> Test -> organization_id against the caller.
// Every admin read or write touching an attempt or report goes through this
// single check instead of re-implementing the traversal per operation.
func resolveAttemptForOrg(repo repository.AttemptRepository, attemptID uint, orgID string) (*model.Attempt, error) {
	attempt, err := repo.FindByIDWithDetails(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if attempt.TestLink.Test.OrganizationID != orgID {
		return nil, ErrNotFound
	}
	return attempt, nil
}
