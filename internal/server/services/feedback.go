package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/server/authz"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// FeedbackService implements submission, listing, editing and
// acknowledgment of feedback.
type FeedbackService struct {
	feedback feedback.Repository
	newID    func() string
	now      func() time.Time
}

func NewFeedbackService(m repomanager.RepositoryManager) *FeedbackService {
	return &FeedbackService{
		feedback: m.Feedback(),
		newID:    uuid.NewString,
		now:      clock,
	}
}

// Create records feedback from a manager for an employee of their team.
// An unknown employee, one outside the team and a malformed employee id are
// all reported as common.ErrorNotFound.
func (s *FeedbackService) Create(ctx context.Context, caller authz.Caller, employeeID, strengths, improvements string, sentiment models.Sentiment) (string, error) {
	if err := authz.RequireRole(caller, models.RoleManager); err != nil {
		return "", fmt.Errorf("%w: only managers can give feedback", common.ErrorForbidden)
	}
	if _, err := models.ParseSentiment(string(sentiment)); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}
	employeeID, ok := canonicalID(employeeID)
	if !ok {
		return "", errEmployeeNotInTeam
	}

	now := s.now()
	fb := &models.Feedback{
		ID:           s.newID(),
		EmployeeID:   employeeID,
		ManagerID:    caller.ID,
		Strengths:    strengths,
		Improvements: improvements,
		Sentiment:    sentiment,
		Acknowledged: false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.feedback.CreateForTeam(ctx, fb)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", errEmployeeNotInTeam
		}
		return "", fmt.Errorf("error creating feedback: %w", err)
	}
	return created.ID, nil
}

var (
	errEmployeeNotInTeam = fmt.Errorf("%w: employee not found in your team", common.ErrorNotFound)
	errNotYours          = fmt.Errorf("%w: feedback not found or not yours", common.ErrorForbidden)
)

// List returns the caller's feedback: received for employees, authored for
// managers. Newest first, capped at FeedbackListLimit.
func (s *FeedbackService) List(ctx context.Context, caller authz.Caller) ([]*models.Feedback, error) {
	return s.listForCaller(ctx, caller, FeedbackListLimit)
}

func (s *FeedbackService) listForCaller(ctx context.Context, caller authz.Caller, limit int) ([]*models.Feedback, error) {
	rel, err := authz.RelationFor(caller.Role)
	if err != nil {
		return nil, err
	}

	var list []*models.Feedback
	switch rel {
	case authz.ManagerOf:
		list, err = s.feedback.ListByManager(ctx, caller.ID, limit)
	case authz.EmployeeOf:
		list, err = s.feedback.ListByEmployee(ctx, caller.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}
	return list, nil
}

// Get returns one feedback record if the caller holds the relation its role
// implies over it.
func (s *FeedbackService) Get(ctx context.Context, caller authz.Caller, id string) (*models.Feedback, error) {
	cid, ok := canonicalID(id)
	if !ok {
		return nil, invalidID("feedback", id)
	}
	id = cid

	fb, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: feedback not found", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error getting feedback: %w", err)
	}

	if err := authz.AuthorizeByRole(caller, fb); err != nil {
		return nil, fmt.Errorf("%w: access denied", common.ErrorForbidden)
	}
	return fb, nil
}

// Update changes the content fields present in patch. Only the authoring
// manager may do so; a missing record is indistinguishable from one owned
// by someone else.
func (s *FeedbackService) Update(ctx context.Context, caller authz.Caller, id string, patch models.FeedbackPatch) error {
	if err := authz.RequireRole(caller, models.RoleManager); err != nil {
		return fmt.Errorf("%w: only managers can edit feedback", common.ErrorForbidden)
	}
	cid, ok := canonicalID(id)
	if !ok {
		return invalidID("feedback", id)
	}
	id = cid
	if patch.Sentiment != nil {
		if _, err := models.ParseSentiment(string(*patch.Sentiment)); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
		}
	}

	if _, err := s.owned(ctx, caller, id, authz.ManagerOf); err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}

	if err := s.feedback.Update(ctx, id, patch, s.now()); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errNotYours
		}
		return fmt.Errorf("error updating feedback: %w", err)
	}
	return nil
}

// Acknowledge marks feedback as read by its employee. Repeating it is a
// no-op success.
func (s *FeedbackService) Acknowledge(ctx context.Context, caller authz.Caller, id string) error {
	if err := authz.RequireRole(caller, models.RoleEmployee); err != nil {
		return fmt.Errorf("%w: only employees can acknowledge feedback", common.ErrorForbidden)
	}
	cid, ok := canonicalID(id)
	if !ok {
		return invalidID("feedback", id)
	}
	id = cid

	fb, err := s.owned(ctx, caller, id, authz.EmployeeOf)
	if err != nil {
		return err
	}
	if fb.Acknowledged {
		return nil
	}

	if err := s.feedback.Acknowledge(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errNotYours
		}
		return fmt.Errorf("error acknowledging feedback: %w", err)
	}
	return nil
}

// owned loads the record and checks rel, folding a missing record into
// common.ErrorForbidden.
func (s *FeedbackService) owned(ctx context.Context, caller authz.Caller, id string, rel authz.Relation) (*models.Feedback, error) {
	fb, err := s.feedback.GetByID(ctx, id)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil, errNotYours
	case err != nil:
		return nil, fmt.Errorf("error getting feedback: %w", err)
	}

	if err := authz.Authorize(caller, fb, rel); err != nil {
		return nil, errNotYours
	}
	return fb, nil
}
