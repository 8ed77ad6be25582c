// Package services contains server-side business logic: account registration
// and login, feedback submission and review, and the per-role dashboard.
// Authorization decisions are delegated to authz; storage goes through the
// repositories vended by repomanager.
package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/google/uuid"
)

// Fixed list caps. Zero means no cap.
const (
	FeedbackListLimit     = 100
	EmployeeTimelineLimit = 50
	managerDashboardLimit = 0
)

// clock returns the current time at millisecond precision, the finest that
// every storage backend round-trips.
func clock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// canonicalID parses id as a UUID and returns its lowercase hyphenated form.
// Braced, urn:uuid: and uppercase spellings map to the same value, so every
// backend stores and compares one representation.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func invalidID(kind, id string) error {
	return fmt.Errorf("%w: invalid %s id %q", common.ErrorInvalidArgument, kind, id)
}
