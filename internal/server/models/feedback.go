package models

import (
	"fmt"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func ParseSentiment(s string) (Sentiment, error) {
	switch v := Sentiment(s); v {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return v, nil
	default:
		return "", fmt.Errorf("unknown sentiment %q", s)
	}
}

type Feedback struct {
	ID           string
	EmployeeID   string
	ManagerID    string
	Strengths    string
	Improvements string
	Sentiment    Sentiment
	Acknowledged bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (f *Feedback) ManagerRef() string  { return f.ManagerID }
func (f *Feedback) EmployeeRef() string { return f.EmployeeID }

// FeedbackPatch carries the content fields a manager may change. Nil fields
// are left untouched.
type FeedbackPatch struct {
	Strengths    *string
	Improvements *string
	Sentiment    *Sentiment
}

// Empty reports whether the patch changes nothing.
func (p FeedbackPatch) Empty() bool {
	return p.Strengths == nil && p.Improvements == nil && p.Sentiment == nil
}

// Apply copies the present fields onto f.
func (p FeedbackPatch) Apply(f *Feedback) {
	if p.Strengths != nil {
		f.Strengths = *p.Strengths
	}
	if p.Improvements != nil {
		f.Improvements = *p.Improvements
	}
	if p.Sentiment != nil {
		f.Sentiment = *p.Sentiment
	}
}
