package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkgerror"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/session"
)

// Greet is the greeting tool: a fixed friendly message, personalised when a
// name is supplied.
func (u *Usecase) Greet(_ context.Context, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Hello there!"
	}
	return fmt.Sprintf("Hello, %s!", name)
}

// Farewell is the farewell tool.
func (u *Usecase) Farewell(_ context.Context) string {
	return "Goodbye! Have a great day."
}

type RecordPreferenceInput struct {
	SessionID string
	Name      string
	Value     string
}

type RecordPreferenceOutput struct {
	SessionID string
	Message   string
}

// RecordPreference stores one gathered travel preference, creating the
// session on first use.
func (u *Usecase) RecordPreference(_ context.Context, in RecordPreferenceInput) (*RecordPreferenceOutput, error) {
	name := strings.TrimSpace(in.Name)
	value := strings.TrimSpace(in.Value)
	if name == "" || value == "" {
		return nil, pkgerror.NewBusiness("preference name and value are required", pkgerror.CodeInvalidInput)
	}

	sess, err := u.sessions.Record(strings.TrimSpace(in.SessionID), name, value)
	if err != nil {
		return nil, pkgerror.WrapBusiness(err, "could not record preference", pkgerror.CodeInternal)
	}

	return &RecordPreferenceOutput{
		SessionID: sess.ID,
		Message:   fmt.Sprintf("Successfully recorded %s as %s.", name, value),
	}, nil
}

// Preferences returns everything gathered so far for one session.
func (u *Usecase) Preferences(_ context.Context, sessionID string) (*entity.Session, error) {
	sess, err := u.sessions.Get(strings.TrimSpace(sessionID))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, pkgerror.WrapBusiness(err, "session not found", pkgerror.CodeNotFound)
		}
		return nil, pkgerror.WrapBusiness(err, "could not load session", pkgerror.CodeInternal)
	}
	return sess, nil
}

// EndSession discards a conversation's gathered preferences.
func (u *Usecase) EndSession(_ context.Context, sessionID string) error {
	err := u.sessions.End(strings.TrimSpace(sessionID))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return pkgerror.WrapBusiness(err, "session not found", pkgerror.CodeNotFound)
		}
		return pkgerror.WrapBusiness(err, "could not end session", pkgerror.CodeInternal)
	}
	return nil
}
