package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkgerror"
)

func TestGreet(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&fakeProvider{})

	assert.Equal(t, "Hello there!", uc.Greet(context.Background(), ""))
	assert.Equal(t, "Hello there!", uc.Greet(context.Background(), "   "))
	assert.Equal(t, "Hello, Ada!", uc.Greet(context.Background(), "Ada"))
}

func TestFarewell(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&fakeProvider{})
	assert.Equal(t, "Goodbye! Have a great day.", uc.Farewell(context.Background()))
}

func TestPreferenceLifecycle(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&fakeProvider{})
	ctx := context.Background()

	first, err := uc.RecordPreference(ctx, RecordPreferenceInput{
		Name:  "Departure City",
		Value: "Warsaw",
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionID)
	assert.Equal(t, "Successfully recorded Departure City as Warsaw.", first.Message)

	second, err := uc.RecordPreference(ctx, RecordPreferenceInput{
		SessionID: first.SessionID,
		Name:      "Start Date",
		Value:     "2025-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	sess, err := uc.Preferences(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Departure City": "Warsaw",
		"Start Date":     "2025-07-01",
	}, sess.Preferences)

	require.NoError(t, uc.EndSession(ctx, first.SessionID))

	_, err = uc.Preferences(ctx, first.SessionID)
	require.Error(t, err)
	assert.Equal(t, pkgerror.CodeNotFound, pkgerror.CodeOf(err))
}

func TestRecordPreference_Validation(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&fakeProvider{})

	_, err := uc.RecordPreference(context.Background(), RecordPreferenceInput{Name: "", Value: "x"})
	require.Error(t, err)
	assert.Equal(t, pkgerror.CodeInvalidInput, pkgerror.CodeOf(err))

	_, err = uc.RecordPreference(context.Background(), RecordPreferenceInput{Name: "x", Value: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerror.CodeInvalidInput, pkgerror.CodeOf(err))
}

func TestEndSession_Unknown(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&fakeProvider{})

	err := uc.EndSession(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, pkgerror.CodeNotFound, pkgerror.CodeOf(err))
}
