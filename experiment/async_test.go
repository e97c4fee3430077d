package experiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAsyncReturnsName(t *testing.T) {
	name := "Any ľšýžľš is OK"

	ex, err := NewAsync(name)

	require.NoError(t, err)
	assert.Equal(t, name, ex.Name())
}

func TestNewAsyncRejectsEmptyName(t *testing.T) {
	ex, err := NewAsync("")

	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Nil(t, ex)
}

func TestAsyncStageNameAccessors(t *testing.T) {
	ex, err := NewAsync("test")
	require.NoError(t, err)

	cb := AsyncControl(ex, func(context.Context) (int, error) { return 1, nil })
	assert.Equal(t, "test", cb.Name())

	trial := AsyncCandidateEq(cb, func(context.Context) (int, error) { return 1, nil })
	assert.Equal(t, "test", trial.Name())
}

func TestAsyncRunReturnsControlValue(t *testing.T) {
	ex, err := NewAsync("test")
	require.NoError(t, err)

	pub := &capturePublisher[int, int]{}
	got, err := AsyncCandidateEq(
		AsyncControl(ex, func(context.Context) (int, error) { return 1, nil }),
		func(context.Context) (int, error) { return 1, nil },
	).Publish(pub).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, got)
	require.Equal(t, 1, pub.calls)
	assert.True(t, pub.last.IsMatching())
}

func TestAsyncRunPublishesMismatch(t *testing.T) {
	ex, err := NewAsync("test")
	require.NoError(t, err)

	pub := &capturePublisher[int, int]{}
	got, err := AsyncCandidateEq(
		AsyncControl(ex, func(context.Context) (int, error) { return 1, nil }),
		func(context.Context) (int, error) { return 2, nil },
	).Publish(pub).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, got)
	require.Equal(t, 1, pub.calls)
	assert.False(t, pub.last.IsMatching())
}

func TestAsyncRunDrivesPathsConcurrently(t *testing.T) {
	ex, err := NewAsync("test")
	require.NoError(t, err)

	// Each path signals and then waits for the other; the rendezvous only
	// completes if both computations are in flight at the same time.
	controlReady := make(chan struct{})
	experimentReady := make(chan struct{})
	rendezvous := func(ready chan<- struct{}, other <-chan struct{}) error {
		close(ready)
		select {
		case <-other:
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("paths did not overlap")
		}
	}

	got, err := AsyncCandidateEq(
		AsyncControl(ex, func(context.Context) (int, error) {
			if err := rendezvous(controlReady, experimentReady); err != nil {
				return 0, err
			}
			return 1, nil
		}),
		func(context.Context) (int, error) {
			if err := rendezvous(experimentReady, controlReady); err != nil {
				return 0, err
			}
			return 1, nil
		},
	).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestAsyncRunIfFalseSkipsExperiment(t *testing.T) {
	ex, err := NewAsync("test")
	require.NoError(t, err)

	experimentCalls := 0
	pub := &mockPublisher[int, int]{}
	got, err := AsyncCandidateEq(
		AsyncControl(ex, func(context.Context) (int, error) { return 1, nil }),
		func(context.Context) (int, error) {
			experimentCalls++
			return 0, errors.New("must never run")
		},
	).Publish(pub).RunIf(context.Background(), func() bool { return false })

	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Zero(t, experimentCalls)
	pub.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestAsyncRunAbortsOnExperimentError(t *testing.T) {
	ex, err := NewAsync("test")
	require.NoError(t, err)

	errBoom := errors.New("boom")
	pub := &mockPublisher[int, int]{}
	got, err := AsyncCandidateEq(
		AsyncControl(ex, func(ctx context.Context) (int, error) {
			// Block until the failing sibling cancels the group context.
			<-ctx.Done()
			return 0, ctx.Err()
		}),
		func(context.Context) (int, error) { return 0, errBoom },
	).Publish(pub).Run(context.Background())

	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, got)
	pub.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestAsyncRunAbortsOnControlError(t *testing.T) {
	ex, err := NewAsync("test")
	require.NoError(t, err)

	errBoom := errors.New("boom")
	pub := &mockPublisher[int, int]{}
	got, err := AsyncCandidateEq(
		AsyncControl(ex, func(context.Context) (int, error) { return 0, errBoom }),
		func(context.Context) (int, error) { return 1, nil },
	).Publish(pub).Run(context.Background())

	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, got)
	pub.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestAsyncObservationOmitsDurations(t *testing.T) {
	ex, err := NewAsync("test")
	require.NoError(t, err)

	pub := &capturePublisher[int, int]{}
	_, err = AsyncCandidateEq(
		AsyncControl(ex, func(context.Context) (int, error) {
			time.Sleep(time.Millisecond)
			return 1, nil
		}),
		func(context.Context) (int, error) { return 1, nil },
	).Publish(pub).Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, pub.calls)
	assert.Zero(t, pub.last.Control.Duration)
	assert.Zero(t, pub.last.Experiment.Duration)
}

func TestAsyncRunWithComparableTypesAcrossRepresentations(t *testing.T) {
	type meters struct{ value int }
	type millimeters struct{ value int64 }

	ex, err := NewAsync("test")
	require.NoError(t, err)

	pub := &capturePublisher[meters, millimeters]{}
	got, err := AsyncCandidate(
		AsyncControl(ex, func(context.Context) (meters, error) { return meters{value: 2}, nil }),
		func(context.Context) (millimeters, error) { return millimeters{value: 2000}, nil },
		func(experiment millimeters, control meters) bool {
			return experiment.value == int64(control.value)*1000
		},
	).Publish(pub).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, meters{value: 2}, got)
	require.Equal(t, 1, pub.calls)
	assert.True(t, pub.last.IsMatching())
}
