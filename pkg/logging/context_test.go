package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/foodsync/pkg/logging"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Same(t, logging.Default(), logging.FromContext(logging.WithLogger(context.Background(), nil)))
}

func TestRunFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithSupplier(ctx, "Biohof")
	ctx = logging.WithRun(ctx, "run-1")
	ctx = logging.WithPlatform(ctx, "https://app.foodcoops.net/demo/")
	logging.FromContext(ctx).Info().Msg("Wrote export")

	tl.AssertContains(t, `"supplier":"Biohof"`)
	tl.AssertContains(t, `"run_id":"run-1"`)
	tl.AssertContains(t, `"platform":"https://app.foodcoops.net/demo/"`)
	tl.AssertContains(t, "Wrote export")
}

func TestFieldsDoNotLeakToParentContext(t *testing.T) {
	tl := logging.NewTestLogger(t)

	parent := logging.WithLogger(context.Background(), tl.Logger)
	_ = logging.WithSupplier(parent, "Biohof")
	logging.FromContext(parent).Info().Msg("schedule tick")

	tl.AssertNotContains(t, "Biohof")
}
