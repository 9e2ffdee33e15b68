package cmdutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-report/pkg/cmdutil"
	"github.com/tuanvumaihuynh/product-report/pkg/correlationid"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, err := cmdutil.WithCorrelationID(context.Background())
	require.NoError(t, err)

	id, ok := correlationid.FromContext(ctx)
	assert.True(t, ok)
	assert.NotEmpty(t, id)
}

func TestSignalContext(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := cmdutil.SignalContext(parent)
	defer cancel()

	cancelParent()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
