// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tr, err := New(&Config{AppName: "storymint"})
	require.NoError(err)
	_, span := tr.Start(context.Background(), "Processor.Execute")
	require.False(span.IsRecording())
	span.End()
	require.NoError(tr.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tr, err := New(&Config{Enabled: true, TraceSampleRate: 1, AppName: "storymint", Agent: "test"})
	require.NoError(err)
	_, span := tr.Start(context.Background(), "Processor.Execute")
	require.True(span.IsRecording())
	span.End()
	_ = tr.Close()
}
