package controller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/refetch/core"
	"github.com/hupe1980/refetch/internal/util"
)

func TestNew_TriggerIntervalTooShort(t *testing.T) {
	var calls atomic.Int32

	_, err := New(countingWorker(1, &calls), func(o *Options[int]) {
		o.TriggerInterval = 499 * time.Millisecond
	})
	require.Error(t, err)

	var verr *util.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "TriggerInterval", verr.Field)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "configuration errors precede any invocation")
}

func TestOptions_Validate(t *testing.T) {
	worker := func(ctx context.Context, args ...any) core.Handle[int] {
		return core.NewHandle(ctx, func(context.Context) (int, error) { return 0, nil })
	}

	tests := []struct {
		name    string
		optFn   func(o *Options[int])
		wantErr bool
	}{
		{
			name:    "defaults",
			optFn:   func(o *Options[int]) {},
			wantErr: false,
		},
		{
			name: "interval exactly at bound",
			optFn: func(o *Options[int]) {
				o.TriggerInterval = MinTriggerInterval
			},
			wantErr: true,
		},
		{
			name: "interval above bound",
			optFn: func(o *Options[int]) {
				o.TriggerInterval = MinTriggerInterval + time.Millisecond
				o.ShouldFetch = func(core.FetchInfo[int]) bool { return false }
			},
			wantErr: false,
		},
		{
			name: "negative deps debounce",
			optFn: func(o *Options[int]) {
				o.DepsDebounce = -time.Second
			},
			wantErr: true,
		},
		{
			name: "negative trigger debounce",
			optFn: func(o *Options[int]) {
				o.TriggerDepsDebounce = -time.Second
			},
			wantErr: true,
		},
		{
			name: "non-comparable dep element",
			optFn: func(o *Options[int]) {
				o.Deps = []any{[]int{1, 2}}
			},
			wantErr: true,
		},
		{
			name: "non-comparable trigger dep element",
			optFn: func(o *Options[int]) {
				o.TriggerDeps = []any{map[string]int{}}
			},
			wantErr: true,
		},
		{
			name: "comparable deps",
			optFn: func(o *Options[int]) {
				o.Deps = []any{1, "a", 2.5, true, nil}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl, err := New(worker, tt.optFn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ctl.Close()
		})
	}
}

func TestDepsEqual(t *testing.T) {
	assert.True(t, depsEqual(nil, nil))
	assert.True(t, depsEqual(nil, []any{}), "absent and empty compare equal element-wise")
	assert.True(t, depsEqual([]any{1, "a"}, []any{1, "a"}))
	assert.False(t, depsEqual([]any{1}, []any{2}))
	assert.False(t, depsEqual([]any{1}, []any{1, 2}))
	assert.False(t, depsEqual([]any{[]int{1}}, []any{[]int{1}}),
		"non-comparable elements always count as changed")
}
