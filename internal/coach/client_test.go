package coach

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/types"
)

func TestNewWithoutKeyIsUnavailable(t *testing.T) {
	client := New(context.Background(), llm.DefaultConfig(), "")
	assert.False(t, client.Available())

	_, err := client.Complete(context.Background(), &types.Profile{Name: "A"}, nil, "hello")
	require.Error(t, err)
	assert.Equal(t, llm.KindAuthFailure, llm.KindOf(err))

	_, err = client.GenerateRoadmap(context.Background(), &types.Profile{Name: "A"})
	require.Error(t, err)
	assert.Equal(t, llm.KindAuthFailure, llm.KindOf(err))

	assert.NoError(t, client.Close())
}

func TestValidateReply(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr bool
	}{
		{
			name:    "too short",
			reply:   "Try these.",
			wantErr: true,
		},
		{
			name:    "at minimum length",
			reply:   strings.Repeat("a", minReplyChars),
			wantErr: false,
		},
		{
			name:    "typical reply",
			reply:   "Start by framing the conversation around shared goals rather than blame.",
			wantErr: false,
		},
		{
			name:    "long but within bounds",
			reply:   strings.Repeat("b", 2900),
			wantErr: false,
		},
		{
			name:    "over maximum length",
			reply:   strings.Repeat("c", maxReplyChars+1),
			wantErr: true,
		},
		{
			name:    "empty",
			reply:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateReply(tt.reply)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, llm.KindParseFailure, llm.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.reply, got)
		})
	}
}
