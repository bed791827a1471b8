package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"species-catalog/internal/domains/chat/model"
)

type fakeCompleter struct {
	reply   string
	err     error
	calls   int
	system  string
	message string
}

func (f *fakeCompleter) Complete(_ context.Context, system, message string) (string, error) {
	f.calls++
	f.system, f.message = system, message
	return f.reply, f.err
}

func TestReply_ForwardsWithSystemInstruction(t *testing.T) {
	fc := &fakeCompleter{reply: "Cheetahs are fast."}
	svc := NewChatService(fc, nil)

	text, err := svc.Reply(context.Background(), "How fast is a cheetah?")

	require.NoError(t, err)
	assert.Equal(t, "Cheetahs are fast.", text)
	assert.Equal(t, SystemInstruction, fc.system)
	assert.Equal(t, "How fast is a cheetah?", fc.message)
}

func TestReply_EmptyReply(t *testing.T) {
	svc := NewChatService(&fakeCompleter{}, nil)

	text, err := svc.Reply(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestReply_UpstreamFailureNotRetried(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("quota exceeded")}
	svc := NewChatService(fc, nil)

	_, err := svc.Reply(context.Background(), "hi")

	assert.ErrorIs(t, err, model.ErrUpstream)
	assert.Equal(t, 1, fc.calls)
}

func TestReply_Disabled(t *testing.T) {
	_, err := NewChatService(nil, nil).Reply(context.Background(), "hi")

	assert.ErrorIs(t, err, model.ErrChatDisabled)
}
