package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gigpulse/internal/domain"
	portmocks "github.com/bnema/gigpulse/internal/ports/mocks"
)

const testRef = "gigpulse/openai"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockCredentialStore(t)
	fallback := portmocks.NewMockCredentialStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, testRef).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockCredentialStore(t)
	fallback := portmocks.NewMockCredentialStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, testRef).Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, testRef).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetCombinesErrorsWhenBothFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockCredentialStore(t)
	fallback := portmocks.NewMockCredentialStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, testRef).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, testRef).Return("", domain.ErrCredentialNotFound).Once()

	_, err := store.Get(context.Background(), testRef)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreSkipsFallbackWhenCallerGaveUp(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockCredentialStore(t)
	fallback := portmocks.NewMockCredentialStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, testRef, "v").Return(context.Canceled).Once()

	err := store.Put(context.Background(), testRef, "v")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorePutFallsBack(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockCredentialStore(t)
	fallback := portmocks.NewMockCredentialStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, testRef, "v").Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Put(mock.Anything, testRef, "v").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), testRef, "v"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockCredentialStore(t)
	fallback := portmocks.NewMockCredentialStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, testRef).Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Delete(mock.Anything, testRef).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), testRef))
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockCredentialStore(t))
	assert.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockCredentialStore(t), nil)
	assert.ErrorIs(t, err, errNilFallbackStore)
}
