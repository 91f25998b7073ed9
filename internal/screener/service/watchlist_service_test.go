package service

import (
	"context"
	"testing"

	"golang-idx-screener/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistService_PinPrependsAndDeduplicates(t *testing.T) {
	svc := NewWatchlistService(newFakeSettingsRepo(), newTestLogger(t))
	ctx := context.Background()

	tickers, err := svc.Pin(ctx, "BBCA")
	require.NoError(t, err)
	assert.Equal(t, []string{"BBCA"}, tickers)

	tickers, err = svc.Pin(ctx, "TLKM")
	require.NoError(t, err)
	assert.Equal(t, []string{"TLKM", "BBCA"}, tickers)

	// pinning an existing member is a no-op
	tickers, err = svc.Pin(ctx, "BBCA")
	require.NoError(t, err)
	assert.Equal(t, []string{"TLKM", "BBCA"}, tickers)
}

func TestWatchlistService_RemoveNonMemberIsNoOp(t *testing.T) {
	svc := NewWatchlistService(newFakeSettingsRepo(), newTestLogger(t))
	ctx := context.Background()

	_, err := svc.Pin(ctx, "BBCA")
	require.NoError(t, err)

	tickers, err := svc.Remove(ctx, "GOTO")
	require.NoError(t, err)
	assert.Equal(t, []string{"BBCA"}, tickers)

	tickers, err = svc.Remove(ctx, "BBCA")
	require.NoError(t, err)
	assert.Empty(t, tickers)
}

func TestWatchlistService_PersistsWholeListOnMutation(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewWatchlistService(repo, newTestLogger(t))
	ctx := context.Background()

	_, err := svc.Pin(ctx, "BBRI")
	require.NoError(t, err)
	_, err = svc.Pin(ctx, "ASII")
	require.NoError(t, err)

	raw, found, _ := repo.Get(ctx, common.RedisKeyWatchlist)
	require.True(t, found)
	assert.JSONEq(t, `["ASII","BBRI"]`, raw)
}

func TestWatchlistService_CorruptStoredListResets(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.data[common.RedisKeyWatchlist] = "oops"
	svc := NewWatchlistService(repo, newTestLogger(t))

	tickers, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickers)
}

func TestWatchlistService_Serialize(t *testing.T) {
	svc := NewWatchlistService(newFakeSettingsRepo(), newTestLogger(t))

	assert.Equal(t, "BBCA,TLKM,ASII", svc.Serialize([]string{"BBCA", "TLKM", "ASII"}))
	assert.Equal(t, "", svc.Serialize(nil))
}
