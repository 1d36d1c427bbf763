package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gigpulse/internal/domain"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(MarketplacePathKey, path)
	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryMissingFileServesDemoMarketplace(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "marketplace.toml"))

	balance, err := repo.GetBalance(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, 1240.5, balance)

	profile, err := repo.GetProfile(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{UserID: "creator-1", Username: "lumen", Reputation: 87}, profile)

	open, err := repo.ListOpenBounties(context.Background())
	require.NoError(t, err)
	assert.Len(t, open, 3)
	for _, bounty := range open {
		assert.Equal(t, domain.BountyStatusOpen, bounty.Status)
	}

	_, err = repo.GetBalance(context.Background(), "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.GetBounty(context.Background(), "b-999")
	require.ErrorIs(t, err, domain.ErrBountyNotFound)
}

func TestRepositorySaveBountyRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "marketplace.toml")
	repo := newTestRepository(t, path)

	bounty := domain.Bounty{ID: "b-200", Title: "Shorts pack", Brand: "Northwind Studio", Reward: 220, Difficulty: domain.DifficultyMedium}
	require.NoError(t, repo.SaveBounty(context.Background(), bounty))

	got, err := repo.GetBounty(context.Background(), "b-200")
	require.NoError(t, err)
	bounty.Status = domain.BountyStatusOpen
	assert.Equal(t, bounty, got)

	bounty.Status = domain.BountyStatusClosed
	require.NoError(t, repo.SaveBounty(context.Background(), bounty))
	all, err := repo.ListBounties(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(demoSchema().Bounties)+1)

	open, err := repo.ListOpenBounties(context.Background())
	require.NoError(t, err)
	for _, item := range open {
		assert.NotEqual(t, domain.BountyID("b-200"), item.ID)
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(marketplaceFileMode), info.Mode().Perm())
}

func TestRepositorySaveBountyValidates(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "marketplace.toml"))

	err := repo.SaveBounty(context.Background(), domain.Bounty{ID: "b-1", Title: "x", Difficulty: "legendary"})
	require.Error(t, err)
	assert.ErrorContains(t, err, `unsupported difficulty "legendary"`)
}

func TestRepositorySetBalance(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "marketplace.toml"))

	require.NoError(t, repo.SetBalance(context.Background(), "creator-1", 99.5))
	require.NoError(t, repo.SetBalance(context.Background(), "newbie", 10))

	balance, err := repo.GetBalance(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, 99.5, balance)

	profile, err := repo.GetProfile(context.Background(), "newbie")
	require.NoError(t, err)
	assert.Equal(t, "newbie", profile.Username)

	assert.ErrorContains(t, repo.SetBalance(context.Background(), "creator-1", -1), "must not be negative")
	assert.ErrorContains(t, repo.SetBalance(context.Background(), " ", 1), "user id is required")
}

func TestRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "marketplace.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[users]]",
		"id = \"u-1\"",
		"username = \"grain\"",
		"reputation = 12",
		"balance = 5.25",
		"",
		"[[bounties]]",
		"id = \"b-1\"",
		"title = \"Color pass\"",
		"reward = 40",
		"difficulty = \"easy\"",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, path)

	balance, err := repo.GetBalance(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 5.25, balance)

	open, err := repo.ListOpenBounties(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, domain.BountyStatusOpen, open[0].Status)
}

func TestRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "marketplace.toml")
	require.NoError(t, os.WriteFile(path, []byte("users = ["), 0o600))

	_, err := newTestRepository(t, path).ListBounties(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode marketplace file")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "marketplace.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 999\n"), 0o600))

	_, err := newTestRepository(t, path).GetBalance(context.Background(), "creator-1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported marketplace schema version")
}

func TestRepositoryCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "marketplace.toml"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.SetBalance(ctx, "creator-1", 1)
	assert.True(t, errors.Is(err, context.Canceled))
	_, err = repo.ListOpenBounties(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentWritesAcrossInstancesPreserveAllBounties(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "marketplace.toml")
	repoA := newTestRepository(t, path)
	repoB := newTestRepository(t, path)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.SaveBounty(context.Background(), domain.Bounty{
				ID:         domain.BountyID(prefix + strconv.Itoa(i)),
				Title:      "Batch " + prefix,
				Reward:     10,
				Difficulty: domain.DifficultyEasy,
			})
		}
	}
	go write(repoA, "a-")
	go write(repoB, "b-")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	all, err := repoA.ListBounties(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, perRepoWrites*2+len(demoSchema().Bounties))
}

func TestRepositorySerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "marketplace.toml")
	repo := newTestRepository(t, path)
	require.NoError(t, repo.SetBalance(context.Background(), "creator-1", 1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[[bounties]]")
}
