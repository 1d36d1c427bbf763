package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const (
	MarketplacePathKey = "marketplace.path"

	marketplaceFileMode   = 0o600
	marketplaceDirMode    = 0o700
	marketplaceConfigDir  = ".gigpulse"
	marketplaceConfigFile = "marketplace.toml"
	tempFilePattern       = ".marketplace-*.toml.tmp"
)

// Repository keeps users and bounties in one TOML file. Until the file is
// first written it serves a demo marketplace.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var (
	_ ports.BalanceStore  = (*Repository)(nil)
	_ ports.ProfileStore  = (*Repository)(nil)
	_ ports.BountyListing = (*Repository)(nil)
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(MarketplacePathKey, filepath.Join(homeDir, marketplaceConfigDir, marketplaceConfigFile))

	path := cfg.GetString(MarketplacePathKey)
	if path == "" {
		return nil, errors.New("marketplace path is empty")
	}
	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) GetBalance(ctx context.Context, userID domain.UserID) (float64, error) {
	user, err := r.findUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	return user.Balance, nil
}

func (r *Repository) GetProfile(ctx context.Context, userID domain.UserID) (domain.Profile, error) {
	user, err := r.findUser(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{UserID: domain.UserID(user.ID), Username: user.Username, Reputation: user.Reputation}, nil
}

func (r *Repository) ListOpenBounties(ctx context.Context) ([]domain.Bounty, error) {
	all, err := r.ListBounties(ctx)
	if err != nil {
		return nil, err
	}

	open := make([]domain.Bounty, 0, len(all))
	for _, bounty := range all {
		if bounty.Status == domain.BountyStatusOpen {
			open = append(open, bounty)
		}
	}

	return open, nil
}

func (r *Repository) ListBounties(ctx context.Context) ([]domain.Bounty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	bounties := make([]domain.Bounty, 0, len(file.Bounties))
	for _, entry := range file.Bounties {
		bounties = append(bounties, fromBountySchema(entry))
	}

	return bounties, nil
}

func (r *Repository) GetBounty(ctx context.Context, id domain.BountyID) (domain.Bounty, error) {
	bounties, err := r.ListBounties(ctx)
	if err != nil {
		return domain.Bounty{}, err
	}
	for _, bounty := range bounties {
		if bounty.ID == id {
			return bounty, nil
		}
	}

	return domain.Bounty{}, domain.ErrBountyNotFound
}

// SaveBounty inserts or replaces the bounty with the same id.
func (r *Repository) SaveBounty(ctx context.Context, bounty domain.Bounty) error {
	if bounty.Status == "" {
		bounty.Status = domain.BountyStatusOpen
	}
	if err := bounty.Validate(); err != nil {
		return fmt.Errorf("validate bounty: %w", err)
	}

	return r.update(ctx, func(file *fileSchema) {
		encoded := toBountySchema(bounty)
		for i := range file.Bounties {
			if file.Bounties[i].ID == encoded.ID {
				file.Bounties[i] = encoded
				return
			}
		}
		file.Bounties = append(file.Bounties, encoded)
	})
}

// SetBalance updates the user's balance, registering the user when unknown.
func (r *Repository) SetBalance(ctx context.Context, userID domain.UserID, balance float64) error {
	id := strings.TrimSpace(string(userID))
	if id == "" {
		return errors.New("user id is required")
	}
	if balance < 0 {
		return errors.New("balance must not be negative")
	}

	return r.update(ctx, func(file *fileSchema) {
		for i := range file.Users {
			if file.Users[i].ID == id {
				file.Users[i].Balance = balance
				return
			}
		}
		file.Users = append(file.Users, userSchema{ID: id, Username: id, Balance: balance})
	})
}

func (r *Repository) findUser(ctx context.Context, userID domain.UserID) (userSchema, error) {
	if err := ctx.Err(); err != nil {
		return userSchema{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return userSchema{}, err
	}
	for _, user := range file.Users {
		if user.ID == string(userID) {
			return user, nil
		}
	}

	return userSchema{}, domain.ErrUserNotFound
}

func (r *Repository) update(ctx context.Context, mutate func(*fileSchema)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	mutate(&file)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return demoSchema(), nil
		}
		return fileSchema{}, fmt.Errorf("read marketplace file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode marketplace file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve marketplace path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), marketplaceDirMode); err != nil {
		return fmt.Errorf("create marketplace directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode marketplace file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp marketplace file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp marketplace file: %w", err)
	}

	if err := tempFile.Chmod(marketplaceFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp marketplace file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp marketplace file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace marketplace file: %w", err)
	}
	cleanup = false

	return nil
}

func toBountySchema(bounty domain.Bounty) bountySchema {
	return bountySchema{
		ID:         string(bounty.ID),
		Title:      bounty.Title,
		Brand:      bounty.Brand,
		Reward:     bounty.Reward,
		Difficulty: string(bounty.Difficulty),
		Status:     string(bounty.Status),
	}
}

func fromBountySchema(entry bountySchema) domain.Bounty {
	return domain.Bounty{
		ID:         domain.BountyID(entry.ID),
		Title:      entry.Title,
		Brand:      entry.Brand,
		Reward:     entry.Reward,
		Difficulty: domain.Difficulty(entry.Difficulty),
		Status:     domain.BountyStatus(entry.Status),
	}
}
