package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestNewSolutionRepository(t *testing.T) {
	ctx := context.Background()

	for _, conf := range []*config.Config{
		{Storage: config.StorageMemory},
		{Storage: config.StorageSQLite, SQLiteStoragePath: filepath.Join(t.TempDir(), "solutions.db")},
	} {
		t.Run(conf.Storage, func(t *testing.T) {
			// Given: a repository built from config
			repo, closer, err := newSolutionRepository(ctx, conf)
			require.NoError(t, err)
			t.Cleanup(func() {
				assert.NoError(t, closer.Close())
			})

			// When: storing a solution
			solution := &entity.Solution{Board: entity.NewBoard().Place(entity.Move{}, entity.PlayerX), Side: entity.PlayerO, Move: entity.Move{Row: 1, Col: 1}}
			require.NoError(t, repo.Save(ctx, solution))

			// Then: it can be read back and unknown boards miss
			retrieved, err := repo.Get(ctx, solution.Board, entity.PlayerO)
			require.NoError(t, err)
			assert.Equal(t, solution.Move, retrieved.Move)

			_, err = repo.Get(ctx, entity.NewBoard(), entity.PlayerX)
			require.ErrorIs(t, err, apperror.ErrNotFound)
		})
	}
}
