package core

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jo-hoe/defectframe/internal/backend/database"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

// countingDatabase wraps a real store and counts writes
type countingDatabase struct {
	database.DatabaseService
	creates int
	failErr error
}

func (c *countingDatabase) CreateDefectImage(ctx context.Context, image *database.DefectImage) (string, error) {
	c.creates++
	if c.failErr != nil {
		return "", c.failErr
	}
	return c.DatabaseService.CreateDefectImage(ctx, image)
}

func newTestCoreService(t *testing.T) (*CoreService, *countingDatabase) {
	t.Helper()
	cfg := &ServiceConfig{
		Database: Database{
			Type:             "sqlite",
			ConnectionString: ":memory:",
		},
	}
	db, err := database.NewDatabase(cfg.Database.Type, cfg.Database.ConnectionString)
	require.NoError(t, err)

	counting := &countingDatabase{DatabaseService: db}
	service, err := NewCoreServiceWithDatabase(cfg, counting)
	require.NoError(t, err)
	t.Cleanup(func() { _ = service.Close() })
	return service, counting
}

func TestNewCoreService_SQLiteMemory(t *testing.T) {
	service, err := NewCoreService(&ServiceConfig{Database: Database{Type: "sqlite", ConnectionString: ":memory:"}})
	require.NoError(t, err)
	require.NoError(t, service.Close())
}

func TestNewCoreService_UnsupportedDatabase(t *testing.T) {
	_, err := NewCoreService(&ServiceConfig{Database: Database{Type: "oracle", ConnectionString: "x"}})
	assert.Error(t, err)
}

func TestCoreService_ProcessAndSaveImage(t *testing.T) {
	service, counting := newTestCoreService(t)
	ctx := context.Background()

	input := encodePNG(t, solidImage(64, 48, color.RGBA{R: 128, G: 128, B: 128, A: 255}))
	id, err := service.ProcessAndSaveImage(ctx, "scratch on panel", input)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, counting.creates)

	stored, err := service.GetImageByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "scratch on panel", stored.DefectName)

	// Columns map to roles: previous=grayscale, new=red/white, harigami=blue/white, repaired=framed
	gray := decodeVariant(t, stored.PreviousDefectImage)
	assert.Equal(t, raster.RGB{R: 128, G: 128, B: 128}, gray.At(0, 0))
	assert.Equal(t, white, decodeVariant(t, stored.NewDefectImage).At(10, 10))
	assert.Equal(t, white, decodeVariant(t, stored.HarigamiDefectImage).At(10, 10))
	framed := decodeVariant(t, stored.RepairedDefectImage)
	assert.Equal(t, yellow, framed.At(0, 0))
	assert.Equal(t, raster.RGB{R: 128, G: 128, B: 128}, framed.At(16, 16))
}

func TestCoreService_VariantsMatchDirectPipelineRun(t *testing.T) {
	service, _ := newTestCoreService(t)
	ctx := context.Background()

	input := encodePNG(t, solidImage(40, 40, color.RGBA{R: 30, G: 30, B: 30, A: 255}))
	id, err := service.ProcessAndSaveImage(ctx, "dark", input)
	require.NoError(t, err)

	direct, err := newTestPipeline(t).Run(input)
	require.NoError(t, err)

	for _, role := range Roles() {
		stored, err := service.GetVariantByID(ctx, id, role)
		require.NoError(t, err)
		want, _ := direct.Get(role)
		assert.True(t, bytes.Equal(want, stored), "variant %s differs", role)
	}

	redWhite, err := service.GetVariantByID(ctx, id, RoleRedWhite)
	require.NoError(t, err)
	assert.Equal(t, red, decodeVariant(t, redWhite).At(16, 16))
}

func TestCoreService_EmptyUploadCreatesNoRecord(t *testing.T) {
	service, counting := newTestCoreService(t)

	id, err := service.ProcessAndSaveImage(context.Background(), "empty", nil)
	var decErr *raster.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Empty(t, id)
	assert.Equal(t, 0, counting.creates)
}

func TestCoreService_StoreFailure(t *testing.T) {
	service, counting := newTestCoreService(t)
	storeErr := errors.New("disk full")
	counting.failErr = storeErr

	input := encodePNG(t, solidImage(8, 8, color.White))
	_, err := service.ProcessAndSaveImage(context.Background(), "x", input)
	assert.ErrorIs(t, err, storeErr)
}

func TestCoreService_GetUnknownID(t *testing.T) {
	service, _ := newTestCoreService(t)
	ctx := context.Background()

	_, err := service.GetImageByID(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrImageNotFound)

	_, err = service.GetVariantByID(ctx, "missing", RoleGrayscale)
	assert.ErrorIs(t, err, database.ErrImageNotFound)
}
