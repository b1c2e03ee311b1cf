package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jo-hoe/defectframe/internal/backend/database"
)

type CoreService struct {
	config          *ServiceConfig
	databaseService database.DatabaseService
	pipeline        *DefectPipeline
}

func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	databaseService, err := getDatabaseService(config)
	if err != nil {
		return nil, err
	}
	service, err := NewCoreServiceWithDatabase(config, databaseService)
	if err != nil {
		_ = databaseService.Close()
		return nil, err
	}
	return service, nil
}

// NewCoreServiceWithDatabase wires the pipeline to an already opened store
func NewCoreServiceWithDatabase(config *ServiceConfig, databaseService database.DatabaseService) (*CoreService, error) {
	pipeline, err := NewDefectPipeline()
	if err != nil {
		return nil, fmt.Errorf("failed to build defect pipeline: %w", err)
	}
	return &CoreService{
		config:          config,
		databaseService: databaseService,
		pipeline:        pipeline,
	}, nil
}

// ProcessAndSaveImage runs the pipeline on the upload and stores all variants under a new ID.
// Nothing is stored when any stage fails.
func (service *CoreService) ProcessAndSaveImage(ctx context.Context, defectName string, image []byte) (string, error) {
	variants, err := service.pipeline.Run(image)
	if err != nil {
		slog.Warn("defect image pipeline failed", "defect_name", defectName, "error", err)
		return "", err
	}

	id, err := service.databaseService.CreateDefectImage(ctx, &database.DefectImage{
		DefectName:          defectName,
		NewDefectImage:      variants.RedWhite,
		HarigamiDefectImage: variants.BlueWhite,
		PreviousDefectImage: variants.Grayscale,
		RepairedDefectImage: variants.FramedYellowBorder,
	})
	if err != nil {
		slog.Error("failed to store defect image", "defect_name", defectName, "error", err)
		return "", fmt.Errorf("failed to store defect image: %w", err)
	}

	slog.Info("defect image stored", "id", id, "defect_name", defectName)
	return id, nil
}

// GetImageByID returns database.ErrImageNotFound for unknown IDs
func (service *CoreService) GetImageByID(ctx context.Context, id string) (*database.DefectImage, error) {
	return service.databaseService.GetDefectImageByID(ctx, id)
}

// GetVariantByID returns the PNG payload of one role of a stored record
func (service *CoreService) GetVariantByID(ctx context.Context, id string, role Role) ([]byte, error) {
	image, err := service.databaseService.GetDefectImageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return VariantsOf(image).GetOrError(role)
}

// VariantsOf maps the stored columns back onto their roles
func VariantsOf(image *database.DefectImage) *Variants {
	return &Variants{
		Grayscale:          image.PreviousDefectImage,
		RedWhite:           image.NewDefectImage,
		BlueWhite:          image.HarigamiDefectImage,
		FramedYellowBorder: image.RepairedDefectImage,
	}
}

func (service *CoreService) Close() error {
	return service.databaseService.Close()
}

func getDatabaseService(config *ServiceConfig) (database.DatabaseService, error) {
	databaseService, err := database.NewDatabase(config.Database.Type, config.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("database initialized successfully", "type", config.Database.Type)
	return databaseService, nil
}
