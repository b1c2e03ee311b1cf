package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

type SQLiteDatabase struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteDatabase(connectionString string) (DatabaseService, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}

	// Every connection to :memory: opens its own empty database
	if strings.Contains(connectionString, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	return &SQLiteDatabase{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteDatabase) CreateDatabase() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS defect_images (
		id TEXT PRIMARY KEY,
		defect_name TEXT NOT NULL,
		new_defect_image BLOB NOT NULL,
		harigami_defect_image BLOB NOT NULL,
		previous_defect_image BLOB NOT NULL,
		repaired_defect_image BLOB NOT NULL
	)`)
	return err
}

func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DoesDatabaseExist reports whether the defect_images table has been created.
// SQLite creates the database file itself on first connect.
func (s *SQLiteDatabase) DoesDatabaseExist() bool {
	var name string
	err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'defect_images'`).Scan(&name)
	return err == nil
}

func (s *SQLiteDatabase) CreateDefectImage(ctx context.Context, image *DefectImage) (string, error) {
	if image == nil {
		return "", errors.New("defect image must not be nil")
	}
	id, err := generateID()
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after a successful commit
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO defect_images
		(id, defect_name, new_defect_image, harigami_defect_image, previous_defect_image, repaired_defect_image)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		image.DefectName,
		nonNil(image.NewDefectImage),
		nonNil(image.HarigamiDefectImage),
		nonNil(image.PreviousDefectImage),
		nonNil(image.RepairedDefectImage),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert defect image: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit defect image: %w", err)
	}
	return id, nil
}

func (s *SQLiteDatabase) GetDefectImageByID(ctx context.Context, id string) (*DefectImage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, defect_name, new_defect_image, harigami_defect_image, previous_defect_image, repaired_defect_image
		FROM defect_images WHERE id = ?`, id)

	var image DefectImage
	err := row.Scan(
		&image.ID,
		&image.DefectName,
		&image.NewDefectImage,
		&image.HarigamiDefectImage,
		&image.PreviousDefectImage,
		&image.RepairedDefectImage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// nonNil keeps NOT NULL blob columns satisfied for empty payloads
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
