package storage

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/appdirs"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
)

var DB *gorm.DB
var appDirsResolver = appdirs.Resolve

// InitDB opens the history database under the cache dir and migrates it.
func InitDB() error {
	dbPath, err := resolveDBPath()
	if err != nil {
		return err
	}

	DB, err = Open(dbPath)
	if err != nil {
		return err
	}

	log.GetLogger().Info("Database initialized successfully", zap.String("path", dbPath))
	return nil
}

// Open connects to the sqlite file at dbPath, creating parent dirs, and
// migrates the schema.
func Open(dbPath string) (*gorm.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&types.JobHistory{}); err != nil {
		return nil, err
	}
	return db, nil
}

func resolveDBPath() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.DBPathFor(dirs), nil
}
