package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chaizz/lumen-Park/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

// User is the read-only projection of the users table owned by the profile service.
type User struct {
	ID       string  `gorm:"primaryKey;size:36"`
	Username string  `gorm:"size:64"`
	Avatar   *string `gorm:"size:512"`
}

func (User) TableName() string { return "users" }

type GormDirectory struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGorm wraps an existing MySQL connection pool.
func NewGorm(sqlDB *sql.DB, logger *zap.Logger) (*GormDirectory, error) {
	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}
	return &GormDirectory{db: gdb, log: logger}, nil
}

func (d *GormDirectory) LookupSender(ctx context.Context, userID string) (model.Sender, error) {
	var user User
	err := d.db.WithContext(ctx).Select("id", "username", "avatar").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Sender{}, ErrUserNotFound
	}
	if err != nil {
		d.log.Error("user lookup failed", zap.String("user_id", userID), zap.Error(err))
		return model.Sender{}, err
	}
	return model.Sender{ID: user.ID, Username: user.Username, Avatar: user.Avatar}, nil
}
