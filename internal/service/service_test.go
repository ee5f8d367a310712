package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"artshare/internal/apperr"
	"artshare/internal/domain"
	"artshare/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Post{}, &domain.Comment{}))
	return db
}

type env struct {
	db       *gorm.DB
	users    *UserService
	posts    *PostService
	comments *CommentService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newTestDB(t)
	userRepo := repo.NewUserRepo(db)
	postRepo := repo.NewPostRepo(db)
	commentRepo := repo.NewCommentRepo(db)
	return &env{
		db:       db,
		users:    NewUserService(userRepo),
		posts:    NewPostService(postRepo, userRepo),
		comments: NewCommentService(commentRepo, postRepo),
	}
}

// codeOf unwraps the HTTP status an error maps to, 0 for non-app errors.
func codeOf(err error) int {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return 0
}
