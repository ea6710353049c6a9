package repository

import (
	"context"
	"regexp"
	"testing"

	"bioainexus/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestAuthorRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	author := &models.Author{Email: "new@bioainexus.example", FullName: "New Author", Password: "hash"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "authors"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, author)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		email         string
		mockBehavior  func()
		expectedError bool
	}{
		{
			name:  "Success",
			email: "admin@bioainexus.example",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "email", "full_name"}).
					AddRow(1, "admin@bioainexus.example", "Site Admin")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "authors" WHERE email = $1 AND "authors"."deleted_at" IS NULL ORDER BY "authors"."id" LIMIT $2`)).
					WithArgs("admin@bioainexus.example", 1).
					WillReturnRows(rows)
			},
		},
		{
			name:  "Not Found",
			email: "nobody@bioainexus.example",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "authors" WHERE email = $1 AND "authors"."deleted_at" IS NULL ORDER BY "authors"."id" LIMIT $2`)).
					WithArgs("nobody@bioainexus.example", 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			author, err := repo.GetByEmail(ctx, tt.email)
			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, author)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, author.Email)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAuthorRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "is_admin"}).
		AddRow(7, "admin@bioainexus.example", "Site Admin", true)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "authors" WHERE "authors"."id" = $1 AND "authors"."deleted_at" IS NULL ORDER BY "authors"."id" LIMIT $2`)).
		WithArgs(7, 1).
		WillReturnRows(rows)

	author, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.True(t, author.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}
