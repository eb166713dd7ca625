package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamar9ic/React-project/internal/domain"
	"github.com/itamar9ic/React-project/pkg/database"
	apperrors "github.com/itamar9ic/React-project/pkg/errors"
)

func newReviewRepoTest(t *testing.T) (*ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewReviewRepository(mock), mock
}

func sampleReview() *domain.Review {
	return &domain.Review{
		ID:         "22222222-2222-2222-2222-222222222222",
		ProductID:  "11111111-1111-1111-1111-111111111111",
		AuthorID:   "33333333-3333-3333-3333-333333333333",
		AuthorName: "Jane Doe",
		Rating:     5,
		Title:      "great shirt",
		Body:       "fits perfectly",
		CreatedAt:  time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
	}
}

func expectReviewInsert(mock pgxmock.PgxPoolIface, rv *domain.Review) *pgxmock.ExpectedExec {
	return mock.ExpectExec("INSERT INTO product_reviews").
		WithArgs(rv.ID, rv.ProductID, rv.AuthorID, rv.AuthorName, rv.Rating, rv.Title, rv.Body, rv.CreatedAt)
}

func TestReviewRepository_Create(t *testing.T) {
	repo, mock := newReviewRepoTest(t)
	rv := sampleReview()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = .+ FOR UPDATE").
		WithArgs(rv.ProductID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(rv.ProductID))
	expectReviewInsert(mock, rv).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("UPDATE products p\\s+SET rating = s.avg_rating").
		WithArgs(rv.ProductID).
		WillReturnRows(pgxmock.NewRows([]string{"rating", "num_reviews"}).AddRow(4.67, 3))
	mock.ExpectCommit()

	summary, err := repo.Create(context.Background(), rv)
	require.NoError(t, err)
	assert.Equal(t, 4.67, summary.Rating)
	assert.Equal(t, 3, summary.NumReviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_ProductNotFound(t *testing.T) {
	repo, mock := newReviewRepoTest(t)
	rv := sampleReview()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = .+ FOR UPDATE").
		WithArgs(rv.ProductID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), rv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_Duplicate(t *testing.T) {
	repo, mock := newReviewRepoTest(t)
	rv := sampleReview()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = .+ FOR UPDATE").
		WithArgs(rv.ProductID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(rv.ProductID))
	expectReviewInsert(mock, rv).
		WillReturnError(fmt.Errorf(`ERROR: duplicate key value violates unique constraint "product_reviews_product_id_author_id_key" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), rv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DUPLICATE_REVIEW", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_RecomputeFails(t *testing.T) {
	repo, mock := newReviewRepoTest(t)
	rv := sampleReview()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = .+ FOR UPDATE").
		WithArgs(rv.ProductID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(rv.ProductID))
	expectReviewInsert(mock, rv).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("UPDATE products p\\s+SET rating = s.avg_rating").
		WithArgs(rv.ProductID).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), rv)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_HasAuthorReview(t *testing.T) {
	repo, mock := newReviewRepoTest(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("p1", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasAuthorReview(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID(t *testing.T) {
	repo, mock := newReviewRepoTest(t)
	rv := sampleReview()

	rows := pgxmock.NewRows([]string{
		"id", "product_id", "author_id", "author_name", "rating", "title", "body", "created_at", "total_count",
	}).AddRow(rv.ID, rv.ProductID, rv.AuthorID, rv.AuthorName, rv.Rating, rv.Title, rv.Body, rv.CreatedAt, 7)

	mock.ExpectQuery("(?s)SELECT .+ FROM product_reviews\\s+WHERE product_id = .+ ORDER BY created_at DESC, id DESC").
		WithArgs(rv.ProductID, 20, 0).
		WillReturnRows(rows)

	reviews, total, err := repo.ListByProductID(context.Background(), rv.ProductID, 1, 20)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, rv.AuthorName, reviews[0].AuthorName)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_Empty(t *testing.T) {
	repo, mock := newReviewRepoTest(t)

	mock.ExpectQuery("(?s)SELECT .+ FROM product_reviews").
		WithArgs("p1", 20, 20).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "product_id", "author_id", "author_name", "rating", "title", "body", "created_at", "total_count",
		}))

	reviews, total, err := repo.ListByProductID(context.Background(), "p1", 2, 20)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
