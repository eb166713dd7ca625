package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/itamar9ic/React-project/internal/domain"
	apperrors "github.com/itamar9ic/React-project/pkg/errors"
)

const testProductID = "11111111-1111-1111-1111-111111111111"

func reviewsPath(productID string) string {
	return "/api/v1/products/" + productID + "/reviews"
}

func TestReviewHandler_Submit(t *testing.T) {
	products := new(mockProductRepo)
	reviews := new(mockReviewRepo)
	router := newTestRouter(products, reviews)

	reviews.On("HasAuthorReview", mock.Anything, testProductID, testUserID).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.ProductID == testProductID &&
			rv.AuthorID == testUserID &&
			rv.AuthorName == "Jane Doe" &&
			rv.Rating == 5
	})).Return(&domain.RatingSummary{Rating: 4.5, NumReviews: 2}, nil)

	rec := doRequest(t, router, http.MethodPost, reviewsPath(testProductID), userToken,
		map[string]any{"rating": 5, "title": "great", "body": "would buy again"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			Review     domain.Review `json:"review"`
			Rating     float64       `json:"rating"`
			NumReviews int           `json:"num_reviews"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4.5, body.Data.Rating)
	assert.Equal(t, 2, body.Data.NumReviews)
	assert.Equal(t, testUserID, body.Data.Review.AuthorID)
	reviews.AssertExpectations(t)
}

func TestReviewHandler_Submit_RequiresAuth(t *testing.T) {
	router := newTestRouter(new(mockProductRepo), new(mockReviewRepo))

	rec := doRequest(t, router, http.MethodPost, reviewsPath(testProductID), "",
		map[string]any{"rating": 5})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewHandler_Submit_InvalidToken(t *testing.T) {
	router := newTestRouter(new(mockProductRepo), new(mockReviewRepo))

	rec := doRequest(t, router, http.MethodPost, reviewsPath(testProductID), "garbage",
		map[string]any{"rating": 5})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewHandler_Submit_RatingOutOfRange(t *testing.T) {
	for _, rating := range []int{0, 6} {
		reviews := new(mockReviewRepo)
		router := newTestRouter(new(mockProductRepo), reviews)

		rec := doRequest(t, router, http.MethodPost, reviewsPath(testProductID), userToken,
			map[string]any{"rating": rating})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d", rating)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestReviewHandler_Submit_Duplicate(t *testing.T) {
	reviews := new(mockReviewRepo)
	router := newTestRouter(new(mockProductRepo), reviews)

	reviews.On("HasAuthorReview", mock.Anything, testProductID, testUserID).Return(true, nil)

	rec := doRequest(t, router, http.MethodPost, reviewsPath(testProductID), userToken,
		map[string]any{"rating": 4})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_REVIEW", errorCode(t, rec))
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewHandler_Submit_ProductMissing(t *testing.T) {
	reviews := new(mockReviewRepo)
	router := newTestRouter(new(mockProductRepo), reviews)

	reviews.On("HasAuthorReview", mock.Anything, testProductID, testUserID).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.NotFound("product", testProductID))

	rec := doRequest(t, router, http.MethodPost, reviewsPath(testProductID), userToken,
		map[string]any{"rating": 4})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestReviewHandler_List(t *testing.T) {
	products := new(mockProductRepo)
	reviews := new(mockReviewRepo)
	router := newTestRouter(products, reviews)

	products.On("GetByID", mock.Anything, testProductID).Return(&domain.Product{ID: testProductID}, nil)
	reviews.On("ListByProductID", mock.Anything, testProductID, 1, 20).
		Return([]domain.Review{{ID: "r1", Rating: 5}}, 1, nil)

	rec := doRequest(t, router, http.MethodGet, reviewsPath(testProductID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data       []domain.Review `json:"data"`
		TotalCount int             `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 1, body.TotalCount)
	reviews.AssertExpectations(t)
}

func TestReviewHandler_List_ProductMissing(t *testing.T) {
	products := new(mockProductRepo)
	router := newTestRouter(products, new(mockReviewRepo))

	products.On("GetByID", mock.Anything, testProductID).Return(nil, apperrors.NotFound("product", testProductID))

	rec := doRequest(t, router, http.MethodGet, reviewsPath(testProductID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
