package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/SaifHossain4/student-feedback-dashboard/internal/domain"
	"github.com/SaifHossain4/student-feedback-dashboard/internal/dto"
	"github.com/SaifHossain4/student-feedback-dashboard/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type FeedbackHandler struct {
	feedbackRepo *repository.FeedbackRepository
}

func NewFeedbackHandler(feedbackRepo *repository.FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{feedbackRepo: feedbackRepo}
}

// List - GET /api/feedback
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	feedbacks, err := h.feedbackRepo.ListAll()
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(feedbacks)
}

// Create - POST /api/feedback
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var req dto.FeedbackInput
	if err := c.BodyParser(&req); err != nil {
		// Covers malformed JSON and non-integer ratings like 3.5 or "x".
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(
			"Rating must be an integer between 1 and 5",
		))
	}

	if msg := validateInput(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(msg))
	}

	feedback := &domain.Feedback{
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := h.feedbackRepo.Create(feedback); err != nil {
		return storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// Update - PUT /api/feedback/:id
func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid id"))
	}

	var req dto.FeedbackInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(
			"Rating must be an integer between 1 and 5",
		))
	}

	if msg := validateInput(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(msg))
	}

	feedback, err := h.feedbackRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Not found"))
		}
		return storeError(c, err)
	}

	// Only rating and comment are mutable; id and created_at stay as stored.
	feedback.Rating = req.Rating
	feedback.Comment = req.Comment

	if err := h.feedbackRepo.Update(feedback); err != nil {
		return storeError(c, err)
	}

	return c.JSON(feedback)
}

// Delete - DELETE /api/feedback/:id
//
// Always acknowledges with {ok:true}, whether or not a row existed.
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid id"))
	}

	if err := h.feedbackRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Server error"))
	}

	return c.JSON(dto.DeleteBody{OK: true})
}

// DBCheck - GET /api/db-check
func (h *FeedbackHandler) DBCheck(c *fiber.Ctx) error {
	now, err := h.feedbackRepo.Now()
	if err != nil {
		body := dto.DBCheckBody{OK: false, Error: err.Error()}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			body.Code = pgErr.Code
			body.Detail = pgErr.Detail
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	return c.JSON(dto.DBCheckBody{OK: true, Now: &now})
}

func validateInput(req *dto.FeedbackInput) string {
	if req.Rating < 1 || req.Rating > 5 {
		return "Rating must be an integer between 1 and 5"
	}
	if strings.TrimSpace(req.Comment) == "" {
		return "Comment is required"
	}
	return ""
}

// storeError turns a repository failure into a 500, surfacing the Postgres
// SQLSTATE when the driver provides one.
func storeError(c *fiber.Ctx, err error) error {
	body := dto.ErrorBody{Error: err.Error()}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		body.Code = pgErr.Code
		body.Detail = pgErr.Detail
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
