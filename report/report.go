// Package report accepts accident reports submitted from the map page.
// Reports are validated and logged; they are not stored.
package report

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"accident-map/apperr"
	"accident-map/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const MaxImageSize = 5 << 20

// AllowedImageTypes are the accepted image formats, detected from content.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Submission is the text part of the report form.
type Submission struct {
	Title       string `form:"title" json:"title" validate:"required,max=120"`
	Description string `form:"description" json:"description" validate:"max=2000"`
}

// Receipt acknowledges an accepted report.
type Receipt struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ImageType   string    `json:"image_type,omitempty"`
	ImageSize   int64     `json:"image_size,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Service struct {
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewService(log *logger.Logger) *Service {
	return &Service{validate: validator.New(), log: log, now: time.Now}
}

// Submit validates a report and its optional image and acknowledges it.
func (s *Service) Submit(ctx context.Context, sub Submission, image *multipart.FileHeader) (Receipt, error) {
	sub.Title = strings.TrimSpace(sub.Title)
	sub.Description = strings.TrimSpace(sub.Description)

	if err := s.validate.Struct(sub); err != nil {
		return Receipt{}, validationError(err)
	}

	receipt := Receipt{ID: uuid.NewString(), Title: sub.Title, SubmittedAt: s.now().UTC()}

	if image != nil {
		kind, err := checkImage(image)
		if err != nil {
			return Receipt{}, err
		}
		receipt.ImageType = kind
		receipt.ImageSize = image.Size
	}

	s.log.WithContext(ctx).Info("accident report submitted",
		"report_id", receipt.ID,
		"title", sub.Title,
		"description_length", len(sub.Description),
		"image_type", receipt.ImageType,
		"image_size", receipt.ImageSize,
	)
	return receipt, nil
}

func checkImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size <= 0 {
		return "", apperr.Validation("image is empty")
	}
	if fh.Size > MaxImageSize {
		return "", apperr.Validation(fmt.Sprintf("image exceeds %d bytes", MaxImageSize))
	}

	f, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.KindBadRequest, "cannot read image", err)
	}
	defer func() {
		_ = f.Close()
	}()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", apperr.Wrap(apperr.KindBadRequest, "cannot read image", err)
	}
	if !AllowedImageTypes[mt.String()] {
		return "", apperr.Validation(fmt.Sprintf("image type %q is not allowed", mt.String()))
	}
	return mt.String(), nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.KindValidation, "invalid report", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return apperr.Wrap(apperr.KindValidation, strings.Join(msgs, "; "), err)
}
