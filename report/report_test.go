package report

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"accident-map/apperr"
	"accident-map/logger"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// fileHeader builds a multipart.FileHeader the way a parsed form would.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(MaxImageSize * 2); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestSubmitWithoutImage(t *testing.T) {
	s := NewService(logger.Discard())

	r, err := s.Submit(context.Background(), Submission{Title: "  Collision on A64  ", Description: "Two cars"}, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if r.ID == "" || r.Title != "Collision on A64" {
		t.Fatalf("unexpected receipt: %+v", r)
	}
	if r.ImageType != "" {
		t.Fatalf("expected no image, got %q", r.ImageType)
	}
}

func TestSubmitWithImage(t *testing.T) {
	s := NewService(logger.Discard())
	fh := fileHeader(t, "photo.png", append(pngHeader, make([]byte, 64)...))

	r, err := s.Submit(context.Background(), Submission{Title: "Pothole"}, fh)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if r.ImageType != "image/png" || r.ImageSize != fh.Size {
		t.Fatalf("unexpected image metadata: %+v", r)
	}
}

func TestSubmitRejectsInvalid(t *testing.T) {
	s := NewService(logger.Discard())

	tests := []struct {
		name  string
		sub   Submission
		image []byte
	}{
		{"missing title", Submission{Title: "   "}, nil},
		{"long title", Submission{Title: strings.Repeat("a", 121)}, nil},
		{"long description", Submission{Title: "ok", Description: strings.Repeat("d", 2001)}, nil},
		{"not an image", Submission{Title: "ok"}, []byte("just some text, not a picture")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fh *multipart.FileHeader
			if tt.image != nil {
				fh = fileHeader(t, "file.png", tt.image)
			}
			_, err := s.Submit(context.Background(), tt.sub, fh)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSubmitRejectsOversizedImage(t *testing.T) {
	s := NewService(logger.Discard())
	fh := &multipart.FileHeader{Filename: "big.png", Size: MaxImageSize + 1}

	_, err := s.Submit(context.Background(), Submission{Title: "ok"}, fh)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidationMessageNamesField(t *testing.T) {
	s := NewService(logger.Discard())

	_, err := s.Submit(context.Background(), Submission{}, nil)
	if err == nil || !strings.Contains(err.Error(), "title is required") {
		t.Fatalf("expected title message, got %v", err)
	}
}
