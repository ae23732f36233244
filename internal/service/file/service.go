package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

var ErrUnsupportedScan = errors.New("invalid file type: only jpg, jpeg, png or pdf allowed")

const (
	maxScanSize    = 400 * 1024
	minScanSize    = 80 * 1024
	targetScanSize = 250 * 1024
)

type FileService interface {
	// UploadCertificateScan stores the scanned medical certificate; photos
	// are recompressed to JPEG, PDFs kept as sent
	UploadCertificateScan(ctx context.Context, companyID, certificateID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, key string) error
	GetFileURL(ctx context.Context, key string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadCertificateScan implements FileService.
func (s *fileServiceImpl) UploadCertificateScan(ctx context.Context, companyID, certificateID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	dir := path.Join("certificates", companyID)
	uniqueID := uuid.New().String()

	switch ext {
	case ".pdf":
		key := path.Join(dir, fmt.Sprintf("%s-%s.pdf", certificateID, uniqueID))
		uploaded, err := s.storage.Upload(ctx, file, key, "application/pdf")
		if err != nil {
			return "", fmt.Errorf("failed to upload certificate scan: %w", err)
		}
		return uploaded, nil

	case ".jpg", ".jpeg", ".png":
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read image: %w", err)
		}

		compressed, err := compressImage(buffer, maxScanSize, minScanSize)
		if err != nil {
			return "", fmt.Errorf("failed to compress image: %w", err)
		}

		// always JPEG after compression
		key := path.Join(dir, fmt.Sprintf("%s-%s.jpg", certificateID, uniqueID))
		uploaded, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
		if err != nil {
			return "", fmt.Errorf("failed to upload certificate scan: %w", err)
		}
		return uploaded, nil
	}

	return "", ErrUnsupportedScan
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

// GetFileURL returns the URL serving the file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, key string) (string, error) {
	return s.storage.GetURL(ctx, key)
}

// ==================== HELPER FUNCTIONS ====================

// compressImage brings a JPEG/PNG into the [minSize, maxSize] byte range,
// lowering quality first and resizing when that is not enough. Small
// inputs that already fit are returned untouched.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}

		if len(compressed) > maxSize {
			quality -= 5
			continue
		}

		// too small: accept, a scan must stay legible
		return compressed, nil
	}

	ratio := math.Sqrt(float64(targetScanSize) / float64(len(compressed)))
	newWidth := int(float64(originalWidth) * ratio)
	newHeight := int(float64(originalHeight) * ratio)

	// CID and physician stamp must remain readable
	if newWidth < 1000 {
		newWidth = 1000
	}
	if newHeight < 700 {
		newHeight = 700
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resizeImage(img, newWidth, newHeight), &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
