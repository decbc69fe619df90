package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"timesheet-api/internal/domain"
	"timesheet-api/internal/repository"
	"timesheet-api/internal/storage"
)

const (
	DefaultReceiptKeyPrefix = "receipts"
	DefaultReceiptURLExpiry = 15 * time.Minute
	DefaultMaxReceiptBytes  = 10 << 20
)

// ReceiptConfig locates receipt objects in the bucket.
type ReceiptConfig struct {
	Bucket    string
	KeyPrefix string
	URLExpiry time.Duration
	MaxBytes  int64
	Logger    logrus.FieldLogger
}

// ReceiptUpload is a file received from a client.
type ReceiptUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ReceiptURL is a time-limited download link for a stored receipt.
type ReceiptURL struct {
	URL       string
	ExpiresAt time.Time
}

// ReceiptService stores receipt files for timesheet entries.
type ReceiptService interface {
	Upload(ctx context.Context, userID, timesheetID int64, file ReceiptUpload) (*domain.Receipt, error)
	List(ctx context.Context, userID, timesheetID int64) ([]domain.Receipt, error)
	URL(ctx context.Context, userID, receiptID int64) (*ReceiptURL, error)
	PurgeTimesheet(ctx context.Context, userID, timesheetID int64) error
	MaxBytes() int64
}

type receiptService struct {
	receipts   repository.ReceiptRepository
	timesheets repository.TimesheetRepository
	store      storage.Service
	cfg        ReceiptConfig
	now        func() time.Time
}

// NewReceiptService builds the service. A nil store or empty bucket disables every
// operation with domain.ErrStorageUnavailable.
func NewReceiptService(receipts repository.ReceiptRepository, timesheets repository.TimesheetRepository, store storage.Service, cfg ReceiptConfig) ReceiptService {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultReceiptKeyPrefix
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = DefaultReceiptURLExpiry
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxReceiptBytes
	}
	if cfg.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		cfg.Logger = logger
	}
	return &receiptService{
		receipts:   receipts,
		timesheets: timesheets,
		store:      store,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *receiptService) MaxBytes() int64 {
	return s.cfg.MaxBytes
}

func (s *receiptService) enabled() bool {
	return s.store != nil && s.cfg.Bucket != ""
}

func (s *receiptService) Upload(ctx context.Context, userID, timesheetID int64, file ReceiptUpload) (*domain.Receipt, error) {
	if !s.enabled() {
		return nil, domain.ErrStorageUnavailable
	}
	if _, err := s.timesheets.GetForUser(ctx, timesheetID, userID); err != nil {
		return nil, err
	}
	if file.Body == nil {
		return nil, domain.NewValidationError("file is required")
	}
	if file.Size > s.cfg.MaxBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxBytes))
	}

	filename := filepath.Base(strings.TrimSpace(file.Filename))
	if filename == "." || filename == string(filepath.Separator) {
		filename = ""
	}
	contentType, err := receiptContentType(file.ContentType, filename)
	if err != nil {
		return nil, err
	}

	key := path.Join(s.timesheetPrefix(userID, timesheetID), uuid.NewString()+receiptExtension(filename, contentType))
	if _, err := s.store.PutObject(ctx, file.Body, storage.PutOptions{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		ContentType: contentType,
		Size:        file.Size,
	}); err != nil {
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	receipt := &domain.Receipt{
		TimesheetID: timesheetID,
		UserID:      userID,
		ObjectKey:   key,
		Filename:    filename,
		ContentType: contentType,
		Size:        file.Size,
	}
	if _, err := s.receipts.Create(ctx, receipt); err != nil {
		if cleanupErr := s.store.DeletePrefix(context.WithoutCancel(ctx), s.cfg.Bucket, key); cleanupErr != nil {
			s.cfg.Logger.WithError(cleanupErr).WithField("key", key).Warn("remove orphaned receipt object")
		}
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) List(ctx context.Context, userID, timesheetID int64) ([]domain.Receipt, error) {
	if !s.enabled() {
		return nil, domain.ErrStorageUnavailable
	}
	if _, err := s.timesheets.GetForUser(ctx, timesheetID, userID); err != nil {
		return nil, err
	}
	return s.receipts.ListByTimesheet(ctx, timesheetID, userID)
}

func (s *receiptService) URL(ctx context.Context, userID, receiptID int64) (*ReceiptURL, error) {
	if !s.enabled() {
		return nil, domain.ErrStorageUnavailable
	}
	receipt, err := s.receipts.GetForUser(ctx, receiptID, userID)
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(s.cfg.URLExpiry)
	url, err := s.store.GetObjectURL(ctx, s.cfg.Bucket, receipt.ObjectKey, s.cfg.URLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign receipt: %w", err)
	}
	return &ReceiptURL{URL: url, ExpiresAt: expiresAt}, nil
}

// PurgeTimesheet removes every stored object of a timesheet. It does not check
// ownership; callers invoke it after an owner-scoped delete succeeded.
func (s *receiptService) PurgeTimesheet(ctx context.Context, userID, timesheetID int64) error {
	if !s.enabled() {
		return nil
	}
	return s.store.DeletePrefix(ctx, s.cfg.Bucket, s.timesheetPrefix(userID, timesheetID)+"/")
}

func (s *receiptService) timesheetPrefix(userID, timesheetID int64) string {
	return fmt.Sprintf("%s/%d/%d", s.cfg.KeyPrefix, userID, timesheetID)
}

func receiptContentType(declared, filename string) (string, error) {
	contentType := strings.TrimSpace(declared)
	if contentType == "" || contentType == "application/octet-stream" {
		if guessed := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); guessed != "" {
			contentType = guessed
		}
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", domain.NewValidationError("file must be an image or PDF")
	}
	if !strings.HasPrefix(mediaType, "image/") && mediaType != "application/pdf" {
		return "", domain.NewValidationError("file must be an image or PDF")
	}
	return mediaType, nil
}

func receiptExtension(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
