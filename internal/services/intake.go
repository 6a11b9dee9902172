package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/gcs"
	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
	"github.com/yungbote/assetvault-backend/internal/types"
)

// FileUpload is one incoming file in an intake upload.
type FileUpload struct {
	FileName  string
	MimeType  string
	SizeBytes int64
	Reader    io.Reader
}

// IntakeMetadata carries the editable taxonomy fields of a staged item.
type IntakeMetadata struct {
	RawName     string
	Category    string
	Property    string
	SubProperty string
	Notes       string
	Tags        []string
}

// IntakeFileView pairs a staged file row with a short-lived signed view URL.
type IntakeFileView struct {
	File    *types.IntakeFile `json:"file"`
	ViewURL string            `json:"view_url,omitempty"`
}

type IntakeItemDetail struct {
	Item  *types.IntakeItem `json:"item"`
	Files []IntakeFileView  `json:"files"`
}

type IntakeService interface {
	CreateBatch(ctx context.Context, month, source, createdBy string) (*types.IntakeBatch, error)
	// AddItem stages one item with its files: uploads every file's bytes to
	// the intake bucket and records the rows.
	AddItem(ctx context.Context, batchID uuid.UUID, uploader, rawName string, uploads []FileUpload) (*types.IntakeItem, error)
	// SaveMetadata rejects edits once an item has left the unsorted status.
	SaveMetadata(ctx context.Context, itemID uuid.UUID, meta IntakeMetadata) error
	ListUnsorted(ctx context.Context, limit int) ([]*types.IntakeItem, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*IntakeItemDetail, error)
	ArchiveItem(ctx context.Context, itemID uuid.UUID) error
}

type intakeService struct {
	db            *gorm.DB
	log           *logger.Logger
	bucketService gcs.BucketService
	intakeBucket  string
	batchRepo     repos.IntakeBatchRepo
	itemRepo      repos.IntakeItemRepo
	fileRepo      repos.IntakeFileRepo
	auditService  AuditService
}

func NewIntakeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	bucketService gcs.BucketService,
	intakeBucket string,
	batchRepo repos.IntakeBatchRepo,
	itemRepo repos.IntakeItemRepo,
	fileRepo repos.IntakeFileRepo,
	auditService AuditService,
) IntakeService {
	return &intakeService{
		db:            db,
		log:           baseLog.With("service", "IntakeService"),
		bucketService: bucketService,
		intakeBucket:  intakeBucket,
		batchRepo:     batchRepo,
		itemRepo:      itemRepo,
		fileRepo:      fileRepo,
		auditService:  auditService,
	}
}

func (is *intakeService) CreateBatch(ctx context.Context, month, source, createdBy string) (*types.IntakeBatch, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return nil, fmt.Errorf("month is required")
	}
	batch := &types.IntakeBatch{
		ID:        uuid.New(),
		Month:     month,
		Source:    strings.TrimSpace(source),
		CreatedBy: createdBy,
	}
	if _, err := is.batchRepo.Create(ctx, nil, []*types.IntakeBatch{batch}); err != nil {
		return nil, fmt.Errorf("failed to create intake batch: %w", err)
	}
	return batch, nil
}

func (is *intakeService) AddItem(ctx context.Context, batchID uuid.UUID, uploader, rawName string, uploads []FileUpload) (*types.IntakeItem, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("at least one file is required")
	}
	item := &types.IntakeItem{
		ID:       uuid.New(),
		BatchID:  batchID,
		Uploader: uploader,
		Status:   types.IntakeStatusUnsorted,
		RawName:  strings.TrimSpace(rawName),
	}
	item.SetTags(nil)
	if _, err := is.itemRepo.Create(ctx, nil, []*types.IntakeItem{item}); err != nil {
		return nil, fmt.Errorf("failed to create intake item: %w", err)
	}

	fileRows := make([]*types.IntakeFile, 0, len(uploads))
	for i, upload := range uploads {
		if upload.Reader == nil {
			return nil, fmt.Errorf("file %d has no content", i)
		}
		key := intakeObjectKey(item.ID, upload.FileName)
		if err := is.bucketService.Upload(ctx, is.intakeBucket, key, upload.Reader, upload.MimeType); err != nil {
			return nil, fmt.Errorf("failed to upload %q: %w", upload.FileName, err)
		}
		fileRows = append(fileRows, &types.IntakeFile{
			ID:           uuid.New(),
			IntakeItemID: item.ID,
			Bucket:       is.intakeBucket,
			ObjectPath:   key,
			FileName:     upload.FileName,
			MimeType:     upload.MimeType,
			SizeBytes:    upload.SizeBytes,
		})
	}
	if _, err := is.fileRepo.Create(ctx, nil, fileRows); err != nil {
		return nil, fmt.Errorf("failed to record intake files: %w", err)
	}

	is.auditService.Append(ctx, uploader, "intake_item_created", "intake_item", item.ID.String(), map[string]interface{}{
		"batch_id":   batchID.String(),
		"file_count": len(fileRows),
	})
	return item, nil
}

func (is *intakeService) SaveMetadata(ctx context.Context, itemID uuid.UUID, meta IntakeMetadata) error {
	item, err := is.itemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return fmt.Errorf("failed to load intake item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("intake item not found")
	}
	if item.Status != types.IntakeStatusUnsorted {
		return fmt.Errorf("item is no longer unsorted; metadata is read-only")
	}
	holder := &types.IntakeItem{}
	holder.SetTags(meta.Tags)
	updates := map[string]interface{}{
		"raw_name":     strings.TrimSpace(meta.RawName),
		"category":     strings.TrimSpace(meta.Category),
		"property":     strings.TrimSpace(meta.Property),
		"sub_property": strings.TrimSpace(meta.SubProperty),
		"notes":        meta.Notes,
		"tags":         holder.Tags,
	}
	if err := is.itemRepo.UpdateFields(ctx, nil, itemID, updates); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

func (is *intakeService) ListUnsorted(ctx context.Context, limit int) ([]*types.IntakeItem, error) {
	return is.itemRepo.ListByStatus(ctx, nil, types.IntakeStatusUnsorted, limit)
}

func (is *intakeService) GetItem(ctx context.Context, itemID uuid.UUID) (*IntakeItemDetail, error) {
	item, err := is.itemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load intake item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("intake item not found")
	}
	files, err := is.fileRepo.GetByItemID(ctx, nil, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load intake files: %w", err)
	}
	views := make([]IntakeFileView, 0, len(files))
	for _, f := range files {
		view := IntakeFileView{File: f}
		url, err := is.bucketService.SignedDownloadURL(f.Bucket, f.ObjectPath, gcs.SignedURLTTL)
		if err != nil {
			is.log.Warn("Failed to sign view URL for intake file", "intake_file_id", f.ID, "error", err)
		} else {
			view.ViewURL = url
		}
		views = append(views, view)
	}
	return &IntakeItemDetail{Item: item, Files: views}, nil
}

func (is *intakeService) ArchiveItem(ctx context.Context, itemID uuid.UUID) error {
	affected, err := is.itemRepo.UpdateStatusIf(ctx, nil, itemID, types.IntakeStatusUnsorted, types.IntakeStatusArchived)
	if err != nil {
		return fmt.Errorf("failed to archive intake item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item is no longer unsorted")
	}
	return nil
}
