package usecase

import (
	"context"
	_ "embed"
	"time"

	"clinical-study/internal/domain/repository"
	"clinical-study/internal/infrastructure/storage"
	"clinical-study/pkg/csvexport"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	CSVContentType  = "text/csv; charset=utf-8"
	TextContentType = "text/plain; charset=utf-8"
)

//go:embed assets/variablenbeschreibung.txt
var variableDescription []byte

type ExportUsecase interface {
	// StudyCSV renders the wide study table, one line per follow-up.
	StudyCSV(ctx context.Context) ([]byte, error)
	VariableDescription() []byte
	CSVFileName() string
	VariablesFileName() string
	// Upload stores an export under its file name and returns the location.
	Upload(ctx context.Context, name string, body []byte) (string, error)
}

type exportUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	exportRepo repository.ExportRepository
	uploader   storage.Uploader
	now        func() time.Time
}

// NewExportUsecase builds the exporter. uploader may be nil when no bucket
// is configured.
func NewExportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	exportRepo repository.ExportRepository,
	uploader storage.Uploader,
) ExportUsecase {
	return &exportUsecase{
		db:         db,
		log:        log,
		exportRepo: exportRepo,
		uploader:   uploader,
		now:        time.Now,
	}
}

func (u *exportUsecase) StudyCSV(ctx context.Context) ([]byte, error) {
	table, err := u.exportRepo.StudyTable(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query export table: %+v", err)
		return nil, err
	}
	return csvexport.Encode(table.Columns, table.Rows), nil
}

func (u *exportUsecase) VariableDescription() []byte {
	return variableDescription
}

func (u *exportUsecase) CSVFileName() string {
	return "export_" + u.today() + ".csv"
}

func (u *exportUsecase) VariablesFileName() string {
	return "variablenbeschreibung_" + u.today() + ".txt"
}

func (u *exportUsecase) Upload(ctx context.Context, name string, body []byte) (string, error) {
	if u.uploader == nil {
		return "", ErrUploadNotConfigured
	}
	location, err := u.uploader.Upload(ctx, name, CSVContentType, body)
	if err != nil {
		u.log.Warnf("Failed to upload export: %+v", err)
		return "", err
	}
	u.log.WithField("location", location).Info("Export uploaded")
	return location, nil
}

// today is the UTC calendar date used in download file names.
func (u *exportUsecase) today() string {
	return u.now().UTC().Format("2006-01-02")
}
