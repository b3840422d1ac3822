package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/genapagie/ovinpro/internal/config"
	"github.com/genapagie/ovinpro/internal/domain/models"
)

const registerRange = "Registre!A:G"

// FlockRegister mirrors saved sheep records into a lab spreadsheet so the
// breeding program keeps a shared register outside each breeder's database.
type FlockRegister struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewFlockRegister builds a Google Sheets backed register instance.
func NewFlockRegister(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*FlockRegister, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &FlockRegister{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSheep appends one register row for a saved animal.
func (r *FlockRegister) AppendSheep(ctx context.Context, sheep models.Sheep) error {
	row := []interface{}{
		sheep.CreatedAt.Format("2006-01-02"),
		sheep.TagID,
		string(sheep.Breed),
		sheep.AgeLabel(),
		string(sheep.State),
		sheep.MammaryScore,
		sheep.Feedback,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, registerRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append register row for %s: %w", sheep.TagID, err)
	}

	r.logger.Debug("sheep appended to flock register", zap.String("tag_id", sheep.TagID))
	return nil
}
