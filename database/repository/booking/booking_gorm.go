package bookingRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"petcare/models"

	"gorm.io/gorm"
)

// bookingRecord is the SQL row shape of a booking.
type bookingRecord struct {
	ID                    string `gorm:"primaryKey"`
	ClientID              string `gorm:"index;not null"`
	ProviderID            string `gorm:"index;not null"`
	Status                string `gorm:"not null"`
	ScheduledStart        time.Time
	GrandTotal            float64
	ConfirmedAt           *time.Time
	StartedAt             *time.Time
	CompletionRequestedAt *time.Time
	CompletedAt           *time.Time
	CancelledAt           *time.Time
	LateFlag              bool
	MinutesLate           int
	CancelledBy           string
	CancelledByRole       string
	EvidenceNotes         string
	EvidenceAttachments   string // JSON array of attachment URLs
	HasEvidence           bool
	Version               int64 `gorm:"not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (bookingRecord) TableName() string { return "bookings" }

func (r bookingRecord) toModel() *models.Booking {
	b := &models.Booking{
		ID:                    r.ID,
		ClientID:              r.ClientID,
		ProviderID:            r.ProviderID,
		Status:                models.BookingStatus(r.Status),
		ScheduledStart:        r.ScheduledStart,
		GrandTotal:            r.GrandTotal,
		ConfirmedAt:           r.ConfirmedAt,
		StartedAt:             r.StartedAt,
		CompletionRequestedAt: r.CompletionRequestedAt,
		CompletedAt:           r.CompletedAt,
		CancelledAt:           r.CancelledAt,
		LateFlag:              r.LateFlag,
		MinutesLate:           r.MinutesLate,
		CancelledBy:           r.CancelledBy,
		CancelledByRole:       models.Role(r.CancelledByRole),
		Version:               r.Version,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
	if r.HasEvidence {
		b.Evidence = &models.CompletionEvidence{Notes: r.EvidenceNotes, Attachments: parseAttachments(r.EvidenceAttachments)}
	}
	return b
}

func recordFromModel(b *models.Booking) bookingRecord {
	r := bookingRecord{
		ID:                    b.ID,
		ClientID:              b.ClientID,
		ProviderID:            b.ProviderID,
		Status:                string(b.Status),
		ScheduledStart:        b.ScheduledStart,
		GrandTotal:            b.GrandTotal,
		ConfirmedAt:           b.ConfirmedAt,
		StartedAt:             b.StartedAt,
		CompletionRequestedAt: b.CompletionRequestedAt,
		CompletedAt:           b.CompletedAt,
		CancelledAt:           b.CancelledAt,
		LateFlag:              b.LateFlag,
		MinutesLate:           b.MinutesLate,
		CancelledBy:           b.CancelledBy,
		CancelledByRole:       string(b.CancelledByRole),
		Version:               b.Version,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
	if b.Evidence != nil {
		r.HasEvidence = true
		r.EvidenceNotes = b.Evidence.Notes
		r.EvidenceAttachments = attachmentsJSON(b.Evidence.Attachments)
	}
	return r
}

// GormBookingRepo implements BookingRepository on a SQL database through GORM.
type GormBookingRepo struct {
	db *gorm.DB
}

func NewGormBookingRepo(db *gorm.DB) *GormBookingRepo {
	return &GormBookingRepo{db: db}
}

// Migrate creates or updates the bookings table.
func (repo *GormBookingRepo) Migrate() error {
	if err := repo.db.AutoMigrate(&bookingRecord{}); err != nil {
		return fmt.Errorf("failed to migrate bookings table: %w", err)
	}
	return nil
}

func (repo *GormBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var rec bookingRecord
	err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return rec.toModel(), nil
}

func (repo *GormBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	prepareForInsert(booking)
	rec := recordFromModel(booking)
	if err := repo.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// ConditionalUpdate issues UPDATE ... WHERE id = ? AND version = ? and treats
// zero affected rows as either a missing booking or a lost race.
func (repo *GormBookingRepo) ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, mutation models.BookingMutation) (int64, error) {
	fields := mutationColumns(mutation)
	fields["version"] = expectedVersion + 1

	result := repo.db.WithContext(ctx).
		Model(&bookingRecord{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("error updating booking %s: %w", id, result.Error)
	}
	if result.RowsAffected == 1 {
		return expectedVersion + 1, nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).Model(&bookingRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error checking booking %s after missed update: %w", id, err)
	}
	if count == 0 {
		return 0, ErrNotFound
	}
	return 0, ErrVersionConflict
}

func (repo *GormBookingRepo) ListByParticipant(ctx context.Context, participantID string, status models.BookingStatus, limit int) ([]models.Booking, error) {
	query := repo.db.WithContext(ctx).
		Where("(client_id = ? OR provider_id = ?)", participantID, participantID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var recs []bookingRecord
	if err := query.Order("created_at DESC").Order("id").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("error listing bookings for %s: %w", participantID, err)
	}
	bookings := make([]models.Booking, 0, len(recs))
	for _, rec := range recs {
		bookings = append(bookings, *rec.toModel())
	}
	return bookings, nil
}

func mutationColumns(m models.BookingMutation) map[string]interface{} {
	cols := map[string]interface{}{}
	if m.Status != "" {
		cols["status"] = string(m.Status)
	}
	if m.ConfirmedAt != nil {
		cols["confirmed_at"] = *m.ConfirmedAt
	}
	if m.StartedAt != nil {
		cols["started_at"] = *m.StartedAt
	}
	if m.CompletionRequestedAt != nil {
		cols["completion_requested_at"] = *m.CompletionRequestedAt
	}
	if m.CompletedAt != nil {
		cols["completed_at"] = *m.CompletedAt
	}
	if m.CancelledAt != nil {
		cols["cancelled_at"] = *m.CancelledAt
	}
	if m.LateFlag != nil {
		cols["late_flag"] = *m.LateFlag
	}
	if m.MinutesLate != nil {
		cols["minutes_late"] = *m.MinutesLate
	}
	if m.CancelledBy != "" {
		cols["cancelled_by"] = m.CancelledBy
	}
	if m.CancelledByRole != "" {
		cols["cancelled_by_role"] = string(m.CancelledByRole)
	}
	if m.Evidence != nil {
		cols["has_evidence"] = true
		cols["evidence_notes"] = m.Evidence.Notes
		cols["evidence_attachments"] = attachmentsJSON(m.Evidence.Attachments)
	}
	if !m.UpdatedAt.IsZero() {
		cols["updated_at"] = m.UpdatedAt
	}
	return cols
}

func attachmentsJSON(attachments []string) string {
	if attachments == nil {
		attachments = []string{}
	}
	raw, _ := json.Marshal(attachments)
	return string(raw)
}

func parseAttachments(raw string) []string {
	var out []string
	if raw == "" {
		return out
	}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}
