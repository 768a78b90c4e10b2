package store

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/yalatech/venuebook-backend/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection as a BookingStore.
func NewGormStore(db *gorm.DB) BookingStore {
	return &gormStore{db: db}
}

func (s *gormStore) Insert(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *gormStore) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) ListAllOrdered(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Order("status DESC, start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) ListOverlapping(ctx context.Context, resource string, start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("resource = ? AND status = ?", resource, models.BookingStatusApproved).
		Where("NOT (end_time <= ? OR start_time >= ?)", start, end).
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) ListApprovedAfter(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("status = ? AND start_time > ?", models.BookingStatusApproved, cutoff).
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) ListUpcoming(ctx context.Context, now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("start_time >= ?", now).
		Order("start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) Search(ctx context.Context, queryID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("booker_id = ? OR participants LIKE ?", queryID, "%"+queryID+"%").
		Order("start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error {
	return s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *gormStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

func (s *gormStore) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).Count(&count).Error
	return count, err
}

func (s *gormStore) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (s *gormStore) Atomically(ctx context.Context, fn func(BookingStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
