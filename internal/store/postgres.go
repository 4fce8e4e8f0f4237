package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/patelshaan/imposter/internal/hub"
	"github.com/patelshaan/imposter/internal/models"
)

// roomRecord is the relational shape of a room: one row per room holding the
// whole document as jsonb plus the version counter the optimistic CAS runs on.
type roomRecord struct {
	Code      string `gorm:"primaryKey;size:6"`
	Version   int64  `gorm:"not null"`
	Doc       []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (roomRecord) TableName() string { return "room_records" }

var patchFieldPattern = regexp.MustCompile(`^[a-z_]+$`)

// Postgres is a Store backed by a single jsonb-per-room table. Change
// notification uses the in-process hub for this node's own commits and a
// version poll for commits made by other nodes.
type Postgres struct {
	db           *gorm.DB
	hub          *hub.Hub
	retries      int
	pollInterval time.Duration
}

// NewPostgres connects, migrates the room_records table and returns the
// driver. retries bounds the Transact conflict loop.
func NewPostgres(dsn string, retries int, pollInterval time.Duration) (*Postgres, error) {
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := db.AutoMigrate(&roomRecord{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrUnavailable, err)
	}

	if retries < 1 {
		retries = 8
	}
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &Postgres{
		db:           db,
		hub:          hub.NewHub(),
		retries:      retries,
		pollInterval: pollInterval,
	}, nil
}

func decodeRecord(rec *roomRecord) (*models.Room, error) {
	room := &models.Room{}
	if err := json.Unmarshal(rec.Doc, room); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, rec.Code, err)
	}
	return room, nil
}

func (p *Postgres) read(ctx context.Context, code string) (*roomRecord, *models.Room, error) {
	var rec roomRecord
	err := p.db.WithContext(ctx).First(&rec, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrAbsent
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	room, err := decodeRecord(&rec)
	if err != nil {
		return nil, nil, err
	}
	return &rec, room, nil
}

func (p *Postgres) Get(ctx context.Context, code string) (*models.Room, error) {
	_, room, err := p.read(ctx, code)
	return room, err
}

func (p *Postgres) Put(ctx context.Context, code string, room *models.Room) error {
	doc, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("put %s: %w", code, err)
	}
	rec := roomRecord{Code: code, Version: 1, Doc: doc}
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	p.hub.Broadcast(hub.Snapshot{Code: code, Version: rec.Version, Room: room.Clone()})
	return nil
}

func (p *Postgres) Patch(ctx context.Context, code string, fields map[string]any) error {
	expr := "doc"
	args := make([]any, 0, len(fields)+1)
	for field, value := range fields {
		if !patchFieldPattern.MatchString(field) {
			return fmt.Errorf("patch %s: invalid field %q", code, field)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("patch %s: %w", code, err)
		}
		expr = fmt.Sprintf("jsonb_set(%s, '{%s}', ?::jsonb)", expr, field)
		args = append(args, string(encoded))
	}
	args = append(args, code)

	res := p.db.WithContext(ctx).Exec(
		fmt.Sprintf("UPDATE room_records SET doc = %s, version = version + 1, updated_at = NOW() WHERE code = ?", expr),
		args...,
	)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAbsent
	}

	if rec, room, err := p.read(ctx, code); err == nil {
		p.hub.Broadcast(hub.Snapshot{Code: code, Version: rec.Version, Room: room})
	}
	return nil
}

func (p *Postgres) Remove(ctx context.Context, code string) error {
	rec, _, err := p.read(ctx, code)
	if errors.Is(err, ErrAbsent) {
		return nil
	}
	if err != nil {
		return err
	}
	res := p.db.WithContext(ctx).Delete(&roomRecord{}, "code = ?", code)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, res.Error)
	}
	if res.RowsAffected > 0 {
		p.hub.Broadcast(hub.Snapshot{Code: code, Version: rec.Version + 1, Room: nil})
	}
	return nil
}

func (p *Postgres) Transact(ctx context.Context, code string, fn TransformFunc) (*models.Room, error) {
	for attempt := 0; attempt < p.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, observed, err := p.read(ctx, code)
		exists := true
		if errors.Is(err, ErrAbsent) {
			exists = false
		} else if err != nil {
			return nil, err
		}

		var input *models.Room
		if exists {
			input = observed.Clone()
		}
		next, fnErr := fn(input)
		if fnErr != nil {
			return observed, fnErr
		}

		switch {
		case next == nil && !exists:
			return nil, nil

		case next == nil:
			res := p.db.WithContext(ctx).
				Where("code = ? AND version = ?", code, rec.Version).
				Delete(&roomRecord{})
			if res.Error != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, res.Error)
			}
			if res.RowsAffected == 0 {
				continue // concurrent commit, re-read
			}
			p.hub.Broadcast(hub.Snapshot{Code: code, Version: rec.Version + 1, Room: nil})
			return nil, nil

		case !exists:
			doc, err := json.Marshal(next)
			if err != nil {
				return nil, fmt.Errorf("transact %s: %w", code, err)
			}
			created := roomRecord{Code: code, Version: 1, Doc: doc}
			err = p.db.WithContext(ctx).Create(&created).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			p.hub.Broadcast(hub.Snapshot{Code: code, Version: 1, Room: next.Clone()})
			return next, nil

		default:
			doc, err := json.Marshal(next)
			if err != nil {
				return nil, fmt.Errorf("transact %s: %w", code, err)
			}
			res := p.db.WithContext(ctx).Model(&roomRecord{}).
				Where("code = ? AND version = ?", code, rec.Version).
				Updates(map[string]any{"doc": doc, "version": rec.Version + 1})
			if res.Error != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, res.Error)
			}
			if res.RowsAffected == 0 {
				continue
			}
			p.hub.Broadcast(hub.Snapshot{Code: code, Version: rec.Version + 1, Room: next.Clone()})
			return next, nil
		}
	}
	return nil, ErrConflict
}

func (p *Postgres) List(ctx context.Context) ([]*models.Room, error) {
	var recs []roomRecord
	if err := p.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	rooms := make([]*models.Room, 0, len(recs))
	for i := range recs {
		room, err := decodeRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (p *Postgres) Subscribe(ctx context.Context, code string, onChange func(*models.Room), onError func(error)) (*Subscription, error) {
	rec, initial, err := p.read(ctx, code)
	if err != nil {
		return nil, err
	}

	client := make(hub.Client, 16)
	p.hub.Subscribe(code, client)

	done := make(chan struct{})
	go func() {
		defer p.hub.Unsubscribe(code, client)

		last := rec.Version
		onChange(initial)

		ticker := time.NewTicker(p.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case snap, ok := <-client:
				if !ok {
					return
				}
				if snap.Version == last {
					continue
				}
				last = snap.Version
				onChange(snap.Room)
				if snap.Room == nil {
					return
				}

			case <-ticker.C:
				// Catches commits made by other nodes, which never reach
				// this process's hub.
				latest, room, err := p.read(ctx, code)
				if errors.Is(err, ErrAbsent) {
					onChange(nil)
					return
				}
				if err != nil {
					onError(err)
					return
				}
				if latest.Version != last {
					last = latest.Version
					onChange(room)
				}

			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	return NewSubscription(func() { close(done) }), nil
}

func (p *Postgres) Close(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
