package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"chainlink-service/internal/domain"
)

// matchupRecord is the relational shape of a matchup.
type matchupRecord struct {
	ID             string `gorm:"primaryKey"`
	League         string `gorm:"index:idx_matchup_identity,unique"`
	ExternalID     string `gorm:"index:idx_matchup_identity,unique"`
	HomeName       string
	HomeExternalID string
	HomeImage      string
	HomeValue      float64
	AwayName       string
	AwayExternalID string
	AwayImage      string
	AwayValue      float64
	Status         string
	StartTime      time.Time `gorm:"index"`
	Network        string
	Operator       string
	Question       string
	Winner         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (matchupRecord) TableName() string { return "matchups" }

type pickRecord struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_pick_user_active"`
	MatchupID string `gorm:"index"`
	Side      string
	Status    string
	Active    bool `gorm:"index:idx_pick_user_active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (pickRecord) TableName() string { return "picks" }

type streakRecord struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_streak_identity,unique"`
	Campaign  string `gorm:"index:idx_streak_identity,unique"`
	Count     int
	Longest   int
	Wins      int
	Losses    int
	Pushes    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (streakRecord) TableName() string { return "streaks" }

// GormStore is the postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

// OpenGorm connects to postgres and migrates the schema.
func OpenGorm(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing gorm handle and migrates the schema.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&matchupRecord{}, &pickRecord{}, &streakRecord{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) InsertMatchup(ctx context.Context, m *domain.Matchup) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	rec := toMatchupRecord(*m)
	return s.db.WithContext(ctx).Create(&rec).Error
}

func (s *GormStore) UpdateMatchup(ctx context.Context, m domain.Matchup) error {
	rec := toMatchupRecord(m)
	result := s.db.WithContext(ctx).Model(&matchupRecord{}).Where("id = ?", m.ID).Updates(&rec)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetMatchup(ctx context.Context, id string) (domain.Matchup, error) {
	var rec matchupRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Matchup{}, ErrNotFound
	}
	if err != nil {
		return domain.Matchup{}, err
	}
	return fromMatchupRecord(rec), nil
}

func (s *GormStore) ListMatchupsInWindow(ctx context.Context, league domain.League, from, to time.Time) ([]domain.Matchup, error) {
	var recs []matchupRecord
	err := s.db.WithContext(ctx).
		Where("league = ? AND start_time >= ? AND start_time < ?", string(league), from, to).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	matchups := make([]domain.Matchup, 0, len(recs))
	for _, rec := range recs {
		matchups = append(matchups, fromMatchupRecord(rec))
	}
	return matchups, nil
}

func (s *GormStore) InsertPick(ctx context.Context, p *domain.Pick) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	rec := toPickRecord(*p)
	return s.db.WithContext(ctx).Create(&rec).Error
}

func (s *GormStore) UpdatePick(ctx context.Context, p domain.Pick) error {
	rec := toPickRecord(p)
	// Select forces the zero-valued Active=false through gorm's update.
	result := s.db.WithContext(ctx).Model(&pickRecord{}).Where("id = ?", p.ID).
		Select("UserID", "MatchupID", "Side", "Status", "Active").Updates(&rec)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeletePick(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&pickRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetPick(ctx context.Context, id string) (domain.Pick, error) {
	var rec pickRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Pick{}, ErrNotFound
	}
	if err != nil {
		return domain.Pick{}, err
	}
	return fromPickRecord(rec), nil
}

func (s *GormStore) ActivePickForUser(ctx context.Context, userID string) (domain.Pick, error) {
	var rec pickRecord
	err := s.db.WithContext(ctx).First(&rec, "user_id = ? AND active = ?", userID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Pick{}, ErrNotFound
	}
	if err != nil {
		return domain.Pick{}, err
	}
	return fromPickRecord(rec), nil
}

func (s *GormStore) ListActivePicksForMatchup(ctx context.Context, matchupID string) ([]domain.Pick, error) {
	var recs []pickRecord
	err := s.db.WithContext(ctx).Where("matchup_id = ? AND active = ?", matchupID, true).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	picks := make([]domain.Pick, 0, len(recs))
	for _, rec := range recs {
		picks = append(picks, fromPickRecord(rec))
	}
	return picks, nil
}

func (s *GormStore) GetStreak(ctx context.Context, userID, campaign string) (domain.Streak, error) {
	var rec streakRecord
	err := s.db.WithContext(ctx).First(&rec, "user_id = ? AND campaign = ?", userID, campaign).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Streak{}, ErrNotFound
	}
	if err != nil {
		return domain.Streak{}, err
	}
	return fromStreakRecord(rec), nil
}

func (s *GormStore) SaveStreak(ctx context.Context, st domain.Streak) error {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	rec := toStreakRecord(st)
	return s.db.WithContext(ctx).Save(&rec).Error
}

func toMatchupRecord(m domain.Matchup) matchupRecord {
	return matchupRecord{
		ID:             m.ID,
		League:         string(m.League),
		ExternalID:     m.ExternalID,
		HomeName:       m.Home.Name,
		HomeExternalID: m.Home.ExternalID,
		HomeImage:      m.Home.Image,
		HomeValue:      m.Home.Value,
		AwayName:       m.Away.Name,
		AwayExternalID: m.Away.ExternalID,
		AwayImage:      m.Away.Image,
		AwayValue:      m.Away.Value,
		Status:         string(m.Status),
		StartTime:      m.StartTime,
		Network:        m.Network,
		Operator:       string(m.Operator),
		Question:       m.Question,
		Winner:         string(m.Winner),
	}
}

func fromMatchupRecord(rec matchupRecord) domain.Matchup {
	return domain.Matchup{
		ID:         rec.ID,
		League:     domain.League(rec.League),
		ExternalID: rec.ExternalID,
		Home: domain.Participant{
			Name:       rec.HomeName,
			ExternalID: rec.HomeExternalID,
			Image:      rec.HomeImage,
			Value:      rec.HomeValue,
		},
		Away: domain.Participant{
			Name:       rec.AwayName,
			ExternalID: rec.AwayExternalID,
			Image:      rec.AwayImage,
			Value:      rec.AwayValue,
		},
		Status:    domain.MatchupStatus(rec.Status),
		StartTime: rec.StartTime,
		Network:   rec.Network,
		Operator:  domain.Operator(rec.Operator),
		Question:  rec.Question,
		Winner:    domain.Side(rec.Winner),
	}
}

func toPickRecord(p domain.Pick) pickRecord {
	return pickRecord{
		ID:        p.ID,
		UserID:    p.UserID,
		MatchupID: p.MatchupID,
		Side:      string(p.Side),
		Status:    string(p.Status),
		Active:    p.Active,
	}
}

func fromPickRecord(rec pickRecord) domain.Pick {
	return domain.Pick{
		ID:        rec.ID,
		UserID:    rec.UserID,
		MatchupID: rec.MatchupID,
		Side:      domain.Side(rec.Side),
		Status:    domain.PickStatus(rec.Status),
		Active:    rec.Active,
	}
}

func toStreakRecord(st domain.Streak) streakRecord {
	return streakRecord{
		ID:       st.ID,
		UserID:   st.UserID,
		Campaign: st.Campaign,
		Count:    st.Count,
		Longest:  st.Longest,
		Wins:     st.Wins,
		Losses:   st.Losses,
		Pushes:   st.Pushes,
	}
}

func fromStreakRecord(rec streakRecord) domain.Streak {
	return domain.Streak{
		ID:       rec.ID,
		UserID:   rec.UserID,
		Campaign: rec.Campaign,
		Count:    rec.Count,
		Longest:  rec.Longest,
		Wins:     rec.Wins,
		Losses:   rec.Losses,
		Pushes:   rec.Pushes,
	}
}

var _ Store = (*GormStore)(nil)
