package postgres

import (
	"encoding/json"
	"time"

	"haircare-match-service/internal/domain"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ProductModel is the GORM model for the products table.
type ProductModel struct {
	ID          string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(300);not null"`
	Brand       string         `gorm:"type:varchar(150);index"`
	Category    string         `gorm:"type:varchar(30);not null;index"`
	Ingredients pq.StringArray `gorm:"type:text[]"`
	Price       float64        `gorm:"type:decimal(10,2);default:0"`
	ImageURL    string         `gorm:"type:varchar(500)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts ProductModel to domain.Product.
func (m *ProductModel) ToDomain() *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Brand:       m.Brand,
		Category:    domain.ProductCategory(m.Category),
		Ingredients: m.Ingredients,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProductFromDomain creates a ProductModel from domain.Product.
func ProductFromDomain(p *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    string(p.Category),
		Ingredients: domain.NormalizeIngredients(p.Ingredients),
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// RoutineModel is the GORM model for the routines table.
type RoutineModel struct {
	ID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string `gorm:"type:varchar(200);not null"`
	OwnerID string `gorm:"type:varchar(100);not null;index"`
	Public  bool   `gorm:"default:false;index"`

	Steps []RoutineStepModel `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for RoutineModel.
func (RoutineModel) TableName() string {
	return "routines"
}

// RoutineStepModel is the GORM model for the routine_steps table.
type RoutineStepModel struct {
	ID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoutineID string `gorm:"type:uuid;not null;index"`
	Position  int    `gorm:"not null"`
	Category  string `gorm:"type:varchar(30);not null"`
	ProductID string `gorm:"type:uuid"`

	FrequencyInterval int    `gorm:"default:1"`
	FrequencyUnit     string `gorm:"type:varchar(10);default:'week'"`

	Note string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for RoutineStepModel.
func (RoutineStepModel) TableName() string {
	return "routine_steps"
}

// ToDomain converts RoutineModel (with preloaded steps) to domain.Routine.
func (m *RoutineModel) ToDomain() *domain.Routine {
	steps := make([]domain.RoutineStep, len(m.Steps))
	for i, s := range m.Steps {
		steps[i] = domain.RoutineStep{
			ID:        s.ID,
			Position:  s.Position,
			Category:  domain.ProductCategory(s.Category),
			ProductID: s.ProductID,
			Frequency: domain.Frequency{
				Interval: s.FrequencyInterval,
				Unit:     domain.FrequencyUnit(s.FrequencyUnit),
			},
			Note: s.Note,
		}
	}

	return &domain.Routine{
		ID:        m.ID,
		Name:      m.Name,
		OwnerID:   m.OwnerID,
		Public:    m.Public,
		Steps:     steps,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// RoutineFromDomain creates a RoutineModel from domain.Routine.
func RoutineFromDomain(r *domain.Routine) *RoutineModel {
	steps := make([]RoutineStepModel, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = RoutineStepModel{
			ID:                s.ID,
			RoutineID:         r.ID,
			Position:          s.Position,
			Category:          string(s.Category),
			ProductID:         s.ProductID,
			FrequencyInterval: s.Frequency.Interval,
			FrequencyUnit:     string(s.Frequency.Unit),
			Note:              s.Note,
		}
	}

	return &RoutineModel{
		ID:        r.ID,
		Name:      r.Name,
		OwnerID:   r.OwnerID,
		Public:    r.Public,
		Steps:     steps,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// InteractionModel is the GORM model for the interactions table.
// Rows are append-only; the profile code is denormalized at write time so
// engagement scoring never needs a profile lookup per event.
type InteractionModel struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      string `gorm:"type:varchar(100);not null;index"`
	ProfileCode string `gorm:"type:varchar(20)"`
	EntityKind  string `gorm:"type:varchar(20);not null;index:idx_interactions_entity"`
	EntityID    string `gorm:"type:varchar(100);not null;index:idx_interactions_entity"`
	Type        string `gorm:"type:varchar(20);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName returns the table name for InteractionModel.
func (InteractionModel) TableName() string {
	return "interactions"
}

// ToDomain converts InteractionModel to domain.InteractionEvent.
func (m *InteractionModel) ToDomain() *domain.InteractionEvent {
	return &domain.InteractionEvent{
		ID:          m.ID,
		UserID:      m.UserID,
		ProfileCode: m.ProfileCode,
		EntityKind:  domain.EntityKind(m.EntityKind),
		EntityID:    m.EntityID,
		Type:        domain.InteractionType(m.Type),
		CreatedAt:   m.CreatedAt,
	}
}

// InteractionFromDomain creates an InteractionModel from domain.InteractionEvent.
func InteractionFromDomain(e *domain.InteractionEvent) *InteractionModel {
	return &InteractionModel{
		ID:          e.ID,
		UserID:      e.UserID,
		ProfileCode: e.ProfileCode,
		EntityKind:  string(e.EntityKind),
		EntityID:    e.EntityID,
		Type:        string(e.Type),
		CreatedAt:   e.CreatedAt,
	}
}

// MatchScoreModel is the GORM model for the match_scores table. Score sets
// are versioned by generation; readers only ever see the generation the
// score_generations pointer names.
type MatchScoreModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	UserID     string `gorm:"type:varchar(100);not null;index:idx_scores_user_kind_gen"`
	EntityKind string `gorm:"type:varchar(20);not null;index:idx_scores_user_kind_gen"`
	EntityID   string `gorm:"type:varchar(100);not null"`
	Generation int64  `gorm:"not null;index:idx_scores_user_kind_gen"`

	TotalScore  float64 `gorm:"type:decimal(6,5);not null;index"`
	DataQuality string  `gorm:"type:varchar(30);default:'ok'"`

	Breakdown          datatypes.JSON `gorm:"type:jsonb"`
	MatchReasons       datatypes.JSON `gorm:"type:jsonb"`
	InteractionsByTier datatypes.JSON `gorm:"type:jsonb"`

	DisplayName     string `gorm:"type:varchar(300)"`
	DisplayBrand    string `gorm:"type:varchar(150)"`
	DisplayCategory string `gorm:"type:varchar(30)"`

	ScoredAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for MatchScoreModel.
func (MatchScoreModel) TableName() string {
	return "match_scores"
}

// ToDomain converts MatchScoreModel to domain.MatchScore.
func (m *MatchScoreModel) ToDomain() (*domain.MatchScore, error) {
	score := &domain.MatchScore{
		EntityID:        m.EntityID,
		EntityKind:      domain.EntityKind(m.EntityKind),
		TotalScore:      m.TotalScore,
		DataQuality:     domain.DataQuality(m.DataQuality),
		DisplayName:     m.DisplayName,
		DisplayBrand:    m.DisplayBrand,
		DisplayCategory: m.DisplayCategory,
		ScoredAt:        m.ScoredAt,
	}

	if len(m.Breakdown) > 0 {
		if err := json.Unmarshal(m.Breakdown, &score.Breakdown); err != nil {
			return nil, err
		}
	}
	if len(m.MatchReasons) > 0 {
		if err := json.Unmarshal(m.MatchReasons, &score.MatchReasons); err != nil {
			return nil, err
		}
	}
	if len(m.InteractionsByTier) > 0 {
		if err := json.Unmarshal(m.InteractionsByTier, &score.InteractionsByTier); err != nil {
			return nil, err
		}
	}

	return score, nil
}

// MatchScoreFromDomain creates a MatchScoreModel from domain.MatchScore.
func MatchScoreFromDomain(userID string, generation int64, s *domain.MatchScore) (*MatchScoreModel, error) {
	breakdown, err := json.Marshal(s.Breakdown)
	if err != nil {
		return nil, err
	}
	reasons, err := json.Marshal(s.MatchReasons)
	if err != nil {
		return nil, err
	}
	tiers, err := json.Marshal(s.InteractionsByTier)
	if err != nil {
		return nil, err
	}

	return &MatchScoreModel{
		UserID:             userID,
		EntityKind:         string(s.EntityKind),
		EntityID:           s.EntityID,
		Generation:         generation,
		TotalScore:         s.TotalScore,
		DataQuality:        string(s.DataQuality),
		Breakdown:          breakdown,
		MatchReasons:       reasons,
		InteractionsByTier: tiers,
		DisplayName:        s.DisplayName,
		DisplayBrand:       s.DisplayBrand,
		DisplayCategory:    s.DisplayCategory,
		ScoredAt:           s.ScoredAt,
	}, nil
}

// ScoreGenerationModel is the GORM model for the score_generations table.
// One row per (user, kind) names the generation currently being served.
type ScoreGenerationModel struct {
	UserID     string `gorm:"type:varchar(100);primaryKey"`
	EntityKind string `gorm:"type:varchar(20);primaryKey"`
	Generation int64  `gorm:"not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ScoreGenerationModel.
func (ScoreGenerationModel) TableName() string {
	return "score_generations"
}
