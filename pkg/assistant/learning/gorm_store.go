package learning

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LearningRecordModel is the relational shape of a Record.
type LearningRecordModel struct {
	ID         uint           `gorm:"primaryKey"`
	Question   string         `gorm:"index:idx_question_user,priority:1"`
	UserID     string         `gorm:"index:idx_question_user,priority:2"`
	Intent     string         `gorm:"index"`
	SubIntent  string
	Confidence float64
	Response   string `gorm:"type:text"`
	Frequency  int
	Entities   datatypes.JSON
	Timestamp  time.Time
}

func (LearningRecordModel) TableName() string {
	return "learning_records"
}

// GormStore persists the cache into a relational table. Saves rewrite the
// table wholesale inside one transaction, mirroring the file store's
// snapshot semantics.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the backing table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&LearningRecordModel{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// Load rebuilds the cache state from the table. The running aggregates are
// reconstructed from record frequencies, which matches what the counters
// would hold after replaying every recorded call.
func (s *GormStore) Load() (*State, error) {
	var models []LearningRecordModel
	if err := s.db.Order("timestamp asc").Find(&models).Error; err != nil {
		return nil, err
	}

	state := &State{
		IntentCounts: map[string]int{},
		Confidences:  map[string][]float64{},
	}
	for _, m := range models {
		var entities []string
		if len(m.Entities) > 0 {
			_ = json.Unmarshal(m.Entities, &entities)
		}
		state.Questions = append(state.Questions, &Record{
			Question:   m.Question,
			Intent:     m.Intent,
			SubIntent:  m.SubIntent,
			Confidence: m.Confidence,
			Response:   m.Response,
			Timestamp:  m.Timestamp,
			UserID:     m.UserID,
			Frequency:  m.Frequency,
			Entities:   entities,
		})
		state.TotalQuestions += m.Frequency
		state.IntentCounts[m.Intent] += m.Frequency
		for i := 0; i < m.Frequency; i++ {
			state.Confidences[m.Intent] = append(state.Confidences[m.Intent], m.Confidence)
		}
	}

	return state, nil
}

// Save replaces the table contents with the given state.
func (s *GormStore) Save(state *State) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&LearningRecordModel{}).Error; err != nil {
			return err
		}
		if len(state.Questions) == 0 {
			return nil
		}

		models := make([]LearningRecordModel, 0, len(state.Questions))
		for _, r := range state.Questions {
			var entities datatypes.JSON
			if len(r.Entities) > 0 {
				if data, err := json.Marshal(r.Entities); err == nil {
					entities = data
				}
			}
			models = append(models, LearningRecordModel{
				Question:   r.Question,
				UserID:     r.UserID,
				Intent:     r.Intent,
				SubIntent:  r.SubIntent,
				Confidence: r.Confidence,
				Response:   r.Response,
				Frequency:  r.Frequency,
				Entities:   entities,
				Timestamp:  r.Timestamp,
			})
		}
		return tx.CreateInBatches(models, 100).Error
	})
}
