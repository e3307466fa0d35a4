package rubric

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quillmind/core/internal/models"
	"github.com/quillmind/core/internal/modules/analysis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("rubric not found")

type ParseDTO struct {
	Text       string `json:"text" binding:"required"`
	DocumentID string `json:"documentId"`
}

type AnalyzeDTO struct {
	RubricID   string `json:"rubricId" binding:"required"`
	DocumentID string `json:"documentId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// parsedRubric mirrors the JSON the model returns for a parse request.
type parsedRubric struct {
	Title                 string                   `json:"title"`
	AssignmentType        string                   `json:"assignmentType"`
	AcademicLevel         string                   `json:"academicLevel"`
	ExtractedRequirements []string                 `json:"extractedRequirements"`
	Criteria              []models.RubricCriterion `json:"criteria"`
}

type scoredRubric struct {
	OverallScore    float64                  `json:"overallScore"`
	OverallFeedback string                   `json:"overallFeedback"`
	CriteriaResults []models.CriterionResult `json:"criteriaResults"`
}

// Service turns free-form rubric text into structured criteria and grades
// documents against them.
type Service struct {
	db          *gorm.DB
	caller      analysis.ModelCaller
	temperature float64
	log         *zap.Logger
}

func NewService(db *gorm.DB, caller analysis.ModelCaller, temperature float64, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if temperature <= 0 {
		temperature = 0.5
	}
	return &Service{db: db, caller: caller, temperature: temperature, log: log}
}

var validLevels = map[models.AcademicLevel]bool{
	models.LevelMiddleSchool: true,
	models.LevelHighSchool:   true,
	models.LevelUndergrad:    true,
	models.LevelGraduate:     true,
}

// Parse extracts a structured rubric from raw assignment text and persists it.
func (s *Service) Parse(ctx context.Context, userID string, dto ParseDTO) (*models.RubricModel, error) {
	raw, err := s.caller.Complete(ctx, analysis.CompletionRequest{
		SystemPrompt: parseSystemPrompt,
		UserPrompt:   fmt.Sprintf("<<<RUBRIC\n%s\nRUBRIC", dto.Text),
		Temperature:  s.temperature,
		MaxTokens:    rubricMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrModelCallFailed, err)
	}

	var parsed parsedRubric
	if err := analysis.DecodeModelJSON(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: rubric parse", analysis.ErrAnalysisFailed)
	}

	level := models.AcademicLevel(parsed.AcademicLevel)
	if !validLevels[level] {
		level = models.LevelUndergrad
	}

	rubric := models.RubricModel{
		DocumentID:            dto.DocumentID,
		UserID:                userID,
		Title:                 parsed.Title,
		AssignmentType:        parsed.AssignmentType,
		AcademicLevel:         level,
		ExtractedRequirements: models.StringArray(parsed.ExtractedRequirements),
		Criteria:              normalizeCriteria(parsed.Criteria),
		RawText:               dto.Text,
	}
	if err := s.db.WithContext(ctx).Create(&rubric).Error; err != nil {
		return nil, fmt.Errorf("save rubric: %w", err)
	}
	return &rubric, nil
}

// Analyze grades content against a stored rubric and persists the feedback.
func (s *Service) Analyze(ctx context.Context, userID string, dto AnalyzeDTO) (*models.RubricFeedbackModel, error) {
	var rubric models.RubricModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", dto.RubricID, userID).
		First(&rubric).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	criteriaJSON, _ := json.Marshal(rubric.Criteria)
	prompt := fmt.Sprintf("<<<CRITERIA\n%s\nCRITERIA\n\n<<<CONTENT\n%s\nCONTENT", criteriaJSON, dto.Content)

	raw, err := s.caller.Complete(ctx, analysis.CompletionRequest{
		SystemPrompt: analyzeSystemPrompt,
		UserPrompt:   prompt,
		Temperature:  s.temperature,
		MaxTokens:    rubricMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrModelCallFailed, err)
	}

	var scored scoredRubric
	if err := analysis.DecodeModelJSON(raw, &scored); err != nil {
		return nil, fmt.Errorf("%w: rubric analysis", analysis.ErrAnalysisFailed)
	}

	feedback := models.RubricFeedbackModel{
		RubricID:        rubric.ID,
		DocumentID:      dto.DocumentID,
		UserID:          userID,
		OverallScore:    clampScore(scored.OverallScore),
		OverallFeedback: scored.OverallFeedback,
		CriteriaResults: clampResults(scored.CriteriaResults),
	}
	if err := s.db.WithContext(ctx).Create(&feedback).Error; err != nil {
		return nil, fmt.Errorf("save rubric feedback: %w", err)
	}
	return &feedback, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*models.RubricModel, error) {
	var rubric models.RubricModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rubric).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rubric, nil
}

// normalizeCriteria drops empty names and rebalances weights that do not add
// up to anything sensible. Equal weights beat garbage weights.
func normalizeCriteria(criteria []models.RubricCriterion) []models.RubricCriterion {
	out := make([]models.RubricCriterion, 0, len(criteria))
	total := 0.0
	for _, c := range criteria {
		if c.Name == "" {
			continue
		}
		if c.Weight < 0 {
			c.Weight = 0
		}
		total += c.Weight
		out = append(out, c)
	}
	if len(out) == 0 {
		return out
	}
	if total <= 0 {
		equal := 1.0 / float64(len(out))
		for i := range out {
			out[i].Weight = equal
		}
		return out
	}
	for i := range out {
		out[i].Weight /= total
	}
	return out
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampResults(results []models.CriterionResult) []models.CriterionResult {
	for i := range results {
		results[i].Score = clampScore(results[i].Score)
	}
	return results
}
