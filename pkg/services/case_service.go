package services

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"research-brief-api/pkg/intent"
	"research-brief-api/pkg/models"

	"github.com/google/uuid"
)

var (
	ErrCaseNotFound    = errors.New("case not found")
	ErrBriefNotFound   = errors.New("brief not found")
	ErrInvalidPosition = errors.New("invalid brief position")
)

// CaseService はCaseとBriefをメモリ上で管理します。
// 返す値はすべてコピーで、呼び出し側の変更は内部状態に影響しません。
type CaseService struct {
	cases      map[string]*models.Case
	classifier *intent.Classifier
	mu         sync.RWMutex
	now        func() time.Time
}

// NewCaseService は新しいCaseServiceを生成します。
func NewCaseService(classifier *intent.Classifier) *CaseService {
	if classifier == nil {
		classifier = intent.Default()
	}
	return &CaseService{
		cases:      make(map[string]*models.Case),
		classifier: classifier,
		now:        time.Now,
	}
}

// Create は新しいCaseを作成します。
func (s *CaseService) Create(objective string) models.Case {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := &models.Case{
		ID:        uuid.New().String(),
		Objective: strings.TrimSpace(objective),
		Briefs:    []models.Brief{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cases[c.ID] = c
	return copyCase(c)
}

// Get はIDでCaseを取得します。
func (s *CaseService) Get(id string) (models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cases[id]
	if !ok {
		return models.Case{}, ErrCaseNotFound
	}
	return copyCase(c), nil
}

// List は全Caseを作成日時の新しい順で返します。
func (s *CaseService) List() []models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Case, 0, len(s.cases))
	for _, c := range s.cases {
		out = append(out, copyCase(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete はCaseを削除します。
func (s *CaseService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cases[id]; !ok {
		return ErrCaseNotFound
	}
	delete(s.cases, id)
	return nil
}

// AddBrief はCaseの末尾にBriefを追加します。modeが空の場合は質問文から判定します。
func (s *CaseService) AddBrief(caseID string, req models.AddBriefRequest) (models.Brief, error) {
	mode := s.classifier.DetectIntent(req.Question)
	if strings.TrimSpace(req.Mode) != "" {
		mode = intent.ParseIntent(req.Mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cases[caseID]
	if !ok {
		return models.Brief{}, ErrCaseNotFound
	}

	b := models.Brief{
		ID:        uuid.New().String(),
		Question:  req.Question,
		Mode:      mode,
		Summary:   req.Summary,
		Evidence:  append([]string{}, req.Evidence...),
		CreatedAt: s.now(),
	}
	c.Briefs = append(c.Briefs, b)
	c.UpdatedAt = b.CreatedAt
	return copyBrief(b), nil
}

// MoveBrief はfromの位置のBriefを取り出してtoの位置に挿入します。
func (s *CaseService) MoveBrief(caseID string, from, to int) (models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cases[caseID]
	if !ok {
		return models.Case{}, ErrCaseNotFound
	}
	n := len(c.Briefs)
	if from < 0 || from >= n || to < 0 || to >= n {
		return models.Case{}, ErrInvalidPosition
	}
	if from != to {
		moved := c.Briefs[from]
		briefs := append(c.Briefs[:from:from], c.Briefs[from+1:]...)
		briefs = append(briefs[:to], append([]models.Brief{moved}, briefs[to:]...)...)
		c.Briefs = briefs
		c.UpdatedAt = s.now()
	}
	return copyCase(c), nil
}

// DeleteBrief はCaseからBriefを削除します。
func (s *CaseService) DeleteBrief(caseID, briefID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cases[caseID]
	if !ok {
		return ErrCaseNotFound
	}
	for i, b := range c.Briefs {
		if b.ID == briefID {
			c.Briefs = append(c.Briefs[:i:i], c.Briefs[i+1:]...)
			c.UpdatedAt = s.now()
			return nil
		}
	}
	return ErrBriefNotFound
}

func copyBrief(b models.Brief) models.Brief {
	b.Evidence = append([]string{}, b.Evidence...)
	return b
}

func copyCase(c *models.Case) models.Case {
	out := *c
	out.Briefs = make([]models.Brief, len(c.Briefs))
	for i, b := range c.Briefs {
		out.Briefs[i] = copyBrief(b)
	}
	return out
}
