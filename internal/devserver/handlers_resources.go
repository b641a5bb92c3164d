package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/alexanderramin/wisemind/internal/repository"
	"github.com/gorilla/mux"
)

// document describes a resource stored verbatim as one JSON document per
// user (and per date for keyed resources).
type document struct {
	resource string
	keyed    bool
	// empty is served when the document has never been written. A nil
	// empty answers 404 instead.
	empty func(key string) any
	// canonical validates a PUT body and returns what to store.
	canonical func(body []byte, key string) ([]byte, error)
}

var documentResources = []document{
	{resource: "contacts", empty: func(string) any { return []domain.ContactRecord{} },
		canonical: typed[[]domain.ContactRecord](nil)},
	{resource: "letter-from-future-self", empty: func(string) any { return domain.Letter{} },
		canonical: typed[domain.Letter](nil)},
	{resource: "pre-treatment-state", empty: func(string) any { return domain.NewPreTreatmentState() },
		canonical: preTreatmentState},
	{resource: "goals", empty: func(string) any { return domain.Goals{Goals: []domain.Goal{}} },
		canonical: typed[domain.Goals](nil)},
	{resource: "strengths-and-resources",
		empty: func(string) any {
			return domain.StrengthsAndResources{Strengths: []string{}, Resources: []string{}}
		},
		canonical: typed[domain.StrengthsAndResources](nil)},
	{resource: "suds-coping-plan", empty: func(string) any { return defaultCopingPlan },
		canonical: typed[domain.CopingPlan](nil)},
	{resource: "diary-entry", keyed: true,
		empty:     func(key string) any { return domain.DiaryEntry{Date: key} },
		canonical: typed(func(e *domain.DiaryEntry, key string) { e.Date = key })},
	{resource: "weekly-review", keyed: true,
		empty:     func(key string) any { return domain.WeeklyReview{WeekOf: key} },
		canonical: typed(func(rv *domain.WeeklyReview, key string) { rv.WeekOf = key })},
	{resource: "progress-tracking", keyed: true,
		empty:     func(key string) any { return domain.ProgressTracking{Date: key} },
		canonical: typed(func(p *domain.ProgressTracking, key string) { p.Date = key })},
	{resource: "suds-checkin", keyed: true,
		canonical: typed(func(c *domain.SudsCheckin, key string) { c.Date = key })},
}

var defaultCopingPlan = domain.CopingPlan{Steps: []domain.CopingStep{
	{MinScore: 0, MaxScore: 3, Actions: []string{"Notice and name the feeling", "Keep doing what you are doing"}},
	{MinScore: 4, MaxScore: 6, Actions: []string{"Paced breathing", "Self-soothe with the five senses"}},
	{MinScore: 7, MaxScore: 10, Actions: []string{"TIPP: cold water on your face", "Call someone on your emergency list"}},
}}

type validator interface {
	Validate() error
}

// typed decodes a body into T, applies normalize, validates it when T has a
// Validate method, and re-encodes it.
func typed[T any](normalize func(*T, string)) func([]byte, string) ([]byte, error) {
	return func(body []byte, key string) ([]byte, error) {
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		if normalize != nil {
			normalize(&v, key)
		}
		if val, ok := any(v).(validator); ok {
			if err := val.Validate(); err != nil {
				return nil, err
			}
		}
		return json.Marshal(v)
	}
}

// preTreatmentState keeps members it does not know about.
func preTreatmentState(body []byte, _ string) ([]byte, error) {
	var s domain.PreTreatmentState
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("pre-treatment state must be a JSON object: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

func documentKey(d document, r *http.Request) (string, error) {
	if !d.keyed {
		return "", nil
	}
	key := mux.Vars(r)["key"]
	if _, err := domain.ParseDate(key); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Server) handleGetDocument(d document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := documentKey(d, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		doc, err := s.docs.Get(r.Context(), userIDFrom(r.Context()), d.resource, key)
		if errors.Is(err, repository.ErrNotFound) {
			if d.empty == nil {
				writeError(w, http.StatusNotFound, fmt.Sprintf("no %s recorded for %s", d.resource, key))
				return
			}
			writeJSON(w, http.StatusOK, d.empty(key))
			return
		}
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		writeRaw(w, http.StatusOK, doc.Body)
	}
}

func (s *Server) handlePutDocument(d document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := documentKey(d, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		body, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		stored, err := d.canonical(body, key)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		doc := &repository.Document{Resource: d.resource, Key: key, Body: stored}
		if err := s.docs.Put(r.Context(), userIDFrom(r.Context()), doc); err != nil {
			s.internalError(w, r, err)
			return
		}
		writeRaw(w, http.StatusOK, stored)
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.profileOf(user))
}

func (s *Server) loadState(r *http.Request) (domain.PreTreatmentState, error) {
	doc, err := s.docs.Get(r.Context(), userIDFrom(r.Context()), "pre-treatment-state", "")
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewPreTreatmentState(), nil
	}
	if err != nil {
		return domain.PreTreatmentState{}, err
	}
	var state domain.PreTreatmentState
	if err := json.Unmarshal(doc.Body, &state); err != nil {
		return domain.PreTreatmentState{}, fmt.Errorf("decoding stored state: %w", err)
	}
	return state, nil
}

// handleProgress derives the growth stage from completed sections: one
// stage for starting, plus one per fully completed overview section.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := s.loadState(r)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	stage := 1
	for _, c := range domain.OverviewCounters {
		if state.Counter(c) >= c.Max() {
			stage++
		}
	}

	userID := userIDFrom(ctx)
	days := map[string]bool{}
	skills := map[string]bool{}
	checkins, err := s.docs.ListByResource(ctx, userID, "suds-checkin", "")
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	for _, d := range checkins {
		days[d.Key] = true
	}
	diaries, err := s.docs.ListByResource(ctx, userID, "diary-entry", "")
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	for _, d := range diaries {
		days[d.Key] = true
		var e domain.DiaryEntry
		if json.Unmarshal(d.Body, &e) == nil {
			for _, sk := range e.SkillsUsed {
				skills[strings.ToLower(sk)] = true
			}
		}
	}

	writeJSON(w, http.StatusOK, domain.Progress{
		CurrentStage:    domain.ClampInt(stage, 1, domain.DefaultTotalStages),
		TotalStages:     domain.DefaultTotalStages,
		DaysActive:      len(days),
		SkillsPracticed: len(skills),
	})
}

var treatmentPlanStages = []domain.TreatmentPlanItem{
	{ID: "commitment", Title: "Commitment", Stage: 1,
		Description: "Agree on goals and what therapy will look like.",
		Skills:      []string{"Pros and cons"}},
	{ID: "mindfulness", Title: "Mindfulness", Stage: 2,
		Description: "Learn to observe and describe without judgment.",
		Skills:      []string{"Wise mind", "Observe", "Describe"}},
	{ID: "distress-tolerance", Title: "Distress Tolerance", Stage: 3,
		Description: "Get through crises without making them worse.",
		Skills:      []string{"TIPP", "STOP", "Radical acceptance"}},
	{ID: "emotion-regulation", Title: "Emotion Regulation", Stage: 4,
		Description: "Understand and change emotional responses.",
		Skills:      []string{"Check the facts", "Opposite action"}},
}

// handleTreatmentPlan marks stages completed from the stepsCompleted counter.
func (s *Server) handleTreatmentPlan(w http.ResponseWriter, r *http.Request) {
	state, err := s.loadState(r)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	done := state.Counter(domain.CounterStepsCompleted)
	plan := make(domain.TreatmentPlan, len(treatmentPlanStages))
	for i, item := range treatmentPlanStages {
		item.Completed = i < done
		plan[i] = item
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) loadCheckins(r *http.Request, prefix string) ([]domain.SudsCheckin, error) {
	docs, err := s.docs.ListByResource(r.Context(), userIDFrom(r.Context()), "suds-checkin", prefix)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SudsCheckin, 0, len(docs))
	for _, d := range docs {
		var c domain.SudsCheckin
		if err := json.Unmarshal(d.Body, &c); err != nil {
			return nil, fmt.Errorf("decoding check-in %s: %w", d.Key, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Server) handleSudsList(w http.ResponseWriter, r *http.Request) {
	checkins, err := s.loadCheckins(r, "")
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.SudsList(checkins))
}

func (s *Server) handleSudsCalendar(w http.ResponseWriter, r *http.Request) {
	month := mux.Vars(r)["key"]
	if _, err := domain.ParseMonth(month); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	checkins, err := s.loadCheckins(r, month+"-")
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	type agg struct{ sum, n int }
	byDay := map[string]*agg{}
	for _, c := range checkins {
		a, ok := byDay[c.Date]
		if !ok {
			a = &agg{}
			byDay[c.Date] = a
		}
		a.sum += c.Score
		a.n++
	}
	cal := domain.SudsCalendar{Month: month, Days: make([]domain.SudsCalendarDay, 0, len(byDay))}
	for date, a := range byDay {
		cal.Days = append(cal.Days, domain.SudsCalendarDay{
			Date:    date,
			Average: float64(a.sum) / float64(a.n),
			Count:   a.n,
		})
	}
	sort.Slice(cal.Days, func(i, j int) bool { return cal.Days[i].Date < cal.Days[j].Date })
	writeJSON(w, http.StatusOK, cal)
}
