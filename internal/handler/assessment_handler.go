package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iqbalrpambudi/disc-examination/internal/model"
	"github.com/iqbalrpambudi/disc-examination/internal/response"
	"github.com/iqbalrpambudi/disc-examination/internal/service"
	"github.com/iqbalrpambudi/disc-examination/internal/store"
	"github.com/iqbalrpambudi/disc-examination/internal/validator"
)

// AssessmentHandler handles the assessment session lifecycle endpoints.
type AssessmentHandler struct {
	assessments *service.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// sessionView is the state snapshot returned to the client. Option
// category tags are included: scoring happens server-side and the
// assessment has no right answers to hide.
type sessionView struct {
	Token           string               `json:"token"`
	Status          model.SessionStatus  `json:"status"`
	Email           string               `json:"email"`
	QuestionCount   int                  `json:"question_count"`
	CurrentIndex    int                  `json:"current_index"`
	CurrentQuestion *model.Question      `json:"current_question,omitempty"`
	Answered        map[int]model.Answer `json:"answered"`
	ProgressPercent int                  `json:"progress_percent"`
	ElapsedSeconds  *int64               `json:"elapsed_seconds,omitempty"`
	Tally           *model.Tally         `json:"tally,omitempty"`
	Dominant        *model.Category      `json:"dominant_category,omitempty"`
}

func buildSessionView(s *model.Session, elapsed int64, started bool) sessionView {
	view := sessionView{
		Token:         s.Token.String(),
		Status:        s.Status,
		Email:         s.Email,
		QuestionCount: len(s.SelectedQuestions),
		CurrentIndex:  s.CurrentIndex,
		Answered:      s.Answers,
	}
	if s.Status == model.SessionStatusInProgress && s.CurrentIndex < len(s.SelectedQuestions) {
		q := s.SelectedQuestions[s.CurrentIndex]
		view.CurrentQuestion = &q
	}
	if n := len(s.SelectedQuestions); n > 0 {
		view.ProgressPercent = (s.CurrentIndex + 1) * 100 / n
	}
	if started {
		view.ElapsedSeconds = &elapsed
	}
	if s.Status == model.SessionStatusCompleted {
		tally := s.Tally
		view.Tally = &tally
		view.Dominant = s.DominantCategory
	}
	return view
}

// CreateSession godoc
// POST /api/v1/assessments
// Registers a new session for a contact email. The email format is the
// only field-level validation in the system.
func (h *AssessmentHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.assessments.CreateSession(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": buildSessionView(session, 0, false)})
}

// GetSession godoc
// GET /api/v1/assessments/:token
func (h *AssessmentHandler) GetSession(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	session, err := h.assessments.GetSession(c.Request.Context(), token)
	if err != nil {
		failFromErr(c, err)
		return
	}

	h.respondWith(c, session)
}

// StartSession godoc
// POST /api/v1/assessments/:token/start
// Draws the random question subset and starts the clock.
func (h *AssessmentHandler) StartSession(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	session, err := h.assessments.StartSession(c.Request.Context(), token)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"session":   buildSessionView(session, 0, true),
		"questions": session.SelectedQuestions,
	})
}

// RecordAnswer godoc
// PUT /api/v1/assessments/:token/answers
// Stores the chosen category; answering a question again overwrites.
func (h *AssessmentHandler) RecordAnswer(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	var req model.RecordAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	session, err := h.assessments.RecordAnswer(c.Request.Context(), token, req.QuestionID, category)
	if err != nil {
		failFromErr(c, err)
		return
	}

	h.respondWith(c, session)
}

// Advance godoc
// POST /api/v1/assessments/:token/next
// Moves to the next question; at the last question it finalizes the
// session and the response carries the computed results.
func (h *AssessmentHandler) Advance(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	session, err := h.assessments.Advance(c.Request.Context(), token)
	if err != nil {
		failFromErr(c, err)
		return
	}

	h.respondWith(c, session)
}

// Retreat godoc
// POST /api/v1/assessments/:token/prev
func (h *AssessmentHandler) Retreat(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	session, err := h.assessments.Retreat(c.Request.Context(), token)
	if err != nil {
		failFromErr(c, err)
		return
	}

	h.respondWith(c, session)
}

// Complete godoc
// POST /api/v1/assessments/:token/complete
// Finalizes the session from any cursor position; unanswered questions
// contribute nothing to the tally.
func (h *AssessmentHandler) Complete(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	session, err := h.assessments.Complete(c.Request.Context(), token)
	if err != nil {
		failFromErr(c, err)
		return
	}

	h.respondWith(c, session)
}

// Reset godoc
// POST /api/v1/assessments/:token/reset
// Discards answers, timing and results; the contact email is kept.
func (h *AssessmentHandler) Reset(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	session, err := h.assessments.Reset(c.Request.Context(), token)
	if err != nil {
		failFromErr(c, err)
		return
	}

	h.respondWith(c, session)
}

func (h *AssessmentHandler) respondWith(c *gin.Context, session *model.Session) {
	elapsed, started := session.ElapsedSeconds(time.Now())
	response.Success(c, http.StatusOK, gin.H{"session": buildSessionView(session, elapsed, started)})
}

// parseToken extracts and validates the session token path parameter,
// writing the error response itself on failure.
func parseToken(c *gin.Context) (uuid.UUID, bool) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidToken)
		return uuid.Nil, false
	}
	return token, true
}

// failFromErr maps service sentinel errors onto response codes.
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, model.ErrUnknownQuestion):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownQuestion)
	case errors.Is(err, model.ErrAlreadyCompleted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyCompleted)
	case errors.Is(err, model.ErrNotCompleted):
		response.Fail(c, http.StatusConflict, response.ErrNotCompleted)
	case errors.Is(err, model.ErrWrongState):
		response.Fail(c, http.StatusConflict, response.ErrWrongState)
	case errors.Is(err, service.ErrOperationInFlight):
		response.Fail(c, http.StatusConflict, response.ErrOperationInFlight)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
