package v1

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/madhava-poojari/dashboard-web/internal/auth"
	"github.com/madhava-poojari/dashboard-web/internal/client"
	"github.com/madhava-poojari/dashboard-web/internal/models"
	"github.com/madhava-poojari/dashboard-web/internal/utils"
)

const maxBatchStudents = 50

type ProgressHandler struct {
	fetcher  ProgressFetcher
	recorder FetchRecorder
	log      *slog.Logger
}

func NewProgressHandler(f ProgressFetcher, rec FetchRecorder, log *slog.Logger) *ProgressHandler {
	return &ProgressHandler{fetcher: f, recorder: rec, log: log}
}

// GET /students/{id}/progress-log
func (h *ProgressHandler) GetStudentProgressLog(w http.ResponseWriter, r *http.Request) {
	id, err := studentIDParam(r)
	if err != nil || id == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing id", nil, nil)
		return
	}

	ctx := r.Context()
	claims := auth.GetClaimsFromCtx(ctx)
	if claims == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	if !auth.CanAccessStudent(claims, id) {
		utils.WriteJSONResponse(w, http.StatusForbidden, false, "forbidden", nil, nil)
		return
	}

	start := time.Now()
	pl, err := h.fetcher.GetStudentProgressLog(backendCtx(ctx), id)
	h.record(ctx, id, claims.UserID, time.Since(start), pl, err)
	if err != nil {
		h.writeFetchError(w, r, id, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", pl, nil)
}

// GET /progress-logs?student_id=a&student_id=b
func (h *ProgressHandler) GetProgressLogs(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	seen := map[string]struct{}{}
	for _, raw := range r.URL.Query()["student_id"] {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if _, dup := seen[id]; id == "" || dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "student_id is required", nil, nil)
		return
	}
	if len(ids) > maxBatchStudents {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "too many students", nil,
			"at most "+strconv.Itoa(maxBatchStudents)+" student_id values")
		return
	}

	ctx := r.Context()
	claims := auth.GetClaimsFromCtx(ctx)
	if claims == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}

	start := time.Now()
	logs, err := h.fetcher.GetStudentProgressLogs(backendCtx(ctx), ids)
	// rows carry the batch's wall time, not a per-student duration
	elapsed := time.Since(start)
	if err != nil {
		var se *client.StudentError
		if errors.As(err, &se) {
			h.record(ctx, se.StudentID, claims.UserID, elapsed, nil, se.Err)
		}
		h.writeFetchError(w, r, strings.Join(ids, ","), err)
		return
	}
	for id, pl := range logs {
		h.record(ctx, id, claims.UserID, elapsed, pl, nil)
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", logs, nil)
}

// GET /students/{id}/progress-log/fetches?limit=
func (h *ProgressHandler) ListFetches(w http.ResponseWriter, r *http.Request) {
	if h.recorder == nil {
		utils.WriteJSONResponse(w, http.StatusNotFound, false, "fetch audit disabled", nil, nil)
		return
	}
	id, err := studentIDParam(r)
	if err != nil || id == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing id", nil, nil)
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err = strconv.Atoi(l)
		if err != nil || limit <= 0 {
			utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid limit", nil, nil)
			return
		}
	}

	rows, err := h.recorder.ListFetchesByStudent(r.Context(), id, limit)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", rows, nil)
}

// studentIDParam returns the {id} segment as the caller meant it. chi matches
// on the decoded path unless the request carried escapes that do not round-trip
// (such as %2F), in which case the segment is still escaped.
func studentIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	return url.PathUnescape(id)
}

// backendCtx forwards the caller's bearer token to the backend.
func backendCtx(ctx context.Context) context.Context {
	if tok := auth.GetTokenFromCtx(ctx); tok != "" {
		return client.WithAuthToken(ctx, tok)
	}
	return ctx
}

func (h *ProgressHandler) record(ctx context.Context, studentID, userID string, elapsed time.Duration, pl models.ProgressLog, fetchErr error) {
	if h.recorder == nil {
		return
	}
	row := &models.ProgressLogFetch{
		RequestID:    middleware.GetReqID(ctx),
		StudentID:    studentID,
		RequestedBy:  userID,
		Outcome:      models.FetchOutcomeSuccess,
		StatusCode:   http.StatusOK,
		DurationMs:   elapsed.Milliseconds(),
		PayloadBytes: len(pl),
	}
	if fetchErr != nil {
		row.Outcome = models.FetchOutcomeTransport
		row.StatusCode = 0
		var fe *client.FetchError
		if errors.As(fetchErr, &fe) {
			row.Outcome = outcomeOf(fe)
			row.StatusCode = fe.StatusCode
			row.ErrorCode = fe.Code
			if fe.Meta != nil {
				row.Meta = utils.DatatypesJSONFrom(fe.Meta)
			}
		}
	}
	// the response must not depend on the audit write
	if err := h.recorder.RecordFetch(context.WithoutCancel(ctx), row); err != nil {
		h.log.WarnContext(ctx, "recording progress-log fetch failed",
			slog.String("student_id", studentID), slog.Any("error", err))
	}
}

func outcomeOf(fe *client.FetchError) models.FetchOutcome {
	switch fe.Kind {
	case client.ErrFailure:
		return models.FetchOutcomeFailure
	case client.ErrStatus:
		return models.FetchOutcomeStatus
	case client.ErrDecode:
		return models.FetchOutcomeDecode
	}
	return models.FetchOutcomeTransport
}

func (h *ProgressHandler) writeFetchError(w http.ResponseWriter, r *http.Request, studentID string, err error) {
	h.log.WarnContext(r.Context(), "progress-log fetch failed",
		slog.String("student_id", studentID),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("error", err))

	if errors.Is(err, client.ErrInvalidStudentID) {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing id", nil, nil)
		return
	}

	var fe *client.FetchError
	if !errors.As(err, &fe) {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error", nil, nil)
		return
	}

	switch fe.Kind {
	case client.ErrFailure:
		status := http.StatusBadGateway
		if fe.Meta != nil && fe.Meta.StatusCode >= 400 && fe.Meta.StatusCode <= 599 {
			status = fe.Meta.StatusCode
		}
		utils.WriteFailure(w, status, fe.Message, fe.Code, fe.Meta)
	case client.ErrStatus:
		msg := fe.Message
		if msg == "" {
			msg = "backend returned " + strconv.Itoa(fe.StatusCode)
		}
		utils.WriteFailure(w, fe.StatusCode, msg, fe.Code, fe.Meta)
	case client.ErrDecode:
		utils.WriteFailure(w, http.StatusBadGateway, "invalid backend response", "bad_gateway", nil)
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			utils.WriteFailure(w, http.StatusGatewayTimeout, "backend timed out", "gateway_timeout", nil)
			return
		}
		utils.WriteFailure(w, http.StatusBadGateway, "backend unreachable", "bad_gateway", nil)
	}
}
