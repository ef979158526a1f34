package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var requestJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// patchFields records which keys a PATCH body carried, so an explicit null can
// be told apart from an absent key.
type patchFields map[string]json.RawMessage

func (f patchFields) cleared(key string) bool {
	raw, ok := f[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeJSON reads a strict JSON body into dst. An empty body decodes as {}.
func decodeJSON(r *http.Request, dst any) error {
	_, err := decodeJSONFields(r, dst)
	return err
}

func decodeJSONFields(r *http.Request, dst any) (patchFields, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return nil, fmt.Errorf("%w: request body is too large", usecase.ErrInvalidInput)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	decoder := requestJSON.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	fields := patchFields{}
	if err := requestJSON.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return fields, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func queryID(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return &id, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type createPlayerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Position string `json:"position" validate:"required,oneof=GOL DEF ALAE ALAD MEI ATA gol def alae alad mei ata"`
	Paid     bool   `json:"paid"`
	Number   *int   `json:"number" validate:"omitempty,min=0,max=99"`
	TeamID   *int64 `json:"teamId" validate:"omitempty,gt=0"`
}

type updatePlayerRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Position *string `json:"position"`
	Paid     *bool   `json:"paid"`
	Number   *int    `json:"number" validate:"omitempty,min=0,max=99"`
	TeamID   *int64  `json:"teamId" validate:"omitempty,gt=0"`
}

type createTeamRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Color         *string `json:"color" validate:"omitempty,max=32"`
	LineCount     *int    `json:"lineCount" validate:"omitempty,min=0"`
	Formation     *string `json:"formation" validate:"omitempty,max=32"`
	ReservesCount *int    `json:"reservesCount" validate:"omitempty,min=0"`
}

type updateTeamRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=100"`
	Color         *string `json:"color" validate:"omitempty,max=32"`
	LineCount     *int    `json:"lineCount" validate:"omitempty,min=0"`
	Formation     *string `json:"formation" validate:"omitempty,max=32"`
	ReservesCount *int    `json:"reservesCount" validate:"omitempty,min=0"`
}

// saveLineupRequest maps slot names to player ids; null or a missing slot
// leaves it empty.
type saveLineupRequest struct {
	Slots map[string]*int64 `json:"slots" validate:"required"`
}

type drawRequest struct {
	TeamCount int   `json:"teamCount"`
	PaidOnly  *bool `json:"paidOnly"`
	Apply     bool  `json:"apply"`
}

type createMatchRequest struct {
	TeamAID     int64   `json:"teamAId" validate:"required,gt=0"`
	TeamBID     int64   `json:"teamBId" validate:"required,gt=0,nefield=TeamAID"`
	Stage       *string `json:"stage"`
	ScheduledAt *string `json:"scheduledAt"`
}

type generateMatchesRequest struct {
	TeamIDs []int64 `json:"teamIds" validate:"required"`
}

type updateMatchRequest struct {
	Status      *string `json:"status"`
	Stage       *string `json:"stage"`
	ScheduledAt *string `json:"scheduledAt"`
}

type addEventRequest struct {
	TeamID   int64  `json:"teamId" validate:"required,gt=0"`
	PlayerID int64  `json:"playerId" validate:"required,gt=0"`
	Type     string `json:"type" validate:"required"`
	Minute   *int   `json:"minute" validate:"omitempty,min=0"`
}
