package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pinger func(ctx context.Context) error

func (p pinger) Ping(ctx context.Context) error { return p(ctx) }

func TestHealthcheck(t *testing.T) {
	rec, env := serve(Healthcheck(pinger(func(context.Context) error { return nil })), nil, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", env.Message)

	rec, env = serve(Healthcheck(pinger(func(context.Context) error { return errors.New("connection refused") })), nil, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SRV_002", env.Error.Code)
}
