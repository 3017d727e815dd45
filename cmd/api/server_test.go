package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mock_store "github.com/aoideee/crud-api/internal/store/mock"
)

func TestShutdownClosesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock_store.NewMockStore(ctrl)
	s.EXPECT().Close(gomock.Any()).Return(nil)

	app := newTestApp(t, s)
	require.NoError(t, app.shutdown(context.Background(), &http.Server{}))
}

func TestShutdownReportsCloseFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock_store.NewMockStore(ctrl)
	s.EXPECT().Close(gomock.Any()).Return(errors.New("client is disconnected"))

	app := newTestApp(t, s)
	err := app.shutdown(context.Background(), &http.Server{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close document store: client is disconnected")
}
