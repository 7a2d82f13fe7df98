package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"supanos/internal/auth"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
	"supanos/internal/testutil"
)

func TestReservationService_DefaultsToPending(t *testing.T) {
	db := testutil.NewDB(t)
	audit := new(MockAuditRecorder)
	audit.On("Record", mock.Anything, mock.Anything, "reservation", mock.Anything, mock.Anything).Return()
	svc := NewReservationService(repository.NewReservationRepository(db), audit)

	created, err := svc.CreateReservation(context.Background(), ReservationRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-0100",
		DateTime: time.Date(2025, 3, 1, 19, 0, 0, 0, time.FixedZone("EST", -5*3600)),
		People:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationPending, created.Status)
	assert.Equal(t, time.UTC, created.DateTime.Location())

	got, err := svc.GetReservation(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))

	confirmed := model.ReservationConfirmed
	updated, err := svc.UpdateReservation(context.Background(), created.ID, UpdateReservationRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, updated.Status)
	assert.Equal(t, 4, updated.People)
}

func TestSettingService_UpsertReplacesValue(t *testing.T) {
	db := testutil.NewDB(t)
	audit := new(MockAuditRecorder)
	audit.On("Record", mock.Anything, "upsert", "setting", "theme", nil).Return()
	svc := NewSettingService(repository.NewSettingRepository(db), nil, audit)
	ctx := context.Background()

	_, err := svc.UpsertSetting(ctx, SettingRequest{Key: "theme", Value: model.JSON(`"dark"`)})
	require.NoError(t, err)
	_, err = svc.UpsertSetting(ctx, SettingRequest{Key: "theme", Value: model.JSON(`"light"`)})
	require.NoError(t, err)

	all, err := svc.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.JSONEq(t, `"light"`, string(all[0].Value))

	_, err = svc.GetSetting(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuditService_RecordAttributesActorAndClampsList(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	admin := &model.User{Username: "admin", PasswordHash: "x", Role: model.RoleAdmin, IsActive: true}
	require.NoError(t, users.Create(context.Background(), admin))

	svc := NewAuditService(repository.NewAuditLogRepository(db))
	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: admin.ID, Role: model.RoleAdmin})
	svc.Record(ctx, "delete", "event", "e-1", map[string]string{"title": "Finals"})
	svc.Record(context.Background(), "create", "reservation", "r-1", nil)

	entries, err := svc.List(context.Background(), 1000)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var attributed *model.AuditLog
	for i := range entries {
		if entries[i].Action == "delete" {
			attributed = &entries[i]
		}
	}
	require.NotNil(t, attributed)
	require.NotNil(t, attributed.ActorUserID)
	assert.Equal(t, admin.ID, *attributed.ActorUserID)
	assert.JSONEq(t, `{"title":"Finals"}`, string(attributed.Meta))
}

func TestScoreService_Scores(t *testing.T) {
	svc := &scoreService{now: func() time.Time { return time.Date(2025, 6, 1, 23, 0, 0, 0, time.FixedZone("PDT", -7*3600)) }}

	board := svc.Scores("")
	assert.Equal(t, "2025-06-02", board.Date)
	assert.False(t, board.Integrated)
	require.Len(t, board.Leagues["NFL"], 2)
	require.Len(t, board.Leagues["MLB"], 1)
	assert.Equal(t, "KC", board.Leagues["NFL"][0].Home.Abbr)
	assert.Equal(t, 21, board.Leagues["NFL"][0].Home.Score)

	assert.Equal(t, "2025-01-14", svc.Scores("2025-01-14").Date)
}

// multipartFile builds a FileHeader the way the HTTP server would.
func multipartFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestUploadService_SaveImage(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()
	svc := NewUploadService(repository.NewUploadRepository(db), dir, 1<<20)

	upload, err := svc.SaveImage(context.Background(), multipartFile(t, "Logo.PNG", "image/png", pngBytes(t, 3, 2)))
	require.NoError(t, err)

	assert.Equal(t, "image/png", upload.Mime)
	assert.Equal(t, "/uploads/"+upload.FileName, upload.URL)
	assert.Equal(t, ".png", filepath.Ext(upload.FileName))
	_, err = uuid.Parse(upload.FileName[:len(upload.FileName)-4])
	assert.NoError(t, err)
	require.NotNil(t, upload.Width)
	assert.Equal(t, 3, *upload.Width)
	assert.Equal(t, 2, *upload.Height)

	stored, err := os.ReadFile(filepath.Join(dir, upload.FileName))
	require.NoError(t, err)
	assert.Equal(t, upload.Size, int64(len(stored)))
}

func TestUploadService_RemovesFileWhenRecordFails(t *testing.T) {
	dir := t.TempDir()
	repo := new(MockUploadRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Upload")).Return(errors.New("db down"))
	svc := NewUploadService(repo, dir, 1<<20)

	_, err := svc.SaveImage(context.Background(), multipartFile(t, "logo.png", "image/png", pngBytes(t, 2, 2)))

	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	repo.AssertExpectations(t)
}

func TestUploadService_Rejects(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUploadService(repository.NewUploadRepository(db), t.TempDir(), 64)

	tests := []struct {
		name string
		file *multipart.FileHeader
		want error
	}{
		{"no file", nil, apperrors.ErrNoFile},
		{"wrong extension", multipartFile(t, "notes.txt", "image/png", []byte("x")), apperrors.ErrInvalidUpload},
		{"mime mismatch", multipartFile(t, "pic.png", "text/plain", []byte("x")), apperrors.ErrInvalidUpload},
		{"not an image", multipartFile(t, "pic.gif", "image/gif", []byte("GIF? no")), apperrors.ErrInvalidUpload},
		{"too large", multipartFile(t, "big.png", "image/png", make([]byte, 65)), apperrors.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveImage(context.Background(), tt.file)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
