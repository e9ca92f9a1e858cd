package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurtbuset/user-service/internal/config"
	"github.com/kurtbuset/user-service/internal/db"
	userHandler "github.com/kurtbuset/user-service/internal/handler/http"
	"github.com/kurtbuset/user-service/internal/user"
)

func newSQLiteService(t *testing.T) (user.Service, user.Repository) {
	t.Helper()

	database, err := db.New(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(database.Close)
	require.NoError(t, database.AutoMigrate(&user.User{}))

	repo := user.NewRepository(database.DB)
	return user.NewService(repo), repo
}

func TestUserLifecycle(t *testing.T) {
	svc, _ := newSQLiteService(t)

	rr := serve(t, svc, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, svc, http.MethodPost, "/users", []byte(`{"firstName":"Ada","lastName":"Lovelace","age":30}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	var created userHandler.CreateUserResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, int64(1), created.User.ID)
	assert.Equal(t, "Ada", created.User.FirstName)

	rr = serve(t, svc, http.MethodGet, "/user/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got userHandler.GetUserResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, created.User, got.User)

	rr = serve(t, svc, http.MethodPut, "/user/1", []byte(`{"age":31}`))
	require.Equal(t, http.StatusOK, rr.Code)

	var updated userHandler.UpdateUserResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, 31, updated.NewUser.Age)
	assert.Equal(t, "Ada", updated.NewUser.FirstName)
	assert.Equal(t, "Lovelace", updated.NewUser.LastName)

	rr = serve(t, svc, http.MethodGet, "/user/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, updated.NewUser, got.User)

	rr = serve(t, svc, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed userHandler.ListUsersResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&listed))
	assert.Equal(t, []userHandler.UserResponse{updated.NewUser}, listed.Users)

	rr = serve(t, svc, http.MethodDelete, "/user/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, svc, http.MethodGet, "/user/1", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, svc, http.MethodDelete, "/user/1", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, svc, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateUser_AssignsUniqueIDs(t *testing.T) {
	svc, repo := newSQLiteService(t)

	seen := make(map[int64]bool)
	for _, body := range []string{
		`{"firstName":"Ada","lastName":"Lovelace","age":30}`,
		`{"firstName":"Alan","lastName":"Turing","age":41}`,
		`{"firstName":"Grace","lastName":"Hopper","age":85}`,
	} {
		rr := serve(t, svc, http.MethodPost, "/users", []byte(body))
		require.Equal(t, http.StatusCreated, rr.Code)

		var created userHandler.CreateUserResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
		require.False(t, seen[created.User.ID], "id %d assigned twice", created.User.ID)
		seen[created.User.ID] = true
	}

	users, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
}

func TestCreateUser_MissingFieldsCreatesNothing(t *testing.T) {
	svc, repo := newSQLiteService(t)

	rr := serve(t, svc, http.MethodPost, "/users", []byte(`{"firstName":"Bob"}`))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	users, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestGetUser_NonNumericIDWithData(t *testing.T) {
	svc, _ := newSQLiteService(t)

	rr := serve(t, svc, http.MethodPost, "/users", []byte(`{"firstName":"Ada","lastName":"Lovelace","age":30}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(t, svc, http.MethodGet, "/user/abc", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetUser_NumericIDForms(t *testing.T) {
	svc, _ := newSQLiteService(t)

	rr := serve(t, svc, http.MethodPost, "/users", []byte(`{"firstName":"Ada","lastName":"Lovelace","age":30}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	for _, id := range []string{"1e0", "1.0"} {
		rr = serve(t, svc, http.MethodGet, "/user/"+id, nil)
		require.Equal(t, http.StatusOK, rr.Code, id)

		var found userHandler.GetUserResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&found))
		assert.Equal(t, "Ada", found.User.FirstName)
	}

	rr = serve(t, svc, http.MethodGet, "/user/1.5", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, map[string]string{"msg": "user id: 1.5 cant be found"}, decodeMap(t, rr))
}

func TestUpdateUser_TrailingDataLeavesRowUnchanged(t *testing.T) {
	svc, repo := newSQLiteService(t)

	rr := serve(t, svc, http.MethodPost, "/users", []byte(`{"firstName":"Ada","lastName":"Lovelace","age":30}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(t, svc, http.MethodPut, "/user/1", []byte(`{"age":31} garbage`))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Age)
}
