package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamHandler_Create(t *testing.T) {
	s := setupTestRouter(t, false)

	t.Run("with description", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/teams", map[string]string{"name": "Eng", "description": "Builders"}, s.Token)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		var team dto.TeamResponse
		testutil.ParseJSONResponse(t, rr, &team)
		assert.NotZero(t, team.ID)
		assert.Equal(t, "Eng", team.Name)
		require.NotNil(t, team.Description)
		assert.Equal(t, "Builders", *team.Description)
	})

	t.Run("without description", func(t *testing.T) {
		team := createTeam(t, s, s.Token, "Ops")
		assert.Nil(t, team.Description)
	})

	t.Run("duplicate name", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/teams", map[string]string{"name": "Eng"}, s.Token)
		assertError(t, rr, http.StatusConflict, "conflict")
	})

	t.Run("blank name", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/teams", map[string]string{"name": "   "}, s.Token)
		resp := assertError(t, rr, http.StatusBadRequest, "validation_failed")
		assert.Contains(t, resp.Details, "name")

		rr = s.do(t, http.MethodPost, "/teams", map[string]string{}, s.Token)
		assertError(t, rr, http.StatusBadRequest, "validation_failed")
	})

	t.Run("same name in another organisation", func(t *testing.T) {
		other := s.NewTenant(t, "Other Org")
		createTeam(t, s, other.Token, "Eng")
	})
}

func TestTeamHandler_ListAndGet(t *testing.T) {
	s := setupTestRouter(t, false)
	other := s.NewTenant(t, "Other Org")

	eng := createTeam(t, s, s.Token, "Eng")
	createTeam(t, s, s.Token, "Ops")
	createTeam(t, s, other.Token, "Theirs")

	rr := s.do(t, http.MethodGet, "/teams", nil, s.Token)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var teams []dto.TeamResponse
	testutil.ParseJSONResponse(t, rr, &teams)
	require.Len(t, teams, 2)
	assert.Equal(t, "Eng", teams[0].Name)
	assert.Equal(t, "Ops", teams[1].Name)

	rr = s.do(t, http.MethodGet, fmt.Sprintf("/teams/%d", eng.ID), nil, s.Token)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = s.do(t, http.MethodGet, fmt.Sprintf("/teams/%d", eng.ID), nil, other.Token)
	resp := assertError(t, rr, http.StatusNotFound, "not_found")
	assert.Equal(t, "Team not found", resp.Error)
}

func TestTeamHandler_Update(t *testing.T) {
	s := setupTestRouter(t, false)

	rr := s.do(t, http.MethodPost, "/teams", map[string]string{"name": "Eng", "description": "Builders"}, s.Token)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var team dto.TeamResponse
	testutil.ParseJSONResponse(t, rr, &team)
	path := fmt.Sprintf("/teams/%d", team.ID)

	t.Run("name only keeps description", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, path, map[string]string{"name": "Platform"}, s.Token)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var got dto.TeamResponse
		testutil.ParseJSONResponse(t, rr, &got)
		assert.Equal(t, "Platform", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "Builders", *got.Description)
	})

	t.Run("empty values keep stored ones", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, path, map[string]string{"name": "", "description": ""}, s.Token)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var got dto.TeamResponse
		testutil.ParseJSONResponse(t, rr, &got)
		assert.Equal(t, "Platform", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "Builders", *got.Description)
	})

	t.Run("rename onto existing team", func(t *testing.T) {
		createTeam(t, s, s.Token, "Ops")
		rr := s.do(t, http.MethodPut, path, map[string]string{"name": "Ops"}, s.Token)
		assertError(t, rr, http.StatusConflict, "conflict")
	})

	t.Run("unknown team", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/teams/9999", map[string]string{"name": "X"}, s.Token)
		assertError(t, rr, http.StatusNotFound, "not_found")
	})
}

func TestTeamHandler_Delete(t *testing.T) {
	s := setupTestRouter(t, false)
	other := s.NewTenant(t, "Other Org")
	team := createTeam(t, s, s.Token, "Eng")
	path := fmt.Sprintf("/teams/%d", team.ID)

	rr := s.do(t, http.MethodDelete, path, nil, other.Token)
	assertError(t, rr, http.StatusNotFound, "not_found")

	rr = s.do(t, http.MethodDelete, path, nil, s.Token)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = s.do(t, http.MethodGet, path, nil, s.Token)
	assertError(t, rr, http.StatusNotFound, "not_found")
}
