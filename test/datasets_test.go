//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/2beens/fitcompare/internal/activity"
	"github.com/2beens/fitcompare/internal/datasets"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestAuthRequired() {
	ctx := context.Background()
	t := s.T()

	status, body := s.do(ctx, "GET", "/api/fit-files", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "error")

	status, _ = s.do(ctx, "GET", "/api/fit-files", "not-a-token", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = s.do(ctx, "GET", "/", "", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "I'm OK, thanks ;)", string(body))
}

func (s *IntegrationTestSuite) TestDatasetLifecycle() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	owner := s.newUser()
	stranger := s.newUser()

	// first authenticated request registers the user
	var listed []datasets.Dataset
	s.doJSON(ctx, "GET", "/api/fit-files", owner.Token, nil, "", http.StatusOK, &listed)
	assert.Empty(t, listed)

	var storedEmail string
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT email FROM users WHERE id = $1`, owner.Subject).Scan(&storedEmail))
	assert.Equal(t, owner.Email, storedEmail)

	name := gofakeit.Noun() + " rides"
	body, contentType := s.multipartBody(name,
		upload{name: "morning.fit", data: s.fitFile(100, 200, 300)},
		upload{name: "evening.FIT", data: s.fitFile(150, 0, 250)},
		upload{name: "notes.txt", data: []byte("not a fit file")},
	)
	var created datasets.Dataset
	s.doJSON(ctx, "POST", "/api/fit-files", owner.Token, body, contentType, http.StatusCreated, &created)
	assert.Equal(t, name, created.Name)
	assert.Equal(t, owner.Subject, created.UserID)
	require.Len(t, created.FitFiles, 2)

	var fileRows int
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT count(*) FROM fit_files WHERE dataset_id = $1`, created.ID).Scan(&fileRows))
	assert.Equal(t, 2, fileRows)

	datasetPath := fmt.Sprintf("/api/fit-files/%s", created.ID)

	s.doJSON(ctx, "GET", "/api/fit-files", owner.Token, nil, "", http.StatusOK, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	var fetched datasets.Dataset
	s.doJSON(ctx, "GET", datasetPath, owner.Token, nil, "", http.StatusOK, &fetched)
	assert.Len(t, fetched.FitFiles, 2)
	assert.False(t, fetched.Shared)

	// not the owner
	status, _ := s.do(ctx, "GET", datasetPath, stranger.Token, nil, "")
	assert.Equal(t, http.StatusForbidden, status)

	var samples []activity.Sample
	s.doJSON(ctx, "GET", fmt.Sprintf("/api/fit-files/file/%s/data", created.FitFiles[0].ID), owner.Token, nil, "", http.StatusOK, &samples)
	require.Len(t, samples, 3)
	assert.Equal(t, 100.0, samples[0].Power)

	var comparison datasets.Comparison
	s.doJSON(ctx, "GET", datasetPath+"/compare", owner.Token, nil, "", http.StatusOK, &comparison)
	require.Len(t, comparison.Stats, 2)
	assert.Empty(t, comparison.Skipped)
	require.NotNil(t, comparison.Stats[0].AvgPower)
	assert.Equal(t, 200.0, *comparison.Stats[0].AvgPower)
	require.NotNil(t, comparison.Stats[1].AvgPower)
	assert.Equal(t, 200.0, *comparison.Stats[1].AvgPower)

	status, csvBody := s.do(ctx, "GET", datasetPath+"/export?format=csv", owner.Token, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(string(csvBody), "series,index,timestamp"), string(csvBody))

	renamed := gofakeit.Noun() + " intervals"
	s.doJSON(ctx, "PATCH", datasetPath, owner.Token, strings.NewReader(`{"name":"`+renamed+`"}`), "application/json", http.StatusOK, &fetched)
	assert.Equal(t, renamed, fetched.Name)

	var msg datasets.MessageResponse
	s.doJSON(ctx, "DELETE", datasetPath, owner.Token, nil, "", http.StatusOK, &msg)
	assert.Equal(t, "Dataset deleted successfully", msg.Message)

	status, _ = s.do(ctx, "GET", datasetPath, owner.Token, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT count(*) FROM fit_files WHERE dataset_id = $1`, created.ID).Scan(&fileRows))
	assert.Zero(t, fileRows)
}

func (s *IntegrationTestSuite) TestSharedDataset() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	owner := s.newUser()

	body, contentType := s.multipartBody("",
		upload{name: "ride.fit", data: s.fitFile(120, 180)},
	)
	var created datasets.Dataset
	s.doJSON(ctx, "POST", "/api/fit-files", owner.Token, body, contentType, http.StatusCreated, &created)
	assert.Equal(t, datasets.DefaultDatasetName, created.Name)

	datasetPath := fmt.Sprintf("/api/fit-files/%s", created.ID)

	var share datasets.ShareResponse
	s.doJSON(ctx, "POST", datasetPath+"/share", owner.Token, nil, "", http.StatusCreated, &share)
	require.NotEmpty(t, share.ShareToken)

	var storedHash []byte
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT share_token_hash FROM datasets WHERE id = $1`, created.ID).Scan(&storedHash))
	assert.NotEmpty(t, storedHash)
	assert.NotEqual(t, []byte(share.ShareToken), storedHash)

	sharedPath := "/api/fit-files/shared/" + share.ShareToken

	// no credentials needed on shared routes
	var shared datasets.Dataset
	s.doJSON(ctx, "GET", sharedPath, "", nil, "", http.StatusOK, &shared)
	assert.Equal(t, created.ID, shared.ID)
	assert.True(t, shared.Shared)
	assert.EqualValues(t, 1, shared.ShareViews)

	s.doJSON(ctx, "GET", sharedPath, "", nil, "", http.StatusOK, &shared)
	assert.EqualValues(t, 2, shared.ShareViews)

	var samples []activity.Sample
	s.doJSON(ctx, "GET", fmt.Sprintf("%s/file/%s/data", sharedPath, created.FitFiles[0].ID), "", nil, "", http.StatusOK, &samples)
	assert.Len(t, samples, 2)

	var comparison datasets.Comparison
	s.doJSON(ctx, "GET", sharedPath+"/compare", "", nil, "", http.StatusOK, &comparison)
	require.Len(t, comparison.Stats, 1)

	// owner view reports the counter too
	var fetched datasets.Dataset
	s.doJSON(ctx, "GET", datasetPath, owner.Token, nil, "", http.StatusOK, &fetched)
	assert.EqualValues(t, 2, fetched.ShareViews)

	s.doJSON(ctx, "DELETE", datasetPath+"/share", owner.Token, nil, "", http.StatusOK, nil)
	status, _ := s.do(ctx, "GET", sharedPath, "", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestUploadRejected() {
	ctx := context.Background()
	t := s.T()
	owner := s.newUser()

	body, contentType := s.multipartBody("only text",
		upload{name: "notes.txt", data: []byte("hello")},
	)
	status, _ := s.do(ctx, "POST", "/api/fit-files", owner.Token, body, contentType)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(ctx, "POST", "/api/fit-files", owner.Token, bytes.NewReader(nil), "multipart/form-data; boundary=xyz")
	assert.Equal(t, http.StatusBadRequest, status)
}
