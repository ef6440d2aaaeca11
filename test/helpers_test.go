//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"
)

type testUser struct {
	Subject string
	Email   string
	Token   string
}

func (s *IntegrationTestSuite) newUser() testUser {
	user := testUser{
		Subject: gofakeit.UUID(),
		Email:   gofakeit.Email(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            user.Subject,
		"email":          user.Email,
		"email_verified": true,
		"exp":            time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testIdentitySecret))
	require.NoError(s.T(), err)
	user.Token = signed

	return user
}

type upload struct {
	name string
	data []byte
}

// fitFile encodes an activity file with one record per power value, 1 Hz.
func (s *IntegrationTestSuite) fitFile(powers ...uint16) []byte {
	file, err := fit.NewFile(fit.FileTypeActivity, fit.NewHeader(fit.V20, true))
	require.NoError(s.T(), err)
	activityFile, err := file.Activity()
	require.NoError(s.T(), err)

	start := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
	for i, p := range powers {
		msg := fit.NewRecordMsg()
		msg.Timestamp = start.Add(time.Duration(i) * time.Second)
		msg.Power = p
		activityFile.Records = append(activityFile.Records, msg)
	}

	var buf bytes.Buffer
	require.NoError(s.T(), fit.Encode(&buf, file, binary.LittleEndian))
	return buf.Bytes()
}

func (s *IntegrationTestSuite) multipartBody(name string, uploads ...upload) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if name != "" {
		require.NoError(s.T(), writer.WriteField("name", name))
	}
	for _, u := range uploads {
		part, err := writer.CreateFormFile("files", u.name)
		require.NoError(s.T(), err)
		_, err = part.Write(u.data)
		require.NoError(s.T(), err)
	}
	require.NoError(s.T(), writer.Close())
	return body, writer.FormDataContentType()
}

// do sends the request and returns the status code and the full body.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body io.Reader, contentType string) (int, []byte) {
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path, token string, body io.Reader, contentType string, wantStatus int, out any) {
	status, respBytes := s.do(ctx, method, path, token, body, contentType)
	require.Equal(s.T(), wantStatus, status, string(respBytes))
	if out != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, out))
	}
}
