package zoho_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsinsights/timesheet_insights_app/internal/adapters/zoho"
	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

type staticCredentials struct {
	cred *domain.Credential
	err  error
}

func (s *staticCredentials) UsableCredential(ctx context.Context, userID string) (*domain.Credential, error) {
	return s.cred, s.err
}

func validCredentials() *staticCredentials {
	token := "live-token"
	expiry := time.Now().Add(time.Hour)
	return &staticCredentials{cred: &domain.Credential{UserID: "user-1", AccessToken: &token, ExpiresAt: &expiry}}
}

func testRange() domain.DateRange {
	return domain.DateRange{
		Start: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchRecords_ParsesTimeLogs(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"result": [
					{
						"timelogId": "tl-1",
						"workDate": "2025-03-03",
						"projectName": "Website Redesign",
						"employeeName": "Aisha Khan",
						"jobName": "Development",
						"clientName": "Acme Corp",
						"billableHours": 5.25,
						"nonBillableHours": "0.75",
						"totalHours": 6,
						"approvalStatus": "approved",
						"description": "sprint work"
					},
					{
						"timelogId": "tl-2",
						"workDate": "2025-03-04",
						"projectName": "Data Migration",
						"employeeName": "Ben Carter",
						"billableHours": 2,
						"nonBillableHours": 1,
						"totalHours": 0
					}
				]
			}
		}`))
	}))
	defer server.Close()

	client := zoho.NewClient(server.URL, 5*time.Second, validCredentials())
	records, err := client.FetchRecords(context.Background(), "user-1", testRange())

	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Zoho-oauthtoken live-token", gotAuth)
	assert.Contains(t, gotQuery, "fromDate=2025-03-03")
	assert.Contains(t, gotQuery, "toDate=2025-03-07")

	first := records[0]
	assert.Equal(t, "tl-1", first.RecordID)
	assert.Equal(t, "Website Redesign", first.ProjectName)
	assert.InDelta(t, 5.25, first.BillableHours, 1e-9)
	assert.InDelta(t, 0.75, first.NonBillableHours, 1e-9)
	assert.InDelta(t, 6, first.TotalHours, 1e-9)

	// A zero wire total falls back to billable + non-billable.
	assert.InDelta(t, 3, records[1].TotalHours, 1e-9)
}

func TestFetchRecords_UnauthorizedIsAuthExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := zoho.NewClient(server.URL, 5*time.Second, validCredentials())
	_, err := client.FetchRecords(context.Background(), "user-1", testRange())

	assert.ErrorIs(t, err, apperrors.ErrUpstreamAuthExpired)
}

func TestFetchRecords_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := zoho.NewClient(server.URL, 5*time.Second, validCredentials())
	_, err := client.FetchRecords(context.Background(), "user-1", testRange())

	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestFetchRecords_TimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := zoho.NewClient(server.URL, 20*time.Millisecond, validCredentials())
	_, err := client.FetchRecords(context.Background(), "user-1", testRange())

	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestFetchRecords_CredentialErrorPropagates(t *testing.T) {
	client := zoho.NewClient("http://localhost:0", 5*time.Second, &staticCredentials{err: apperrors.ErrCredentialsMissing})

	_, err := client.FetchRecords(context.Background(), "user-1", testRange())

	assert.ErrorIs(t, err, apperrors.ErrCredentialsMissing)
}

func TestFetchRecords_MalformedHoursRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"result":[{"timelogId":"tl-1","workDate":"2025-03-03","billableHours":-2}]}}`))
	}))
	defer server.Close()

	client := zoho.NewClient(server.URL, 5*time.Second, validCredentials())
	_, err := client.FetchRecords(context.Background(), "user-1", testRange())

	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}
